package analysis

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/dyike/SharpeGo/pkg/dataflows"
)

// Params describes one Sharpe Ratio computation request.
type Params struct {
	Tickers        []string
	RiskFreeTicker string
	Start          time.Time
	End            time.Time
	TradingDays    int
}

// ComputeSharpeRatios fetches adjusted closes for the assets plus the
// risk-free proxy in one bulk request and maps each asset symbol to its
// annualized Sharpe Ratio.
//
// The proxy column quotes an annualized percentage yield (e.g. ^IRX) and is
// rescaled to a daily decimal rate before excess returns are taken. Excess
// returns align by date key, not position. A zero-variance excess series
// yields NaN or ±Inf for that asset only; fetch failures abort with
// dataflows.ErrDataUnavailable and no partial result.
func ComputeSharpeRatios(ctx context.Context, provider dataflows.PriceProvider, params Params) (map[string]float64, error) {
	if params.TradingDays <= 0 {
		return nil, fmt.Errorf("trading days must be positive, got %d", params.TradingDays)
	}

	proxy := dataflows.NormalizeSymbol(params.RiskFreeTicker)
	symbols := make([]string, 0, len(params.Tickers)+1)
	symbols = append(symbols, params.Tickers...)
	symbols = append(symbols, params.RiskFreeTicker)

	table, err := provider.FetchDailyCloses(ctx, symbols, params.Start, params.End)
	if err != nil {
		return nil, err
	}
	if table.IsEmpty() {
		return nil, fmt.Errorf("%w: empty price table for %s",
			dataflows.ErrDataUnavailable, dataflows.FormatDateRange(params.Start, params.End))
	}

	returns := ReturnsFromPrices(table)

	// Annualized percentage yield to daily decimal fraction.
	dailyRF := make(map[string]float64, returns.Len())
	for _, date := range returns.Dates {
		dailyRF[date] = returns.Returns[date][proxy] / 100 / float64(params.TradingDays)
	}

	ratios := make(map[string]float64, len(params.Tickers))
	for _, ticker := range params.Tickers {
		symbol := dataflows.NormalizeSymbol(ticker)
		if symbol == proxy {
			continue
		}

		excess := make([]float64, 0, returns.Len())
		for _, date := range returns.Dates {
			excess = append(excess, returns.Returns[date][symbol]-dailyRF[date])
		}

		ratios[symbol] = annualizedSharpe(excess, params.TradingDays)
	}

	return ratios, nil
}

// annualizedSharpe computes mean/stddev of the excess series scaled by
// sqrt(periods). Sample (n-1) standard deviation. Division by a zero
// deviation follows float semantics: NaN for a zero mean, ±Inf otherwise.
func annualizedSharpe(excess []float64, periods int) float64 {
	if len(excess) < 2 {
		return math.NaN()
	}

	m := mean(excess)
	sd := sampleStdDev(excess, m)

	return m / sd * math.Sqrt(float64(periods))
}

func mean(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

func sampleStdDev(values []float64, mean float64) float64 {
	var variance float64
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values) - 1)
	return math.Sqrt(variance)
}
