package dataflows

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"

	"github.com/dyike/SharpeGo/config"
)

// YahooFinanceClient fetches daily adjusted closes from Yahoo Finance.
// It is the default provider and needs no credentials.
type YahooFinanceClient struct {
	debug bool
}

// NewYahooFinanceClient creates a new Yahoo Finance client
func NewYahooFinanceClient(cfg *config.Config) *YahooFinanceClient {
	return &YahooFinanceClient{debug: cfg.Debug}
}

// FetchDailyCloses downloads adjusted closes for all symbols over the date
// range. Any per-symbol failure aborts the whole fetch.
func (yf *YahooFinanceClient) FetchDailyCloses(ctx context.Context, symbols []string, start, end time.Time) (*PriceTable, error) {
	symbols, err := validateSymbols(symbols)
	if err != nil {
		return nil, err
	}

	rows := make(map[string][]*MarketData, len(symbols))
	for _, symbol := range symbols {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: fetch cancelled: %v", ErrDataUnavailable, err)
		}

		bars, err := yf.historical(symbol, start, end)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
		}
		if yf.debug {
			log.Printf("fetched %d daily bars for %s via yahoo (%s)", len(bars), symbol, FormatDateRange(start, end))
		}
		rows[symbol] = bars
	}

	table := tableFromRows(symbols, rows)
	if table.IsEmpty() {
		return nil, fmt.Errorf("%w: no rows returned for %s (%s)",
			ErrDataUnavailable, strings.Join(symbols, ", "), FormatDateRange(start, end))
	}
	return table, nil
}

func (yf *YahooFinanceClient) historical(symbol string, start, end time.Time) ([]*MarketData, error) {
	params := &chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	}

	iter := chart.Get(params)

	bars := make([]*MarketData, 0)
	for iter.Next() {
		bar := iter.Bar()

		bars = append(bars, &MarketData{
			Symbol:   symbol,
			Date:     time.Unix(int64(bar.Timestamp), 0).UTC(),
			Open:     bar.Open,
			High:     bar.High,
			Low:      bar.Low,
			Close:    bar.Close,
			AdjClose: bar.AdjClose,
			Volume:   int64(bar.Volume),
		})
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to get historical data for %s: %w", symbol, err)
	}

	return bars, nil
}
