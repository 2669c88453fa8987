package dataflows

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/dyike/SharpeGo/config"
	lpconfig "github.com/longportapp/openapi-go/config"
	"github.com/longportapp/openapi-go/quote"
)

// maxLongportCandles is the most daily candles one candlestick request
// returns.
const maxLongportCandles = 1000

// LongportClient fetches daily candlesticks through the Longport OpenAPI.
// It requires account credentials in the configuration.
type LongportClient struct {
	quoteCtx *quote.QuoteContext
	debug    bool
}

func NewLongportClient(cfg *config.Config) (*LongportClient, error) {
	if cfg.LongportAppKey == "" || cfg.LongportAppSecret == "" || cfg.LongportAccessToken == "" {
		return nil, errors.New("longport API credentials not configured")
	}

	conf, err := lpconfig.New(lpconfig.WithConfigKey(cfg.LongportAppKey, cfg.LongportAppSecret, cfg.LongportAccessToken))
	if err != nil {
		return nil, err
	}

	quoteContext, err := quote.NewFromCfg(conf)
	if err != nil {
		return nil, err
	}

	return &LongportClient{
		quoteCtx: quoteContext,
		debug:    cfg.Debug,
	}, nil
}

// FetchDailyCloses downloads daily candlesticks for all symbols and keeps
// the bars that fall inside the inclusive date range.
func (lpc *LongportClient) FetchDailyCloses(ctx context.Context, symbols []string, start, end time.Time) (*PriceTable, error) {
	symbols, err := validateSymbols(symbols)
	if err != nil {
		return nil, err
	}

	// The candlestick endpoint is count-based: over-request by the calendar
	// span and trim to the window afterwards. A span beyond one request's
	// reach would silently truncate the sample, so refuse it instead.
	count := int(end.Sub(start).Hours()/24) + 1
	if count < 1 {
		count = 1
	}
	if count > maxLongportCandles {
		return nil, fmt.Errorf("%w: %s spans %d calendar days but one longport request covers at most %d daily candles; narrow the range or use another provider",
			ErrDataUnavailable, FormatDateRange(start, end), count, maxLongportCandles)
	}

	if lpc.quoteCtx == nil {
		return nil, fmt.Errorf("%w: quote context is nil", ErrDataUnavailable)
	}

	rows := make(map[string][]*MarketData, len(symbols))
	for _, symbol := range symbols {
		sticks, err := lpc.quoteCtx.Candlesticks(ctx, symbol, quote.PeriodDay, int32(count), quote.AdjustTypeNo)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to get candlesticks for %s: %v", ErrDataUnavailable, symbol, err)
		}

		var bars []*MarketData
		for _, stick := range sticks {
			date := time.Unix(stick.Timestamp, 0).UTC()
			if !inDateWindow(date, start, end) {
				continue
			}

			open, _ := stick.Open.Float64()
			high, _ := stick.High.Float64()
			low, _ := stick.Low.Float64()
			closePrice, _ := stick.Close.Float64()

			bars = append(bars, &MarketData{
				Symbol:   symbol,
				Date:     date,
				Open:     floatToDecimal(open),
				High:     floatToDecimal(high),
				Low:      floatToDecimal(low),
				Close:    floatToDecimal(closePrice),
				AdjClose: floatToDecimal(closePrice),
				Volume:   stick.Volume,
			})
		}

		if lpc.debug {
			log.Printf("fetched %d daily bars for %s via longport (%s)", len(bars), symbol, FormatDateRange(start, end))
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

// inDateWindow reports whether a bar's calendar day falls inside the
// inclusive start/end window. Candle timestamps can sit anywhere within
// their trading day, so the comparison is by day, not by instant.
func inDateWindow(date, start, end time.Time) bool {
	day := date.Format("2006-01-02")
	return day >= start.Format("2006-01-02") && day <= end.Format("2006-01-02")
}
