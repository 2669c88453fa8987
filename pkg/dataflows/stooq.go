package dataflows

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"github.com/dyike/SharpeGo/config"
)

// StooqClient fetches daily price history from stooq.com, which serves
// plain CSV without an API key. Useful when Yahoo rate-limits.
type StooqClient struct {
	client *resty.Client
	debug  bool
}

// NewStooqClient creates a new Stooq client
func NewStooqClient(cfg *config.Config) *StooqClient {
	client := resty.New()
	client.SetBaseURL("https://stooq.com")
	client.SetTimeout(30 * time.Second)

	return &StooqClient{
		client: client,
		debug:  cfg.Debug,
	}
}

// FetchDailyCloses downloads daily closes for all symbols over the date
// range. Stooq serves unadjusted closes only, so Close doubles as AdjClose.
func (sc *StooqClient) FetchDailyCloses(ctx context.Context, symbols []string, start, end time.Time) (*PriceTable, error) {
	symbols, err := validateSymbols(symbols)
	if err != nil {
		return nil, err
	}

	rows := make(map[string][]*MarketData, len(symbols))
	for _, symbol := range symbols {
		bars, err := sc.historical(ctx, symbol, start, end)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
		}
		if sc.debug {
			log.Printf("fetched %d daily bars for %s via stooq (%s)", len(bars), symbol, FormatDateRange(start, end))
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

func (sc *StooqClient) historical(ctx context.Context, symbol string, start, end time.Time) ([]*MarketData, error) {
	resp, err := sc.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"s":  stooqSymbol(symbol),
			"d1": start.Format("20060102"),
			"d2": end.Format("20060102"),
			"i":  "d",
		}).
		Get("/q/d/l/")

	if err != nil {
		return nil, fmt.Errorf("failed to fetch history for %s: %w", symbol, err)
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("stooq error %d for %s: %s", resp.StatusCode(), symbol, resp.String())
	}

	return parseStooqCSV(symbol, resp.String())
}

// parseStooqCSV decodes stooq's Date,Open,High,Low,Close,Volume daily CSV.
func parseStooqCSV(symbol, body string) ([]*MarketData, error) {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" || strings.HasPrefix(trimmed, "No data") {
		return nil, nil
	}

	reader := csv.NewReader(strings.NewReader(trimmed))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV for %s: %w", symbol, err)
	}
	if len(header) < 5 || !strings.EqualFold(header[0], "Date") {
		return nil, fmt.Errorf("unexpected CSV header for %s: %v", symbol, header)
	}

	var bars []*MarketData
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV for %s: %w", symbol, err)
		}
		if len(record) < 5 {
			continue
		}

		date, err := time.Parse("2006-01-02", record[0])
		if err != nil {
			continue
		}

		open, err1 := decimal.NewFromString(record[1])
		high, err2 := decimal.NewFromString(record[2])
		low, err3 := decimal.NewFromString(record[3])
		closePrice, err4 := decimal.NewFromString(record[4])
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			continue
		}

		var volume int64
		if len(record) > 5 {
			volume, _ = strconv.ParseInt(record[5], 10, 64)
		}

		bars = append(bars, &MarketData{
			Symbol:   symbol,
			Date:     date,
			Open:     open,
			High:     high,
			Low:      low,
			Close:    closePrice,
			AdjClose: closePrice,
			Volume:   volume,
		})
	}

	return bars, nil
}

// stooqSymbol maps a plain US ticker to stooq's naming (aapl.us). Symbols
// that already carry a market suffix or an index prefix pass through.
func stooqSymbol(symbol string) string {
	lower := strings.ToLower(symbol)
	if strings.Contains(lower, ".") || strings.HasPrefix(lower, "^") {
		return lower
	}
	return lower + ".us"
}
