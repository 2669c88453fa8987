package dataflows

import (
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// ErrDataUnavailable reports that a fetch produced no usable rows, whether
// from bad symbols, an empty range or a provider failure. The pipeline
// aborts on it; there is no partial result.
var ErrDataUnavailable = errors.New("market data unavailable")

// MarketData represents one daily price bar for a symbol.
type MarketData struct {
	Symbol   string          `json:"symbol"`
	Date     time.Time       `json:"date"`
	Open     decimal.Decimal `json:"open"`
	High     decimal.Decimal `json:"high"`
	Low      decimal.Decimal `json:"low"`
	Close    decimal.Decimal `json:"close"`
	AdjClose decimal.Decimal `json:"adj_close"`
	Volume   int64           `json:"volume"`
}

// PriceTable maps trading dates to per-symbol adjusted closing prices.
// It is built once by a provider and read-only afterwards.
type PriceTable struct {
	symbols []string
	prices  map[string]map[string]decimal.Decimal // date -> symbol -> adj close
}

// NewPriceTable creates an empty table for the given symbol set.
func NewPriceTable(symbols []string) *PriceTable {
	return &PriceTable{
		symbols: append([]string(nil), symbols...),
		prices:  make(map[string]map[string]decimal.Decimal),
	}
}

// SetClose records the adjusted close for a symbol on a trading date.
// Dates use the 2006-01-02 layout.
func (pt *PriceTable) SetClose(date, symbol string, close decimal.Decimal) {
	row, ok := pt.prices[date]
	if !ok {
		row = make(map[string]decimal.Decimal, len(pt.symbols))
		pt.prices[date] = row
	}
	row[symbol] = close
}

// Close returns the adjusted close for a symbol on a date, if present.
func (pt *PriceTable) Close(date, symbol string) (decimal.Decimal, bool) {
	row, ok := pt.prices[date]
	if !ok {
		return decimal.Decimal{}, false
	}
	price, ok := row[symbol]
	return price, ok
}

// Symbols returns the symbol set the table was requested for.
func (pt *PriceTable) Symbols() []string {
	return append([]string(nil), pt.symbols...)
}

// Dates returns all trading dates in ascending order.
func (pt *PriceTable) Dates() []string {
	dates := make([]string, 0, len(pt.prices))
	for d := range pt.prices {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// IsEmpty reports whether the table holds no rows at all.
func (pt *PriceTable) IsEmpty() bool {
	return len(pt.prices) == 0
}

// Len returns the number of trading dates in the table.
func (pt *PriceTable) Len() int {
	return len(pt.prices)
}

func floatToDecimal(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// tableFromRows assembles per-symbol daily bars into a PriceTable.
func tableFromRows(symbols []string, rows map[string][]*MarketData) *PriceTable {
	table := NewPriceTable(symbols)
	for symbol, bars := range rows {
		for _, bar := range bars {
			table.SetClose(bar.Date.Format("2006-01-02"), symbol, bar.AdjClose)
		}
	}
	return table
}
