package analysis

import (
	"sort"

	"github.com/dyike/SharpeGo/pkg/dataflows"
)

// ReturnTable holds day-over-day percentage returns keyed by trading date.
// Only dates where every requested symbol has a return survive: a data gap
// in one symbol shrinks the sample for all of them, matching the combined
// drop-incomplete-rows behavior the ratios are defined against.
type ReturnTable struct {
	Dates   []string                      // ascending
	Returns map[string]map[string]float64 // date -> symbol -> daily return
}

// ReturnsFromPrices derives percentage returns between consecutive calendar
// rows of the price table. The first row has no prior day and is dropped. A
// return for a symbol on a date requires a price on both that date and the
// immediately preceding trading date.
func ReturnsFromPrices(table *dataflows.PriceTable) *ReturnTable {
	rt := &ReturnTable{
		Returns: make(map[string]map[string]float64),
	}
	if table == nil || table.IsEmpty() {
		return rt
	}

	dates := table.Dates()
	symbols := table.Symbols()

	for i := 1; i < len(dates); i++ {
		prevDate, date := dates[i-1], dates[i]

		row := make(map[string]float64, len(symbols))
		for _, symbol := range symbols {
			prev, okPrev := table.Close(prevDate, symbol)
			cur, okCur := table.Close(date, symbol)
			if !okPrev || !okCur || prev.IsZero() {
				continue
			}
			row[symbol] = cur.Sub(prev).Div(prev).InexactFloat64()
		}

		if len(row) == len(symbols) {
			rt.Returns[date] = row
			rt.Dates = append(rt.Dates, date)
		}
	}

	sort.Strings(rt.Dates)
	return rt
}

// Column extracts one symbol's return series in date order.
func (rt *ReturnTable) Column(symbol string) []float64 {
	series := make([]float64, 0, len(rt.Dates))
	for _, date := range rt.Dates {
		series = append(series, rt.Returns[date][symbol])
	}
	return series
}

// Len returns the number of trading dates with complete rows.
func (rt *ReturnTable) Len() int {
	return len(rt.Dates)
}
