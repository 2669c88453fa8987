package analysis

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/dyike/SharpeGo/pkg/dataflows"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("decimal %q: %v", s, err)
	}
	return d
}

func TestReturnsDropFirstRow(t *testing.T) {
	table := dataflows.NewPriceTable([]string{"AAPL"})
	dates := tradingDates(3)
	for i, price := range []string{"100", "110", "99"} {
		table.SetClose(dates[i], "AAPL", mustDecimal(t, price))
	}

	rt := ReturnsFromPrices(table)
	if rt.Len() != 2 {
		t.Fatalf("expected 2 return rows from 3 price rows, got %d", rt.Len())
	}

	col := rt.Column("AAPL")
	if math.Abs(col[0]-0.10) > 1e-12 {
		t.Fatalf("expected 0.10, got %v", col[0])
	}
	if math.Abs(col[1]-(-0.10)) > 1e-12 {
		t.Fatalf("expected -0.10, got %v", col[1])
	}
}

func TestMissingValueDropsRowForAllSymbols(t *testing.T) {
	// B has no price on the third date. That kills B's return on the third
	// and fourth dates, and the incomplete rows are dropped for A as well.
	table := dataflows.NewPriceTable([]string{"A", "B"})
	dates := tradingDates(5)
	for i, price := range []string{"100", "101", "102", "103", "104"} {
		table.SetClose(dates[i], "A", mustDecimal(t, price))
	}
	for i, price := range []string{"50", "51", "", "53", "54"} {
		if price == "" {
			continue
		}
		table.SetClose(dates[i], "B", mustDecimal(t, price))
	}

	rt := ReturnsFromPrices(table)

	want := []string{dates[1], dates[4]}
	if len(rt.Dates) != len(want) {
		t.Fatalf("expected dates %v, got %v", want, rt.Dates)
	}
	for i, date := range want {
		if rt.Dates[i] != date {
			t.Fatalf("expected dates %v, got %v", want, rt.Dates)
		}
	}
}

func TestReturnsFromEmptyTable(t *testing.T) {
	rt := ReturnsFromPrices(dataflows.NewPriceTable([]string{"A"}))
	if rt.Len() != 0 {
		t.Fatalf("expected no returns from an empty table, got %d", rt.Len())
	}

	rt = ReturnsFromPrices(nil)
	if rt.Len() != 0 {
		t.Fatalf("expected no returns from a nil table, got %d", rt.Len())
	}
}

func TestReturnsAlignByDateKey(t *testing.T) {
	// The proxy trades on a superset of dates; alignment must use the date
	// key, not the row position.
	table := dataflows.NewPriceTable([]string{"A", "^IRX"})
	dates := tradingDates(4)
	for i, price := range []string{"100", "102", "", "104.04"} {
		if price == "" {
			continue
		}
		table.SetClose(dates[i], "A", mustDecimal(t, price))
	}
	for i, price := range []string{"4.5", "4.5", "4.5", "4.5"} {
		table.SetClose(dates[i], "^IRX", mustDecimal(t, price))
	}

	rt := ReturnsFromPrices(table)

	// Only the second date has a complete return row: A is missing on the
	// third date and has no prior-day price on the fourth.
	if rt.Len() != 1 || rt.Dates[0] != dates[1] {
		t.Fatalf("expected single return row on %s, got %v", dates[1], rt.Dates)
	}
	if got := rt.Returns[dates[1]]["A"]; math.Abs(got-0.02) > 1e-12 {
		t.Fatalf("expected 0.02 return for A, got %v", got)
	}
	if got := rt.Returns[dates[1]]["^IRX"]; got != 0 {
		t.Fatalf("expected zero proxy return, got %v", got)
	}
}
