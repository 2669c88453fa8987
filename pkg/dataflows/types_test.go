package dataflows

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestPriceTableDatesSorted(t *testing.T) {
	table := NewPriceTable([]string{"AAPL"})
	table.SetClose("2024-01-05", "AAPL", decimal.NewFromInt(101))
	table.SetClose("2024-01-02", "AAPL", decimal.NewFromInt(100))
	table.SetClose("2024-01-03", "AAPL", decimal.NewFromInt(99))

	dates := table.Dates()
	want := []string{"2024-01-02", "2024-01-03", "2024-01-05"}
	for i, d := range want {
		if dates[i] != d {
			t.Fatalf("expected dates %v, got %v", want, dates)
		}
	}
}

func TestPriceTableLookup(t *testing.T) {
	table := NewPriceTable([]string{"AAPL", "MSFT"})
	table.SetClose("2024-01-02", "AAPL", decimal.NewFromInt(185))

	if price, ok := table.Close("2024-01-02", "AAPL"); !ok || !price.Equal(decimal.NewFromInt(185)) {
		t.Fatalf("expected 185, got %v (ok=%v)", price, ok)
	}
	if _, ok := table.Close("2024-01-02", "MSFT"); ok {
		t.Fatalf("expected missing price for MSFT")
	}
	if _, ok := table.Close("2024-01-03", "AAPL"); ok {
		t.Fatalf("expected missing date")
	}
}

func TestPriceTableEmpty(t *testing.T) {
	table := NewPriceTable([]string{"AAPL"})
	if !table.IsEmpty() || table.Len() != 0 {
		t.Fatalf("fresh table must be empty")
	}

	table.SetClose("2024-01-02", "AAPL", decimal.NewFromInt(100))
	if table.IsEmpty() || table.Len() != 1 {
		t.Fatalf("table with one row must not be empty")
	}
}

func TestTableFromRows(t *testing.T) {
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	rows := map[string][]*MarketData{
		"AAPL": {
			{Symbol: "AAPL", Date: day, AdjClose: decimal.NewFromInt(185)},
			{Symbol: "AAPL", Date: day.AddDate(0, 0, 1), AdjClose: decimal.NewFromInt(186)},
		},
	}

	table := tableFromRows([]string{"AAPL"}, rows)
	if table.Len() != 2 {
		t.Fatalf("expected 2 dates, got %d", table.Len())
	}
	if price, ok := table.Close("2024-01-03", "AAPL"); !ok || !price.Equal(decimal.NewFromInt(186)) {
		t.Fatalf("expected 186 on 2024-01-03, got %v (ok=%v)", price, ok)
	}
}

func TestValidateSymbolsRejectsEmptyList(t *testing.T) {
	if _, err := validateSymbols(nil); err == nil {
		t.Fatalf("expected error for empty symbol list")
	}

	symbols, err := validateSymbols([]string{" aapl ", "^irx"})
	if err != nil {
		t.Fatalf("validateSymbols: %v", err)
	}
	if symbols[0] != "AAPL" || symbols[1] != "^IRX" {
		t.Fatalf("expected normalized symbols, got %v", symbols)
	}
}
