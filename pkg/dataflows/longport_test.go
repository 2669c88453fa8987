package dataflows

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestInDateWindowInclusiveBounds(t *testing.T) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		date time.Time
		want bool
	}{
		{"start day midnight", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), true},
		{"end day midnight", time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), true},
		{"end day intraday", time.Date(2024, 1, 31, 21, 0, 0, 0, time.UTC), true},
		{"day after end, midnight", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), false},
		{"day before start", time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC), false},
	}

	for _, tc := range cases {
		if got := inDateWindow(tc.date, start, end); got != tc.want {
			t.Fatalf("%s: inDateWindow(%v) = %v, want %v", tc.name, tc.date, got, tc.want)
		}
	}
}

func TestFetchDailyClosesRejectsOversizedRange(t *testing.T) {
	client := &LongportClient{}
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 11, 26, 0, 0, 0, 0, time.UTC)

	_, err := client.FetchDailyCloses(context.Background(), []string{"AAPL.US"}, start, end)
	if err == nil {
		t.Fatalf("expected error for a range wider than one candlestick request")
	}
	if !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}
	if !strings.Contains(err.Error(), "narrow the range") {
		t.Fatalf("error must tell the user how to recover, got %v", err)
	}
}

func TestFetchDailyClosesWithoutQuoteContext(t *testing.T) {
	client := &LongportClient{}
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	_, err := client.FetchDailyCloses(context.Background(), []string{"AAPL.US"}, start, end)
	if !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable without a quote context, got %v", err)
	}
}
