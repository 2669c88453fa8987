package dataflows

import (
	"context"
	"fmt"
	"time"

	"github.com/dyike/SharpeGo/config"
)

// PriceProvider is the single collaborator the pipeline depends on: a bulk
// historical fetch of adjusted daily closes for a symbol list over an
// inclusive date range. One attempt, all-or-nothing; implementations wrap
// failures and empty results in ErrDataUnavailable.
type PriceProvider interface {
	FetchDailyCloses(ctx context.Context, symbols []string, start, end time.Time) (*PriceTable, error)
}

// NewProvider selects the configured market-data backend.
func NewProvider(cfg *config.Config) (PriceProvider, error) {
	switch cfg.Provider {
	case "yahoo":
		return NewYahooFinanceClient(cfg), nil
	case "stooq":
		return NewStooqClient(cfg), nil
	case "longport":
		return NewLongportClient(cfg)
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

// validateSymbols normalizes the requested symbols and rejects malformed ones
// before any network round trip.
func validateSymbols(symbols []string) ([]string, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("%w: no symbols requested", ErrDataUnavailable)
	}
	normalized := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if err := ValidateSymbol(s); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
		}
		normalized = append(normalized, NormalizeSymbol(s))
	}
	return normalized, nil
}
