package config

import (
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.Tickers) == 0 {
		t.Fatalf("expected default tickers")
	}
	if cfg.RiskFreeTicker != "^IRX" {
		t.Fatalf("expected ^IRX default proxy, got %s", cfg.RiskFreeTicker)
	}
	if cfg.TradingDays != 252 {
		t.Fatalf("expected 252 trading days, got %d", cfg.TradingDays)
	}
	if cfg.Provider != "yahoo" {
		t.Fatalf("expected yahoo default provider, got %s", cfg.Provider)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SHARPEGO_TICKERS", "aapl, msft ,,GOOGL")
	t.Setenv("SHARPEGO_RISK_FREE_TICKER", "^FVX")
	t.Setenv("SHARPEGO_START_DATE", "2021-06-01")
	t.Setenv("SHARPEGO_END_DATE", "2023-06-01")
	t.Setenv("SHARPEGO_PROVIDER", "STOOQ")
	t.Setenv("SHARPEGO_TRADING_DAYS", "260")

	cfg := DefaultConfig()

	if len(cfg.Tickers) != 3 || cfg.Tickers[0] != "aapl" || cfg.Tickers[2] != "GOOGL" {
		t.Fatalf("unexpected tickers: %v", cfg.Tickers)
	}
	if cfg.RiskFreeTicker != "^FVX" {
		t.Fatalf("expected ^FVX, got %s", cfg.RiskFreeTicker)
	}
	if cfg.StartDate != "2021-06-01" || cfg.EndDate != "2023-06-01" {
		t.Fatalf("unexpected dates: %s / %s", cfg.StartDate, cfg.EndDate)
	}
	if cfg.Provider != "stooq" {
		t.Fatalf("expected provider lowered to stooq, got %s", cfg.Provider)
	}
	if cfg.TradingDays != 260 {
		t.Fatalf("expected 260 trading days, got %d", cfg.TradingDays)
	}
}

func TestValidateRejectsBadInput(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no tickers", func(c *Config) { c.Tickers = nil }},
		{"no proxy", func(c *Config) { c.RiskFreeTicker = "" }},
		{"bad start", func(c *Config) { c.StartDate = "Jan 1 2020" }},
		{"bad end", func(c *Config) { c.EndDate = "2020-13-45" }},
		{"inverted range", func(c *Config) { c.StartDate, c.EndDate = "2024-01-01", "2020-01-01" }},
		{"zero trading days", func(c *Config) { c.TradingDays = 0 }},
		{"unknown provider", func(c *Config) { c.Provider = "bloomberg" }},
	}

	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}
