package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const dateLayout = "2006-01-02"

type Config struct {
	ProjectDir string `json:"project_dir"`
	ResultsDir string `json:"results_dir"`

	// Analysis parameters
	Tickers        []string `json:"tickers"`
	RiskFreeTicker string   `json:"risk_free_ticker"`
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
	TradingDays    int      `json:"trading_days"`

	// Market data provider: yahoo, stooq or longport
	Provider string `json:"provider"`

	Debug bool `json:"debug"`

	// Longport API Configuration
	LongportAppKey      string `json:"longport_app_key"`
	LongportAppSecret   string `json:"longport_app_secret"`
	LongportAccessToken string `json:"longport_access_token"`
}

func DefaultConfig() *Config {
	currentDir, _ := os.Getwd()

	cfg := &Config{
		ProjectDir: currentDir,
		ResultsDir: filepath.Join(currentDir, "results"),

		// ^IRX quotes the 13-week T-bill yield as an annualized percentage.
		Tickers:        []string{"AAPL", "MSFT", "GOOGL", "TSLA", "NVDA", "JPM"},
		RiskFreeTicker: "^IRX",
		StartDate:      "2020-01-01",
		EndDate:        "2025-11-26",
		TradingDays:    252,

		Provider: "yahoo",
		Debug:    false,
	}

	// Load environment variables from .env file
	_ = godotenv.Load()

	// Override with environment variables if they exist
	cfg.loadFromEnv()

	return cfg
}

func (c *Config) loadFromEnv() {
	if val := os.Getenv("PROJECT_DIR"); val != "" {
		c.ProjectDir = val
	}
	if val := os.Getenv("RESULTS_DIR"); val != "" {
		c.ResultsDir = val
	}

	if val := os.Getenv("SHARPEGO_TICKERS"); val != "" {
		c.Tickers = splitTickers(val)
	}
	if val := os.Getenv("SHARPEGO_RISK_FREE_TICKER"); val != "" {
		c.RiskFreeTicker = val
	}
	if val := os.Getenv("SHARPEGO_START_DATE"); val != "" {
		c.StartDate = val
	}
	if val := os.Getenv("SHARPEGO_END_DATE"); val != "" {
		c.EndDate = val
	}
	if val := os.Getenv("SHARPEGO_TRADING_DAYS"); val != "" {
		if v, err := strconv.Atoi(val); err == nil && v > 0 {
			c.TradingDays = v
		}
	}
	if val := os.Getenv("SHARPEGO_PROVIDER"); val != "" {
		c.Provider = strings.ToLower(val)
	}
	if val := os.Getenv("SHARPEGO_DEBUG"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.Debug = enabled
		}
	}

	if val := os.Getenv("LONGPORT_APP_KEY"); val != "" {
		c.LongportAppKey = val
	}
	if val := os.Getenv("LONGPORT_APP_SECRET"); val != "" {
		c.LongportAppSecret = val
	}
	if val := os.Getenv("LONGPORT_ACCESS_TOKEN"); val != "" {
		c.LongportAccessToken = val
	}
}

// Validate checks that the analysis parameters describe a runnable request.
func (c *Config) Validate() error {
	if len(c.Tickers) == 0 {
		return fmt.Errorf("at least one ticker is required")
	}
	if c.RiskFreeTicker == "" {
		return fmt.Errorf("risk-free ticker is required")
	}
	start, err := time.Parse(dateLayout, c.StartDate)
	if err != nil {
		return fmt.Errorf("invalid start date %q: %w", c.StartDate, err)
	}
	end, err := time.Parse(dateLayout, c.EndDate)
	if err != nil {
		return fmt.Errorf("invalid end date %q: %w", c.EndDate, err)
	}
	if end.Before(start) {
		return fmt.Errorf("end date %s is before start date %s", c.EndDate, c.StartDate)
	}
	if c.TradingDays <= 0 {
		return fmt.Errorf("trading days must be positive, got %d", c.TradingDays)
	}
	switch c.Provider {
	case "yahoo", "stooq", "longport":
	default:
		return fmt.Errorf("unknown provider %q (expected yahoo, stooq or longport)", c.Provider)
	}
	return nil
}

// DateRange returns the parsed inclusive start/end of the analysis window.
// Call Validate first; parse errors here fall back to zero times.
func (c *Config) DateRange() (time.Time, time.Time) {
	start, _ := time.Parse(dateLayout, c.StartDate)
	end, _ := time.Parse(dateLayout, c.EndDate)
	return start, end
}

func (c *Config) EnsureDirectories() error {
	dirs := []string{c.ProjectDir, c.ResultsDir}
	for _, dir := range dirs {
		path := strings.TrimSpace(dir)
		if path == "" {
			continue
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", path, err)
		}
	}
	return nil
}

func splitTickers(val string) []string {
	parts := strings.Split(val, ",")
	tickers := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			tickers = append(tickers, p)
		}
	}
	return tickers
}
