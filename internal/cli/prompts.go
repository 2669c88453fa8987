package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"

	"github.com/dyike/SharpeGo/config"
	"github.com/dyike/SharpeGo/pkg/dataflows"
)

// promptForParameters fills the analysis parameters from interactive input.
func promptForParameters(cfg *config.Config) error {
	tickers, err := promptForTickers(cfg.Tickers)
	if err != nil {
		return err
	}
	cfg.Tickers = tickers

	riskFree, err := promptForRiskFree(cfg.RiskFreeTicker)
	if err != nil {
		return err
	}
	cfg.RiskFreeTicker = riskFree

	start, err := promptForDate("Start date (YYYY-MM-DD):", cfg.StartDate)
	if err != nil {
		return err
	}
	cfg.StartDate = start

	end, err := promptForDate("End date (YYYY-MM-DD):", cfg.EndDate)
	if err != nil {
		return err
	}
	cfg.EndDate = end

	provider, err := promptForProvider(cfg.Provider)
	if err != nil {
		return err
	}
	cfg.Provider = provider

	return nil
}

// promptForTickers prompts for a comma-separated asset list
func promptForTickers(defaults []string) ([]string, error) {
	var input string
	prompt := &survey.Input{
		Message: "Asset tickers (comma-separated, e.g. AAPL,MSFT,GOOGL):",
		Default: strings.Join(defaults, ","),
		Help:    "Each asset gets one bar in the comparison chart",
	}

	err := survey.AskOne(prompt, &input, survey.WithValidator(func(val interface{}) error {
		str := strings.TrimSpace(val.(string))
		if str == "" {
			return fmt.Errorf("at least one ticker is required")
		}
		for _, t := range strings.Split(str, ",") {
			if t = strings.TrimSpace(t); t == "" {
				continue
			}
			if err := dataflows.ValidateSymbol(t); err != nil {
				return err
			}
		}
		return nil
	}))
	if err != nil {
		return nil, err
	}

	var tickers []string
	for _, t := range strings.Split(input, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tickers = append(tickers, dataflows.NormalizeSymbol(t))
		}
	}
	return tickers, nil
}

// promptForRiskFree prompts for the risk-free proxy ticker
func promptForRiskFree(defaultTicker string) (string, error) {
	var ticker string
	prompt := &survey.Input{
		Message: "Risk-free proxy ticker:",
		Default: defaultTicker,
		Help:    "An annualized-yield instrument such as ^IRX (13-week T-bill)",
	}

	err := survey.AskOne(prompt, &ticker, survey.WithValidator(func(val interface{}) error {
		return dataflows.ValidateSymbol(val.(string))
	}))
	if err != nil {
		return "", err
	}

	return dataflows.NormalizeSymbol(ticker), nil
}

// promptForDate prompts for a date in YYYY-MM-DD format
func promptForDate(message, defaultDate string) (string, error) {
	var dateStr string
	prompt := &survey.Input{
		Message: message,
		Default: defaultDate,
	}

	err := survey.AskOne(prompt, &dateStr, survey.WithValidator(func(val interface{}) error {
		str := strings.TrimSpace(val.(string))
		if _, err := time.Parse("2006-01-02", str); err != nil {
			return fmt.Errorf("invalid date format, use YYYY-MM-DD")
		}
		return nil
	}))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(dateStr), nil
}

// promptForProvider prompts for the market data backend
func promptForProvider(defaultProvider string) (string, error) {
	var selected string
	prompt := &survey.Select{
		Message: "Market data provider:",
		Options: []string{"yahoo", "stooq", "longport"},
		Default: defaultProvider,
	}

	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", err
	}

	return selected, nil
}
