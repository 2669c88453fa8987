package dataflows

import (
	"fmt"
	"strings"
	"time"
)

// ValidateSymbol checks if a ticker symbol is valid format
func ValidateSymbol(symbol string) error {
	symbol = strings.TrimSpace(strings.ToUpper(symbol))
	if len(symbol) == 0 {
		return fmt.Errorf("symbol cannot be empty")
	}
	if len(symbol) > 10 {
		return fmt.Errorf("symbol too long: %s", symbol)
	}
	for _, r := range symbol {
		switch {
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '.' || r == '-' || r == '^' || r == '=':
		default:
			return fmt.Errorf("symbol contains invalid character %q: %s", r, symbol)
		}
	}
	return nil
}

// NormalizeSymbol converts a symbol to standard format
func NormalizeSymbol(symbol string) string {
	return strings.TrimSpace(strings.ToUpper(symbol))
}

// FormatDateRange creates a human-readable date range string
func FormatDateRange(start, end time.Time) string {
	return fmt.Sprintf("%s to %s",
		start.Format("2006-01-02"),
		end.Format("2006-01-02"))
}

// ParseDateString parses common date formats
func ParseDateString(dateStr string) (time.Time, error) {
	formats := []string{
		"2006-01-02",
		"2006-01-02 15:04:05",
		"01/02/2006",
		"01-02-2006",
		time.RFC3339,
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}
