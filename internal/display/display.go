package display

import (
	"fmt"
	"math"
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// UI styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6"))

	positiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981"))

	negativeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)
)

// RatioEntry is one symbol/value pair of the Sharpe Ratio vector.
type RatioEntry struct {
	Symbol string
	Value  float64
}

// SortDescending orders the ratio vector for presentation: highest ratio
// first, undefined (NaN) entries last.
func SortDescending(ratios map[string]float64) []RatioEntry {
	entries := make([]RatioEntry, 0, len(ratios))
	for symbol, value := range ratios {
		entries = append(entries, RatioEntry{Symbol: symbol, Value: value})
	}

	sort.Slice(entries, func(i, j int) bool {
		vi, vj := entries[i].Value, entries[j].Value
		ni, nj := math.IsNaN(vi), math.IsNaN(vj)
		if ni != nj {
			return nj
		}
		if ni && nj {
			return entries[i].Symbol < entries[j].Symbol
		}
		if vi != vj {
			return vi > vj
		}
		return entries[i].Symbol < entries[j].Symbol
	})

	return entries
}

// CountUndefined reports how many entries carry an undefined ratio
// (NaN or ±Inf from a zero-variance excess series).
func CountUndefined(entries []RatioEntry) int {
	count := 0
	for _, entry := range entries {
		if math.IsNaN(entry.Value) || math.IsInf(entry.Value, 0) {
			count++
		}
	}
	return count
}

// PrintReport writes the sorted Sharpe Ratio vector to the console.
func PrintReport(entries []RatioEntry, period string) {
	fmt.Println(titleStyle.Render("Annualized Sharpe Ratio Analysis"))
	fmt.Println(headerStyle.Render(fmt.Sprintf("Period: %s", period)))
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println(mutedStyle.Render("No results to report."))
		return
	}

	for _, entry := range entries {
		fmt.Printf("  %-8s %s\n", entry.Symbol, formatRatio(entry.Value))
	}
	fmt.Println()
}

func formatRatio(value float64) string {
	switch {
	case math.IsNaN(value):
		return mutedStyle.Render("undefined (zero-variance excess returns)")
	case math.IsInf(value, 1):
		return positiveStyle.Render("+Inf (zero-variance excess returns)")
	case math.IsInf(value, -1):
		return negativeStyle.Render("-Inf (zero-variance excess returns)")
	case value < 0:
		return negativeStyle.Render(fmt.Sprintf("%.4f", value))
	default:
		return positiveStyle.Render(fmt.Sprintf("%.4f", value))
	}
}

// DisplayError shows formatted error messages
func DisplayError(err error, context string) {
	fmt.Println(errorStyle.Render(fmt.Sprintf("Error in %s: %v", context, err)))
}

// DisplayWarning shows formatted warning messages
func DisplayWarning(message string) {
	fmt.Println(mutedStyle.Render("Warning: " + message))
}

// DisplayInfo shows formatted info messages
func DisplayInfo(message string) {
	fmt.Println(headerStyle.Render(message))
}
