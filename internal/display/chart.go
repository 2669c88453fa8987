package display

import (
	"fmt"
	"math"
	"strings"
)

const (
	barWidth   = 28 // cells on each side of the zero axis
	labelWidth = 9  // room for a signed 2-decimal annotation
)

// RenderChart draws a horizontal bar comparison of the (already sorted)
// Sharpe Ratio vector. Non-negative bars extend right of the zero axis in
// green, negative bars extend left in red, and each bar carries its value to
// two decimals on the side away from zero. Entries with an undefined ratio
// are listed under the chart instead of drawn.
//
// An empty vector produces a "nothing to display" notice, never a panic.
func RenderChart(entries []RatioEntry) string {
	if len(entries) == 0 {
		return mutedStyle.Render("Nothing to display: no Sharpe Ratios to chart.") + "\n"
	}

	var drawable, undefined []RatioEntry
	maxAbs := 0.0
	for _, entry := range entries {
		if math.IsNaN(entry.Value) || math.IsInf(entry.Value, 0) {
			undefined = append(undefined, entry)
			continue
		}
		drawable = append(drawable, entry)
		if abs := math.Abs(entry.Value); abs > maxAbs {
			maxAbs = abs
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Annualized Sharpe Ratio Comparison"))
	b.WriteString("\n\n")

	if len(drawable) == 0 {
		b.WriteString(mutedStyle.Render("Nothing to display: all ratios are undefined.") + "\n")
	}

	scale := maxAbs
	if scale == 0 {
		scale = 1
	}

	leftWidth := barWidth + labelWidth
	for _, entry := range drawable {
		cells := int(math.Round(math.Abs(entry.Value) / scale * barWidth))
		label := fmt.Sprintf("%.2f", entry.Value)

		var left, right string
		if entry.Value < 0 {
			bar := strings.Repeat("█", cells)
			pad := leftWidth - cells - len(label) - 1
			if pad < 0 {
				pad = 0
			}
			left = strings.Repeat(" ", pad) + negativeStyle.Render(label+" "+bar)
			right = ""
		} else {
			bar := strings.Repeat("█", cells)
			left = strings.Repeat(" ", leftWidth)
			right = positiveStyle.Render(bar + " " + label)
		}

		b.WriteString(fmt.Sprintf("%-8s%s│%s\n", entry.Symbol, left, right))
	}

	// Zero reference line
	b.WriteString(fmt.Sprintf("%-8s%s┴%s\n",
		"", strings.Repeat("─", leftWidth), strings.Repeat("─", barWidth+labelWidth)))
	b.WriteString(fmt.Sprintf("%-8s%s0\n", "", strings.Repeat(" ", leftWidth)))

	for _, entry := range undefined {
		b.WriteString(mutedStyle.Render(
			fmt.Sprintf("%-8s undefined (zero-variance excess returns)", entry.Symbol)) + "\n")
	}

	return b.String()
}
