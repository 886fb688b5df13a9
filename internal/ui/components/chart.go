// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/j-veylop/shaker-dashboard-tui/internal/ui/styles"
)

const (
	minChartWidth  = 20
	minChartHeight = 3
)

// Series is one line of a multi-series chart.
type Series struct {
	Label  string
	Values []float64
	Color  asciigraph.AnsiColor
	Legend lipgloss.Color
}

// RenderLineChart creates a single-series ASCII line chart.
func RenderLineChart(data []float64, width, height int, caption string) string {
	if len(data) == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	return asciigraph.Plot(data,
		asciigraph.Height(max(height, minChartHeight)),
		asciigraph.Width(max(width, minChartWidth)),
		asciigraph.Precision(1),
		asciigraph.Caption(caption),
	)
}

// RenderMultiLineChart plots several series on shared axes.
// Shorter series are padded with their last value so every line spans the width.
func RenderMultiLineChart(series []Series, width, height int, caption string) string {
	maxLen := 0
	for _, s := range series {
		maxLen = max(maxLen, len(s.Values))
	}
	if maxLen == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	data := make([][]float64, 0, len(series))
	colors := make([]asciigraph.AnsiColor, 0, len(series))
	for _, s := range series {
		if len(s.Values) == 0 {
			continue
		}
		padded := make([]float64, maxLen)
		n := copy(padded, s.Values)
		for i := n; i < maxLen; i++ {
			padded[i] = s.Values[n-1]
		}
		data = append(data, padded)
		colors = append(colors, s.Color)
	}

	return asciigraph.PlotMany(data,
		asciigraph.Height(max(height, minChartHeight)),
		asciigraph.Width(max(width, minChartWidth)),
		asciigraph.Precision(1),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors...),
	)
}

// Bar is one row of a threshold bar chart. An absent value renders as n/a.
type Bar struct {
	Label   string
	Value   float64
	Present bool
	Exceeds bool
}

// RenderThresholdBars draws horizontal bars on a 0..scale axis, coloring the
// bars flagged as exceeding and marking the threshold column.
func RenderThresholdBars(bars []Bar, threshold, scale float64, width int) string {
	if len(bars) == 0 {
		return ""
	}

	for _, b := range bars {
		if b.Present && b.Value > scale {
			scale = b.Value
		}
	}
	if scale <= 0 {
		scale = 1
	}

	maxLabelLen := 0
	for _, b := range bars {
		maxLabelLen = max(maxLabelLen, lipgloss.Width(b.Label))
	}

	// label, separator and value column
	barWidth := max(width-maxLabelLen-10, 10)
	mark := int(threshold / scale * float64(barWidth))

	okStyle := lipgloss.NewStyle().Foreground(styles.Success)
	overStyle := lipgloss.NewStyle().Foreground(styles.Error)
	markStyle := lipgloss.NewStyle().Foreground(styles.Warning)
	emptyStyle := lipgloss.NewStyle().Foreground(styles.Subtle)

	lines := make([]string, 0, len(bars))
	for _, b := range bars {
		label := fmt.Sprintf("%*s", maxLabelLen, b.Label)
		if !b.Present {
			lines = append(lines, label+" │"+emptyStyle.Render(strings.Repeat("·", barWidth))+"  n/a")
			continue
		}

		barLen := min(max(int(b.Value/scale*float64(barWidth)), 0), barWidth)
		style := okStyle
		if b.Exceeds {
			style = overStyle
		}

		var cells strings.Builder
		for i := range barWidth {
			switch {
			case i < barLen:
				cells.WriteString(style.Render("█"))
			case i == mark:
				cells.WriteString(markStyle.Render("┆"))
			default:
				cells.WriteString(" ")
			}
		}

		lines = append(lines, fmt.Sprintf("%s │%s %5.1f", label, cells.String(), b.Value))
	}

	return strings.Join(lines, "\n")
}

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RenderSparkline creates a compact inline sparkline chart scaled to the data range.
func RenderSparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	step := max(float64(len(values))/float64(width), 1)

	var result strings.Builder
	for i := 0; i < width && int(float64(i)*step) < len(values); i++ {
		v := values[int(float64(i)*step)]
		idx := int((v - lo) / span * float64(len(sparkChars)-1))
		result.WriteRune(sparkChars[min(max(idx, 0), len(sparkChars)-1)])
	}

	return result.String()
}

// RenderLegend creates a chart legend.
func RenderLegend(items []LegendItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		colorBox := lipgloss.NewStyle().Foreground(item.Color).Render("■")
		parts = append(parts, fmt.Sprintf("%s %s", colorBox, item.Label))
	}
	return strings.Join(parts, "  ")
}

// LegendItem represents a single legend entry.
type LegendItem struct {
	Label string
	Color lipgloss.Color
}

// SeriesLegend builds legend entries for chart series.
func SeriesLegend(series []Series) []LegendItem {
	items := make([]LegendItem, 0, len(series))
	for _, s := range series {
		items = append(items, LegendItem{Label: s.Label, Color: s.Legend})
	}
	return items
}
