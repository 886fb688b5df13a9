package charts

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/j-veylop/shaker-dashboard-tui/internal/models"
	"github.com/j-veylop/shaker-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/shaker-dashboard-tui/internal/ui/styles"
)

const (
	chartHeight = 10
	// axisWidth is the room asciigraph needs for the y-axis labels.
	axisWidth = 12
	// utilizationScale is the bar chart axis; days above it stretch the axis.
	utilizationScale = 100
)

// View renders the charts tab.
func (m *Model) View() string {
	m.sync()

	var sections []string
	sections = append(sections, m.renderTitle())

	switch {
	case m.state.GetRunError() != nil:
		sections = append(sections, styles.ErrorTextStyle.Render("The last run failed. See the Dashboard tab for details."))
	case m.report == nil:
		sections = append(sections, styles.HelpStyle.Render("No analysis yet."))
	default:
		sections = append(sections,
			m.renderShakerChart(),
			m.renderFlowChart(),
			m.renderDailyUtilization(),
			m.renderShaker3Daily(),
		)
	}

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) cardWidth() int {
	return max(m.width-6, 40)
}

func (m *Model) plotWidth() int {
	return max(m.cardWidth()-4-axisWidth, 20)
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Charts")
	subtitle := styles.HelpStyle.Render("Shaker output, mud flow and daily screen utilization")
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) card(title string, body ...string) string {
	rows := append([]string{styles.CardTitleStyle.Render(title)}, body...)
	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// omitted renders the reason a display is missing, or "" when it is present.
func (m *Model) omitted(metric string) string {
	o, ok := m.report.Omitted(metric)
	if !ok {
		return ""
	}
	return styles.WarningTextStyle.Render("⚠ " + o.Error())
}

func (m *Model) renderShakerChart() string {
	const title = "Shaker Output Over Time"
	if msg := m.omitted(models.MetricShakerChart); msg != "" {
		return m.card(title, msg)
	}

	s1, s2, s3 := m.report.ShakerSeries()
	series := []components.Series{
		{Label: "SHAKER #1", Values: s1, Color: asciigraph.DarkOrange, Legend: styles.Shaker1},
		{Label: "SHAKER #2", Values: s2, Color: asciigraph.DodgerBlue, Legend: styles.Shaker2},
		{Label: "SHAKER #3 (%)", Values: s3, Color: asciigraph.Magenta, Legend: styles.Shaker3},
	}

	chart := components.RenderMultiLineChart(series, m.plotWidth(), chartHeight, m.spanCaption())
	legend := components.RenderLegend(components.SeriesLegend(series))
	return m.card(title, chart, "", legend)
}

func (m *Model) renderFlowChart() string {
	const title = "Flow Rate Over Time"
	if msg := m.omitted(models.MetricFlowChart); msg != "" {
		return m.card(title, msg)
	}

	chart := components.RenderLineChart(m.report.FlowSeries(), m.plotWidth(), chartHeight,
		"MA_Flow_Rate (gal/min) · "+m.spanCaption())
	return m.card(title, chart)
}

func (m *Model) spanCaption() string {
	first, last := m.report.Span()
	if first.IsZero() {
		return "no observations"
	}
	return fmt.Sprintf("%s → %s", first.Format("2006-01-02 15:04"), last.Format("2006-01-02 15:04"))
}

func (m *Model) renderDailyUtilization() string {
	title := fmt.Sprintf("Daily Average Utilization (threshold %.0f%%)", m.report.Threshold)
	if msg := m.omitted(models.MetricUtilization); msg != "" {
		return m.card(title, msg)
	}
	if len(m.report.Daily) == 0 {
		return m.card(title, styles.HelpStyle.Render("No data available"))
	}

	bars := make([]components.Bar, 0, len(m.report.Daily))
	for _, d := range m.report.Daily {
		v, ok := d.AvgUtilization.Get()
		bars = append(bars, components.Bar{
			Label:   d.Date.String(),
			Value:   v,
			Present: ok,
			Exceeds: d.ExceedsThreshold,
		})
	}

	chart := components.RenderThresholdBars(bars, m.report.Threshold, utilizationScale, m.cardWidth()-4)
	legend := components.RenderLegend([]components.LegendItem{
		{Label: "at or below threshold", Color: styles.Success},
		{Label: "above threshold", Color: styles.Error},
		{Label: "threshold", Color: styles.Warning},
	})
	return m.card(title, chart, "", legend)
}

func (m *Model) renderShaker3Daily() string {
	const title = "SHAKER #3 Daily Min / Avg / Max (%)"
	if msg := m.omitted(models.MetricShaker3Daily); msg != "" {
		return m.card(title, msg)
	}
	if len(m.report.Daily) == 0 {
		return m.card(title, styles.HelpStyle.Render("No data available"))
	}

	header := styles.HelpStyle.Render(fmt.Sprintf("%-12s %8s %8s %8s", "Date", "Min", "Avg", "Max"))
	lines := []string{header}
	var mins, avgs, maxs []float64
	for _, d := range m.report.Daily {
		lines = append(lines, fmt.Sprintf("%-12s %8s %8s %8s",
			d.Date, d.MinShaker3.Format(1), d.AvgShaker3.Format(1), d.MaxShaker3.Format(1)))
		if d.AvgShaker3.Valid {
			mins = append(mins, d.MinShaker3.Value)
			avgs = append(avgs, d.AvgShaker3.Value)
			maxs = append(maxs, d.MaxShaker3.Value)
		}
	}

	body := []string{strings.Join(lines, "\n")}
	if len(avgs) > 1 {
		series := []components.Series{
			{Label: "min", Values: mins, Color: asciigraph.Green, Legend: styles.Success},
			{Label: "avg", Values: avgs, Color: asciigraph.Yellow, Legend: styles.Warning},
			{Label: "max", Values: maxs, Color: asciigraph.Red, Legend: styles.Error},
		}
		body = append(body, "",
			components.RenderMultiLineChart(series, m.plotWidth(), chartHeight/2, "by day"),
			components.RenderLegend(components.SeriesLegend(series)),
		)
	}
	return m.card(title, body...)
}
