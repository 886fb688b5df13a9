package dashboard

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/shaker-dashboard-tui/internal/models"
	"github.com/j-veylop/shaker-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/shaker-dashboard-tui/internal/ui/styles"
)

const kpiWidth = 24

// View renders the dashboard component.
func (m *Model) View() string {
	m.sync(false)

	if m.state.IsInitialLoading() {
		return m.renderLoading()
	}

	sections := []string{m.renderTitle()}

	switch err := m.state.GetRunError(); {
	case err != nil:
		sections = append(sections, m.renderRunError(err))
	case m.report == nil:
		sections = append(sections, styles.HelpStyle.Render("No analysis yet. Press r to run."))
	default:
		sections = append(sections,
			m.renderKPIs(),
			m.renderAdvisory(),
			m.renderUtilization(),
		)
		if len(m.report.Omissions) > 0 {
			sections = append(sections, m.renderOmissions())
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) cardWidth() int {
	return max(m.width-6, 40)
}

// renderLoading renders the placeholder shown until the first run finishes.
func (m *Model) renderLoading() string {
	gauge := components.GaugeLoading("Utilization", m.cardWidth()-4, m.animationFrame)
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.spinner.ViewWithLabel(),
		"",
		gauge,
	)
	return styles.CenterBoth(body, m.width, m.height)
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Shaker Health")

	subtitle := "Screen utilization and maintenance advisory"
	if m.report != nil {
		first, last := m.report.Span()
		subtitle = fmt.Sprintf("%s · %d observations", filepath.Base(m.report.Source), len(m.report.Observations))
		if !first.IsZero() {
			subtitle += fmt.Sprintf(" · %s → %s", first.Format("2006-01-02 15:04"), last.Format("2006-01-02 15:04"))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, styles.HelpStyle.Render(subtitle), "")
}

func (m *Model) renderKPIs() string {
	s := m.report.Scalars
	threshold := m.report.Threshold

	utilStyle := styles.KPIValueStyle
	if v, ok := s.AvgUtilization.Get(); ok {
		utilStyle = styles.GetUtilizationStyle(v, threshold).Bold(true)
	}

	tiles := []string{
		renderKPI("Avg Utilization", formatMeasure(s.AvgUtilization, "%"), utilStyle),
		renderKPI("Avg Flow Rate", formatMeasure(s.AvgFlow, " gpm"), styles.KPIValueStyle),
		renderKPI("Max SHKR3", formatMeasure(s.MaxShaker3, "%"), styles.KPIValueStyle),
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...) + "\n"
}

func renderKPI(label, value string, valueStyle lipgloss.Style) string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		styles.KPILabelStyle.Render(label),
		valueStyle.Render(value),
	)
	return styles.KPIStyle.Width(kpiWidth).Render(body)
}

func formatMeasure(v models.Measure, unit string) string {
	if !v.Valid {
		return "n/a"
	}
	return v.Format(1) + unit
}

func (m *Model) renderAdvisory() string {
	adv := m.report.Advisory

	header := fmt.Sprintf("%s %s",
		styles.CardTitleStyle.Render("Advisory"),
		styles.GetTierStyle(adv.Tier).Render(adv.Tier.Label()),
	)

	card := styles.CardStyle.BorderForeground(styles.TierColor(adv.Tier))
	return card.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, adv.Message),
	)
}

func (m *Model) renderUtilization() string {
	width := m.cardWidth() - 4
	rows := []string{styles.CardTitleStyle.Render("Screen Utilization")}

	if _, ok := m.report.Scalars.AvgUtilization.Get(); ok {
		rows = append(rows, m.gauge.View(m.gauge.Current(), m.report.Threshold, "Average", width))
	} else {
		rows = append(rows, m.gauge.ViewAbsent("Average", width))
	}

	if n := len(m.report.Daily); n > 0 {
		rows = append(rows, "")
		rows = append(rows, fmt.Sprintf("%s %d of %d days above %.0f%%",
			styles.HelpStyle.Render("Exceeding:"),
			m.report.ExceedingDays(), n, m.report.Threshold,
		))

		var trend []float64
		for _, d := range m.report.Daily {
			if v, ok := d.AvgUtilization.Get(); ok {
				trend = append(trend, v)
			}
		}
		if len(trend) > 1 {
			rows = append(rows, fmt.Sprintf("%s %s",
				styles.HelpStyle.Render("Daily trend:"),
				styles.InfoTextStyle.Render(components.RenderSparkline(trend, width-14)),
			))
		}
	}

	rows = append(rows, "")
	rows = append(rows, styles.HelpStyle.Render(fmt.Sprintf("Mesh %s (capacity %.0f) · utilization %s",
		m.report.Mesh.Type, m.report.Mesh.Capacity, utilizationSourceLabel(m.report.UtilizationSource))))

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func utilizationSourceLabel(src models.UtilizationSource) string {
	switch src {
	case models.UtilizationSupplied:
		return "from dataset"
	case models.UtilizationDerived:
		return "derived from weight on bit and flow"
	default:
		return "unavailable"
	}
}

func (m *Model) renderOmissions() string {
	rows := []string{styles.CardTitleStyle.Render("Omitted")}
	for _, o := range m.report.Omissions {
		rows = append(rows, styles.WarningTextStyle.Render("• "+o.Error()))
	}
	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderRunError shows why the last run produced no results.
func (m *Model) renderRunError(err error) string {
	rows := []string{styles.ErrorTextStyle.Bold(true).Render("Analysis failed"), ""}

	var parseErr *models.ParseError
	var configErr *models.ConfigError
	switch {
	case errors.As(err, &parseErr):
		if parseErr.Row >= 0 {
			rows = append(rows, detailRow("Row", fmt.Sprintf("%d", parseErr.Row)))
		}
		rows = append(rows, detailRow("Column", parseErr.Column))
		if parseErr.Row >= 0 {
			rows = append(rows, detailRow("Value", fmt.Sprintf("%q", parseErr.Value)))
		}
		if parseErr.Err != nil {
			rows = append(rows, detailRow("Reason", parseErr.Err.Error()))
		}
	case errors.As(err, &configErr):
		rows = append(rows, detailRow("Setting", configErr.Field))
		rows = append(rows, detailRow("Value", fmt.Sprintf("%v", configErr.Value)))
		rows = append(rows, detailRow("Reason", configErr.Reason))
	default:
		rows = append(rows, err.Error())
	}

	rows = append(rows, "", styles.HelpStyle.Render("No results are shown for a failed run. Fix the dataset and press r."))

	return styles.ErrorCardStyle.Width(m.cardWidth()).Render(
		strings.Join(rows, "\n"),
	)
}

func detailRow(label, value string) string {
	return lipgloss.NewStyle().Width(10).Foreground(styles.TextMuted).Render(label+":") + " " + value
}
