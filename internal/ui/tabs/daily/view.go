package daily

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/shaker-dashboard-tui/internal/ui/styles"
)

// View renders the daily tab.
func (m *Model) View() string {
	m.sync()

	sections := []string{m.renderTitle()}

	switch {
	case m.state.GetRunError() != nil:
		sections = append(sections, styles.ErrorTextStyle.Render("The last run failed. See the Dashboard tab for details."))
	case m.report == nil:
		sections = append(sections, styles.HelpStyle.Render("No analysis yet."))
	case len(m.visibleDays()) == 0:
		sections = append(sections, m.renderEmptyState())
	default:
		sections = append(sections, m.renderTable(), m.renderSelection())
	}

	sections = append(sections, m.renderFooter())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) cardWidth() int {
	return max(m.width-6, 60)
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Daily Summary")

	subtitle := "Per-day averages of screen utilization, flow and SHAKER #3"
	if m.report != nil {
		subtitle = fmt.Sprintf("%d days · %d above %.0f%%",
			len(m.report.Daily), m.report.ExceedingDays(), m.report.Threshold)
		if m.exceedingOnly {
			subtitle += " · showing exceeding days only"
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, styles.HelpStyle.Render(subtitle), "")
}

func (m *Model) renderTable() string {
	return styles.CardStyle.Width(m.cardWidth()).Render(m.table.View())
}

func (m *Model) renderEmptyState() string {
	msg := "The dataset has no observations."
	if m.exceedingOnly {
		msg = fmt.Sprintf("No day averages above %.0f%%.", m.report.Threshold)
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		"",
		styles.SubTitleStyle.Render("No Days To Show"),
		"",
		styles.HelpStyle.Render(msg),
		"",
	)
	return styles.CardStyle.Width(m.cardWidth()).Render(content)
}

// renderSelection describes the highlighted day against the threshold.
func (m *Model) renderSelection() string {
	d, ok := m.SelectedDay()
	if !ok {
		return ""
	}

	v, present := d.AvgUtilization.Get()
	var verdict string
	switch {
	case !present:
		verdict = styles.HelpStyle.Render("no utilization readings")
	case d.ExceedsThreshold:
		verdict = styles.GetUtilizationStyle(v, m.report.Threshold).
			Render(fmt.Sprintf("%.1f%% is %.1f points above the threshold", v, v-m.report.Threshold))
	default:
		verdict = styles.GetUtilizationStyle(v, m.report.Threshold).
			Render(fmt.Sprintf("%.1f%% is within the threshold", v))
	}

	return fmt.Sprintf("%s %s", styles.CardTitleStyle.Render(d.Date.String()), verdict)
}

// renderFooter renders the footer with keyboard shortcuts.
func (m *Model) renderFooter() string {
	filter := "exceeding only"
	if m.exceedingOnly {
		filter = "all days"
	}
	shortcuts := []string{
		styles.HelpKeyStyle.Render("↑/↓") + " select",
		styles.HelpKeyStyle.Render("x") + " " + filter,
		styles.HelpKeyStyle.Render("+/-") + " threshold",
	}

	return lipgloss.NewStyle().
		MarginTop(1).
		Foreground(styles.TextMuted).
		Render(strings.Join(shortcuts, styles.HelpSeparatorStyle.Render(" | ")))
}
