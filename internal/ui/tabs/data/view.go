package data

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/shaker-dashboard-tui/internal/models"
	"github.com/j-veylop/shaker-dashboard-tui/internal/ui/styles"
)

// View renders the data tab.
func (m *Model) View() string {
	m.sync()

	sections := []string{m.renderTitle()}

	switch {
	case m.state.GetRunError() != nil:
		sections = append(sections, styles.ErrorTextStyle.Render("The last run failed. See the Dashboard tab for details."))
	case m.report == nil:
		sections = append(sections, styles.HelpStyle.Render("No analysis yet."))
	case !m.report.HasData():
		sections = append(sections, styles.HelpStyle.Render("The dataset has no rows."))
	default:
		sections = append(sections,
			styles.CardStyle.Width(max(m.width-6, 40)).Render(m.table.View()),
			m.renderColumns(),
		)
	}

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Observations")
	subtitle := "Normalized rows in time order"
	if m.report != nil {
		subtitle = fmt.Sprintf("%s · %d rows · row %d selected",
			filepath.Base(m.report.Source), len(m.report.Observations), m.table.Cursor())
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, styles.HelpStyle.Render(subtitle), "")
}

// renderColumns marks which optional fields the dataset carries.
func (m *Model) renderColumns() string {
	parts := make([]string, 0, len(dataColumns))
	for _, c := range dataColumns {
		if m.report.Available.Has(c.field) {
			parts = append(parts, styles.SuccessTextStyle.Render("✓ "+c.title))
		} else {
			parts = append(parts, styles.HelpStyle.Render("✗ "+c.title))
		}
	}

	line := strings.Join(parts, "  ")
	switch m.report.UtilizationSource {
	case models.UtilizationDerived:
		line += styles.HelpStyle.Render("  · Util % derived from WOB and flow")
	case models.UtilizationUnavailable:
		line += styles.HelpStyle.Render("  · Util % unavailable")
	}
	return line
}
