package info

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/shaker-dashboard-tui/internal/services/advisory"
	"github.com/j-veylop/shaker-dashboard-tui/internal/ui/styles"
	"github.com/j-veylop/shaker-dashboard-tui/internal/version"
)

// View renders the info tab.
func (m *Model) View() string {
	sections := []string{
		m.renderTitle(),
		m.renderConfigCard(),
		m.renderRunCard(),
		m.renderRulesCard(),
		m.renderAboutCard(),
	}

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Info")
	subtitle := styles.HelpStyle.Render("Configuration, run metadata and advisory rules")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) cardWidth() int {
	return min(max(m.width-6, 50), 100)
}

func (m *Model) card(title string, rows ...string) string {
	body := append([]string{styles.CardTitleStyle.Render(title), ""}, rows...)
	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, body...),
	)
}

func (m *Model) renderConfigCard() string {
	if m.config == nil {
		return m.card("Configuration", styles.HelpStyle.Render("Configuration not loaded"))
	}
	c := m.config

	profile := c.ProfilePath
	if profile == "" {
		profile = "none"
	}

	return m.card("Configuration",
		configRow("Dataset", orDash(c.DataPath)),
		configRow("Export Database", orDash(c.ExportPath)),
		configRow("Columns", fmt.Sprintf("%s, %s", c.DateColumn, c.TimeColumn)),
		configRow("Profile", profile),
		configRow("Log File", fmt.Sprintf("%s (%s)", orDash(c.LogFile), c.LogLevel)),
		configRow("Watch", fmt.Sprintf("%s (debounce %s)", onOff(c.Watch), c.ReloadDebounce)),
		configRow("Notifications", onOff(c.Notify)),
	)
}

// renderRunCard shows the parameters in effect and the last run's metadata.
func (m *Model) renderRunCard() string {
	params := m.state.GetParams()
	rows := []string{
		configRow("Mesh", fmt.Sprintf("%s (capacity %.0f)", params.Mesh.Type, params.Mesh.Capacity)),
		configRow("Threshold", fmt.Sprintf("%.0f%%", params.Threshold)),
	}

	if report := m.state.GetReport(); report != nil {
		rows = append(rows,
			configRow("Run ID", report.RunID),
			configRow("Source", report.Source),
			configRow("Analyzed", report.CreatedAt.Format("2006-01-02 15:04:05")),
			configRow("Utilization", report.UtilizationSource.String()),
			configRow("Columns Read", fmt.Sprintf("%d", len(report.Columns))),
		)
	} else if err := m.state.GetRunError(); err != nil {
		rows = append(rows, configRow("Last Run", styles.ErrorTextStyle.Render("failed")))
	} else {
		rows = append(rows, configRow("Last Run", "none"))
	}

	rows = append(rows, configRow("Last Export", orDash(m.state.GetLastExport())))

	return m.card("Current Run", rows...)
}

// renderRulesCard lists the advisory decision table in evaluation order.
func (m *Model) renderRulesCard() string {
	var rows []string
	for i, r := range advisory.Rules() {
		tier := styles.GetTierStyle(r.Tier).Width(16).Render(r.Tier.Label())
		rows = append(rows, fmt.Sprintf("%d. %s %s", i+1, tier, r.Condition))
	}
	rows = append(rows, "", styles.HelpStyle.Render("The first matching rule wins. Limits are fixed and independent of the display threshold."))
	return m.card("Advisory Rules", rows...)
}

func (m *Model) renderAboutCard() string {
	return m.card("About Shaker Dashboard",
		configRow("Version", version.GetVersion()),
		configRow("Build Date", version.GetDate()),
		configRow("Git Commit", version.GetCommit()),
		configRow("Go Version", runtime.Version()),
		configRow("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)),
	)
}

// configRow renders a key-value row.
func configRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(18).
		Foreground(styles.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
