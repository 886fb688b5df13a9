// Package daily provides the per-day summary table tab.
package daily

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/shaker-dashboard-tui/internal/app"
	"github.com/j-veylop/shaker-dashboard-tui/internal/models"
	"github.com/j-veylop/shaker-dashboard-tui/internal/ui/components"
)

// keyMap defines the key bindings specific to the daily tab.
type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Exceeding key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Exceeding: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "exceeding only"),
		),
	}
}

const exceedsMark = "▲"

// Model represents the daily tab state.
type Model struct {
	state         *app.State
	report        *models.Report
	table         table.Model
	keys          keyMap
	width         int
	height        int
	exceedingOnly bool
}

// New creates a new daily model.
func New(state *app.State) *Model {
	return &Model{
		state: state,
		table: components.NewTable(columns(10)),
		keys:  defaultKeyMap(),
	}
}

func columns(dateWidth int) []table.Column {
	return []table.Column{
		{Title: "Date", Width: dateWidth},
		{Title: "Obs", Width: 5},
		{Title: "Avg Util %", Width: 10},
		{Title: "Avg Flow", Width: 9},
		{Title: "Avg SHKR3", Width: 9},
		{Title: "Min SHKR3", Width: 9},
		{Title: "Max SHKR3", Width: 9},
		{Title: "Above", Width: 5},
	}
}

// Init initializes the daily tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the daily tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	m.sync()

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if key.Matches(keyMsg, m.keys.Exceeding) {
		m.exceedingOnly = !m.exceedingOnly
		m.updateTableData()
		m.table.GotoTop()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(keyMsg)
	return m, cmd
}

// sync rebuilds the rows when the shared report changes.
func (m *Model) sync() {
	report := m.state.GetReport()
	if report == m.report {
		return
	}
	m.report = report
	m.updateTableData()
	m.table.GotoTop()
}

// visibleDays returns the summaries shown under the current filter.
func (m *Model) visibleDays() []models.DailySummary {
	if m.report == nil {
		return nil
	}
	if !m.exceedingOnly {
		return m.report.Daily
	}
	var days []models.DailySummary
	for _, d := range m.report.Daily {
		if d.ExceedsThreshold {
			days = append(days, d)
		}
	}
	return days
}

// updateTableData updates the table with the current daily summaries.
func (m *Model) updateTableData() {
	days := m.visibleDays()
	rows := make([]table.Row, 0, len(days))

	for _, d := range days {
		above := ""
		if d.ExceedsThreshold {
			above = exceedsMark
		}
		rows = append(rows, table.Row{
			d.Date.String(),
			strconv.Itoa(d.Observations),
			d.AvgUtilization.Format(1),
			d.AvgFlow.Format(1),
			d.AvgShaker3.Format(1),
			d.MinShaker3.Format(1),
			d.MaxShaker3.Format(1),
			above,
		})
	}

	m.table.SetRows(rows)
}

// SelectedDay returns the summary under the cursor.
func (m *Model) SelectedDay() (models.DailySummary, bool) {
	days := m.visibleDays()
	i := m.table.Cursor()
	if i < 0 || i >= len(days) {
		return models.DailySummary{}, false
	}
	return days[i], true
}

// SetSize sets the available size for the daily tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(max(height-12, 3))

	dateWidth := min(max(width-80, 10), 16)
	m.table.SetColumns(columns(dateWidth))
	m.table.SetWidth(components.ColumnsWidth(columns(dateWidth)))
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Down, m.keys.Up, m.keys.Exceeding}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Down, m.keys.Up},
		{m.keys.Exceeding},
	}
}
