// Package data provides the normalized observations table tab.
package data

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/shaker-dashboard-tui/internal/app"
	"github.com/j-veylop/shaker-dashboard-tui/internal/models"
	"github.com/j-veylop/shaker-dashboard-tui/internal/ui/components"
)

const timestampLayout = "2006-01-02 15:04:05"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
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
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "first row"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "last row"),
		),
	}
}

// dataColumns lists the observation fields in table order.
var dataColumns = []struct {
	field models.Field
	title string
	width int
}{
	{models.FieldShaker1, "SHKR1", 7},
	{models.FieldShaker2, "SHKR2", 7},
	{models.FieldShaker3, "SHKR3 %", 8},
	{models.FieldWeightOnBit, "WOB klbs", 9},
	{models.FieldFlowRate, "Flow gpm", 9},
	{models.FieldUtilization, "Util %", 7},
	{models.FieldSolidsRate, "Solids", 7},
}

// Model represents the data tab state.
type Model struct {
	state  *app.State
	report *models.Report
	table  table.Model
	keys   keyMap
	width  int
	height int
}

// New creates a new data model.
func New(state *app.State) *Model {
	return &Model{
		state: state,
		table: components.NewTable(columns()),
		keys:  defaultKeyMap(),
	}
}

func columns() []table.Column {
	cols := []table.Column{
		{Title: "Row", Width: 5},
		{Title: "Timestamp", Width: len(timestampLayout)},
	}
	for _, c := range dataColumns {
		cols = append(cols, table.Column{Title: c.title, Width: c.width})
	}
	return cols
}

// Init initializes the data tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the data tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	m.sync()

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(keyMsg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) sync() {
	report := m.state.GetReport()
	if report == m.report {
		return
	}
	m.report = report
	m.updateTableData()
	m.table.GotoTop()
}

// updateTableData fills the table from the current report's observations.
func (m *Model) updateTableData() {
	if m.report == nil {
		m.table.SetRows(nil)
		return
	}

	rows := make([]table.Row, 0, len(m.report.Observations))
	for i := range m.report.Observations {
		o := &m.report.Observations[i]
		row := table.Row{
			strconv.Itoa(o.Row),
			o.Timestamp.Format(timestampLayout),
		}
		for _, c := range dataColumns {
			row = append(row, o.Get(c.field).Format(1))
		}
		rows = append(rows, row)
	}
	m.table.SetRows(rows)
}

// SetSize sets the available size for the data tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(max(height-10, 3))
	m.table.SetWidth(min(components.ColumnsWidth(columns()), max(width-8, 20)))
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Down, m.keys.Up, m.keys.Top, m.keys.Bottom}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Down, m.keys.Up},
		{m.keys.Top, m.keys.Bottom},
	}
}
