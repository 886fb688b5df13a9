// Package dashboard provides the headline tab: KPIs, advisory and utilization gauge.
package dashboard

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/shaker-dashboard-tui/internal/app"
	"github.com/j-veylop/shaker-dashboard-tui/internal/models"
	"github.com/j-veylop/shaker-dashboard-tui/internal/ui/components"
)

type animationTickMsg time.Time

func animationTickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*40, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

// keyMap defines the key bindings specific to the dashboard tab.
type keyMap struct {
	ScrollUp   key.Binding
	ScrollDown key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
}

// defaultKeyMap returns the default key bindings for the dashboard tab.
func defaultKeyMap() keyMap {
	return keyMap{
		ScrollUp: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
	}
}

// Model represents the dashboard tab state.
type Model struct {
	state          *app.State
	report         *models.Report
	spinner        components.LoadingSpinner
	keys           keyMap
	viewport       viewport.Model
	gauge          components.Gauge
	width          int
	height         int
	animationFrame int
}

// New creates a new dashboard model.
func New(state *app.State) *Model {
	return &Model{
		state:    state,
		spinner:  components.NewSpinner("Analyzing dataset..."),
		gauge:    components.NewGauge(),
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Init(), animationTickCmd())
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	cmds := []tea.Cmd{m.sync(true)}

	switch msg := msg.(type) {
	case animationTickMsg:
		m.animationFrame++
		if m.state.IsInitialLoading() {
			cmds = append(cmds, animationTickCmd())
		}

	case app.StartLoadingMsg:
		cmds = append(cmds, animationTickCmd())

	case components.AnimationTickMsg:
		var cmd tea.Cmd
		m.gauge, cmd = m.gauge.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// sync picks up a new report from the shared state and retargets the gauge.
// Without animate the gauge jumps straight to the new value.
func (m *Model) sync(animate bool) tea.Cmd {
	report := m.state.GetReport()
	if report == m.report {
		return nil
	}
	m.report = report
	m.viewport.GotoTop()

	if report == nil {
		return nil
	}
	v, ok := report.Scalars.AvgUtilization.Get()
	if !ok {
		return nil
	}
	if !animate {
		m.gauge.Jump(v)
		return nil
	}
	return m.gauge.SetPercent(v)
}

// SetSize sets the available size for the dashboard.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.ScrollDown,
		m.keys.ScrollUp,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.ScrollDown, m.keys.ScrollUp},
		{m.keys.PageDown, m.keys.PageUp},
	}
}
