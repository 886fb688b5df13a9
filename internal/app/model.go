// Package app implements the main Bubble Tea application with tab-based navigation.
package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/shaker-dashboard-tui/internal/models"
	"github.com/j-veylop/shaker-dashboard-tui/internal/services"
	"github.com/j-veylop/shaker-dashboard-tui/internal/ui/styles"
)

// TabID represents the identifier for a tab in the application.
type TabID int

const (
	// TabDashboard is the ID for the dashboard tab.
	TabDashboard TabID = iota
	// TabCharts is the ID for the charts tab.
	TabCharts
	// TabDaily is the ID for the daily summary tab.
	TabDaily
	// TabData is the ID for the raw observations tab.
	TabData
	// TabInfo is the ID for the info tab.
	TabInfo

	tabCount = 5
)

// String returns the string representation of the TabID.
func (t TabID) String() string {
	switch t {
	case TabDashboard:
		return "Dashboard"
	case TabCharts:
		return "Charts"
	case TabDaily:
		return "Daily"
	case TabData:
		return "Data"
	case TabInfo:
		return "Info"
	default:
		return "Unknown"
	}
}

// Tab defines the interface that all tabs must implement.
type Tab interface {
	// Init initializes the tab and returns any initial commands.
	Init() tea.Cmd

	// Update handles messages and returns the updated tab and any commands.
	Update(msg tea.Msg) (Tab, tea.Cmd)

	// View renders the tab content.
	View() string

	// SetSize sets the available size for the tab.
	SetSize(width, height int)

	// ShortHelp returns key bindings for the short help view.
	ShortHelp() []key.Binding

	// FullHelp returns key bindings for the full help view.
	FullHelp() [][]key.Binding
}

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	Tab1          key.Binding
	Tab2          key.Binding
	Tab3          key.Binding
	Tab4          key.Binding
	Tab5          key.Binding
	NextTab       key.Binding
	PrevTab       key.Binding
	Refresh       key.Binding
	CycleMesh     key.Binding
	ThresholdUp   key.Binding
	ThresholdDown key.Binding
	Export        key.Binding
	Help          key.Binding
	Quit          key.Binding
	Up            key.Binding
	Down          key.Binding
	Escape        key.Binding
	PageUp        key.Binding
	PageDown      key.Binding
	Home          key.Binding
	End           key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	km := KeyMap{}
	km = setTabKeys(km)
	km = setActionKeys(km)
	km = setNavigationKeys(km)
	km = setListKeys(km)
	return km
}

func setTabKeys(k KeyMap) KeyMap {
	k.Tab1 = key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "dashboard"))
	k.Tab2 = key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "charts"))
	k.Tab3 = key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "daily"))
	k.Tab4 = key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "data"))
	k.Tab5 = key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "info"))
	k.NextTab = key.NewBinding(key.WithKeys("tab", "l", "right"), key.WithHelp("tab/→", "next tab"))
	k.PrevTab = key.NewBinding(key.WithKeys("shift+tab", "h", "left"), key.WithHelp("shift+tab/←", "prev tab"))
	return k
}

func setActionKeys(k KeyMap) KeyMap {
	k.Refresh = key.NewBinding(key.WithKeys("r", "ctrl+r"), key.WithHelp("r", "re-run"))
	k.CycleMesh = key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "cycle mesh"))
	k.ThresholdUp = key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "threshold up"))
	k.ThresholdDown = key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "threshold down"))
	k.Export = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export"))
	k.Help = key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help"))
	k.Quit = key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit"))
	return k
}

func setNavigationKeys(k KeyMap) KeyMap {
	k.Up = key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up"))
	k.Down = key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down"))
	k.Escape = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel"))
	return k
}

func setListKeys(k KeyMap) KeyMap {
	k.PageUp = key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up"))
	k.PageDown = key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down"))
	k.Home = key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home", "go to top"))
	k.End = key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end", "go to bottom"))
	return k
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Refresh, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab1, k.Tab2, k.Tab3, k.Tab4, k.Tab5},
		{k.NextTab, k.PrevTab},
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.CycleMesh, k.ThresholdUp, k.ThresholdDown},
		{k.Refresh, k.Export, k.Help, k.Quit},
	}
}

// Styles defines the application styles.
type Styles struct {
	// Tab bar styles
	TabBar       lipgloss.Style
	ActiveTab    lipgloss.Style
	InactiveTab  lipgloss.Style
	TabSeparator lipgloss.Style
	Status       lipgloss.Style

	// Notification styles
	NotificationSuccess lipgloss.Style
	NotificationError   lipgloss.Style
	NotificationWarning lipgloss.Style
	NotificationInfo    lipgloss.Style

	// Content styles
	Content lipgloss.Style
	Help    lipgloss.Style
	Spinner lipgloss.Style
	Toast   lipgloss.Style

	// Common styles
	Title     lipgloss.Style
	Subtle    lipgloss.Style
	Highlight lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
}

// DefaultStyles returns the default application styles.
func DefaultStyles() Styles {
	subtle := lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
	highlight := lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	success := lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	warning := lipgloss.AdaptiveColor{Light: "#FF8C00", Dark: "#FF8C00"}
	errorColor := lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"}
	info := lipgloss.AdaptiveColor{Light: "#0087D7", Dark: "#5FAFFF"}

	s := Styles{}
	s.TabBar = lipgloss.NewStyle().Padding(0, 1).BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).BorderForeground(subtle)
	s.ActiveTab = lipgloss.NewStyle().Bold(true).Foreground(highlight).Padding(0, 2)
	s.InactiveTab = lipgloss.NewStyle().Foreground(subtle).Padding(0, 2)
	s.TabSeparator = lipgloss.NewStyle().Foreground(subtle).SetString(" | ")
	s.Status = lipgloss.NewStyle().Foreground(subtle).Padding(0, 1)

	s.NotificationSuccess = lipgloss.NewStyle().Foreground(success).Padding(0, 1)
	s.NotificationError = lipgloss.NewStyle().Foreground(errorColor).Bold(true).Padding(0, 1)
	s.NotificationWarning = lipgloss.NewStyle().Foreground(warning).Padding(0, 1)
	s.NotificationInfo = lipgloss.NewStyle().Foreground(info).Padding(0, 1)

	s.Content = lipgloss.NewStyle().Padding(1, 2)
	s.Help = lipgloss.NewStyle().Foreground(subtle).Padding(0, 1)
	s.Spinner = lipgloss.NewStyle().Foreground(highlight)
	s.Toast = styles.ToastStyle

	s.Title = lipgloss.NewStyle().Bold(true).Foreground(highlight)
	s.Subtle = lipgloss.NewStyle().Foreground(subtle)
	s.Highlight = lipgloss.NewStyle().Foreground(highlight)
	s.Error = lipgloss.NewStyle().Foreground(errorColor)
	s.Success = lipgloss.NewStyle().Foreground(success)
	s.Warning = lipgloss.NewStyle().Foreground(warning)

	return s
}

// Model is the main application model.
type Model struct {
	// Tab management
	activeTab TabID
	tabs      []Tab
	tabNames  []string

	// Shared state
	state    *State
	services *services.Manager
	commands *Commands
	keymap   KeyMap
	styles   Styles

	// UI components
	spinner spinner.Model

	// Window dimensions
	width  int
	height int

	// UI state
	showHelp bool
	ready    bool

	// Service subscription
	eventChannel chan services.ServiceEvent
}

// NewModel initializes a new application model.
func NewModel(mgr *services.Manager) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	state := NewState()
	if mgr != nil {
		p := mgr.Params()
		state.SetParams(RunParams{Mesh: p.Mesh, Threshold: p.Threshold})
	}

	names := make([]string, tabCount)
	for i := range names {
		names[i] = TabID(i).String()
	}

	return &Model{
		activeTab: TabDashboard,
		tabNames:  names,
		tabs:      make([]Tab, tabCount), // filled by SetTabs
		state:     state,
		services:  mgr,
		commands:  NewCommands(mgr),
		keymap:    DefaultKeyMap(),
		styles:    DefaultStyles(),
		spinner:   s,
	}
}

// SetTabs sets the tabs for the model.
func (m *Model) SetTabs(tabs []Tab) {
	m.tabs = tabs
	if m.width > 0 && m.height > 0 {
		m.updateTabSizes()
	}
}

// GetState returns the application state.
func (m *Model) GetState() *State {
	return m.state
}

// GetServices returns the service manager.
func (m *Model) GetServices() *services.Manager {
	return m.services
}

// GetCommands returns the commands helper.
func (m *Model) GetCommands() *Commands {
	return m.commands
}

// GetKeyMap returns the key bindings.
func (m *Model) GetKeyMap() KeyMap {
	return m.keymap
}

// GetActiveTab returns the currently active tab ID.
func (m *Model) GetActiveTab() TabID {
	return m.activeTab
}

// IsReady returns true if the model is ready (window size received).
func (m *Model) IsReady() bool {
	return m.ready
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	m.state.SetLoadingNotification("Analyzing dataset...")

	cmds := []tea.Cmd{
		m.spinner.Tick,
		defaultTickCmd(),
	}

	if m.services != nil {
		cmds = append(cmds, subscribeToServicesCmd(m.services))
		cmds = append(cmds, analyzeCmd(m.services))
	}

	for _, tab := range m.tabs {
		if tab != nil {
			cmds = append(cmds, tab.Init())
		}
	}

	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg, tea.KeyMsg, spinner.TickMsg:
		if cmd := m.handleTeaMsg(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	default:
		if appCmds := m.handleAppMsg(msg); len(appCmds) > 0 {
			cmds = append(cmds, appCmds...)
		}
	}

	if cmd := m.updateActiveTab(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleTeaMsg(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleWindowSize(msg)
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case spinner.TickMsg:
		return m.handleSpinnerTick(msg)
	}
	return nil
}

func (m *Model) handleAppMsg(msg tea.Msg) []tea.Cmd {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case TickMsg:
		cmds = append(cmds, m.handleTick())
	case SubscriptionEventMsg:
		m.eventChannel = msg.Channel
		cmds = append(cmds, waitForServiceEventCmd(m.eventChannel))
	case ServiceEventMsg:
		cmds = append(cmds, m.handleServiceEventMsg(msg)...)
	case RunRequestMsg:
		cmds = append(cmds, m.startRun())
	case RunCompleteMsg:
		cmds = append(cmds, m.handleRunComplete(msg)...)
	case ExportResultMsg:
		cmds = append(cmds, m.handleExportResult(msg)...)
	case AddNotificationMsg:
		cmds = append(cmds, m.handleAddNotification(msg)...)
	case RemoveNotificationMsg:
		m.state.RemoveNotification(msg.ID)
	case ClearExpiredNotificationsMsg:
		m.state.ClearExpiredNotifications()
	case StartLoadingMsg:
		m.handleStartLoading(msg)
	case StopLoadingMsg:
		m.handleStopLoading(msg)
	case ErrorMsg:
		cmds = append(cmds, notifyErrorCmd(fmt.Sprintf("%s: %v", msg.Context, msg.Error)))
	case TabSwitchMsg:
		m.activeTab = msg.Tab
		m.updateTabSizes()
	case ToggleHelpMsg:
		m.showHelp = !m.showHelp
	}
	return cmds
}

func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	m.updateTabSizes()
}

func (m *Model) handleSpinnerTick(msg spinner.TickMsg) tea.Cmd {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return cmd
}

func (m *Model) handleTick() tea.Cmd {
	m.state.ClearExpiredNotifications()
	return defaultTickCmd()
}

func (m *Model) handleServiceEventMsg(msg ServiceEventMsg) []tea.Cmd {
	cmds := m.handleServiceEvent(msg.Event)
	if m.eventChannel != nil {
		cmds = append(cmds, waitForServiceEventCmd(m.eventChannel))
	}
	return cmds
}

// startRun marks the run as loading and starts the pipeline.
func (m *Model) startRun() tea.Cmd {
	if m.services == nil {
		return nil
	}
	return tea.Batch(
		msgCmd(StartLoadingMsg{Resource: ResourceRun}),
		analyzeCmd(m.services),
	)
}

func (m *Model) handleRunComplete(msg RunCompleteMsg) []tea.Cmd {
	m.state.SetLoading(ResourceInitial, false)
	m.handleStopLoading(StopLoadingMsg{Resource: ResourceRun})

	source := ""
	if m.services != nil {
		source = m.services.Source().Path()
	}
	return m.applyRunResult(msg.Report, msg.Error, source)
}

// applyRunResult stores a run outcome. A run started from the UI arrives both
// as a RunCompleteMsg and as a service event; the second arrival is a no-op.
func (m *Model) applyRunResult(report *models.Report, err error, source string) []tea.Cmd {
	if err != nil {
		if errors.Is(m.state.GetRunError(), err) {
			return nil
		}
		m.state.SetRunError(err, source)
		return []tea.Cmd{
			msgCmd(ReportUpdatedMsg{}),
			notifyErrorCmd(fmt.Sprintf("Run failed: %v", err)),
		}
	}

	if !m.state.SetReport(report) {
		return nil
	}

	cmds := []tea.Cmd{msgCmd(ReportUpdatedMsg{})}
	tier := report.Advisory.Tier
	if tier.IsAlert() {
		cmds = append(cmds, notifyWarningCmd(fmt.Sprintf("Advisory: %s", tier.Label())))
	} else {
		cmds = append(cmds, notifySuccessCmd(fmt.Sprintf("Analysis complete: %s", tier.Label())))
	}
	if n := len(report.Omissions); n > 0 {
		cmds = append(cmds, notifyInfoCmd(fmt.Sprintf("%d display(s) omitted for missing columns", n)))
	}
	return cmds
}

func (m *Model) handleExportResult(msg ExportResultMsg) []tea.Cmd {
	m.handleStopLoading(StopLoadingMsg{Resource: ResourceExport})

	switch {
	case errors.Is(msg.Error, services.ErrNoReport):
		return []tea.Cmd{notifyWarningCmd("Nothing to export: no successful run yet")}
	case msg.Error != nil:
		return []tea.Cmd{notifyErrorCmd(fmt.Sprintf("Export failed: %v", msg.Error))}
	}

	m.state.SetLastExport(msg.Path)
	return []tea.Cmd{notifySuccessCmd(fmt.Sprintf("Exported to %s", msg.Path))}
}

func (m *Model) handleAddNotification(msg AddNotificationMsg) []tea.Cmd {
	var cmds []tea.Cmd
	id := m.state.AddNotification(msg.Type, msg.Message, msg.Duration)
	if msg.Duration > 0 {
		cmds = append(cmds, clearNotificationCmd(id, msg.Duration))
	}
	return cmds
}

func (m *Model) handleStartLoading(msg StartLoadingMsg) {
	m.state.SetLoading(msg.Resource, true)
	switch msg.Resource {
	case ResourceExport:
		m.state.SetLoadingNotification("Exporting...")
	default:
		m.state.SetLoadingNotification("Analyzing dataset...")
	}
}

func (m *Model) handleStopLoading(msg StopLoadingMsg) {
	m.state.SetLoading(msg.Resource, false)
	if !m.state.AnyLoading() {
		m.state.ClearLoadingNotification()
	}
}

func (m *Model) updateActiveTab(msg tea.Msg) tea.Cmd {
	if int(m.activeTab) < len(m.tabs) && m.tabs[m.activeTab] != nil {
		var cmd tea.Cmd
		m.tabs[m.activeTab], cmd = m.tabs[m.activeTab].Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) updateTabSizes() {
	contentHeight := m.height - 5
	contentHeight = max(0, contentHeight)

	for _, tab := range m.tabs {
		if tab != nil {
			tab.SetSize(m.width, contentHeight)
		}
	}
}

func (m *Model) switchTab(id TabID) {
	if int(id) >= len(m.tabs) {
		return
	}
	m.activeTab = id
	m.updateTabSizes()
}

// handleKeyMsg handles keyboard input.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	// Global keybindings (work regardless of tab)
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.showHelp = !m.showHelp
		return nil

	case key.Matches(msg, m.keymap.Escape):
		m.showHelp = false
		return nil
	}

	if m.showHelp {
		return nil
	}

	switch {
	case key.Matches(msg, m.keymap.Tab1):
		m.switchTab(TabDashboard)
	case key.Matches(msg, m.keymap.Tab2):
		m.switchTab(TabCharts)
	case key.Matches(msg, m.keymap.Tab3):
		m.switchTab(TabDaily)
	case key.Matches(msg, m.keymap.Tab4):
		m.switchTab(TabData)
	case key.Matches(msg, m.keymap.Tab5):
		m.switchTab(TabInfo)

	case key.Matches(msg, m.keymap.NextTab):
		m.switchTab(TabID((int(m.activeTab) + 1) % len(m.tabs)))

	case key.Matches(msg, m.keymap.PrevTab):
		m.switchTab(TabID((int(m.activeTab) - 1 + len(m.tabs)) % len(m.tabs)))

	case key.Matches(msg, m.keymap.Refresh):
		return m.startRun()

	case key.Matches(msg, m.keymap.CycleMesh):
		return m.cycleMesh()

	case key.Matches(msg, m.keymap.ThresholdUp):
		return m.adjustThreshold(1)

	case key.Matches(msg, m.keymap.ThresholdDown):
		return m.adjustThreshold(-1)

	case key.Matches(msg, m.keymap.Export):
		if m.services == nil {
			return nil
		}
		return tea.Batch(
			msgCmd(StartLoadingMsg{Resource: ResourceExport}),
			exportCmd(m.services),
		)
	}

	return nil
}

func (m *Model) cycleMesh() tea.Cmd {
	if m.services == nil {
		return nil
	}
	mesh := m.services.CycleMesh()
	params := m.syncParams()
	return tea.Batch(
		msgCmd(ParamsChangedMsg{Params: params}),
		notifyInfoCmd(fmt.Sprintf("Mesh: %s (capacity %.0f)", mesh, params.Mesh.Capacity)),
		m.startRun(),
	)
}

func (m *Model) adjustThreshold(delta float64) tea.Cmd {
	if m.services == nil {
		return nil
	}
	current := m.services.Params().Threshold
	next := m.services.SetThreshold(current + delta)
	if next == current {
		return notifyWarningCmd(fmt.Sprintf("Threshold already at %.0f%%", current))
	}
	params := m.syncParams()
	return tea.Batch(
		msgCmd(ParamsChangedMsg{Params: params}),
		m.startRun(),
	)
}

// syncParams copies the manager's parameters into the shared state.
func (m *Model) syncParams() RunParams {
	p := m.services.Params()
	params := RunParams{Mesh: p.Mesh, Threshold: p.Threshold}
	m.state.SetParams(params)
	return params
}

func (m *Model) handleServiceEvent(event services.ServiceEvent) []tea.Cmd {
	switch e := event.(type) {
	case services.ReportReadyEvent:
		m.state.SetLoading(ResourceInitial, false)
		return m.applyRunResult(e.Report, nil, e.Report.Source)

	case services.RunFailedEvent:
		m.state.SetLoading(ResourceInitial, false)
		return m.applyRunResult(nil, e.Error, e.Source)

	case services.DatasetChangedEvent:
		return []tea.Cmd{
			notifyInfoCmd(fmt.Sprintf("Reloaded %s (%d rows)", filepath.Base(e.Source), e.Rows)),
		}

	case services.ExportedEvent:
		m.state.SetLastExport(e.Path)

	case services.ErrorEvent:
		return []tea.Cmd{notifyErrorCmd(fmt.Sprintf("[%s] %v", e.Service, e.Error))}
	}

	return nil
}

// View renders the application UI.
func (m *Model) View() string {
	var b strings.Builder

	if m.width > 0 {
		b.WriteString(m.renderNavbar())
		b.WriteString("\n")
	}

	if !m.ready {
		b.WriteString(m.styles.Content.Render(fmt.Sprintf("%s Loading...", m.spinner.View())))
		return b.String()
	}

	if int(m.activeTab) < len(m.tabs) && m.tabs[m.activeTab] != nil {
		b.WriteString(m.tabs[m.activeTab].View())
	} else {
		b.WriteString(m.renderPlaceholder())
	}

	mainView := b.String()

	if m.showHelp {
		mainView = m.overlayCentered(mainView, m.renderHelp())
	}

	notifications := m.renderNotifications()

	if len(notifications) > 0 {
		return m.overlayToasts(mainView, notifications)
	}

	return mainView
}

func (m *Model) overlayCentered(mainView string, overlay string) string {
	mainLines := strings.Split(mainView, "\n")
	overlayLines := strings.Split(overlay, "\n")

	overlayHeight := len(overlayLines)
	overlayWidth := lipgloss.Width(overlay)

	y := max((m.height-overlayHeight)/2, 0)
	x := max((m.width-overlayWidth)/2, 0)

	for i, overlayLine := range overlayLines {
		mainY := y + i
		if mainY >= len(mainLines) {
			break
		}

		mainLine := mainLines[mainY]

		left := ansi.Truncate(mainLine, x, "")
		// Skip the cells the overlay covers.
		right := ansi.TruncateLeft(mainLine, x+overlayWidth, "")

		if lipgloss.Width(left) < x {
			left += strings.Repeat(" ", x-lipgloss.Width(left))
		}

		mainLines[mainY] = left + overlayLine + right
	}

	return strings.Join(mainLines, "\n")
}

func (m *Model) renderNavbar() string {
	var tabs []string

	for i, name := range m.tabNames {
		if TabID(i) == m.activeTab {
			tabs = append(tabs, m.styles.ActiveTab.Render(fmt.Sprintf("[%d] %s", i+1, name)))
		} else {
			tabs = append(tabs, m.styles.InactiveTab.Render(fmt.Sprintf(" %d  %s", i+1, name)))
		}
	}

	tabBar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	status := m.renderStatus()
	if gap := m.width - lipgloss.Width(tabBar) - lipgloss.Width(status) - 2; status != "" && gap > 0 {
		tabBar = lipgloss.JoinHorizontal(lipgloss.Top, tabBar, strings.Repeat(" ", gap), status)
	}

	return m.styles.TabBar.Width(m.width).Render(tabBar)
}

// renderStatus summarizes the parameters of the next run.
func (m *Model) renderStatus() string {
	p := m.state.GetParams()
	if p.Mesh.Type == "" {
		return ""
	}
	parts := []string{string(p.Mesh.Type), fmt.Sprintf("%.0f%%", p.Threshold)}
	if src := m.state.GetSource(); src != "" {
		parts = append(parts, filepath.Base(src))
	}
	return m.styles.Status.Render(strings.Join(parts, " · "))
}

func (m *Model) renderNotifications() []string {
	notifications := m.state.GetNotifications()
	if len(notifications) == 0 {
		return nil
	}

	var toasts []string
	for _, n := range notifications {
		var style lipgloss.Style
		var prefix string

		switch n.Type {
		case NotificationSuccess:
			style = m.styles.NotificationSuccess
			prefix = "[OK]"
		case NotificationError:
			style = m.styles.NotificationError
			prefix = "[ERR]"
		case NotificationWarning:
			style = m.styles.NotificationWarning
			prefix = "[WARN]"
		case NotificationInfo:
			style = m.styles.NotificationInfo
			prefix = "[INFO]"
		case NotificationLoading:
			style = m.styles.NotificationInfo
			prefix = m.spinner.View()
		}

		content := style.Render(fmt.Sprintf("%s %s", prefix, n.Message))
		toasts = append(toasts, m.styles.Toast.Render(content))
	}

	return toasts
}

func (m *Model) overlayToasts(mainView string, toasts []string) string {
	if len(toasts) == 0 {
		return mainView
	}

	toastStack := lipgloss.JoinVertical(lipgloss.Right, toasts...)
	toastLines := strings.Split(toastStack, "\n")
	mainLines := strings.Split(mainView, "\n")

	toastWidth := lipgloss.Width(toastStack)
	startX := max(m.width-toastWidth-2, 0)

	startY := 2

	for i, toastLine := range toastLines {
		lineIdx := startY + i
		if lineIdx >= len(mainLines) {
			break
		}

		mainLine := mainLines[lineIdx]
		mainLineWidth := lipgloss.Width(mainLine)

		if mainLineWidth < startX {
			padding := strings.Repeat(" ", startX-mainLineWidth)
			mainLines[lineIdx] = mainLine + padding + toastLine
		} else {
			truncated := ansi.Truncate(mainLine, startX, "")
			mainLines[lineIdx] = truncated + toastLine
		}
	}

	return strings.Join(mainLines, "\n")
}

func (m *Model) renderHelp() string {
	var lines []string

	lines = append(lines, m.styles.Title.Render("Keyboard Shortcuts"))
	lines = append(lines, "")

	lines = append(lines, m.styles.Highlight.Render("Navigation"))
	lines = append(lines, "  1-5        Switch tabs")
	lines = append(lines, "  Tab        Next tab")
	lines = append(lines, "  Shift+Tab  Previous tab")
	lines = append(lines, "")

	lines = append(lines, m.styles.Highlight.Render("Analysis"))
	lines = append(lines, "  m          Cycle mesh type")
	lines = append(lines, "  +/-        Adjust utilization threshold")
	lines = append(lines, "  r          Re-run analysis")
	lines = append(lines, "  e          Export report to SQLite")
	lines = append(lines, "")

	lines = append(lines, m.styles.Highlight.Render("General"))
	lines = append(lines, "  ?          Toggle help")
	lines = append(lines, "  q/Ctrl+C   Quit")
	lines = append(lines, "")

	if int(m.activeTab) < len(m.tabs) && m.tabs[m.activeTab] != nil {
		tabHelp := m.tabs[m.activeTab].ShortHelp()
		if len(tabHelp) > 0 {
			lines = append(lines, m.styles.Highlight.Render(fmt.Sprintf("%s Tab", m.tabNames[m.activeTab])))
			for _, binding := range tabHelp {
				lines = append(lines, fmt.Sprintf("  %-10s %s", binding.Help().Key, binding.Help().Desc))
			}
			lines = append(lines, "")
		}
	}

	lines = append(lines, m.styles.Subtle.Render("Press ? or Esc to close"))

	return styles.HelpPanelStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderPlaceholder() string {
	content := fmt.Sprintf(
		"Tab %d: %s\n\n%s",
		m.activeTab+1,
		m.tabNames[m.activeTab],
		m.styles.Subtle.Render("This tab is not yet implemented."),
	)
	return m.styles.Content.Render(content)
}
