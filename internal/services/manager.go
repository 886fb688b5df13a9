// Package services provides service orchestration for the TUI.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/j-veylop/shaker-dashboard-tui/internal/config"
	"github.com/j-veylop/shaker-dashboard-tui/internal/db"
	"github.com/j-veylop/shaker-dashboard-tui/internal/logger"
	"github.com/j-veylop/shaker-dashboard-tui/internal/models"
	"github.com/j-veylop/shaker-dashboard-tui/internal/services/normalize"
	"github.com/j-veylop/shaker-dashboard-tui/internal/services/pipeline"
	"github.com/j-veylop/shaker-dashboard-tui/internal/services/source"
)

type (
	// ReportReadyEvent is emitted when a run completes.
	ReportReadyEvent struct {
		Report *models.Report
	}

	// RunFailedEvent is emitted when a run aborts on a parse or config error.
	RunFailedEvent struct {
		Error  error
		Source string
	}

	// DatasetChangedEvent is emitted when the watched file was reloaded.
	DatasetChangedEvent struct {
		Source string
		Rows   int
	}

	// ExportedEvent is emitted after a report was written to SQLite.
	ExportedEvent struct {
		Path  string
		RunID string
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (ReportReadyEvent) isServiceEvent()    {}
func (RunFailedEvent) isServiceEvent()      {}
func (DatasetChangedEvent) isServiceEvent() {}
func (ExportedEvent) isServiceEvent()       {}
func (ErrorEvent) isServiceEvent()          {}

// ErrNoReport is returned by Export when the latest run produced no report.
var ErrNoReport = errors.New("no report to export")

// Notifier shows a desktop notification.
type Notifier func(title, message string) error

func desktopNotify(title, message string) error {
	return beeep.Notify(title, message, "")
}

// Manager orchestrates services and event routing.
type Manager struct {
	mu          sync.RWMutex
	runMu       sync.Mutex
	cfg         *config.Config
	source      *source.Service
	params      pipeline.Params
	last        *models.Report
	lastGood    *models.Report
	notify      Notifier
	stopChan    chan struct{}
	subscribers []chan<- ServiceEvent
}

// NewManager creates a new service manager.
func NewManager(cfg *config.Config) (*Manager, error) {
	mesh, err := cfg.Mesh()
	if err != nil {
		return nil, err
	}

	m := &Manager{
		cfg: cfg,
		params: pipeline.Params{
			Options: normalize.Options{
				DateColumn: cfg.DateColumn,
				TimeColumn: cfg.TimeColumn,
			},
			Mesh:      mesh,
			Threshold: cfg.UtilThreshold,
		},
		stopChan: make(chan struct{}),
	}
	if cfg.Notify {
		m.notify = desktopNotify
	}

	m.source, err = source.New(cfg.DataPath, source.Options{
		Watch:    cfg.Watch,
		Debounce: cfg.ReloadDebounce,
	})
	if err != nil {
		return nil, err
	}

	go m.routeEvents()

	return m, nil
}

// routeEvents routes events from individual services to subscribers.
func (m *Manager) routeEvents() {
	for {
		select {
		case event := <-m.source.Events():
			m.handleSourceEvent(event)

		case <-m.stopChan:
			return
		}
	}
}

// handleSourceEvent converts source events and reruns the pipeline on change.
func (m *Manager) handleSourceEvent(event source.Event) {
	switch event.Type {
	case source.EventDatasetChanged:
		m.broadcast(DatasetChangedEvent{
			Source: event.Table.Source,
			Rows:   len(event.Table.Rows),
		})
		// Errors are broadcast as RunFailedEvent.
		_, _ = m.Analyze()

	case source.EventError:
		m.broadcast(ErrorEvent{
			Service: "source",
			Error:   event.Error,
		})
	}
}

// Analyze runs the pipeline over the current table with the current parameters.
// Runs are serialized; each works on its own snapshot of table and params.
func (m *Manager) Analyze() (*models.Report, error) {
	m.runMu.Lock()
	defer m.runMu.Unlock()

	table := m.source.Table()
	params := m.Params()

	report, err := pipeline.Run(table, params)
	if err != nil {
		logger.Error("run failed", "source", table.Source, "error", err)
		m.mu.Lock()
		m.last = nil
		m.mu.Unlock()
		m.broadcast(RunFailedEvent{Error: err, Source: table.Source})
		return nil, err
	}

	m.mu.Lock()
	previous := m.lastGood
	m.last = report
	m.lastGood = report
	m.mu.Unlock()

	m.checkNotifications(previous, report)
	m.broadcast(ReportReadyEvent{Report: report})

	return report, nil
}

// checkNotifications alerts when the advisory escalates into an alert tier.
// The first run never notifies.
func (m *Manager) checkNotifications(previous, current *models.Report) {
	if m.notify == nil || previous == nil {
		return
	}

	prevTier := previous.Advisory.Tier
	newTier := current.Advisory.Tier
	if !newTier.IsAlert() || newTier <= prevTier {
		return
	}

	title := fmt.Sprintf("Shaker advisory: %s", newTier.Label())
	if err := m.notify(title, current.Advisory.Message); err != nil {
		logger.Warn("notification failed", "error", err)
	}
}

// Params returns the parameters the next run will use.
func (m *Manager) Params() pipeline.Params {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.params
}

// SetMesh selects a mesh type from the fixed table.
func (m *Manager) SetMesh(t models.MeshType) error {
	mesh, err := models.LookupMesh(string(t))
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.params.Mesh = mesh
	m.mu.Unlock()
	return nil
}

// CycleMesh switches to the next mesh type and returns it.
func (m *Manager) CycleMesh() models.MeshType {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.params.Mesh.Type.Next()
	mesh, _ := models.LookupMesh(string(next))
	m.params.Mesh = mesh
	return next
}

// SetThreshold sets the display threshold, clamped to the adjustable range.
func (m *Manager) SetThreshold(v float64) float64 {
	v = config.ClampThreshold(v)
	m.mu.Lock()
	m.params.Threshold = v
	m.mu.Unlock()
	return v
}

// LastReport returns the report of the latest run, or nil when that run failed.
func (m *Manager) LastReport() *models.Report {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.last
}

// Export writes the last report to the configured SQLite file.
func (m *Manager) Export(ctx context.Context) (string, error) {
	report := m.LastReport()
	if report == nil {
		return "", ErrNoReport
	}

	path := m.cfg.ExportPath
	database, err := db.New(path)
	if err != nil {
		m.broadcast(ErrorEvent{Service: "export", Error: err})
		return "", fmt.Errorf("failed to open export file: %w", err)
	}
	defer func() { _ = database.Close() }()

	if err := database.ExportReport(ctx, report); err != nil {
		m.broadcast(ErrorEvent{Service: "export", Error: err})
		return "", err
	}

	m.broadcast(ExportedEvent{Path: path, RunID: report.RunID})
	return path, nil
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, waitForEvent(ch)
}

// waitForEvent returns a tea.Cmd that waits for the next event.
func waitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return waitForEvent(ch)
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Config returns the configuration the manager was built with.
func (m *Manager) Config() *config.Config {
	return m.cfg
}

// Source returns the dataset source service.
func (m *Manager) Source() *source.Service {
	return m.source
}

// Close closes the manager and all its services.
func (m *Manager) Close() error {
	close(m.stopChan)

	m.mu.Lock()
	for _, sub := range m.subscribers {
		close(sub)
	}
	m.subscribers = nil
	m.mu.Unlock()

	return m.source.Close()
}
