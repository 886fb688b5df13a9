// Package app provides the main Bubble Tea application model and state management.
package app

import (
	"sync"
	"time"

	"github.com/j-veylop/shaker-dashboard-tui/internal/models"
)

// NotificationType defines the type of notification.
type NotificationType int

const (
	// NotificationSuccess represents a success notification.
	NotificationSuccess NotificationType = iota
	// NotificationError represents an error notification.
	NotificationError
	// NotificationWarning represents a warning notification.
	NotificationWarning
	// NotificationInfo represents an informational notification.
	NotificationInfo
	// NotificationLoading represents a loading notification with spinner.
	NotificationLoading
)

const (
	// LoadingNotificationID is the fixed ID for loading notifications.
	LoadingNotificationID = "__loading__"

	maxNotifications = 10
)

// Loading resources.
const (
	ResourceInitial = "initial"
	ResourceRun     = "run"
	ResourceExport  = "export"
)

// String returns the string representation of a NotificationType.
func (n NotificationType) String() string {
	switch n {
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationWarning:
		return "warning"
	case NotificationInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Notification represents a user-facing notification message.
type Notification struct {
	CreatedAt time.Time
	ID        string
	Message   string
	Type      NotificationType
	Duration  time.Duration
}

// IsExpired returns true if the notification has expired.
func (n *Notification) IsExpired() bool {
	if n.Duration <= 0 {
		return false
	}
	return time.Since(n.CreatedAt) > n.Duration
}

// LoadingState tracks loading states for different resources.
type LoadingState struct {
	Initial bool
	Run     bool
	Export  bool
}

// RunParams mirrors the mesh and threshold the next run uses.
type RunParams struct {
	Mesh      models.MeshConfig
	Threshold float64
}

// State is shared by the root model and every tab.
type State struct {
	mu sync.RWMutex

	report     *models.Report
	runErr     error
	params     RunParams
	source     string
	lastExport string

	Loading LoadingState

	LastUpdated time.Time

	notifications   []Notification
	notificationSeq int
}

// NewState creates an empty state that is waiting for its first run.
func NewState() *State {
	return &State{
		notifications: make([]Notification, 0),
		Loading: LoadingState{
			Initial: true,
		},
	}
}

// SetLoading sets the loading state for a specific resource.
func (s *State) SetLoading(resource string, loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch resource {
	case ResourceInitial:
		s.Loading.Initial = loading
	case ResourceRun:
		s.Loading.Run = loading
	case ResourceExport:
		s.Loading.Export = loading
	}
}

// AnyLoading returns true if any resource is currently loading.
func (s *State) AnyLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.Loading.Initial || s.Loading.Run || s.Loading.Export
}

// IsInitialLoading returns true if the first run has not finished yet.
func (s *State) IsInitialLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Loading.Initial
}

// GetLoadingResources returns a list of currently loading resources.
func (s *State) GetLoadingResources() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var resources []string
	if s.Loading.Initial {
		resources = append(resources, ResourceInitial)
	}
	if s.Loading.Run {
		resources = append(resources, ResourceRun)
	}
	if s.Loading.Export {
		resources = append(resources, ResourceExport)
	}
	return resources
}

// SetReport stores a successful run and clears any previous run error.
// It returns false when report is already the current one.
func (s *State) SetReport(report *models.Report) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if report == nil || report == s.report {
		return false
	}
	s.report = report
	s.runErr = nil
	s.source = report.Source
	s.params = RunParams{Mesh: report.Mesh, Threshold: report.Threshold}
	s.LastUpdated = time.Now()
	return true
}

// GetReport returns the latest successful report, or nil.
// A run error hides the report: a failed run shows no results.
func (s *State) GetReport() *models.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.runErr != nil {
		return nil
	}
	return s.report
}

// SetRunError records a failed run.
func (s *State) SetRunError(err error, source string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runErr = err
	if source != "" {
		s.source = source
	}
	s.LastUpdated = time.Now()
}

// GetRunError returns the error of the last run, if it failed.
func (s *State) GetRunError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.runErr
}

// SetParams records the parameters the next run will use.
func (s *State) SetParams(p RunParams) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params = p
}

// GetParams returns the current run parameters.
func (s *State) GetParams() RunParams {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params
}

// GetSource returns the dataset name of the last run.
func (s *State) GetSource() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

// SetLastExport records the file the last export was written to.
func (s *State) SetLastExport(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastExport = path
}

// GetLastExport returns the file of the last export, if any.
func (s *State) GetLastExport() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastExport
}

// AddNotification adds a new notification and returns its ID.
func (s *State) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notificationSeq++
	id := time.Now().Format("20060102150405") + "-" + string(rune('A'+s.notificationSeq%26))

	s.notifications = append(s.notifications, Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	})

	if len(s.notifications) > maxNotifications {
		s.notifications = s.notifications[len(s.notifications)-maxNotifications:]
	}

	return id
}

// RemoveNotification removes a notification by ID.
func (s *State) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// ClearExpiredNotifications removes all expired notifications.
func (s *State) ClearExpiredNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	s.notifications = active
}

// GetNotifications returns a copy of all active notifications.
func (s *State) GetNotifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	return active
}

// ClearAllNotifications removes all notifications.
func (s *State) ClearAllNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = make([]Notification, 0)
}

// SetLoadingNotification sets a loading notification message.
func (s *State) SetLoadingNotification(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications[i].Message = message
			return
		}
	}

	s.notifications = append(s.notifications, Notification{
		ID:        LoadingNotificationID,
		Type:      NotificationLoading,
		Message:   message,
		CreatedAt: time.Now(),
	})
}

// ClearLoadingNotification removes the loading notification.
func (s *State) ClearLoadingNotification() {
	s.RemoveNotification(LoadingNotificationID)
}

// GetLastUpdated returns the last time a run finished.
func (s *State) GetLastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.LastUpdated
}

// TimeSinceUpdate returns the duration since the last run finished.
func (s *State) TimeSinceUpdate() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.LastUpdated.IsZero() {
		return 0
	}
	return time.Since(s.LastUpdated)
}
