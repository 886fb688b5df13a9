package app

import (
	"time"

	"github.com/j-veylop/shaker-dashboard-tui/internal/models"
	"github.com/j-veylop/shaker-dashboard-tui/internal/services"
)

// TickMsg is sent periodically to trigger state refresh.
type TickMsg struct {
	Time time.Time
}

// StartLoadingMsg signals that a resource is starting to load.
type StartLoadingMsg struct {
	Resource string
}

// StopLoadingMsg signals that a resource has finished loading.
type StopLoadingMsg struct {
	Resource string
}

// RunRequestMsg asks for a new pipeline run with the current parameters.
type RunRequestMsg struct {
	Reason string
}

// RunCompleteMsg carries the result of a pipeline run started by the UI.
type RunCompleteMsg struct {
	Report *models.Report
	Error  error
}

// ReportUpdatedMsg tells tabs that the state holds a different report or run error.
type ReportUpdatedMsg struct{}

// ParamsChangedMsg is sent after the mesh or threshold changed.
type ParamsChangedMsg struct {
	Params RunParams
}

// ExportResultMsg contains the result of an export operation.
type ExportResultMsg struct {
	Error error
	Path  string
}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Message  string
	Type     NotificationType
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ClearExpiredNotificationsMsg triggers clearing of expired notifications.
type ClearExpiredNotificationsMsg struct{}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}
