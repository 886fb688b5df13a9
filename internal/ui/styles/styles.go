// Package styles defines the visual styling for the application.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/shaker-dashboard-tui/internal/models"
)

// Color definitions for the dashboard theme.
var (
	// Primary colors
	Primary   = lipgloss.Color("205") // Pink
	Secondary = lipgloss.Color("63")  // Purple
	Subtle    = lipgloss.Color("240") // Gray

	// Series colors
	Shaker1 = lipgloss.Color("208") // Orange
	Shaker2 = lipgloss.Color("39")  // Blue
	Shaker3 = lipgloss.Color("170") // Magenta

	// Status colors
	Success = lipgloss.Color("42")  // Green
	Error   = lipgloss.Color("196") // Red
	Warning = lipgloss.Color("220") // Yellow
	Info    = lipgloss.Color("39")  // Blue

	// Background colors
	BgDark   = lipgloss.Color("235")
	BgLight  = lipgloss.Color("237")
	BgAccent = lipgloss.Color("236")

	// Text colors
	TextPrimary   = lipgloss.Color("252")
	TextSecondary = lipgloss.Color("245")
	TextMuted     = lipgloss.Color("240")

	// ToastStyle for floating notifications.
	ToastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1).
			MarginBottom(1)
)

// TitleStyle is used for main headings.
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Primary).
	MarginBottom(1)

// SubTitleStyle is used for section headings.
var SubTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Secondary).
	MarginBottom(1)

// DocStyle provides consistent document margins.
var DocStyle = lipgloss.NewStyle().
	Margin(1, 2).
	Padding(0, 1)

// CardStyle creates a bordered card container.
var CardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Subtle).
	Padding(1, 2).
	MarginBottom(1)

// CardTitleStyle styles card headers.
var CardTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Primary).
	MarginBottom(1)

// ProgressLabelStyle styles progress bar labels.
var ProgressLabelStyle = lipgloss.NewStyle().
	Foreground(TextSecondary).
	Width(20)

// HelpStyle is the base style for help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(TextMuted)

// HelpKeyStyle styles keyboard shortcut keys.
var HelpKeyStyle = lipgloss.NewStyle().
	Foreground(Primary).
	Bold(true)

// HelpSeparatorStyle styles separators in help text.
var HelpSeparatorStyle = lipgloss.NewStyle().
	Foreground(Subtle)

// HelpPanelStyle creates the help overlay panel.
var HelpPanelStyle = lipgloss.NewStyle().
	Border(lipgloss.DoubleBorder()).
	BorderForeground(Primary).
	Padding(1, 3).
	Background(BgDark)

// TableHeaderStyle styles table headers.
var TableHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Primary).
	BorderStyle(lipgloss.NormalBorder()).
	BorderBottom(true).
	BorderForeground(Subtle)

// TableCellStyle styles table cells.
var TableCellStyle = lipgloss.NewStyle().
	Padding(0, 1)

// TableSelectedStyle styles selected table rows.
var TableSelectedStyle = lipgloss.NewStyle().
	Background(BgAccent).
	Foreground(TextPrimary).
	Bold(true)

// TierNormalStyle styles the Normal advisory tier.
var TierNormalStyle = lipgloss.NewStyle().
	Foreground(Success).
	Bold(true)

// TierHighThroughputStyle styles the High Throughput advisory tier.
var TierHighThroughputStyle = lipgloss.NewStyle().
	Foreground(Warning).
	Bold(true)

// TierOverloadStyle styles the Overload advisory tier.
var TierOverloadStyle = lipgloss.NewStyle().
	Foreground(Error).
	Bold(true)

// TierInsufficientStyle styles the Insufficient advisory tier.
var TierInsufficientStyle = lipgloss.NewStyle().
	Foreground(Subtle).
	Italic(true)

// UtilizationOkStyle for utilization comfortably below the threshold.
var UtilizationOkStyle = lipgloss.NewStyle().
	Foreground(Success)

// UtilizationNearStyle for utilization within a few points of the threshold.
var UtilizationNearStyle = lipgloss.NewStyle().
	Foreground(Warning)

// UtilizationOverStyle for utilization above the threshold.
var UtilizationOverStyle = lipgloss.NewStyle().
	Foreground(Error).
	Bold(true)

// ErrorTextStyle for error messages.
var ErrorTextStyle = lipgloss.NewStyle().
	Foreground(Error)

// SuccessTextStyle for success messages.
var SuccessTextStyle = lipgloss.NewStyle().
	Foreground(Success)

// WarningTextStyle for warning messages.
var WarningTextStyle = lipgloss.NewStyle().
	Foreground(Warning)

// InfoTextStyle for info messages.
var InfoTextStyle = lipgloss.NewStyle().
	Foreground(Info)

// ErrorCardStyle frames a failed run.
var ErrorCardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Error).
	Padding(1, 2).
	MarginBottom(1)

// KPIStyle frames a single headline metric.
var KPIStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Secondary).
	Padding(0, 2).
	MarginRight(1).
	Align(lipgloss.Center)

// KPILabelStyle styles the caption of a headline metric.
var KPILabelStyle = lipgloss.NewStyle().
	Foreground(TextSecondary)

// KPIValueStyle styles the value of a headline metric.
var KPIValueStyle = lipgloss.NewStyle().
	Foreground(TextPrimary).
	Bold(true)

// nearThresholdMargin is the distance below the threshold that counts as near.
const nearThresholdMargin = 5

// GetUtilizationStyle returns the style for a utilization percentage against a threshold.
func GetUtilizationStyle(percent, threshold float64) lipgloss.Style {
	switch {
	case percent > threshold:
		return UtilizationOverStyle
	case percent > threshold-nearThresholdMargin:
		return UtilizationNearStyle
	default:
		return UtilizationOkStyle
	}
}

// GetTierStyle returns the style for an advisory tier.
func GetTierStyle(tier models.Tier) lipgloss.Style {
	switch tier {
	case models.TierOverload:
		return TierOverloadStyle
	case models.TierHighThroughput:
		return TierHighThroughputStyle
	case models.TierNormal:
		return TierNormalStyle
	default:
		return TierInsufficientStyle
	}
}

// TierColor returns the accent color of an advisory tier.
func TierColor(tier models.Tier) lipgloss.Color {
	switch tier {
	case models.TierOverload:
		return Error
	case models.TierHighThroughput:
		return Warning
	case models.TierNormal:
		return Success
	default:
		return Subtle
	}
}

// CenterBoth centers content both horizontally and vertically.
func CenterBoth(content string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center).
		AlignVertical(lipgloss.Center).
		Render(content)
}
