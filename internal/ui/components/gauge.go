package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/shaker-dashboard-tui/internal/ui/styles"
)

// AnimationTickMsg advances gauge animations.
type AnimationTickMsg time.Time

func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*50, func(t time.Time) tea.Msg {
		return AnimationTickMsg(t)
	})
}

const (
	gaugeLabelWidth   = 15
	gaugePercentWidth = 8
	minGaugeBarWidth  = 10

	// minAnimationStep keeps the tail of an animation from crawling.
	minAnimationStep = 0.5
)

// Gauge renders a utilization percentage against a threshold.
// Values above 100 fill the bar and are shown verbatim in the label.
type Gauge struct {
	progress  progress.Model
	current   float64
	target    float64
	animating bool
}

// NewGauge creates a gauge that shades from green to red.
func NewGauge() Gauge {
	return Gauge{
		progress: progress.New(
			progress.WithScaledGradient("#51cf66", "#ff6b6b"),
			progress.WithWidth(30),
			progress.WithoutPercentage(),
		),
	}
}

// Init initializes the gauge.
func (g Gauge) Init() tea.Cmd {
	return nil
}

// Update steps the fill animation toward its target.
func (g Gauge) Update(msg tea.Msg) (Gauge, tea.Cmd) {
	var cmds []tea.Cmd

	if _, ok := msg.(AnimationTickMsg); ok && g.animating {
		diff := g.target - g.current
		step := max(abs(diff)/10, minAnimationStep)
		switch {
		case diff > 0:
			g.current = min(g.current+step, g.target)
			cmds = append(cmds, animationTick())
		case diff < 0:
			g.current = max(g.current-step, g.target)
			cmds = append(cmds, animationTick())
		default:
			g.animating = false
		}
	}

	model, cmd := g.progress.Update(msg)
	g.progress = model.(progress.Model)
	cmds = append(cmds, cmd)

	return g, tea.Batch(cmds...)
}

// SetPercent animates the gauge toward percent.
func (g *Gauge) SetPercent(percent float64) tea.Cmd {
	g.target = percent
	if g.animating {
		return nil
	}
	g.animating = true
	return animationTick()
}

// Jump moves the gauge to percent without animating.
func (g *Gauge) Jump(percent float64) {
	g.target = percent
	g.current = percent
	g.animating = false
}

// Current returns the displayed percentage.
func (g Gauge) Current() float64 {
	return g.current
}

// Animating reports whether the gauge is still moving toward its target.
func (g Gauge) Animating() bool {
	return g.animating
}

// View renders the gauge at percent with a marker under the threshold.
func (g Gauge) View(percent, threshold float64, label string, width int) string {
	barWidth := max(width-gaugeLabelWidth-gaugePercentWidth-2, minGaugeBarWidth)
	g.progress.Width = barWidth

	fill := min(max(percent, 0), 100) / 100
	bar := g.progress.ViewAs(fill)

	percentStr := styles.GetUtilizationStyle(percent, threshold).
		Width(gaugePercentWidth).
		Align(lipgloss.Right).
		Render(fmt.Sprintf("%.1f%%", percent))

	labelStr := styles.ProgressLabelStyle.Width(gaugeLabelWidth).Render(label)

	gauge := lipgloss.JoinHorizontal(lipgloss.Center, labelStr, bar, " ", percentStr)

	mark := min(max(int(threshold/100*float64(barWidth)), 0), barWidth-1)
	marker := strings.Repeat(" ", gaugeLabelWidth+mark) +
		styles.WarningTextStyle.Render(fmt.Sprintf("▲ %.0f%%", threshold))

	return lipgloss.JoinVertical(lipgloss.Left, gauge, marker)
}

// ViewAbsent renders an empty gauge for a metric that could not be computed.
func (g Gauge) ViewAbsent(label string, width int) string {
	barWidth := max(width-gaugeLabelWidth-gaugePercentWidth-2, minGaugeBarWidth)

	labelStr := styles.ProgressLabelStyle.Width(gaugeLabelWidth).Render(label)
	emptyBar := lipgloss.NewStyle().
		Foreground(styles.Subtle).
		Render(strings.Repeat("░", barWidth))
	statusStr := styles.TierInsufficientStyle.
		Width(gaugePercentWidth).
		Align(lipgloss.Right).
		Render("n/a")

	return lipgloss.JoinHorizontal(lipgloss.Center, labelStr, emptyBar, " ", statusStr)
}

var loadingDots = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// GaugeLoading renders a shimmering placeholder while the first run is in flight.
func GaugeLoading(label string, width, frame int) string {
	const cycle = 120

	barWidth := max(width-gaugeLabelWidth-gaugePercentWidth-2, minGaugeBarWidth)

	t := float64(frame%cycle) / float64(cycle)
	p := t * 2
	if t >= 0.5 {
		p = (1 - t) * 2
	}
	eased := p * p * (3 - 2*p)
	shimmerPos := int(eased * float64(barWidth))

	var bar strings.Builder
	for i := range barWidth {
		switch dist := abs(float64(shimmerPos - i)); {
		case dist < 3:
			bar.WriteString(lipgloss.NewStyle().Foreground(styles.Primary).Render("▓"))
		case dist < 5:
			bar.WriteString(lipgloss.NewStyle().Foreground(styles.TextSecondary).Render("▒"))
		default:
			bar.WriteString(lipgloss.NewStyle().Foreground(styles.BgLight).Render("░"))
		}
	}

	labelStr := styles.ProgressLabelStyle.Width(gaugeLabelWidth).Render(label)
	dot := lipgloss.NewStyle().
		Width(gaugePercentWidth).
		Align(lipgloss.Right).
		Foreground(styles.Primary).
		Render(loadingDots[(frame/2)%len(loadingDots)])

	return lipgloss.JoinHorizontal(lipgloss.Center, labelStr, bar.String(), " ", dot)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
