package daily

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/shaker-dashboard-tui/internal/app"
	"github.com/j-veylop/shaker-dashboard-tui/internal/models"
	"github.com/j-veylop/shaker-dashboard-tui/internal/services/normalize"
	"github.com/j-veylop/shaker-dashboard-tui/internal/services/pipeline"
)

const threeDaysCSV = `YYYY/MM/DD,HH:MM:SS,SHAKER #3 (PERCENT),MA_Flow_Rate (gal/min),Screen Utilization (%)
2024/03/05,08:00:00,90,660,90
2024/03/05,09:00:00,96,640,88
2024/03/06,08:00:00,50,500,40
2024/03/07,08:00:00,70,,85
`

func testState(t *testing.T) *app.State {
	t.Helper()
	table, err := normalize.ReadCSV(strings.NewReader(threeDaysCSV), "well-7.csv")
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	report, err := pipeline.Run(table, pipeline.DefaultParams())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	state := app.NewState()
	state.SetReport(report)
	return state
}

func newSized(state *app.State) *Model {
	m := New(state)
	m.SetSize(120, 30)
	return m
}

func TestModel_View_Empty(t *testing.T) {
	m := newSized(app.NewState())
	if view := m.View(); !strings.Contains(view, "No analysis yet") {
		t.Errorf("view without report = %q", view)
	}
}

func TestModel_View_Rows(t *testing.T) {
	m := newSized(testState(t))
	view := ansi.Strip(m.View())

	for _, want := range []string{
		"Daily Summary",
		"3 days · 2 above 80%",
		"Avg Util %",
		"2024-03-05",
		"2024-03-06",
		"2024-03-07",
		"89.0",
		"650.0",
		"n/a",
		exceedsMark,
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
}

func TestModel_ExceedingFilter(t *testing.T) {
	m := newSized(testState(t))
	m.View()

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if !m.exceedingOnly {
		t.Fatal("x should enable the exceeding filter")
	}

	view := ansi.Strip(m.View())
	if strings.Contains(view, "2024-03-06") {
		t.Error("a day within the threshold should be hidden")
	}
	if !strings.Contains(view, "2024-03-07") {
		t.Error("an exceeding day should stay visible")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if m.exceedingOnly {
		t.Error("x should toggle the filter off")
	}
}

func TestModel_SelectedDay(t *testing.T) {
	m := newSized(testState(t))
	m.View()

	d, ok := m.SelectedDay()
	if !ok || d.Date != (models.Date{Year: 2024, Month: 3, Day: 5}) {
		t.Fatalf("SelectedDay() = %v, %v", d.Date, ok)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	d, _ = m.SelectedDay()
	if d.Date.Day != 6 {
		t.Errorf("after down SelectedDay() = %v, want 2024-03-06", d.Date)
	}
	if view := ansi.Strip(m.View()); !strings.Contains(view, "within the threshold") {
		t.Error("selection line should describe the day against the threshold")
	}
}

func TestModel_SelectedDay_NoReport(t *testing.T) {
	m := New(app.NewState())
	if _, ok := m.SelectedDay(); ok {
		t.Error("SelectedDay should report false without a report")
	}
}

func TestModel_Help(t *testing.T) {
	m := New(app.NewState())
	if m.Init() != nil {
		t.Error("Init should return nil")
	}
	if len(m.ShortHelp()) != 3 {
		t.Errorf("ShortHelp() has %d bindings, want 3", len(m.ShortHelp()))
	}
	if len(m.FullHelp()) == 0 {
		t.Error("FullHelp should not be empty")
	}
}
