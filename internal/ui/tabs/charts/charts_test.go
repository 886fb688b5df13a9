package charts

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/shaker-dashboard-tui/internal/app"
	"github.com/j-veylop/shaker-dashboard-tui/internal/models"
	"github.com/j-veylop/shaker-dashboard-tui/internal/services/normalize"
	"github.com/j-veylop/shaker-dashboard-tui/internal/services/pipeline"
)

const fullCSV = `YYYY/MM/DD,HH:MM:SS,SHAKER #1 (Units),SHAKER #2 (Units),SHAKER #3 (PERCENT),MA_Flow_Rate (gal/min),Screen Utilization (%)
2024/03/05,08:00:00,10,11,90,660,90
2024/03/05,09:00:00,12,13,96,640,88
2024/03/06,08:00:00,14,15,97,650,70
`

const shaker3OnlyCSV = `YYYY/MM/DD,HH:MM:SS,SHAKER #3 (PERCENT),Screen Utilization (%)
2024/03/05,08:00:00,90,60
2024/03/06,08:00:00,80,
`

func testReport(t *testing.T, csv string) *models.Report {
	t.Helper()
	table, err := normalize.ReadCSV(strings.NewReader(csv), "well-7.csv")
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	report, err := pipeline.Run(table, pipeline.DefaultParams())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return report
}

func render(t *testing.T, state *app.State) string {
	t.Helper()
	m := New(state)
	m.SetSize(120, 200)
	return ansi.Strip(m.View())
}

func TestModel_View_Empty(t *testing.T) {
	view := render(t, app.NewState())
	if !strings.Contains(view, "No analysis yet") {
		t.Errorf("view without report = %q", view)
	}
}

func TestModel_View_RunError(t *testing.T) {
	state := app.NewState()
	state.SetRunError(errors.New("boom"), "well-7.csv")

	view := render(t, state)
	if !strings.Contains(view, "The last run failed") {
		t.Errorf("view after failed run = %q", view)
	}
	if strings.Contains(view, "Shaker Output Over Time") {
		t.Error("a failed run should show no charts")
	}
}

func TestModel_View_AllCharts(t *testing.T) {
	state := app.NewState()
	state.SetReport(testReport(t, fullCSV))

	view := render(t, state)
	for _, want := range []string{
		"Shaker Output Over Time",
		"SHAKER #1",
		"SHAKER #2",
		"SHAKER #3 (%)",
		"Flow Rate Over Time",
		"Daily Average Utilization (threshold 80%)",
		"2024-03-05",
		"2024-03-06",
		"above threshold",
		"SHAKER #3 Daily Min / Avg / Max (%)",
		"93.0",
		"97.0",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
	if strings.Contains(view, "omitted") {
		t.Error("no chart should be omitted for a complete dataset")
	}
}

func TestModel_View_Omissions(t *testing.T) {
	state := app.NewState()
	state.SetReport(testReport(t, shaker3OnlyCSV))

	view := render(t, state)
	for _, want := range []string{
		"shaker output chart omitted",
		models.ColumnShaker1,
		"flow rate chart omitted",
		models.ColumnFlowRate,
		"n/a",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
	if !strings.Contains(view, "Daily Average Utilization") {
		t.Error("daily utilization is still shown when the column exists")
	}
}

func TestModel_SyncResetsScroll(t *testing.T) {
	state := app.NewState()
	state.SetReport(testReport(t, fullCSV))

	m := New(state)
	m.SetSize(80, 10)
	m.View()
	m.Update(tea.KeyMsg{Type: tea.KeyDown})

	next := testReport(t, fullCSV)
	state.SetReport(next)
	m.Update(nil)

	if m.report != next {
		t.Error("Update should pick up the new report")
	}
	if m.viewport.YOffset != 0 {
		t.Errorf("viewport offset = %d, want 0 after a new report", m.viewport.YOffset)
	}
}

func TestModel_Help(t *testing.T) {
	m := New(app.NewState())
	if m.Init() != nil {
		t.Error("Init should return nil")
	}
	if len(m.ShortHelp()) == 0 || len(m.FullHelp()) == 0 {
		t.Error("help bindings should not be empty")
	}
}
