package info

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/shaker-dashboard-tui/internal/app"
	"github.com/j-veylop/shaker-dashboard-tui/internal/config"
	"github.com/j-veylop/shaker-dashboard-tui/internal/models"
	"github.com/j-veylop/shaker-dashboard-tui/internal/services/advisory"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.DataPath = "/data/well-7.csv"
	cfg.ExportPath = "/tmp/report.db"
	cfg.LogFile = "/tmp/shakerdash.log"
	cfg.LogLevel = "debug"
	cfg.Watch = false
	return cfg
}

func render(m *Model) string {
	m.SetSize(120, 200)
	return ansi.Strip(m.View())
}

func TestModel_View_Config(t *testing.T) {
	m := New(app.NewState(), testConfig())
	view := render(m)

	for _, want := range []string{
		"/data/well-7.csv",
		"/tmp/report.db",
		"YYYY/MM/DD, HH:MM:SS",
		"/tmp/shakerdash.log (debug)",
		"off (debounce 500ms)",
		"Last Run:",
		"none",
		"About Shaker Dashboard",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
}

func TestModel_View_NilConfig(t *testing.T) {
	view := render(New(app.NewState(), nil))
	if !strings.Contains(view, "Configuration not loaded") {
		t.Error("nil config should render a placeholder")
	}
}

func TestModel_View_Run(t *testing.T) {
	state := app.NewState()
	state.SetParams(app.RunParams{
		Mesh:      models.MeshConfig{Type: models.MeshAPI170, Capacity: 160},
		Threshold: 75,
	})
	state.SetReport(&models.Report{
		RunID:             "run-42",
		Source:            "well-7.csv",
		CreatedAt:         time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC),
		UtilizationSource: models.UtilizationDerived,
	})
	state.SetLastExport("/tmp/report.db")

	view := render(New(state, testConfig()))
	for _, want := range []string{
		"API 170 (capacity 160)",
		"75%",
		"run-42",
		"2024-03-05 08:00:00",
		"derived",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
}

func TestModel_View_FailedRun(t *testing.T) {
	state := app.NewState()
	state.SetRunError(errors.New("boom"), "well-7.csv")

	view := render(New(state, testConfig()))
	if !strings.Contains(view, "failed") {
		t.Error("a failed run should be reported")
	}
}

func TestModel_View_Rules(t *testing.T) {
	view := render(New(app.NewState(), testConfig()))

	for _, r := range advisory.Rules() {
		if !strings.Contains(view, r.Condition) {
			t.Errorf("rules card should list %q", r.Condition)
		}
	}
}

func TestModel_Update(t *testing.T) {
	m := New(app.NewState(), testConfig())
	m.SetSize(80, 5)
	m.View()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if updated == nil {
		t.Error("Update returned nil model")
	}
	if m.Init() != nil {
		t.Error("Init should return nil")
	}
	if len(m.ShortHelp()) == 0 || len(m.FullHelp()) == 0 {
		t.Error("help bindings should not be empty")
	}
}
