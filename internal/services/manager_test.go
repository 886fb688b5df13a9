package services

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/j-veylop/shaker-dashboard-tui/internal/config"
	"github.com/j-veylop/shaker-dashboard-tui/internal/models"
)

const csvHeader = "YYYY/MM/DD,HH:MM:SS,SHAKER #1 (Units),SHAKER #2 (Units),SHAKER #3 (PERCENT),MA_Flow_Rate (gal/min),Screen Utilization (%)\n"

func newTestConfig(t *testing.T, rows string) *config.Config {
	t.Helper()
	tmpDir := t.TempDir()
	dataPath := filepath.Join(tmpDir, "rig.csv")
	if err := os.WriteFile(dataPath, []byte(csvHeader+rows), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg := config.Default()
	cfg.DataPath = dataPath
	cfg.ExportPath = filepath.Join(tmpDir, "export", "report.db")
	cfg.Watch = false
	cfg.Notify = false
	return cfg
}

func newTestManager(t *testing.T, rows string) *Manager {
	t.Helper()
	mgr, err := NewManager(newTestConfig(t, rows))
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	t.Cleanup(func() { _ = mgr.Close() })
	return mgr
}

const normalRows = "2024/03/05,08:00:00,10,11,60,300,50\n"

func TestNewManager(t *testing.T) {
	mgr := newTestManager(t, normalRows)

	if mgr.Source() == nil {
		t.Error("Source service should be initialized")
	}
	p := mgr.Params()
	if p.Mesh.Type != models.MeshAPI140 || p.Threshold != 80 {
		t.Errorf("Params() = %+v, want API 140 / 80", p)
	}
	if mgr.LastReport() != nil {
		t.Error("LastReport() should be nil before the first run")
	}
}

func TestNewManager_MissingData(t *testing.T) {
	cfg := config.Default()
	cfg.DataPath = ""
	if _, err := NewManager(cfg); err == nil {
		t.Error("NewManager should fail without a data path")
	}

	cfg.DataPath = filepath.Join(t.TempDir(), "rig.csv")
	cfg.MeshType = "API 999"
	var cfgErr *models.ConfigError
	if _, err := NewManager(cfg); !errors.As(err, &cfgErr) {
		t.Errorf("NewManager error = %v, want *models.ConfigError", err)
	}
}

func TestManager_Analyze(t *testing.T) {
	mgr := newTestManager(t, normalRows)
	ch, _ := mgr.Subscribe()

	report, err := mgr.Analyze()
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if report.Advisory.Tier != models.TierNormal {
		t.Errorf("Tier = %v, want Normal", report.Advisory.Tier)
	}
	if mgr.LastReport() != report {
		t.Error("LastReport() should return the new report")
	}

	select {
	case e := <-ch:
		ev, ok := e.(ReportReadyEvent)
		if !ok {
			t.Fatalf("got %T, want ReportReadyEvent", e)
		}
		if ev.Report != report {
			t.Error("event should carry the report")
		}
	case <-time.After(time.Second):
		t.Error("Timeout waiting for ReportReadyEvent")
	}
}

func TestManager_AnalyzeFailure(t *testing.T) {
	mgr := newTestManager(t, "2024/03/05,garbage,10,11,60,300,50\n")
	ch, _ := mgr.Subscribe()

	report, err := mgr.Analyze()
	if report != nil {
		t.Error("Analyze should not return a report on parse error")
	}
	var pe *models.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Analyze error = %v, want *models.ParseError", err)
	}

	select {
	case e := <-ch:
		if _, ok := e.(RunFailedEvent); !ok {
			t.Fatalf("got %T, want RunFailedEvent", e)
		}
	case <-time.After(time.Second):
		t.Error("Timeout waiting for RunFailedEvent")
	}
}

func TestManager_ExportAfterFailedRun(t *testing.T) {
	mgr := newTestManager(t, normalRows)

	if _, err := mgr.Analyze(); err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	badRows := "2024/03/05,garbage,10,11,60,300,50\n"
	if err := os.WriteFile(mgr.Config().DataPath, []byte(csvHeader+badRows), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := mgr.Source().Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if _, err := mgr.Analyze(); err == nil {
		t.Fatal("Analyze should fail on a bad timestamp")
	}

	if mgr.LastReport() != nil {
		t.Error("LastReport() should be nil after a failed run")
	}
	if _, err := mgr.Export(context.Background()); !errors.Is(err, ErrNoReport) {
		t.Errorf("Export after failed run error = %v, want ErrNoReport", err)
	}
	if _, err := os.Stat(mgr.Config().ExportPath); !os.IsNotExist(err) {
		t.Errorf("export file should not be written, stat error = %v", err)
	}
}

func TestManager_NotifiesAcrossFailedRun(t *testing.T) {
	mgr := newTestManager(t, normalRows)

	var titles []string
	mgr.notify = func(title, _ string) error {
		titles = append(titles, title)
		return nil
	}

	if _, err := mgr.Analyze(); err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	steps := []string{
		"2024/03/05,garbage,10,11,60,300,50\n",
		"2024/03/05,08:00:00,10,11,99,700,95\n",
	}
	for _, rows := range steps {
		if err := os.WriteFile(mgr.Config().DataPath, []byte(csvHeader+rows), 0o600); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
		if _, err := mgr.Source().Reload(); err != nil {
			t.Fatalf("Reload failed: %v", err)
		}
		_, _ = mgr.Analyze()
	}

	if len(titles) != 1 || titles[0] != "Shaker advisory: Overload" {
		t.Errorf("notifications = %v, want one Overload alert", titles)
	}
}

func TestManager_Params(t *testing.T) {
	mgr := newTestManager(t, normalRows)

	if err := mgr.SetMesh(models.MeshAPI200); err != nil {
		t.Fatalf("SetMesh failed: %v", err)
	}
	if got := mgr.Params().Mesh.Capacity; got != 120 {
		t.Errorf("Capacity = %v, want 120", got)
	}
	if err := mgr.SetMesh("API 999"); err == nil {
		t.Error("SetMesh should reject unknown mesh types")
	}

	if next := mgr.CycleMesh(); next != models.MeshAPI100 {
		t.Errorf("CycleMesh() = %v, want API 100", next)
	}

	if got := mgr.SetThreshold(120); got != 100 {
		t.Errorf("SetThreshold(120) = %v, want 100", got)
	}
	if got := mgr.SetThreshold(10); got != 50 {
		t.Errorf("SetThreshold(10) = %v, want 50", got)
	}
	if got := mgr.Params().Threshold; got != 50 {
		t.Errorf("Threshold = %v, want 50", got)
	}
}

func TestManager_Notifications(t *testing.T) {
	mgr := newTestManager(t, normalRows)

	var titles []string
	mgr.notify = func(title, _ string) error {
		titles = append(titles, title)
		return nil
	}

	normal := &models.Report{Advisory: models.AdvisoryResult{Tier: models.TierNormal}}
	high := &models.Report{Advisory: models.AdvisoryResult{Tier: models.TierHighThroughput, Message: "m"}}
	overload := &models.Report{Advisory: models.AdvisoryResult{Tier: models.TierOverload, Message: "m"}}

	mgr.checkNotifications(nil, overload)
	mgr.checkNotifications(normal, normal)
	mgr.checkNotifications(normal, high)
	mgr.checkNotifications(high, high)
	mgr.checkNotifications(high, overload)
	mgr.checkNotifications(overload, normal)

	want := []string{"Shaker advisory: High Throughput", "Shaker advisory: Overload"}
	if len(titles) != len(want) {
		t.Fatalf("notifications = %v, want %v", titles, want)
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Errorf("notification %d = %q, want %q", i, titles[i], want[i])
		}
	}
}

func TestManager_Export(t *testing.T) {
	mgr := newTestManager(t, normalRows)

	if _, err := mgr.Export(context.Background()); !errors.Is(err, ErrNoReport) {
		t.Fatalf("Export before run error = %v, want ErrNoReport", err)
	}

	report, err := mgr.Analyze()
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	path, err := mgr.Export(context.Background())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open export: %v", err)
	}
	defer conn.Close()

	var id string
	if err := conn.QueryRowContext(context.Background(), "SELECT id FROM runs").Scan(&id); err != nil {
		t.Fatalf("failed to read run: %v", err)
	}
	if id != report.RunID {
		t.Errorf("exported run = %q, want %q", id, report.RunID)
	}
}

func TestManager_Subscription(t *testing.T) {
	mgr := newTestManager(t, normalRows)

	ch, cmd := mgr.Subscribe()
	if ch == nil {
		t.Error("Subscribe returned nil channel")
	}
	if cmd == nil {
		t.Error("Subscribe returned nil command")
	}

	// Unsubscribe
	mgr.Unsubscribe(ch)

	// Check if channel is closed
	select {
	case _, ok := <-ch:
		if ok {
			t.Error("Channel should be closed")
		}
	default:
		t.Error("Unsubscribe should close the channel")
	}
}

func TestManager_Broadcast(t *testing.T) {
	mgr := newTestManager(t, normalRows)

	ch, _ := mgr.Subscribe()
	defer mgr.Unsubscribe(ch)

	event := DatasetChangedEvent{Source: "rig.csv", Rows: 3}
	mgr.broadcast(event)

	select {
	case e := <-ch:
		if e != event {
			t.Errorf("Got event %v, want %v", e, event)
		}
	case <-time.After(time.Second):
		t.Error("Timeout waiting for broadcast")
	}
}

func TestManager_ReloadTriggersRun(t *testing.T) {
	cfg := newTestConfig(t, normalRows)
	cfg.Watch = true
	cfg.ReloadDebounce = 20 * time.Millisecond

	mgr, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	defer mgr.Close()

	ch, _ := mgr.Subscribe()

	rows := normalRows + "2024/03/06,08:00:00,10,11,99,700,95\n"
	if err := os.WriteFile(cfg.DataPath, []byte(csvHeader+rows), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	timeout := time.After(3 * time.Second)
	for {
		select {
		case e := <-ch:
			if ev, ok := e.(ReportReadyEvent); ok {
				if len(ev.Report.Observations) == 2 {
					return
				}
			}
		case <-timeout:
			t.Fatal("Timeout waiting for a report on the reloaded dataset")
		}
	}
}
