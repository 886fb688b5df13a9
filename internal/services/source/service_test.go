package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const header = "YYYY/MM/DD,HH:MM:SS,Screen Utilization (%)\n"

func writeCSV(t *testing.T, path string, rows ...string) {
	t.Helper()
	content := header + strings.Join(rows, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
}

func newTestService(t *testing.T, watch bool) (*Service, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "rig.csv")
	writeCSV(t, path, "2024/03/05,08:00:00,70")

	svc, err := New(path, Options{Watch: watch, Debounce: 20 * time.Millisecond})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	t.Cleanup(func() {
		if err := svc.Close(); err != nil {
			t.Logf("Close() failed: %v", err)
		}
	})
	return svc, path
}

func waitForEvent(t *testing.T, svc *Service, want EventType) Event {
	t.Helper()
	timeout := time.After(3 * time.Second)
	for {
		select {
		case ev := <-svc.Events():
			if ev.Type == want {
				return ev
			}
		case <-timeout:
			t.Fatalf("timed out waiting for event %d", want)
		}
	}
}

func TestNew(t *testing.T) {
	svc, path := newTestService(t, false)

	if svc.Path() != path {
		t.Errorf("Path() = %q, want %q", svc.Path(), path)
	}

	table := svc.Table()
	if table == nil {
		t.Fatal("Table() returned nil")
	}
	if table.Source != "rig.csv" {
		t.Errorf("Source = %q, want rig.csv", table.Source)
	}
	if len(table.Rows) != 1 {
		t.Errorf("rows = %d, want 1", len(table.Rows))
	}

	ev := waitForEvent(t, svc, EventDatasetLoaded)
	if ev.Table != table {
		t.Error("loaded event should carry the table")
	}
}

func TestNew_Errors(t *testing.T) {
	if _, err := New("", Options{}); err == nil {
		t.Error("New(\"\") should fail")
	}

	if _, err := New(filepath.Join(t.TempDir(), "missing.csv"), Options{}); err == nil {
		t.Error("New() should fail for a missing file")
	}

	empty := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(empty, nil, 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := New(empty, Options{}); err == nil {
		t.Error("New() should fail for an empty file")
	}
}

func TestReload(t *testing.T) {
	svc, path := newTestService(t, false)
	first := svc.Table()

	writeCSV(t, path, "2024/03/05,08:00:00,70", "2024/03/05,09:00:00,75")
	table, err := svc.Reload()
	if err != nil {
		t.Fatalf("Reload() failed: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Errorf("rows = %d, want 2", len(table.Rows))
	}
	if svc.Table() != table {
		t.Error("Table() should return the reloaded table")
	}
	if len(first.Rows) != 1 {
		t.Error("previous table must not be modified by a reload")
	}
}

func TestReload_KeepsPreviousOnError(t *testing.T) {
	svc, path := newTestService(t, false)
	first := svc.Table()

	if err := os.WriteFile(path, []byte("a,b\n1,2,3\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := svc.Reload(); err == nil {
		t.Fatal("Reload() should fail for a ragged file")
	}
	if svc.Table() != first {
		t.Error("Table() should keep the previous table after a failed reload")
	}
}

func TestWatch_DetectsChange(t *testing.T) {
	svc, path := newTestService(t, true)
	waitForEvent(t, svc, EventDatasetLoaded)

	writeCSV(t, path, "2024/03/05,08:00:00,70", "2024/03/06,08:00:00,90")

	ev := waitForEvent(t, svc, EventDatasetChanged)
	if ev.Table == nil || len(ev.Table.Rows) != 2 {
		t.Fatalf("changed event table = %+v, want 2 rows", ev.Table)
	}
}

func TestClose_Idempotent(t *testing.T) {
	svc, _ := newTestService(t, true)
	if err := svc.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if err := svc.Close(); err != nil {
		t.Errorf("second Close() failed: %v", err)
	}
}
