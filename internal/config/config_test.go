package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/j-veylop/shaker-dashboard-tui/internal/models"
)

// isolate points HOME and the working directory at an empty temp dir so no
// stray .env file is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	t.Chdir(tmpDir)
	for _, key := range []string{
		EnvDataPath, EnvMeshType, EnvUtilThreshold, EnvDateColumn, EnvTimeColumn,
		EnvExportPath, EnvWatch, EnvNotify, EnvReloadDebounce, EnvProfile, EnvLogFile, EnvLogLevel,
	} {
		t.Setenv(key, "")
	}
	return tmpDir
}

func TestGetEnvString(t *testing.T) {
	key := "TEST_ENV_STRING"
	val := "test_value"
	t.Setenv(key, val)

	if got := getEnvString(key, "default"); got != val {
		t.Errorf("getEnvString() = %q, want %q", got, val)
	}

	if got := getEnvString("NON_EXISTENT", "default"); got != "default" {
		t.Errorf("getEnvString() = %q, want %q", got, "default")
	}
}

func TestGetEnvDuration(t *testing.T) {
	key := "TEST_ENV_DURATION"

	tests := []struct {
		name       string
		envVal     string
		defaultVal time.Duration
		want       time.Duration
	}{
		{"ValidDuration", "1m", time.Second, time.Minute},
		{"ValidSeconds", "60", time.Second, 60 * time.Second},
		{"Invalid", "invalid", time.Second, time.Second},
		{"Empty", "", time.Second, time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(key, tt.envVal)
			if got := getEnvDuration(key, tt.defaultVal); got != tt.want {
				t.Errorf("getEnvDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_ENV_BOOL"

	tests := []struct {
		name       string
		envVal     string
		defaultVal bool
		want       bool
	}{
		{"True", "true", false, true},
		{"Zero", "0", true, false},
		{"Invalid", "maybe", true, true},
		{"Empty", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(key, tt.envVal)
			if got := getEnvBool(key, tt.defaultVal); got != tt.want {
				t.Errorf("getEnvBool() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnsureDir(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "dir")

	if err := ensureDir(path); err != nil {
		t.Fatalf("ensureDir() failed: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("directory was not created")
	}

	if err := ensureDir(""); err != nil {
		t.Error("ensureDir(\"\") should not error")
	}
}

func TestGetEnvPaths(t *testing.T) {
	paths := getEnvPaths()
	if len(paths) == 0 {
		t.Error("getEnvPaths() returned empty list")
	}

	// Basic check that it contains current directory
	cwd, _ := os.Getwd()
	found := false
	for _, p := range paths {
		if p == filepath.Join(cwd, ".env") {
			found = true
			break
		}
	}
	if !found {
		t.Error("getEnvPaths() missing current directory .env")
	}
}

func TestLoad_Defaults(t *testing.T) {
	tmpDir := isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.MeshType != "API 140" {
		t.Errorf("MeshType = %q, want API 140", cfg.MeshType)
	}
	if cfg.UtilThreshold != 80 {
		t.Errorf("UtilThreshold = %v, want 80", cfg.UtilThreshold)
	}
	if cfg.DateColumn != models.DefaultDateColumn || cfg.TimeColumn != models.DefaultTimeColumn {
		t.Errorf("columns = %q/%q", cfg.DateColumn, cfg.TimeColumn)
	}
	if !cfg.Watch || !cfg.Notify {
		t.Error("Watch and Notify should default to true")
	}
	if cfg.ReloadDebounce != defaultReloadDebounce {
		t.Errorf("ReloadDebounce = %v, want %v", cfg.ReloadDebounce, defaultReloadDebounce)
	}
	wantExport := filepath.Join(tmpDir, ".config", appDirName, "shaker-report.db")
	if cfg.ExportPath != wantExport {
		t.Errorf("ExportPath = %q, want %q", cfg.ExportPath, wantExport)
	}
	if _, err := os.Stat(filepath.Dir(wantExport)); err != nil {
		t.Errorf("export directory not created: %v", err)
	}
}

func TestLoad_Env(t *testing.T) {
	tmpDir := isolate(t)
	t.Setenv(EnvMeshType, "API 200")
	t.Setenv(EnvUtilThreshold, "90")
	t.Setenv(EnvWatch, "false")
	t.Setenv(EnvDataPath, "/data/rig.csv")
	t.Setenv(EnvExportPath, filepath.Join(tmpDir, "out", "report.db"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	mesh, err := cfg.Mesh()
	if err != nil {
		t.Fatalf("Mesh() failed: %v", err)
	}
	if mesh.Capacity != 120 {
		t.Errorf("Capacity = %v, want 120", mesh.Capacity)
	}
	if cfg.UtilThreshold != 90 {
		t.Errorf("UtilThreshold = %v, want 90", cfg.UtilThreshold)
	}
	if cfg.Watch {
		t.Error("Watch should be false")
	}
	if cfg.DataPath != "/data/rig.csv" {
		t.Errorf("DataPath = %q", cfg.DataPath)
	}
}

func TestLoad_WithEnvFile(t *testing.T) {
	tmpDir := isolate(t)
	envPath := filepath.Join(tmpDir, ".env")
	content := "SHAKER_MESH_TYPE=API 170\nSHAKER_UTIL_THRESHOLD=70"
	if err := os.WriteFile(envPath, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	// godotenv does not override variables that are already set, even if empty.
	os.Unsetenv(EnvMeshType)
	os.Unsetenv(EnvUtilThreshold)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.MeshType != "API 170" {
		t.Errorf("MeshType = %q, want API 170", cfg.MeshType)
	}
	if cfg.UtilThreshold != 70 {
		t.Errorf("UtilThreshold = %v, want 70", cfg.UtilThreshold)
	}
}

func TestLoad_Profile(t *testing.T) {
	tmpDir := isolate(t)
	profilePath := filepath.Join(tmpDir, "rig.yaml")
	content := `
data_path: /rigs/alpha.csv
mesh_type: API 100
util_threshold: 65
columns:
  date: Date
  time: Time
`
	if err := os.WriteFile(profilePath, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	t.Setenv(EnvProfile, profilePath)
	// Environment wins over the profile.
	t.Setenv(EnvUtilThreshold, "75")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.ProfilePath != profilePath {
		t.Errorf("ProfilePath = %q", cfg.ProfilePath)
	}
	if cfg.DataPath != "/rigs/alpha.csv" {
		t.Errorf("DataPath = %q", cfg.DataPath)
	}
	if cfg.MeshType != "API 100" {
		t.Errorf("MeshType = %q, want API 100", cfg.MeshType)
	}
	if cfg.UtilThreshold != 75 {
		t.Errorf("UtilThreshold = %v, want 75 from env", cfg.UtilThreshold)
	}
	if cfg.DateColumn != "Date" || cfg.TimeColumn != "Time" {
		t.Errorf("columns = %q/%q, want Date/Time", cfg.DateColumn, cfg.TimeColumn)
	}
}

func TestLoad_BadProfile(t *testing.T) {
	tmpDir := isolate(t)

	t.Setenv(EnvProfile, filepath.Join(tmpDir, "missing.yaml"))
	if _, err := Load(); err == nil {
		t.Error("Load() should fail for a missing profile")
	}

	bad := filepath.Join(tmpDir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("mesh_type: [unclosed"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	t.Setenv(EnvProfile, bad)
	if _, err := Load(); err == nil {
		t.Error("Load() should fail for malformed YAML")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		field string
	}{
		{"UnknownMesh", EnvMeshType, "API 999", "mesh_type"},
		{"ThresholdTooLow", EnvUtilThreshold, "40", "util_threshold"},
		{"ThresholdTooHigh", EnvUtilThreshold, "101", "util_threshold"},
		{"ThresholdNotNumber", EnvUtilThreshold, "eighty", EnvUtilThreshold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			var cfgErr *models.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Load() error = %v, want *models.ConfigError", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tt.field)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}

	cfg.DateColumn = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject an empty date column")
	}

	cfg = Default()
	cfg.ReloadDebounce = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject a zero debounce")
	}
}

func TestClampThreshold(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{49, 50},
		{50, 50},
		{80, 80},
		{100, 100},
		{101, 100},
	}
	for _, tt := range tests {
		if got := ClampThreshold(tt.in); got != tt.want {
			t.Errorf("ClampThreshold(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
