// Package config contains everything related to configuration
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/j-veylop/shaker-dashboard-tui/internal/models"
)

// Config holds the application configuration.
type Config struct {
	DataPath       string
	ExportPath     string
	MeshType       string
	DateColumn     string
	TimeColumn     string
	ProfilePath    string
	LogFile        string
	LogLevel       string
	UtilThreshold  float64
	ReloadDebounce time.Duration
	Watch          bool
	Notify         bool
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		ExportPath:     getDefaultExportPath(),
		MeshType:       string(models.DefaultMeshType),
		DateColumn:     models.DefaultDateColumn,
		TimeColumn:     models.DefaultTimeColumn,
		UtilThreshold:  defaultUtilThreshold,
		ReloadDebounce: defaultReloadDebounce,
		Watch:          true,
		Notify:         true,
	}
}

// Load reads configuration from .env files, the run profile and environment variables.
func Load() (*Config, error) {
	// Try loading .env from multiple locations
	envPaths := getEnvPaths()
	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := Default()

	if path := os.Getenv(EnvProfile); path != "" {
		profile, err := LoadProfile(path)
		if err != nil {
			return nil, err
		}
		profile.apply(cfg)
		cfg.ProfilePath = path
	}

	cfg.DataPath = getEnvString(EnvDataPath, cfg.DataPath)
	cfg.ExportPath = getEnvString(EnvExportPath, cfg.ExportPath)
	cfg.MeshType = getEnvString(EnvMeshType, cfg.MeshType)
	cfg.DateColumn = getEnvString(EnvDateColumn, cfg.DateColumn)
	cfg.TimeColumn = getEnvString(EnvTimeColumn, cfg.TimeColumn)
	cfg.LogFile = getEnvString(EnvLogFile, getDefaultLogPath())
	cfg.LogLevel = getEnvString(EnvLogLevel, "info")
	cfg.Watch = getEnvBool(EnvWatch, cfg.Watch)
	cfg.Notify = getEnvBool(EnvNotify, cfg.Notify)
	cfg.ReloadDebounce = getEnvDuration(EnvReloadDebounce, cfg.ReloadDebounce)

	threshold, err := getEnvFloat(EnvUtilThreshold, cfg.UtilThreshold)
	if err != nil {
		return nil, err
	}
	cfg.UtilThreshold = threshold

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Ensure export directory exists
	if err := ensureDir(filepath.Dir(cfg.ExportPath)); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports the first invalid setting as a *models.ConfigError.
func (c *Config) Validate() error {
	if _, err := c.Mesh(); err != nil {
		return err
	}
	if c.UtilThreshold < MinUtilThreshold || c.UtilThreshold > MaxUtilThreshold {
		return &models.ConfigError{Field: "util_threshold", Value: c.UtilThreshold, Reason: "must be between 50 and 100"}
	}
	if c.DateColumn == "" {
		return &models.ConfigError{Field: "date column", Value: `""`, Reason: "must not be empty"}
	}
	if c.TimeColumn == "" {
		return &models.ConfigError{Field: "time column", Value: `""`, Reason: "must not be empty"}
	}
	if c.ReloadDebounce <= 0 {
		return &models.ConfigError{Field: "reload debounce", Value: c.ReloadDebounce, Reason: "must be positive"}
	}
	return nil
}

// Mesh resolves the configured mesh type.
func (c *Config) Mesh() (models.MeshConfig, error) {
	return models.LookupMesh(c.MeshType)
}

// ClampThreshold keeps a threshold inside the adjustable range.
func ClampThreshold(v float64) float64 {
	return min(max(v, MinUtilThreshold), MaxUtilThreshold)
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	// Home directory locations
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", appDirName, ".env"),
			filepath.Join(home, ".shaker", ".env"),
		)
	}

	// Parent directories (useful for development)
	if cwd, err := os.Getwd(); err == nil {
		parent := filepath.Dir(cwd)
		paths = append(paths, filepath.Join(parent, ".env"))
		grandparent := filepath.Dir(parent)
		paths = append(paths, filepath.Join(grandparent, ".env"))
	}

	return paths
}

// getDefaultExportPath returns the default path for the SQLite export.
func getDefaultExportPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "shaker-report.db"
	}
	return filepath.Join(home, ".config", appDirName, "shaker-report.db")
}

// getDefaultLogPath returns the default log file used while the TUI owns the terminal.
func getDefaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "shakerdash.log"
	}
	return filepath.Join(home, ".config", appDirName, "shakerdash.log")
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns the default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvFloat retrieves a numeric environment variable. A malformed value is an error.
func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, &models.ConfigError{Field: key, Value: value, Reason: "not a number"}
	}
	return f, nil
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "30s", "1m", "500ms".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as seconds if no unit specified
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
