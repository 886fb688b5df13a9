// Package main is the entry point for the shaker health dashboard.
// It loads configuration, starts the services and runs the Bubble Tea program.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/shaker-dashboard-tui/internal/app"
	"github.com/j-veylop/shaker-dashboard-tui/internal/config"
	"github.com/j-veylop/shaker-dashboard-tui/internal/logger"
	"github.com/j-veylop/shaker-dashboard-tui/internal/services"
	"github.com/j-veylop/shaker-dashboard-tui/internal/ui/tabs/charts"
	"github.com/j-veylop/shaker-dashboard-tui/internal/ui/tabs/daily"
	"github.com/j-veylop/shaker-dashboard-tui/internal/ui/tabs/dashboard"
	"github.com/j-veylop/shaker-dashboard-tui/internal/ui/tabs/data"
	"github.com/j-veylop/shaker-dashboard-tui/internal/ui/tabs/info"
	"github.com/j-veylop/shaker-dashboard-tui/internal/version"
)

func main() {
	var dataPath string
	if len(os.Args) > 1 {
		switch arg := os.Args[1]; arg {
		case "-v", "--version":
			fmt.Println(version.Info())
			os.Exit(0)
		case "-h", "--help":
			printUsage()
			os.Exit(0)
		default:
			dataPath = arg
		}
	}

	if err := run(dataPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run wires configuration, logging, services and tabs, then blocks until the TUI exits.
func run(dataPath string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if dataPath != "" {
		cfg.DataPath = dataPath
	}
	if cfg.DataPath == "" {
		return fmt.Errorf("no dataset given: pass a CSV path or set %s", config.EnvDataPath)
	}

	// The TUI owns the terminal, so logs go to a file.
	closeLog, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	logger.Info("starting", "version", version.Info(), "data", cfg.DataPath)

	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	model := app.NewModel(svcManager)

	state := model.GetState()
	model.SetTabs([]app.Tab{
		dashboard.New(state),
		charts.New(state),
		daily.New(state),
		data.New(state),
		info.New(state, cfg),
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// setupLogging points the logger at cfg.LogFile and returns a func closing it.
func setupLogging(cfg *config.Config) (func(), error) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", config.EnvLogLevel, err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger.SetOutput(f, level)
	return func() { _ = f.Close() }, nil
}

// printUsage prints the command-line usage information.
func printUsage() {
	fmt.Println(`Shaker Dashboard - shale shaker screen utilization and maintenance advisory

Usage:
  shakerdash [flags] [dataset.csv]

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information

Keyboard Shortcuts:
  1-5             Switch tabs (Dashboard, Charts, Daily, Data, Info)
  Tab/Shift+Tab   Navigate between tabs
  j/k, Up/Down    Scroll or move the table cursor
  m               Cycle mesh type
  +/-             Adjust the utilization threshold (50-100)
  r               Re-run the analysis
  e               Export the last report to SQLite
  ?               Toggle help
  q, Ctrl+C       Quit

Environment Variables:
  SHAKER_DATA_PATH         Dataset CSV (overridden by the positional argument)
  SHAKER_MESH_TYPE         Mesh type: API 100, API 140, API 170, API 200 (default: API 140)
  SHAKER_UTIL_THRESHOLD    Utilization threshold in percent (default: 80)
  SHAKER_DATE_COLUMN       Date column header (default: YYYY/MM/DD)
  SHAKER_TIME_COLUMN       Time column header (default: HH:MM:SS)
  SHAKER_EXPORT_PATH       SQLite export file
  SHAKER_WATCH             Re-run when the dataset changes (default: true)
  SHAKER_NOTIFY            Desktop notification when the advisory escalates (default: true)
  SHAKER_RELOAD_DEBOUNCE   Delay before re-reading a changed dataset (default: 500ms)
  SHAKER_PROFILE           YAML run profile applied before the variables above
  LOG_FILE                 Log file (default: ~/.config/shaker-dashboard/shakerdash.log)
  LOG_LEVEL                debug, info, warn or error (default: info)

Configuration:
  The application looks for .env files in the following locations:
  - Current directory
  - ~/.config/shaker-dashboard/.env
  - ~/.shaker/.env
  - Parent and grandparent directories`)
}
