// Package db writes analysis reports to a SQLite file for external tools.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Register the sqlite driver.
	_ "modernc.org/sqlite"
)

// DB wraps the SQL database connection with application-specific methods.
type DB struct {
	*sql.DB
	path string
}

// New creates a new database connection and initializes the schema.
func New(path string) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Open database connection
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := sqlDB.PingContext(context.Background()); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := &DB{
		DB:   sqlDB,
		path: path,
	}

	// Configure database
	if err := db.configure(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	// Create schema
	if err := db.createSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	// Bring files from older versions up to date
	if err := db.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return db, nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// configure sets up database pragmas.
func (db *DB) configure() error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA temp_store=MEMORY",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(context.Background(), pragma); err != nil {
			return fmt.Errorf("failed to execute %s: %w", pragma, err)
		}
	}

	return nil
}

func (db *DB) createSchema() error {
	if err := db.createRunsTable(); err != nil {
		return err
	}
	if err := db.createObservationsTable(); err != nil {
		return err
	}
	return db.createDailySummariesTable()
}

func (db *DB) createRunsTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		source TEXT,
		mesh_type TEXT NOT NULL,
		mesh_capacity REAL NOT NULL,
		util_threshold REAL NOT NULL,
		utilization_source TEXT NOT NULL,
		avg_utilization REAL,
		avg_flow REAL,
		max_shaker3 REAL,
		advisory_tier TEXT NOT NULL,
		advisory_message TEXT NOT NULL,
		omissions TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
	`
	_, err := db.ExecContext(context.Background(), query)
	return err
}

func (db *DB) createObservationsTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS observations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		source_row INTEGER NOT NULL,
		timestamp DATETIME NOT NULL,
		date TEXT NOT NULL,
		shaker1 REAL,
		shaker2 REAL,
		shaker3 REAL,
		weight_on_bit REAL,
		flow_rate REAL,
		utilization REAL,
		solids_rate REAL
	);
	CREATE INDEX IF NOT EXISTS idx_observations_run ON observations(run_id, timestamp);
	`
	_, err := db.ExecContext(context.Background(), query)
	return err
}

func (db *DB) createDailySummariesTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS daily_summaries (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		date TEXT NOT NULL,
		observations INTEGER NOT NULL,
		avg_utilization REAL,
		avg_flow REAL,
		avg_shaker3 REAL,
		min_shaker3 REAL,
		max_shaker3 REAL,
		exceeds_threshold INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (run_id, date)
	);
	`
	_, err := db.ExecContext(context.Background(), query)
	return err
}

// Close closes the database connection gracefully.
func (db *DB) Close() error {
	// Checkpoint WAL before closing so the export is a single file
	_, _ = db.ExecContext(context.Background(), "PRAGMA wal_checkpoint(TRUNCATE)")
	return db.DB.Close()
}
