package db

import (
	"context"
	"fmt"
)

// columnMigrations lists columns added after the first export format.
// Files written by earlier versions get them added with NULL values.
var columnMigrations = []struct {
	table  string
	column string
	ddl    string
}{
	{"daily_summaries", "min_shaker3", "ALTER TABLE daily_summaries ADD COLUMN min_shaker3 REAL"},
	{"runs", "omissions", "ALTER TABLE runs ADD COLUMN omissions TEXT"},
}

// migrate adds any missing columns to an existing export file.
func (db *DB) migrate() error {
	for _, m := range columnMigrations {
		exists, err := db.hasColumn(m.table, m.column)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if _, err := db.ExecContext(context.Background(), m.ddl); err != nil {
			return fmt.Errorf("failed to add %s.%s: %w", m.table, m.column, err)
		}
	}
	return nil
}

func (db *DB) hasColumn(table, column string) (bool, error) {
	var n int
	err := db.QueryRowContext(context.Background(),
		"SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?", table, column).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to inspect %s: %w", table, err)
	}
	return n > 0, nil
}
