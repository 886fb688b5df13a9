package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/j-veylop/shaker-dashboard-tui/internal/logger"
	"github.com/j-veylop/shaker-dashboard-tui/internal/models"
)

// ExportReport writes one report in a single transaction.
// Exporting the same run again replaces its rows.
func (db *DB) ExportReport(ctx context.Context, report *models.Report) error {
	if report == nil {
		return errors.New("failed to export report: no report")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin export: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := deleteRun(ctx, tx, report.RunID); err != nil {
		return err
	}
	if err := insertRun(ctx, tx, report); err != nil {
		return err
	}
	if err := insertObservations(ctx, tx, report); err != nil {
		return err
	}
	if err := insertDailySummaries(ctx, tx, report); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit export: %w", err)
	}

	logger.WithRun(report.RunID).Info("report exported",
		"path", db.path,
		"observations", len(report.Observations),
		"days", len(report.Daily))

	return nil
}

func deleteRun(ctx context.Context, tx *sql.Tx, runID string) error {
	for _, query := range []string{
		"DELETE FROM observations WHERE run_id = ?",
		"DELETE FROM daily_summaries WHERE run_id = ?",
		"DELETE FROM runs WHERE id = ?",
	} {
		if _, err := tx.ExecContext(ctx, query, runID); err != nil {
			return fmt.Errorf("failed to replace run %s: %w", runID, err)
		}
	}
	return nil
}

func insertRun(ctx context.Context, tx *sql.Tx, r *models.Report) error {
	query := `
		INSERT INTO runs (
			id, created_at, source, mesh_type, mesh_capacity, util_threshold,
			utilization_source, avg_utilization, avg_flow, max_shaker3,
			advisory_tier, advisory_message, omissions
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	omissions := make([]string, len(r.Omissions))
	for i, om := range r.Omissions {
		omissions[i] = om.Error()
	}

	_, err := tx.ExecContext(ctx, query,
		r.RunID,
		r.CreatedAt.Format(timeLayout),
		nullString(r.Source),
		string(r.Mesh.Type),
		r.Mesh.Capacity,
		r.Threshold,
		r.UtilizationSource.String(),
		nullFloat(r.Scalars.AvgUtilization),
		nullFloat(r.Scalars.AvgFlow),
		nullFloat(r.Scalars.MaxShaker3),
		r.Advisory.Tier.String(),
		r.Advisory.Message,
		nullString(strings.Join(omissions, "\n")),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

func insertObservations(ctx context.Context, tx *sql.Tx, r *models.Report) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO observations (
			run_id, source_row, timestamp, date, shaker1, shaker2, shaker3,
			weight_on_bit, flow_rate, utilization, solids_rate
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare observation insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range r.Observations {
		o := &r.Observations[i]
		_, err := stmt.ExecContext(ctx,
			r.RunID,
			o.Row,
			o.Timestamp.Format(timeLayout),
			o.Date.String(),
			nullFloat(o.Shaker1),
			nullFloat(o.Shaker2),
			nullFloat(o.Shaker3),
			nullFloat(o.WeightOnBit),
			nullFloat(o.FlowRate),
			nullFloat(o.Utilization),
			nullFloat(o.SolidsRate),
		)
		if err != nil {
			return fmt.Errorf("failed to insert observation for row %d: %w", o.Row, err)
		}
	}
	return nil
}

func insertDailySummaries(ctx context.Context, tx *sql.Tx, r *models.Report) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO daily_summaries (
			run_id, date, observations, avg_utilization, avg_flow,
			avg_shaker3, min_shaker3, max_shaker3, exceeds_threshold
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare summary insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, d := range r.Daily {
		_, err := stmt.ExecContext(ctx,
			r.RunID,
			d.Date.String(),
			d.Observations,
			nullFloat(d.AvgUtilization),
			nullFloat(d.AvgFlow),
			nullFloat(d.AvgShaker3),
			nullFloat(d.MinShaker3),
			nullFloat(d.MaxShaker3),
			boolToInt(d.ExceedsThreshold),
		)
		if err != nil {
			return fmt.Errorf("failed to insert summary for %s: %w", d.Date, err)
		}
	}
	return nil
}

// nullFloat maps an absent measure to SQL NULL.
func nullFloat(m models.Measure) sql.NullFloat64 {
	return sql.NullFloat64{Float64: m.Value, Valid: m.Valid}
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
