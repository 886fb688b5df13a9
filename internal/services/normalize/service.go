// Package normalize turns raw tabular rows into a canonical, time-ordered series.
package normalize

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/j-veylop/shaker-dashboard-tui/internal/logger"
	"github.com/j-veylop/shaker-dashboard-tui/internal/models"
)

// Options names the columns holding the date and time of each row.
type Options struct {
	DateColumn string
	TimeColumn string
}

// DefaultOptions returns the column names used by rig exports.
func DefaultOptions() Options {
	return Options{
		DateColumn: models.DefaultDateColumn,
		TimeColumn: models.DefaultTimeColumn,
	}
}

// timestampLayouts are tried in order against "<date> <time>".
// Single-digit month, day and hour layouts also accept zero padded input.
var timestampLayouts = []string{
	"2006/1/2 15:04:05",
	"2006/1/2 15:04",
	"2006-1-2 15:04:05",
	"2006-1-2 15:04",
	"2006-1-2T15:04:05",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
}

// missingTokens are cell values treated as blank.
var missingTokens = map[string]struct{}{
	"":     {},
	"na":   {},
	"n/a":  {},
	"nan":  {},
	"null": {},
	"none": {},
	"#n/a": {},
	"<na>": {},
}

var (
	errBadTimestamp = errors.New("unrecognized date/time format")
	errBadNumber    = errors.New("not a finite number")
)

// Normalize parses every row into an Observation and sorts them by timestamp.
// The first unparseable row aborts normalization with a *models.ParseError.
func Normalize(rows []models.RawRow, opts Options) (*models.Dataset, error) {
	if opts.DateColumn == "" || opts.TimeColumn == "" {
		return nil, &models.ConfigError{
			Field:  "date/time column",
			Value:  fmt.Sprintf("%q/%q", opts.DateColumn, opts.TimeColumn),
			Reason: "column names must not be empty",
		}
	}

	ds := &models.Dataset{
		Observations: make([]models.Observation, 0, len(rows)),
	}

	for i, row := range rows {
		obs, err := parseRow(i, row, opts)
		if err != nil {
			return nil, err
		}
		for _, f := range models.InputFields {
			if obs.Get(f).Valid {
				ds.Available = ds.Available.With(f)
			}
		}
		ds.Observations = append(ds.Observations, obs)
	}

	slices.SortStableFunc(ds.Observations, func(a, b models.Observation) int {
		return a.Timestamp.Compare(b.Timestamp)
	})

	if ds.Available.Has(models.FieldUtilization) {
		ds.UtilizationSource = models.UtilizationSupplied
	}

	logger.Debug("normalized dataset",
		"rows", len(ds.Observations),
		"available", ds.Available.String(),
		"utilization", ds.UtilizationSource.String())

	return ds, nil
}

func parseRow(idx int, row models.RawRow, opts Options) (models.Observation, error) {
	dateVal, ok := row[opts.DateColumn]
	if !ok {
		return models.Observation{}, &models.ParseError{Row: -1, Column: opts.DateColumn, Err: models.ErrColumnNotFound}
	}
	timeVal, ok := row[opts.TimeColumn]
	if !ok {
		return models.Observation{}, &models.ParseError{Row: -1, Column: opts.TimeColumn, Err: models.ErrColumnNotFound}
	}

	raw := strings.TrimSpace(dateVal) + " " + strings.TrimSpace(timeVal)
	ts, err := ParseTimestamp(raw)
	if err != nil {
		return models.Observation{}, &models.ParseError{
			Row:    idx,
			Column: opts.DateColumn + " + " + opts.TimeColumn,
			Value:  raw,
			Err:    err,
		}
	}

	obs := models.Observation{
		Timestamp: ts,
		Date:      models.DateOf(ts),
		Row:       idx,
	}

	for _, f := range models.InputFields {
		cell, ok := row[f.Column()]
		if !ok {
			continue
		}
		m, err := ParseMeasure(cell)
		if err != nil {
			return models.Observation{}, &models.ParseError{Row: idx, Column: f.Column(), Value: cell, Err: err}
		}
		obs.Set(f, m)
	}

	return obs, nil
}

// ParseTimestamp parses a combined "<date> <time>" value. The wall clock is kept as-is.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, errBadTimestamp
}

// ParseMeasure parses a numeric cell. Blank and NA-like cells are absent.
func ParseMeasure(cell string) (models.Measure, error) {
	cell = strings.TrimSpace(cell)
	if _, missing := missingTokens[strings.ToLower(cell)]; missing {
		return models.None(), nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return models.None(), errBadNumber
	}
	return models.Some(v), nil
}
