// Package models defines data structures and domain types.
package models

import (
	"fmt"
	"strings"
	"time"
)

// Input column headers understood by the normalizer.
const (
	ColumnShaker1     = "SHAKER #1 (Units)"
	ColumnShaker2     = "SHAKER #2 (Units)"
	ColumnShaker3     = "SHAKER #3 (PERCENT)"
	ColumnWeightOnBit = "Weight on Bit (klbs)"
	ColumnFlowRate    = "MA_Flow_Rate (gal/min)"
	ColumnUtilization = "Screen Utilization (%)"
	ColumnSolidsRate  = "Solids Volume Rate (gpm)"

	DefaultDateColumn = "YYYY/MM/DD"
	DefaultTimeColumn = "HH:MM:SS"
)

// Field identifies an optional numeric field of an Observation.
type Field int

const (
	FieldShaker1 Field = iota
	FieldShaker2
	FieldShaker3
	FieldWeightOnBit
	FieldFlowRate
	FieldUtilization
	FieldSolidsRate
)

// InputFields lists the fields that may be read from a dataset, in column order.
// FieldSolidsRate is derived only and never read.
var InputFields = []Field{
	FieldShaker1,
	FieldShaker2,
	FieldShaker3,
	FieldWeightOnBit,
	FieldFlowRate,
	FieldUtilization,
}

// Column returns the input header for the field.
func (f Field) Column() string {
	switch f {
	case FieldShaker1:
		return ColumnShaker1
	case FieldShaker2:
		return ColumnShaker2
	case FieldShaker3:
		return ColumnShaker3
	case FieldWeightOnBit:
		return ColumnWeightOnBit
	case FieldFlowRate:
		return ColumnFlowRate
	case FieldUtilization:
		return ColumnUtilization
	case FieldSolidsRate:
		return ColumnSolidsRate
	default:
		return "Unknown"
	}
}

// String returns the column header.
func (f Field) String() string {
	return f.Column()
}

// FieldSet is a set of fields.
type FieldSet uint16

// NewFieldSet returns a set holding the given fields.
func NewFieldSet(fields ...Field) FieldSet {
	var s FieldSet
	for _, f := range fields {
		s = s.With(f)
	}
	return s
}

// Has reports whether f is in the set.
func (s FieldSet) Has(f Field) bool {
	return s&(1<<uint(f)) != 0
}

// HasAll reports whether every field is in the set.
func (s FieldSet) HasAll(fields ...Field) bool {
	for _, f := range fields {
		if !s.Has(f) {
			return false
		}
	}
	return true
}

// With returns a copy of the set including f.
func (s FieldSet) With(f Field) FieldSet {
	return s | (1 << uint(f))
}

// Missing returns the fields from want that are not in the set.
func (s FieldSet) Missing(want ...Field) []Field {
	var missing []Field
	for _, f := range want {
		if !s.Has(f) {
			missing = append(missing, f)
		}
	}
	return missing
}

// String lists the set's column headers.
func (s FieldSet) String() string {
	var names []string
	for f := FieldShaker1; f <= FieldSolidsRate; f++ {
		if s.Has(f) {
			names = append(names, f.Column())
		}
	}
	return "[" + strings.Join(names, ", ") + "]"
}

// Date is a calendar date with no time or zone component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the wall-clock calendar date of t.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// RawRow is one input record keyed by column header.
type RawRow map[string]string

// Table is a raw tabular dataset as handed over by the input boundary.
type Table struct {
	Source  string
	Columns []string
	Rows    []RawRow
}

// HasColumn reports whether the table header contains name.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Observation is one normalized sensor sample.
type Observation struct {
	Timestamp   time.Time
	Date        Date
	Row         int // index of the source row
	Shaker1     Measure
	Shaker2     Measure
	Shaker3     Measure
	WeightOnBit Measure
	FlowRate    Measure
	Utilization Measure
	SolidsRate  Measure
}

// Get returns the measure for f.
func (o *Observation) Get(f Field) Measure {
	switch f {
	case FieldShaker1:
		return o.Shaker1
	case FieldShaker2:
		return o.Shaker2
	case FieldShaker3:
		return o.Shaker3
	case FieldWeightOnBit:
		return o.WeightOnBit
	case FieldFlowRate:
		return o.FlowRate
	case FieldUtilization:
		return o.Utilization
	case FieldSolidsRate:
		return o.SolidsRate
	default:
		return None()
	}
}

// Set stores m as the measure for f.
func (o *Observation) Set(f Field, m Measure) {
	switch f {
	case FieldShaker1:
		o.Shaker1 = m
	case FieldShaker2:
		o.Shaker2 = m
	case FieldShaker3:
		o.Shaker3 = m
	case FieldWeightOnBit:
		o.WeightOnBit = m
	case FieldFlowRate:
		o.FlowRate = m
	case FieldUtilization:
		o.Utilization = m
	case FieldSolidsRate:
		o.SolidsRate = m
	}
}

// UtilizationSource records where a dataset's screen utilization comes from.
// Exactly one source holds per dataset.
type UtilizationSource int

const (
	// UtilizationUnavailable means no utilization is supplied and it cannot be derived.
	UtilizationUnavailable UtilizationSource = iota
	// UtilizationSupplied means the input carried a utilization column with values.
	UtilizationSupplied
	// UtilizationDerived means utilization was computed from weight on bit and flow rate.
	UtilizationDerived
)

// String returns the display name for the source.
func (u UtilizationSource) String() string {
	switch u {
	case UtilizationUnavailable:
		return "unavailable"
	case UtilizationSupplied:
		return "supplied"
	case UtilizationDerived:
		return "derived"
	default:
		return "unknown"
	}
}

// Dataset is the canonical, time-ordered series produced by normalization.
type Dataset struct {
	Observations      []Observation
	Available         FieldSet
	UtilizationSource UtilizationSource
	Omissions         []MissingFieldError
}

// Omit records a metric that cannot be produced from this dataset.
func (d *Dataset) Omit(metric string, fields ...Field) {
	d.Omissions = append(d.Omissions, MissingFieldError{Metric: metric, Fields: fields})
}

// Len returns the number of observations.
func (d *Dataset) Len() int {
	return len(d.Observations)
}
