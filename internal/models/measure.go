// Package models defines data structures and domain types.
package models

import (
	"math"
	"strconv"
)

// Measure is an optional numeric reading. The zero value is absent.
// Absent measures are excluded from means and maxima, never read as zero.
type Measure struct {
	Value float64
	Valid bool
}

// Some returns a present measure holding v.
func Some(v float64) Measure {
	return Measure{Value: v, Valid: true}
}

// None returns an absent measure.
func None() Measure {
	return Measure{}
}

// Get returns the value and whether it is present.
func (m Measure) Get() (float64, bool) {
	return m.Value, m.Valid
}

// Or returns the value if present, otherwise def.
func (m Measure) Or(def float64) float64 {
	if !m.Valid {
		return def
	}
	return m.Value
}

// Float returns the value, or NaN when absent.
func (m Measure) Float() float64 {
	if !m.Valid {
		return math.NaN()
	}
	return m.Value
}

// GreaterThan reports whether the measure is present and strictly above limit.
func (m Measure) GreaterThan(limit float64) bool {
	return m.Valid && m.Value > limit
}

// Format renders the value with prec decimals, or "n/a" when absent.
func (m Measure) Format(prec int) string {
	if !m.Valid {
		return "n/a"
	}
	return strconv.FormatFloat(m.Value, 'f', prec, 64)
}

// String implements fmt.Stringer.
func (m Measure) String() string {
	return m.Format(1)
}
