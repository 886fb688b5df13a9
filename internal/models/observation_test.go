package models

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestFieldSet(t *testing.T) {
	s := NewFieldSet(FieldShaker3, FieldFlowRate)

	if !s.Has(FieldShaker3) || !s.Has(FieldFlowRate) {
		t.Errorf("set %v should contain shaker 3 and flow", s)
	}
	if s.Has(FieldUtilization) {
		t.Error("set should not contain utilization")
	}
	if s.HasAll(FieldShaker3, FieldFlowRate, FieldUtilization) {
		t.Error("HasAll should be false when one field is missing")
	}

	s = s.With(FieldUtilization)
	if !s.HasAll(FieldShaker3, FieldFlowRate, FieldUtilization) {
		t.Error("HasAll should be true after With")
	}

	missing := NewFieldSet(FieldShaker1).Missing(FieldShaker1, FieldShaker2, FieldShaker3)
	if len(missing) != 2 || missing[0] != FieldShaker2 || missing[1] != FieldShaker3 {
		t.Errorf("Missing() = %v, want [shaker2 shaker3]", missing)
	}
}

func TestFieldSet_String(t *testing.T) {
	got := NewFieldSet(FieldFlowRate, FieldShaker1).String()
	want := "[" + ColumnShaker1 + ", " + ColumnFlowRate + "]"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestDate(t *testing.T) {
	late := time.Date(2024, 3, 5, 23, 59, 59, 0, time.FixedZone("X", -7*3600))
	d := DateOf(late)
	if d != (Date{Year: 2024, Month: time.March, Day: 5}) {
		t.Errorf("DateOf() = %v, want wall-clock 2024-03-05", d)
	}
	if d.String() != "2024-03-05" {
		t.Errorf("String() = %q", d.String())
	}

	tests := []struct {
		name string
		a, b Date
		want bool
	}{
		{"EarlierYear", Date{2023, 12, 31}, Date{2024, 1, 1}, true},
		{"EarlierMonth", Date{2024, 1, 31}, Date{2024, 2, 1}, true},
		{"EarlierDay", Date{2024, 2, 1}, Date{2024, 2, 2}, true},
		{"Same", Date{2024, 2, 1}, Date{2024, 2, 1}, false},
		{"Later", Date{2024, 2, 2}, Date{2024, 2, 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Before(tt.b); got != tt.want {
				t.Errorf("%v.Before(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestObservation_GetSet(t *testing.T) {
	var o Observation
	for i, f := range append(InputFields, FieldSolidsRate) {
		o.Set(f, Some(float64(i)))
	}
	for i, f := range append(InputFields, FieldSolidsRate) {
		if v, ok := o.Get(f).Get(); !ok || v != float64(i) {
			t.Errorf("Get(%v) = %v, %v; want %d", f, v, ok, i)
		}
	}
	if o.Get(Field(99)).Valid {
		t.Error("unknown field should be absent")
	}
}

func TestUtilizationSource_String(t *testing.T) {
	tests := []struct {
		src  UtilizationSource
		want string
	}{
		{UtilizationUnavailable, "unavailable"},
		{UtilizationSupplied, "supplied"},
		{UtilizationDerived, "derived"},
		{UtilizationSource(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.src.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestErrors(t *testing.T) {
	pe := &ParseError{Row: 3, Column: "timestamp", Value: "bad", Err: errors.New("boom")}
	if !strings.Contains(pe.Error(), "row 3") || !strings.Contains(pe.Error(), `"bad"`) {
		t.Errorf("ParseError.Error() = %q", pe.Error())
	}
	if !errors.Is(&ParseError{Row: -1, Column: "HH:MM:SS", Err: ErrColumnNotFound}, ErrColumnNotFound) {
		t.Error("ParseError should unwrap to ErrColumnNotFound")
	}

	mf := MissingFieldError{Metric: MetricFlowChart, Fields: []Field{FieldFlowRate}}
	if mf.Error() != "flow rate chart omitted: missing "+ColumnFlowRate {
		t.Errorf("MissingFieldError.Error() = %q", mf.Error())
	}

	ce := &ConfigError{Field: "util_threshold", Value: 120, Reason: "must be within [50, 100]"}
	if ce.Error() != "invalid util_threshold 120: must be within [50, 100]" {
		t.Errorf("ConfigError.Error() = %q", ce.Error())
	}
}

func TestTier(t *testing.T) {
	tests := []struct {
		tier  Tier
		name  string
		label string
		alert bool
	}{
		{TierInsufficient, "Insufficient", "Insufficient", false},
		{TierNormal, "Normal", "Normal", false},
		{TierHighThroughput, "HighThroughput", "High Throughput", true},
		{TierOverload, "Overload", "Overload", true},
		{Tier(42), "Unknown", "Unknown", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tier.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			if got := tt.tier.Label(); got != tt.label {
				t.Errorf("Label() = %q, want %q", got, tt.label)
			}
			if got := tt.tier.IsAlert(); got != tt.alert {
				t.Errorf("IsAlert() = %v, want %v", got, tt.alert)
			}
		})
	}
}
