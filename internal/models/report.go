package models

import "time"

// Report is the full output of one pipeline run.
type Report struct {
	CreatedAt         time.Time
	RunID             string
	Source            string
	Columns           []string
	Mesh              MeshConfig
	Observations      []Observation
	Daily             []DailySummary
	Omissions         []MissingFieldError
	Advisory          AdvisoryResult
	Scalars           RunScalars
	Threshold         float64
	Available         FieldSet
	UtilizationSource UtilizationSource
}

// HasData returns true if the run produced any observations.
func (r *Report) HasData() bool {
	return len(r.Observations) > 0
}

// Series returns the present values of f in time order together with their timestamps.
func (r *Report) Series(f Field) ([]time.Time, []float64) {
	var times []time.Time
	var values []float64
	for i := range r.Observations {
		if v, ok := r.Observations[i].Get(f).Get(); ok {
			times = append(times, r.Observations[i].Timestamp)
			values = append(values, v)
		}
	}
	return times, values
}

// FlowSeries returns the present flow rate values in time order.
func (r *Report) FlowSeries() []float64 {
	_, values := r.Series(FieldFlowRate)
	return values
}

// ShakerSeries returns the present values of the three shaker channels.
func (r *Report) ShakerSeries() (s1, s2, s3 []float64) {
	_, s1 = r.Series(FieldShaker1)
	_, s2 = r.Series(FieldShaker2)
	_, s3 = r.Series(FieldShaker3)
	return s1, s2, s3
}

// ExceedingDays returns the number of daily summaries flagged above the threshold.
func (r *Report) ExceedingDays() int {
	n := 0
	for _, d := range r.Daily {
		if d.ExceedsThreshold {
			n++
		}
	}
	return n
}

// Omitted returns the omission recorded for metric, if any.
func (r *Report) Omitted(metric string) (MissingFieldError, bool) {
	for _, o := range r.Omissions {
		if o.Metric == metric {
			return o, true
		}
	}
	return MissingFieldError{}, false
}

// Span returns the first and last observation timestamps.
func (r *Report) Span() (first, last time.Time) {
	if len(r.Observations) == 0 {
		return time.Time{}, time.Time{}
	}
	return r.Observations[0].Timestamp, r.Observations[len(r.Observations)-1].Timestamp
}

// Metrics that are omitted from a report when their inputs are absent.
const (
	MetricUtilization  = "screen utilization"
	MetricShakerChart  = "shaker output chart"
	MetricFlowChart    = "flow rate chart"
	MetricShaker3Daily = "daily SHAKER #3 statistics"
)
