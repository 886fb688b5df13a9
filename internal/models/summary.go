package models

// DailySummary aggregates the observations of one calendar date.
// Absent averages mean the date had no value for that column.
type DailySummary struct {
	Date             Date
	AvgUtilization   Measure
	AvgFlow          Measure
	AvgShaker3       Measure
	MinShaker3       Measure
	MaxShaker3       Measure
	Observations     int
	ExceedsThreshold bool
}

// RunScalars are whole-run reductions over all observations.
type RunScalars struct {
	AvgUtilization Measure
	AvgFlow        Measure
	MaxShaker3     Measure
}
