// Package aggregate reduces an observation series to per-day summaries and run scalars.
package aggregate

import (
	"math"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/j-veylop/shaker-dashboard-tui/internal/logger"
	"github.com/j-veylop/shaker-dashboard-tui/internal/models"
)

const (
	// ParallelThreshold is the number of date groups above which Daily fans out.
	ParallelThreshold = 64

	// maxWorkers caps concurrent date groups.
	maxWorkers = 8

	MinThreshold = 0.0
	MaxThreshold = 100.0
)

// accumulator collects present values of one column.
type accumulator struct {
	sum   float64
	min   float64
	max   float64
	count int
}

func (a *accumulator) add(m models.Measure) {
	v, ok := m.Get()
	if !ok {
		return
	}
	if a.count == 0 || v < a.min {
		a.min = v
	}
	if a.count == 0 || v > a.max {
		a.max = v
	}
	a.sum += v
	a.count++
}

func (a *accumulator) mean() models.Measure {
	if a.count == 0 {
		return models.None()
	}
	return models.Some(a.sum / float64(a.count))
}

func (a *accumulator) minimum() models.Measure {
	if a.count == 0 {
		return models.None()
	}
	return models.Some(a.min)
}

func (a *accumulator) maximum() models.Measure {
	if a.count == 0 {
		return models.None()
	}
	return models.Some(a.max)
}

type group struct {
	date models.Date
	obs  []models.Observation
}

// groupByDate splits a series into date groups in ascending date order.
// The input does not need to be sorted.
func groupByDate(obs []models.Observation) []group {
	index := make(map[models.Date]int)
	var groups []group
	for _, o := range obs {
		i, ok := index[o.Date]
		if !ok {
			i = len(groups)
			index[o.Date] = i
			groups = append(groups, group{date: o.Date})
		}
		groups[i].obs = append(groups[i].obs, o)
	}

	slices.SortStableFunc(groups, func(a, b group) int {
		return a.date.Time().Compare(b.date.Time())
	})
	return groups
}

func summarize(g group, threshold float64) models.DailySummary {
	var util, flow, shaker3 accumulator
	for i := range g.obs {
		util.add(g.obs[i].Utilization)
		flow.add(g.obs[i].FlowRate)
		shaker3.add(g.obs[i].Shaker3)
	}

	avgUtil := util.mean()
	return models.DailySummary{
		Date:             g.date,
		AvgUtilization:   avgUtil,
		AvgFlow:          flow.mean(),
		AvgShaker3:       shaker3.mean(),
		MinShaker3:       shaker3.minimum(),
		MaxShaker3:       shaker3.maximum(),
		Observations:     len(g.obs),
		ExceedsThreshold: avgUtil.GreaterThan(threshold),
	}
}

// ValidateThreshold reports whether threshold is a usable percentage.
func ValidateThreshold(threshold float64) error {
	if math.IsNaN(threshold) || threshold < MinThreshold || threshold > MaxThreshold {
		return &models.ConfigError{Field: "util_threshold", Value: threshold, Reason: "must be between 0 and 100"}
	}
	return nil
}

// Daily returns one summary per distinct date, ascending.
// Every observation lands in exactly one summary.
func Daily(obs []models.Observation, threshold float64) ([]models.DailySummary, error) {
	if err := ValidateThreshold(threshold); err != nil {
		return nil, err
	}

	groups := groupByDate(obs)
	out := make([]models.DailySummary, len(groups))

	if len(groups) <= ParallelThreshold {
		for i, g := range groups {
			out[i] = summarize(g, threshold)
		}
		return out, nil
	}

	logger.Debug("aggregating in parallel", "groups", len(groups), "workers", maxWorkers)

	var eg errgroup.Group
	eg.SetLimit(maxWorkers)
	for i, g := range groups {
		eg.Go(func() error {
			out[i] = summarize(g, threshold)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Overall reduces the whole series. Absent values are skipped; an all-absent column stays absent.
func Overall(obs []models.Observation) models.RunScalars {
	var util, flow, shaker3 accumulator
	for i := range obs {
		util.add(obs[i].Utilization)
		flow.add(obs[i].FlowRate)
		shaker3.add(obs[i].Shaker3)
	}
	return models.RunScalars{
		AvgUtilization: util.mean(),
		AvgFlow:        flow.mean(),
		MaxShaker3:     shaker3.maximum(),
	}
}
