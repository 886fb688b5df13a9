// Package derive fills in screen utilization when the source data does not carry it.
package derive

import (
	"github.com/j-veylop/shaker-dashboard-tui/internal/logger"
	"github.com/j-veylop/shaker-dashboard-tui/internal/models"
)

// utilizationInputs are the fields derivation reads from every observation.
var utilizationInputs = []models.Field{models.FieldWeightOnBit, models.FieldFlowRate}

// SolidsRate estimates the solids volume rate in gpm from weight on bit and flow.
func SolidsRate(weightOnBit, flowRate float64) float64 {
	return weightOnBit * flowRate / 100
}

// Utilization converts a solids rate into a percentage of screen capacity.
func Utilization(solidsRate, capacity float64) float64 {
	return solidsRate / capacity * 100
}

// Derive computes utilization for every observation when the dataset lacks it.
//
// A dataset that already has utilization, supplied or derived, is left untouched,
// so calling Derive twice is the same as calling it once. When weight on bit or
// flow rate is unavailable the dataset records an omission and stays unchanged.
// Rows where either input is blank get absent solids rate and utilization.
func Derive(ds *models.Dataset, mesh models.MeshConfig) error {
	if err := mesh.Validate(); err != nil {
		return err
	}

	if ds.UtilizationSource != models.UtilizationUnavailable {
		return nil
	}

	if missing := ds.Available.Missing(utilizationInputs...); len(missing) > 0 {
		ds.Omit(models.MetricUtilization, missing...)
		logger.Debug("utilization not derived", "missing", models.NewFieldSet(missing...).String())
		return nil
	}

	derived := 0
	for i := range ds.Observations {
		obs := &ds.Observations[i]
		wob, okW := obs.WeightOnBit.Get()
		flow, okF := obs.FlowRate.Get()
		if !okW || !okF {
			obs.SolidsRate = models.None()
			obs.Utilization = models.None()
			continue
		}
		solids := SolidsRate(wob, flow)
		obs.SolidsRate = models.Some(solids)
		obs.Utilization = models.Some(Utilization(solids, mesh.Capacity))
		derived++
	}

	ds.UtilizationSource = models.UtilizationDerived
	ds.Available = ds.Available.With(models.FieldUtilization).With(models.FieldSolidsRate)

	logger.Debug("derived utilization",
		"mesh", string(mesh.Type),
		"capacity", mesh.Capacity,
		"rows", derived)

	return nil
}
