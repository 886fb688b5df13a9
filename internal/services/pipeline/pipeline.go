// Package pipeline runs one analysis over a table: normalize, derive, aggregate, advise.
package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/j-veylop/shaker-dashboard-tui/internal/logger"
	"github.com/j-veylop/shaker-dashboard-tui/internal/models"
	"github.com/j-veylop/shaker-dashboard-tui/internal/services/advisory"
	"github.com/j-veylop/shaker-dashboard-tui/internal/services/aggregate"
	"github.com/j-veylop/shaker-dashboard-tui/internal/services/derive"
	"github.com/j-veylop/shaker-dashboard-tui/internal/services/normalize"
)

// Params are the user-adjustable inputs of a run.
type Params struct {
	Options   normalize.Options
	Mesh      models.MeshConfig
	Threshold float64
}

// DefaultParams uses the default columns, API 140 mesh and an 80% threshold.
func DefaultParams() Params {
	mesh, _ := models.LookupMesh(string(models.DefaultMeshType))
	return Params{
		Options:   normalize.DefaultOptions(),
		Mesh:      mesh,
		Threshold: 80,
	}
}

// Validate checks the params before any rows are touched.
func (p Params) Validate() error {
	if err := p.Mesh.Validate(); err != nil {
		return err
	}
	return aggregate.ValidateThreshold(p.Threshold)
}

// displayRequirements lists the fields each optional display needs.
var displayRequirements = []struct {
	metric string
	fields []models.Field
}{
	{models.MetricShakerChart, []models.Field{models.FieldShaker1, models.FieldShaker2, models.FieldShaker3}},
	{models.MetricFlowChart, []models.Field{models.FieldFlowRate}},
	{models.MetricShaker3Daily, []models.Field{models.FieldShaker3}},
}

// Run analyzes table and returns a complete report.
// Any parse or config error aborts the run and no report is returned.
func Run(table *models.Table, params Params) (*models.Report, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if table == nil {
		return nil, fmt.Errorf("failed to run pipeline: no dataset loaded")
	}

	runID := uuid.New().String()
	log := logger.WithRun(runID)
	started := time.Now()

	ds, err := normalize.Normalize(table.Rows, params.Options)
	if err != nil {
		return nil, err
	}

	if err := derive.Derive(ds, params.Mesh); err != nil {
		return nil, err
	}

	for _, req := range displayRequirements {
		if missing := ds.Available.Missing(req.fields...); len(missing) > 0 {
			ds.Omit(req.metric, missing...)
		}
	}

	daily, err := aggregate.Daily(ds.Observations, params.Threshold)
	if err != nil {
		return nil, err
	}
	scalars := aggregate.Overall(ds.Observations)

	result := advisory.Evaluate(advisory.Inputs{Scalars: scalars, Available: ds.Available})

	for _, om := range ds.Omissions {
		log.Warn("metric omitted", "metric", om.Metric, "reason", om.Error())
	}

	report := &models.Report{
		CreatedAt:         started,
		RunID:             runID,
		Source:            table.Source,
		Columns:           table.Columns,
		Mesh:              params.Mesh,
		Observations:      ds.Observations,
		Daily:             daily,
		Omissions:         ds.Omissions,
		Advisory:          result,
		Scalars:           scalars,
		Threshold:         params.Threshold,
		Available:         ds.Available,
		UtilizationSource: ds.UtilizationSource,
	}

	log.Info("run complete",
		"source", table.Source,
		"rows", len(ds.Observations),
		"days", len(daily),
		"utilization", ds.UtilizationSource.String(),
		"advisory", result.Tier.String(),
		"took", time.Since(started))

	return report, nil
}
