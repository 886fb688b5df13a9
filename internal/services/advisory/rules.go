// Package advisory maps run scalars to a single maintenance advisory.
package advisory

import "github.com/j-veylop/shaker-dashboard-tui/internal/models"

// Fixed rule limits. They are independent of the display utilization threshold.
const (
	OverloadUtilization       = 85.0
	OverloadShaker3           = 95.0
	HighThroughputUtilization = 75.0
	HighThroughputFlow        = 600.0
)

const (
	MessageOverload       = "Likely overload - Recommend checking shaker alignment and replacing screens."
	MessageHighThroughput = "High mud throughput - Monitor cuttings return and check screens for blinding."
	MessageNormal         = "Conditions appear normal. Maintain standard checks."
	MessageInsufficient   = "Not enough features available for advisory. Upload full dataset."
)

// RequiredFields must all be available for any tier other than Insufficient.
var RequiredFields = []models.Field{
	models.FieldUtilization,
	models.FieldShaker3,
	models.FieldFlowRate,
}

// Inputs is what the rules look at.
type Inputs struct {
	Scalars   models.RunScalars
	Available models.FieldSet
}

// Rule is one row of the decision table.
type Rule struct {
	Match     func(Inputs) bool
	Condition string
	Message   string
	Tier      models.Tier
}

var rules = []Rule{
	{
		Tier:      models.TierInsufficient,
		Condition: "utilization, SHAKER #3 or flow rate unavailable",
		Message:   MessageInsufficient,
		Match: func(in Inputs) bool {
			if !in.Available.HasAll(RequiredFields...) {
				return true
			}
			s := in.Scalars
			return !s.AvgUtilization.Valid || !s.MaxShaker3.Valid || !s.AvgFlow.Valid
		},
	},
	{
		Tier:      models.TierOverload,
		Condition: "avg utilization > 85% and max SHAKER #3 > 95%",
		Message:   MessageOverload,
		Match: func(in Inputs) bool {
			return in.Scalars.AvgUtilization.GreaterThan(OverloadUtilization) &&
				in.Scalars.MaxShaker3.GreaterThan(OverloadShaker3)
		},
	},
	{
		Tier:      models.TierHighThroughput,
		Condition: "avg utilization > 75% and avg flow > 600 gpm",
		Message:   MessageHighThroughput,
		Match: func(in Inputs) bool {
			return in.Scalars.AvgUtilization.GreaterThan(HighThroughputUtilization) &&
				in.Scalars.AvgFlow.GreaterThan(HighThroughputFlow)
		},
	},
	{
		Tier:      models.TierNormal,
		Condition: "otherwise",
		Message:   MessageNormal,
		Match:     func(Inputs) bool { return true },
	},
}

// Rules returns the decision table in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Evaluate returns the result of the first matching rule.
func Evaluate(in Inputs) models.AdvisoryResult {
	for _, r := range rules {
		if r.Match(in) {
			return models.AdvisoryResult{Tier: r.Tier, Message: r.Message}
		}
	}
	return models.AdvisoryResult{Tier: models.TierNormal, Message: MessageNormal}
}
