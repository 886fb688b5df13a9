package models

// Tier is an advisory classification. Higher values are more severe,
// except that TierInsufficient carries no severity.
type Tier int

const (
	// TierInsufficient means the dataset lacks the fields needed for an advisory.
	TierInsufficient Tier = iota
	// TierNormal means no rule fired.
	TierNormal
	// TierHighThroughput means high utilization at high mud flow.
	TierHighThroughput
	// TierOverload means high utilization with the shaker near its peak.
	TierOverload
)

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierInsufficient:
		return "Insufficient"
	case TierNormal:
		return "Normal"
	case TierHighThroughput:
		return "HighThroughput"
	case TierOverload:
		return "Overload"
	default:
		return "Unknown"
	}
}

// Label returns a human readable tier name.
func (t Tier) Label() string {
	switch t {
	case TierHighThroughput:
		return "High Throughput"
	default:
		return t.String()
	}
}

// IsAlert reports whether the tier calls for operator attention.
func (t Tier) IsAlert() bool {
	return t == TierHighThroughput || t == TierOverload
}

// AdvisoryResult is the single classification produced per run.
type AdvisoryResult struct {
	Message string
	Tier    Tier
}
