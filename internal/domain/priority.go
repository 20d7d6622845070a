package domain

// Priority is the raw priority value carried on a task record.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

func (p Priority) String() string {
	return string(p)
}

// Tier is the normalized priority classification used for window lookup.
// critical and high are equivalent for windowing purposes.
type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"

	// TierUnrecognized covers any priority value outside the closed set.
	// Tasks in this tier still get the 24h window so nothing goes
	// unmonitored because of a typo in stored data.
	TierUnrecognized Tier = "unrecognized"
)

func (t Tier) String() string {
	return string(t)
}

// Normalize maps a raw priority onto its tier.
func (p Priority) Normalize() Tier {
	switch p {
	case PriorityCritical, PriorityHigh:
		return TierHigh
	case PriorityMedium:
		return TierMedium
	case PriorityLow:
		return TierLow
	default:
		return TierUnrecognized
	}
}
