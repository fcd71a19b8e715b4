package valueobjects

import "time"

// Plan is the promotion tier. Basic is sold per day, premium per hour.
type Plan string

const (
	PlanBasic   Plan = "basic"
	PlanPremium Plan = "premium"
)

func (p Plan) IsValid() bool {
	switch p {
	case PlanBasic, PlanPremium:
		return true
	default:
		return false
	}
}

// Unit returns the duration of one billed unit for the plan.
func (p Plan) Unit() time.Duration {
	if p == PlanPremium {
		return time.Hour
	}
	return 24 * time.Hour
}

// MaxQuantity returns the largest quantity a single checkout may buy:
// 30 days for basic, 24 hours for premium.
func (p Plan) MaxQuantity() int {
	if p == PlanPremium {
		return 24
	}
	return 30
}

// WindowSpan returns the promotion window length for quantity units,
// clamping quantity into [1, MaxQuantity].
func (p Plan) WindowSpan(quantity int) time.Duration {
	return time.Duration(p.ClampQuantity(quantity)) * p.Unit()
}

// ClampQuantity clamps quantity into the plan's valid range.
func (p Plan) ClampQuantity(quantity int) int {
	if quantity < 1 {
		return 1
	}
	if max := p.MaxQuantity(); quantity > max {
		return max
	}
	return quantity
}

func (p Plan) String() string {
	return string(p)
}
