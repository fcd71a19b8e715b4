package billing

import (
	pvo "quokkalist/internal/domain/promotion/valueobjects"
)

// Unit prices in cents: basic is sold per day, premium per hour.
const (
	BasicDayPriceCents   int64 = 500
	PremiumHourPriceCents int64 = 100
)

// BasePriceCents returns the undiscounted price for quantity units of the
// plan. Quantity is clamped into the plan's valid range, so the result is
// always at least one unit's price.
func BasePriceCents(plan pvo.Plan, quantity int) int64 {
	q := int64(plan.ClampQuantity(quantity))
	if plan == pvo.PlanPremium {
		return q * PremiumHourPriceCents
	}
	return q * BasicDayPriceCents
}
