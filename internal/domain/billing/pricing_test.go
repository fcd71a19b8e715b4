package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	pvo "quokkalist/internal/domain/promotion/valueobjects"
)

func TestBasePriceCents(t *testing.T) {
	tests := []struct {
		name     string
		plan     pvo.Plan
		quantity int
		want     int64
	}{
		{name: "basic one day", plan: pvo.PlanBasic, quantity: 1, want: 500},
		{name: "basic three days", plan: pvo.PlanBasic, quantity: 3, want: 1500},
		{name: "basic thirty days", plan: pvo.PlanBasic, quantity: 30, want: 15000},
		{name: "basic above cap clamps to thirty", plan: pvo.PlanBasic, quantity: 45, want: 15000},
		{name: "basic zero clamps to one", plan: pvo.PlanBasic, quantity: 0, want: 500},
		{name: "basic negative clamps to one", plan: pvo.PlanBasic, quantity: -5, want: 500},
		{name: "premium one hour", plan: pvo.PlanPremium, quantity: 1, want: 100},
		{name: "premium twelve hours", plan: pvo.PlanPremium, quantity: 12, want: 1200},
		{name: "premium twenty four hours", plan: pvo.PlanPremium, quantity: 24, want: 2400},
		{name: "premium above cap clamps to twenty four", plan: pvo.PlanPremium, quantity: 100, want: 2400},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, BasePriceCents(tc.plan, tc.quantity))
		})
	}
}

func TestBasePriceCents_MonotonicInQuantity(t *testing.T) {
	for _, plan := range []pvo.Plan{pvo.PlanBasic, pvo.PlanPremium} {
		prev := int64(0)
		for q := 1; q <= plan.MaxQuantity(); q++ {
			price := BasePriceCents(plan, q)
			assert.GreaterOrEqual(t, price, prev, "plan %s quantity %d", plan, q)
			assert.GreaterOrEqual(t, price, BasePriceCents(plan, 1))
			prev = price
		}
	}
}
