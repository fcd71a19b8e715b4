package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscount_Apply(t *testing.T) {
	tests := []struct {
		name string
		d    Discount
		base int64
		want int64
	}{
		{name: "free zeroes any base", d: Discount{Type: DiscountFree, Value: 0}, base: 1500, want: 0},
		{name: "free zeroes zero base", d: Discount{Type: DiscountFree, Value: 9999}, base: 0, want: 0},
		{name: "percent half", d: Discount{Type: DiscountPercent, Value: 50}, base: 1500, want: 750},
		{name: "percent floors fractional cents", d: Discount{Type: DiscountPercent, Value: 33}, base: 1000, want: 670},
		{name: "percent hundred", d: Discount{Type: DiscountPercent, Value: 100}, base: 1500, want: 0},
		{name: "percent above hundred clamps", d: Discount{Type: DiscountPercent, Value: 150}, base: 1500, want: 0},
		{name: "percent negative clamps to zero discount", d: Discount{Type: DiscountPercent, Value: -10}, base: 1500, want: 1500},
		{name: "fixed below base", d: Discount{Type: DiscountFixed, Value: 500}, base: 1500, want: 1000},
		{name: "fixed equal to base", d: Discount{Type: DiscountFixed, Value: 1500}, base: 1500, want: 0},
		{name: "fixed above base floors at zero", d: Discount{Type: DiscountFixed, Value: 99999}, base: 1500, want: 0},
		{name: "fixed negative is ignored", d: Discount{Type: DiscountFixed, Value: -500}, base: 1500, want: 1500},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.d.Apply(tc.base)
			assert.Equal(t, tc.want, got)
			assert.GreaterOrEqual(t, got, int64(0))
		})
	}
}

func TestDiscountType_IsValid(t *testing.T) {
	assert.True(t, DiscountFixed.IsValid())
	assert.True(t, DiscountPercent.IsValid())
	assert.True(t, DiscountFree.IsValid())
	assert.False(t, DiscountType("bogus").IsValid())
	assert.False(t, DiscountType("").IsValid())
}
