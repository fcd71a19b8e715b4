package valueobjects

// DiscountType is the closed set of promo discount shapes.
type DiscountType string

const (
	DiscountFixed   DiscountType = "fixed"
	DiscountPercent DiscountType = "percent"
	DiscountFree    DiscountType = "free"
)

func (t DiscountType) IsValid() bool {
	switch t {
	case DiscountFixed, DiscountPercent, DiscountFree:
		return true
	default:
		return false
	}
}

func (t DiscountType) String() string {
	return string(t)
}

// Discount is a tagged discount value. Value is cents for fixed and a
// percentage for percent; it is ignored for free.
type Discount struct {
	Type  DiscountType
	Value int64
}

// Apply returns the discounted amount in cents. The result is never
// negative, and free always yields zero regardless of base.
func (d Discount) Apply(baseCents int64) int64 {
	switch d.Type {
	case DiscountFree:
		return 0
	case DiscountPercent:
		percent := d.Value
		if percent < 0 {
			percent = 0
		}
		if percent > 100 {
			percent = 100
		}
		discounted := baseCents * (100 - percent) / 100
		if discounted < 0 {
			return 0
		}
		return discounted
	case DiscountFixed:
		fixed := d.Value
		if fixed < 0 {
			fixed = 0
		}
		if discounted := baseCents - fixed; discounted > 0 {
			return discounted
		}
		return 0
	default:
		return baseCents
	}
}
