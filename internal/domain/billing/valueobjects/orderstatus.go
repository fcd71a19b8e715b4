package valueobjects

// OrderStatus tracks a checkout attempt. The only forward transition is
// pending → completed (exactly once, via the store's guarded update).
// Abandoned checkouts simply stay pending.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusFailed    OrderStatus = "failed"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusFailed:
		return true
	default:
		return false
	}
}

func (s OrderStatus) IsPending() bool {
	return s == OrderStatusPending
}

func (s OrderStatus) IsCompleted() bool {
	return s == OrderStatusCompleted
}

func (s OrderStatus) String() string {
	return string(s)
}
