package billing

import (
	"context"
	"time"
)

type OrderRepository interface {
	// CreatePending inserts a pending order. Re-inserting the same
	// checkout session id is a no-op, not an error, so client retries
	// after the gateway call cannot duplicate orders.
	CreatePending(ctx context.Context, order *Order) error

	// CreateGifted inserts an order born completed (zero-price path).
	CreateGifted(ctx context.Context, order *Order) error

	// ClaimCompleted atomically flips the order for checkoutSessionID to
	// completed, but only when its status is not already completed.
	// It returns the claimed order and true exactly once per session id;
	// duplicate deliveries and unknown sessions return (nil, false, nil).
	ClaimCompleted(ctx context.Context, checkoutSessionID, gatewayIntentID string) (*Order, bool, error)

	// MarkFailed flips a pending order to failed. No-op when the order is
	// not pending or does not exist.
	MarkFailed(ctx context.Context, checkoutSessionID string) error

	// SetPromotionWindow persists the resolved window bounds back onto
	// the order for receipt display.
	SetPromotionWindow(ctx context.Context, checkoutSessionID string, start, end time.Time) error

	// UpsertPromoMeta records the discount snapshot keyed by session id.
	UpsertPromoMeta(ctx context.Context, checkoutSessionID string, meta PromoMeta) error

	GetByCheckoutSession(ctx context.Context, checkoutSessionID, userID string) (*Order, error)
	GetByID(ctx context.Context, id, userID string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]*Order, error)
	ListAll(ctx context.Context) ([]*Order, error)
}
