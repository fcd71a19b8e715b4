// Package billing holds the payment order aggregate and the pricing rules
// for promotion checkouts. An order is one checkout attempt, keyed by the
// gateway checkout session id, which doubles as the settlement idempotency key.
package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	bvo "quokkalist/internal/domain/billing/valueobjects"
	pvo "quokkalist/internal/domain/promotion/valueobjects"
)

// GiftSessionPrefix marks synthetic checkout session ids for zero-price
// orders that never touched the gateway.
const GiftSessionPrefix = "gift_"

// PromoMeta is the discount snapshot recorded alongside an order for
// receipt display. BaseAmountCents is the undiscounted price.
type PromoMeta struct {
	BaseAmountCents int64
	PromoCodeID     *string
	PromoCode       *string
	DiscountType    *string
	DiscountValue   *int64
}

type Order struct {
	id                string
	checkoutSessionID string
	gatewayIntentID   *string
	userID            string
	serverID          string
	plan              pvo.Plan
	quantity          int
	plannedStartAt    *time.Time
	amount            bvo.Money
	status            bvo.OrderStatus
	windowStartAt     *time.Time
	windowEndAt       *time.Time
	promoMeta         *PromoMeta
	createdAt         time.Time
	updatedAt         time.Time
}

// NewPendingOrder records a checkout attempt after the gateway session was
// successfully opened. The session id comes from the gateway.
func NewPendingOrder(checkoutSessionID, userID, serverID string, plan pvo.Plan, quantity int, plannedStartAt *time.Time, amount bvo.Money) (*Order, error) {
	if err := validateOrderInput(checkoutSessionID, userID, serverID, plan, quantity); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Order{
		id:                uuid.NewString(),
		checkoutSessionID: checkoutSessionID,
		userID:            userID,
		serverID:          serverID,
		plan:              plan,
		quantity:          quantity,
		plannedStartAt:    plannedStartAt,
		amount:            amount,
		status:            bvo.OrderStatusPending,
		createdAt:         now,
		updatedAt:         now,
	}, nil
}

// NewGiftedOrder records a zero-price order as already completed, with a
// synthetic session id. Gifted orders never flow through the settlement
// reconciler: the guarded update's status check keeps them untouchable.
func NewGiftedOrder(userID, serverID string, plan pvo.Plan, quantity int, windowStart, windowEnd time.Time, currency string) (*Order, error) {
	sessionID := GiftSessionPrefix + uuid.NewString()
	if err := validateOrderInput(sessionID, userID, serverID, plan, quantity); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Order{
		id:                uuid.NewString(),
		checkoutSessionID: sessionID,
		userID:            userID,
		serverID:          serverID,
		plan:              plan,
		quantity:          quantity,
		plannedStartAt:    &windowStart,
		amount:            bvo.NewMoney(0, currency),
		status:            bvo.OrderStatusCompleted,
		windowStartAt:     &windowStart,
		windowEndAt:       &windowEnd,
		createdAt:         now,
		updatedAt:         now,
	}, nil
}

func validateOrderInput(checkoutSessionID, userID, serverID string, plan pvo.Plan, quantity int) error {
	if checkoutSessionID == "" {
		return fmt.Errorf("checkout session ID is required")
	}
	if userID == "" {
		return fmt.Errorf("user ID is required")
	}
	if serverID == "" {
		return fmt.Errorf("server ID is required")
	}
	if !plan.IsValid() {
		return fmt.Errorf("invalid plan: %s", plan)
	}
	if quantity < 1 || quantity > plan.MaxQuantity() {
		return fmt.Errorf("quantity %d out of range for plan %s", quantity, plan)
	}
	return nil
}

// MarkCompleted transitions the order to completed. Calling it on an
// already-completed order is a no-op; the store-level guarded update is
// the authoritative idempotency mechanism, this mirrors it in memory.
func (o *Order) MarkCompleted(gatewayIntentID string) {
	if o.status.IsCompleted() {
		return
	}
	o.status = bvo.OrderStatusCompleted
	if gatewayIntentID != "" {
		o.gatewayIntentID = &gatewayIntentID
	}
	o.updatedAt = time.Now().UTC()
}

// MarkFailed records a gateway-reported failure. Only pending orders can
// fail; a completed order is final.
func (o *Order) MarkFailed() error {
	if !o.status.IsPending() {
		return fmt.Errorf("cannot fail order with status %s", o.status)
	}
	o.status = bvo.OrderStatusFailed
	o.updatedAt = time.Now().UTC()
	return nil
}

// SetPromotionWindow stores the resolved window bounds for receipt display.
func (o *Order) SetPromotionWindow(start, end time.Time) {
	o.windowStartAt = &start
	o.windowEndAt = &end
	o.updatedAt = time.Now().UTC()
}

// SetPromoMeta attaches the discount snapshot.
func (o *Order) SetPromoMeta(meta PromoMeta) {
	o.promoMeta = &meta
	o.updatedAt = time.Now().UTC()
}

// IsGifted reports whether this order was settled without the gateway.
func (o *Order) IsGifted() bool {
	return strings.HasPrefix(o.checkoutSessionID, GiftSessionPrefix)
}

// WindowBounds resolves the promotion window this order promises:
// start is the planned start date when one was requested, otherwise now;
// end is start plus the purchased span.
func (o *Order) WindowBounds(now time.Time) (time.Time, time.Time) {
	start := now.UTC()
	if o.plannedStartAt != nil {
		start = o.plannedStartAt.UTC()
	}
	return start, start.Add(o.plan.WindowSpan(o.quantity))
}

func (o *Order) ID() string {
	return o.id
}

func (o *Order) CheckoutSessionID() string {
	return o.checkoutSessionID
}

func (o *Order) GatewayIntentID() *string {
	return o.gatewayIntentID
}

func (o *Order) UserID() string {
	return o.userID
}

func (o *Order) ServerID() string {
	return o.serverID
}

func (o *Order) Plan() pvo.Plan {
	return o.plan
}

func (o *Order) Quantity() int {
	return o.quantity
}

func (o *Order) PlannedStartAt() *time.Time {
	return o.plannedStartAt
}

func (o *Order) Amount() bvo.Money {
	return o.amount
}

func (o *Order) Status() bvo.OrderStatus {
	return o.status
}

func (o *Order) WindowStartAt() *time.Time {
	return o.windowStartAt
}

func (o *Order) WindowEndAt() *time.Time {
	return o.windowEndAt
}

func (o *Order) PromoMeta() *PromoMeta {
	return o.promoMeta
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

func ReconstructOrder(
	id, checkoutSessionID string,
	gatewayIntentID *string,
	userID, serverID string,
	plan pvo.Plan,
	quantity int,
	plannedStartAt *time.Time,
	amount bvo.Money,
	status bvo.OrderStatus,
	windowStartAt, windowEndAt *time.Time,
	promoMeta *PromoMeta,
	createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:                id,
		checkoutSessionID: checkoutSessionID,
		gatewayIntentID:   gatewayIntentID,
		userID:            userID,
		serverID:          serverID,
		plan:              plan,
		quantity:          quantity,
		plannedStartAt:    plannedStartAt,
		amount:            amount,
		status:            status,
		windowStartAt:     windowStartAt,
		windowEndAt:       windowEndAt,
		promoMeta:         promoMeta,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}
