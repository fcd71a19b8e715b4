package usecases

import (
	"time"

	"quokkalist/internal/domain/billing"
	"quokkalist/internal/shared/id"
)

// OrderDTO is the read model returned by order queries.
type OrderDTO struct {
	ID                string     `json:"id"`
	Reference         string     `json:"reference"`
	CheckoutSessionID string     `json:"checkout_session_id"`
	ServerID          string     `json:"server_id"`
	Plan              string     `json:"plan"`
	Quantity          int        `json:"quantity"`
	AmountInCents     int64      `json:"amount_in_cents"`
	Currency          string     `json:"currency"`
	Status            string     `json:"status"`
	Gifted            bool       `json:"gifted"`
	WindowStartAt     *time.Time `json:"window_start_at,omitempty"`
	WindowEndAt       *time.Time `json:"window_end_at,omitempty"`
	BaseAmountCents   *int64     `json:"base_amount_in_cents,omitempty"`
	PromoCode         *string    `json:"promo_code,omitempty"`
	DiscountType      *string    `json:"discount_type,omitempty"`
	DiscountValue     *int64     `json:"discount_value,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

func toOrderDTO(order *billing.Order) OrderDTO {
	dto := OrderDTO{
		ID:                order.ID(),
		Reference:         id.OrderReference(order.ID()),
		CheckoutSessionID: order.CheckoutSessionID(),
		ServerID:          order.ServerID(),
		Plan:              order.Plan().String(),
		Quantity:          order.Quantity(),
		AmountInCents:     order.Amount().AmountInCents(),
		Currency:          order.Amount().Currency(),
		Status:            order.Status().String(),
		Gifted:            order.IsGifted(),
		WindowStartAt:     order.WindowStartAt(),
		WindowEndAt:       order.WindowEndAt(),
		CreatedAt:         order.CreatedAt(),
	}
	if meta := order.PromoMeta(); meta != nil {
		dto.BaseAmountCents = &meta.BaseAmountCents
		dto.PromoCode = meta.PromoCode
		dto.DiscountType = meta.DiscountType
		dto.DiscountValue = meta.DiscountValue
	}
	return dto
}
