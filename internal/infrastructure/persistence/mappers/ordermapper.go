// Package mappers converts between domain entities and persistence models.
package mappers

import (
	"quokkalist/internal/domain/billing"
	bvo "quokkalist/internal/domain/billing/valueobjects"
	pvo "quokkalist/internal/domain/promotion/valueobjects"
	"quokkalist/internal/infrastructure/persistence/models"
)

type OrderMapper struct{}

func NewOrderMapper() *OrderMapper {
	return &OrderMapper{}
}

func (m *OrderMapper) ToModel(order *billing.Order) *models.OrderModel {
	model := &models.OrderModel{
		ID:                order.ID(),
		CheckoutSessionID: order.CheckoutSessionID(),
		GatewayIntentID:   order.GatewayIntentID(),
		UserID:            order.UserID(),
		ServerID:          order.ServerID(),
		Plan:              order.Plan().String(),
		Quantity:          order.Quantity(),
		PlannedStartAt:    order.PlannedStartAt(),
		AmountInCents:     order.Amount().AmountInCents(),
		Currency:          order.Amount().Currency(),
		Status:            order.Status().String(),
		WindowStartAt:     order.WindowStartAt(),
		WindowEndAt:       order.WindowEndAt(),
		CreatedAt:         order.CreatedAt(),
		UpdatedAt:         order.UpdatedAt(),
	}
	if meta := order.PromoMeta(); meta != nil {
		base := meta.BaseAmountCents
		model.BaseAmountCents = &base
		model.PromoCodeID = meta.PromoCodeID
		model.PromoCode = meta.PromoCode
		model.DiscountType = meta.DiscountType
		model.DiscountValue = meta.DiscountValue
	}
	return model
}

func (m *OrderMapper) ToDomain(model *models.OrderModel) *billing.Order {
	var meta *billing.PromoMeta
	if model.BaseAmountCents != nil {
		meta = &billing.PromoMeta{
			BaseAmountCents: *model.BaseAmountCents,
			PromoCodeID:     model.PromoCodeID,
			PromoCode:       model.PromoCode,
			DiscountType:    model.DiscountType,
			DiscountValue:   model.DiscountValue,
		}
	}

	return billing.ReconstructOrder(
		model.ID,
		model.CheckoutSessionID,
		model.GatewayIntentID,
		model.UserID,
		model.ServerID,
		pvo.Plan(model.Plan),
		model.Quantity,
		model.PlannedStartAt,
		bvo.NewMoney(model.AmountInCents, model.Currency),
		bvo.OrderStatus(model.Status),
		model.WindowStartAt,
		model.WindowEndAt,
		meta,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *OrderMapper) ToDomainList(modelList []*models.OrderModel) []*billing.Order {
	orders := make([]*billing.Order, 0, len(modelList))
	for _, model := range modelList {
		orders = append(orders, m.ToDomain(model))
	}
	return orders
}
