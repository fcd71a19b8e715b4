package mappers

import (
	"quokkalist/internal/domain/promo"
	vo "quokkalist/internal/domain/promo/valueobjects"
	"quokkalist/internal/infrastructure/persistence/models"
)

type PromoCodeMapper struct{}

func NewPromoCodeMapper() *PromoCodeMapper {
	return &PromoCodeMapper{}
}

func (m *PromoCodeMapper) ToModel(code *promo.PromoCode) *models.PromoCodeModel {
	return &models.PromoCodeModel{
		ID:            code.ID(),
		Code:          code.Code(),
		IsActive:      code.IsActive(),
		DiscountType:  string(code.Discount().Type),
		DiscountValue: code.Discount().Value,
		UserID:        code.UserID(),
		ServerID:      code.ServerID(),
		MaxUses:       code.MaxUses(),
		UsesCount:     code.UsesCount(),
		ExpiresAt:     code.ExpiresAt(),
		CreatedAt:     code.CreatedAt(),
	}
}

func (m *PromoCodeMapper) ToDomain(model *models.PromoCodeModel) *promo.PromoCode {
	return promo.ReconstructPromoCode(
		model.ID,
		model.Code,
		model.IsActive,
		vo.Discount{Type: vo.DiscountType(model.DiscountType), Value: model.DiscountValue},
		model.UserID,
		model.ServerID,
		model.MaxUses,
		model.UsesCount,
		model.ExpiresAt,
		model.CreatedAt,
	)
}

func (m *PromoCodeMapper) ToDomainList(modelList []*models.PromoCodeModel) []*promo.PromoCode {
	codes := make([]*promo.PromoCode, 0, len(modelList))
	for _, model := range modelList {
		codes = append(codes, m.ToDomain(model))
	}
	return codes
}
