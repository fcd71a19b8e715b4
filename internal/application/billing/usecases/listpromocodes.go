package usecases

import (
	"context"

	"quokkalist/internal/domain/promo"
	"quokkalist/internal/shared/errors"
	"quokkalist/internal/shared/logger"
)

// ListPromoCodesUseCase returns all promo codes. Admin only.
type ListPromoCodesUseCase struct {
	promoRepo promo.PromoCodeRepository
	logger    logger.Interface
}

func NewListPromoCodesUseCase(promoRepo promo.PromoCodeRepository, logger logger.Interface) *ListPromoCodesUseCase {
	return &ListPromoCodesUseCase{
		promoRepo: promoRepo,
		logger:    logger,
	}
}

type ListPromoCodesResult struct {
	PromoCodes []PromoCodeDTO `json:"promo_codes"`
	Total      int            `json:"total"`
}

func (uc *ListPromoCodesUseCase) Execute(ctx context.Context) (*ListPromoCodesResult, error) {
	codes, err := uc.promoRepo.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list promo codes", "error", err)
		return nil, errors.NewInternalError("failed to list promo codes")
	}

	dtos := make([]PromoCodeDTO, 0, len(codes))
	for _, code := range codes {
		dtos = append(dtos, toPromoCodeDTO(code))
	}

	return &ListPromoCodesResult{PromoCodes: dtos, Total: len(dtos)}, nil
}
