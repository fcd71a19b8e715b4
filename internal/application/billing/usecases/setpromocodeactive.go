package usecases

import (
	"context"

	"quokkalist/internal/domain/promo"
	"quokkalist/internal/shared/errors"
	"quokkalist/internal/shared/logger"
)

// SetPromoCodeActiveUseCase enables or disables a promo code. Admin only.
type SetPromoCodeActiveUseCase struct {
	promoRepo promo.PromoCodeRepository
	logger    logger.Interface
}

func NewSetPromoCodeActiveUseCase(promoRepo promo.PromoCodeRepository, logger logger.Interface) *SetPromoCodeActiveUseCase {
	return &SetPromoCodeActiveUseCase{
		promoRepo: promoRepo,
		logger:    logger,
	}
}

type SetPromoCodeActiveCommand struct {
	PromoCodeID string
	Active      bool
}

type SetPromoCodeActiveResult struct {
	PromoCode PromoCodeDTO `json:"promo_code"`
}

func (uc *SetPromoCodeActiveUseCase) Execute(ctx context.Context, cmd SetPromoCodeActiveCommand) (*SetPromoCodeActiveResult, error) {
	code, err := uc.promoRepo.GetByID(ctx, cmd.PromoCodeID)
	if err != nil {
		return nil, errors.NewInternalError("failed to look up promo code", err.Error())
	}
	if code == nil {
		return nil, errors.NewNotFoundError("promo code not found")
	}

	if err := uc.promoRepo.SetActive(ctx, cmd.PromoCodeID, cmd.Active); err != nil {
		uc.logger.Errorw("failed to update promo code", "error", err, "promo_code_id", cmd.PromoCodeID)
		return nil, errors.NewInternalError("failed to update promo code")
	}

	uc.logger.Infow("promo code updated", "code", code.Code(), "active", cmd.Active)

	code = promo.ReconstructPromoCode(
		code.ID(), code.Code(), cmd.Active,
		code.Discount(), code.UserID(), code.ServerID(),
		code.MaxUses(), code.UsesCount(), code.ExpiresAt(), code.CreatedAt(),
	)
	return &SetPromoCodeActiveResult{PromoCode: toPromoCodeDTO(code)}, nil
}
