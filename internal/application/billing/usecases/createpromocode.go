package usecases

import (
	"context"
	"time"

	"quokkalist/internal/domain/promo"
	vo "quokkalist/internal/domain/promo/valueobjects"
	"quokkalist/internal/shared/errors"
	"quokkalist/internal/shared/logger"
)

// CreatePromoCodeUseCase registers a new promo code. Admin only.
type CreatePromoCodeUseCase struct {
	promoRepo promo.PromoCodeRepository
	logger    logger.Interface
}

func NewCreatePromoCodeUseCase(promoRepo promo.PromoCodeRepository, logger logger.Interface) *CreatePromoCodeUseCase {
	return &CreatePromoCodeUseCase{
		promoRepo: promoRepo,
		logger:    logger,
	}
}

type CreatePromoCodeCommand struct {
	Code          string
	DiscountType  string
	DiscountValue int64
	UserID        *string
	ServerID      *string
	MaxUses       *int
	ExpiresAt     *time.Time
}

type PromoCodeDTO struct {
	ID            string     `json:"id"`
	Code          string     `json:"code"`
	IsActive      bool       `json:"is_active"`
	DiscountType  string     `json:"discount_type"`
	DiscountValue int64      `json:"discount_value"`
	UserID        *string    `json:"user_id,omitempty"`
	ServerID      *string    `json:"server_id,omitempty"`
	MaxUses       *int       `json:"max_uses,omitempty"`
	UsesCount     int        `json:"uses_count"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type CreatePromoCodeResult struct {
	PromoCode PromoCodeDTO `json:"promo_code"`
}

func (uc *CreatePromoCodeUseCase) Execute(ctx context.Context, cmd CreatePromoCodeCommand) (*CreatePromoCodeResult, error) {
	discount := vo.Discount{Type: vo.DiscountType(cmd.DiscountType), Value: cmd.DiscountValue}

	code, err := promo.NewPromoCode(cmd.Code, discount, cmd.UserID, cmd.ServerID, cmd.MaxUses, cmd.ExpiresAt)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	existing, err := uc.promoRepo.GetByCode(ctx, code.Code())
	if err != nil {
		return nil, errors.NewInternalError("failed to look up promo code", err.Error())
	}
	if existing != nil {
		return nil, errors.NewConflictError("promo code already exists")
	}

	if err := uc.promoRepo.Create(ctx, code); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("promo code already exists")
		}
		uc.logger.Errorw("failed to create promo code", "error", err, "code", code.Code())
		return nil, errors.NewInternalError("failed to create promo code")
	}

	uc.logger.Infow("promo code created", "code", code.Code(), "discount_type", cmd.DiscountType)

	return &CreatePromoCodeResult{PromoCode: toPromoCodeDTO(code)}, nil
}

func toPromoCodeDTO(code *promo.PromoCode) PromoCodeDTO {
	return PromoCodeDTO{
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
