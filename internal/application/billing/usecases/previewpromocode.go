package usecases

import (
	"context"
	"fmt"

	"quokkalist/internal/domain/billing"
	"quokkalist/internal/domain/promo"
	pvo "quokkalist/internal/domain/promotion/valueobjects"
	"quokkalist/internal/shared/biztime"
	"quokkalist/internal/shared/errors"
	"quokkalist/internal/shared/logger"
)

// PreviewPromoCodeUseCase prices a checkout with a promo code applied,
// without consuming a use or touching the gateway. Backs the live price
// preview on the checkout form.
type PreviewPromoCodeUseCase struct {
	promoRepo promo.PromoCodeRepository
	logger    logger.Interface
}

func NewPreviewPromoCodeUseCase(promoRepo promo.PromoCodeRepository, logger logger.Interface) *PreviewPromoCodeUseCase {
	return &PreviewPromoCodeUseCase{
		promoRepo: promoRepo,
		logger:    logger,
	}
}

type PreviewPromoCodeCommand struct {
	UserID   string
	ServerID string
	Plan     string
	Quantity int
	Code     string
}

type PreviewPromoCodeResult struct {
	Valid           bool   `json:"valid"`
	Reason          string `json:"reason,omitempty"`
	BaseAmountCents int64  `json:"base_amount_in_cents"`
	AmountInCents   int64  `json:"amount_in_cents"`
	DiscountType    string `json:"discount_type,omitempty"`
	DiscountValue   int64  `json:"discount_value,omitempty"`
}

func (uc *PreviewPromoCodeUseCase) Execute(ctx context.Context, cmd PreviewPromoCodeCommand) (*PreviewPromoCodeResult, error) {
	plan := pvo.Plan(cmd.Plan)
	if !plan.IsValid() {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid plan: %s", cmd.Plan))
	}
	if cmd.Code == "" {
		return nil, errors.NewValidationError("promo code is required")
	}

	baseAmount := billing.BasePriceCents(plan, plan.ClampQuantity(cmd.Quantity))

	promoCode, err := uc.promoRepo.GetByCode(ctx, promo.NormalizeCode(cmd.Code))
	if err != nil {
		return nil, errors.NewInternalError("failed to look up promo code", err.Error())
	}
	if promoCode == nil {
		return &PreviewPromoCodeResult{
			Reason:          promo.ErrInvalid.Error(),
			BaseAmountCents: baseAmount,
			AmountInCents:   baseAmount,
		}, nil
	}

	if err := promoCode.ValidateFor(cmd.UserID, cmd.ServerID, biztime.NowUTC()); err != nil {
		return &PreviewPromoCodeResult{
			Reason:          err.Error(),
			BaseAmountCents: baseAmount,
			AmountInCents:   baseAmount,
		}, nil
	}

	discount := promoCode.Discount()
	return &PreviewPromoCodeResult{
		Valid:           true,
		BaseAmountCents: baseAmount,
		AmountInCents:   discount.Apply(baseAmount),
		DiscountType:    string(discount.Type),
		DiscountValue:   discount.Value,
	}, nil
}
