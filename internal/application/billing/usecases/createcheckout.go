package usecases

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"quokkalist/internal/application/billing/checkoutgateway"
	"quokkalist/internal/domain/billing"
	bvo "quokkalist/internal/domain/billing/valueobjects"
	"quokkalist/internal/domain/listing"
	"quokkalist/internal/domain/promo"
	"quokkalist/internal/domain/promotion"
	pvo "quokkalist/internal/domain/promotion/valueobjects"
	"quokkalist/internal/shared/biztime"
	"quokkalist/internal/shared/db"
	"quokkalist/internal/shared/errors"
	"quokkalist/internal/shared/logger"
)

// CreateCheckoutUseCase opens a checkout for a promotion purchase.
// Paid orders are recorded only after the gateway session is open, so a
// gateway failure leaves no trace. Zero-price orders skip the gateway
// entirely and settle on the spot.
type CreateCheckoutUseCase struct {
	orderRepo  billing.OrderRepository
	promoRepo  promo.PromoCodeRepository
	windowRepo promotion.WindowRepository
	serverRepo listing.ServerRepository
	gateway    checkoutgateway.CheckoutGateway
	txManager  *db.TransactionManager
	receipts   ReceiptSender
	currency   string
	successURL string
	cancelURL  string
	logger     logger.Interface
}

func NewCreateCheckoutUseCase(
	orderRepo billing.OrderRepository,
	promoRepo promo.PromoCodeRepository,
	windowRepo promotion.WindowRepository,
	serverRepo listing.ServerRepository,
	gateway checkoutgateway.CheckoutGateway,
	txManager *db.TransactionManager,
	receipts ReceiptSender,
	currency, successURL, cancelURL string,
	logger logger.Interface,
) *CreateCheckoutUseCase {
	return &CreateCheckoutUseCase{
		orderRepo:  orderRepo,
		promoRepo:  promoRepo,
		windowRepo: windowRepo,
		serverRepo: serverRepo,
		gateway:    gateway,
		txManager:  txManager,
		receipts:   receipts,
		currency:   currency,
		successURL: successURL,
		cancelURL:  cancelURL,
		logger:     logger,
	}
}

type CreateCheckoutCommand struct {
	UserID         string
	UserEmail      string
	ServerID       string
	Plan           string
	Quantity       int
	PlannedStartAt *time.Time
	PromoCode      string
}

type CreateCheckoutResult struct {
	Order       OrderDTO `json:"order"`
	CheckoutURL string   `json:"checkout_url,omitempty"`
	Gifted      bool     `json:"gifted"`
}

func (uc *CreateCheckoutUseCase) Execute(ctx context.Context, cmd CreateCheckoutCommand) (*CreateCheckoutResult, error) {
	plan := pvo.Plan(cmd.Plan)
	if !plan.IsValid() {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid plan: %s", cmd.Plan))
	}
	if cmd.Quantity < 1 || cmd.Quantity > plan.MaxQuantity() {
		return nil, errors.NewValidationError(fmt.Sprintf("quantity must be between 1 and %d for the %s plan", plan.MaxQuantity(), plan))
	}
	if cmd.PlannedStartAt != nil && cmd.PlannedStartAt.Before(biztime.NowUTC()) {
		return nil, errors.NewValidationError("planned start must be in the future")
	}

	ownerID, err := uc.serverRepo.GetOwnerID(ctx, cmd.ServerID)
	if err != nil {
		return nil, errors.NewInternalError("failed to look up server", err.Error())
	}
	if ownerID == "" {
		return nil, errors.NewNotFoundError("server not found")
	}
	if ownerID != cmd.UserID {
		return nil, errors.NewForbiddenError("only the server owner can buy promotion")
	}

	baseAmount := billing.BasePriceCents(plan, cmd.Quantity)
	finalAmount := baseAmount

	var promoCode *promo.PromoCode
	if cmd.PromoCode != "" {
		promoCode, err = uc.resolvePromoCode(ctx, cmd.PromoCode, cmd.UserID, cmd.ServerID)
		if err != nil {
			return nil, err
		}
		finalAmount = promoCode.Discount().Apply(baseAmount)
	}

	if finalAmount == 0 {
		return uc.settleGifted(ctx, cmd, plan, baseAmount, promoCode)
	}

	metadata := map[string]string{
		"server_id": cmd.ServerID,
		"user_id":   cmd.UserID,
		"plan":      string(plan),
		"quantity":  strconv.Itoa(cmd.Quantity),
	}
	if cmd.PlannedStartAt != nil {
		metadata["start_date"] = cmd.PlannedStartAt.UTC().Format(time.RFC3339)
	}
	if promoCode != nil {
		metadata["promo_code_id"] = promoCode.ID()
	}

	session, err := uc.gateway.CreateSession(ctx, checkoutgateway.CreateSessionInput{
		AmountInCents: finalAmount,
		Currency:      uc.currency,
		ProductName:   fmt.Sprintf("%s promotion x%d", plan, cmd.Quantity),
		CustomerEmail: cmd.UserEmail,
		SuccessURL:    uc.successURL,
		CancelURL:     uc.cancelURL,
		Metadata:      metadata,
	})
	if err != nil {
		uc.logger.Errorw("failed to open checkout session", "error", err, "server_id", cmd.ServerID)
		return nil, errors.NewPaymentProviderError("checkout provider unavailable")
	}

	order, err := billing.NewPendingOrder(session.ID, cmd.UserID, cmd.ServerID, plan, cmd.Quantity, cmd.PlannedStartAt, bvo.NewMoney(finalAmount, uc.currency))
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	order.SetPromoMeta(buildPromoMeta(baseAmount, promoCode))

	if err := uc.orderRepo.CreatePending(ctx, order); err != nil {
		uc.logger.Errorw("failed to record pending order", "error", err, "session_id", session.ID)
		return nil, errors.NewInternalError("failed to record order")
	}

	uc.logger.Infow("checkout session opened",
		"session_id", session.ID,
		"server_id", cmd.ServerID,
		"plan", plan,
		"amount_in_cents", finalAmount,
	)

	return &CreateCheckoutResult{
		Order:       toOrderDTO(order),
		CheckoutURL: session.URL,
	}, nil
}

// settleGifted records a zero-price order as completed and opens the
// promotion window in the same transaction. No gateway, no webhook.
func (uc *CreateCheckoutUseCase) settleGifted(ctx context.Context, cmd CreateCheckoutCommand, plan pvo.Plan, baseAmount int64, promoCode *promo.PromoCode) (*CreateCheckoutResult, error) {
	start := biztime.NowUTC()
	if cmd.PlannedStartAt != nil {
		start = cmd.PlannedStartAt.UTC()
	}
	end := start.Add(plan.WindowSpan(cmd.Quantity))

	order, err := billing.NewGiftedOrder(cmd.UserID, cmd.ServerID, plan, cmd.Quantity, start, end, uc.currency)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	order.SetPromoMeta(buildPromoMeta(baseAmount, promoCode))

	window, err := promotion.NewWindow(cmd.ServerID, plan, start, end)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.orderRepo.CreateGifted(txCtx, order); err != nil {
			return err
		}
		if err := uc.windowRepo.Create(txCtx, window); err != nil {
			return err
		}
		if promoCode != nil {
			return uc.promoRepo.IncrementUses(txCtx, promoCode.ID())
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to settle gifted order", "error", err, "server_id", cmd.ServerID)
		return nil, errors.NewInternalError("failed to record order")
	}

	uc.logger.Infow("gifted promotion settled",
		"order_id", order.ID(),
		"server_id", cmd.ServerID,
		"plan", plan,
		"window_end_at", end,
	)

	if cmd.UserEmail != "" {
		if err := uc.receipts.SendReceipt(ctx, cmd.UserEmail, order); err != nil {
			uc.logger.Warnw("failed to send gifted order receipt", "error", err, "order_id", order.ID())
		}
	}

	return &CreateCheckoutResult{
		Order:  toOrderDTO(order),
		Gifted: true,
	}, nil
}

func (uc *CreateCheckoutUseCase) resolvePromoCode(ctx context.Context, code, userID, serverID string) (*promo.PromoCode, error) {
	promoCode, err := uc.promoRepo.GetByCode(ctx, promo.NormalizeCode(code))
	if err != nil {
		return nil, errors.NewInternalError("failed to look up promo code", err.Error())
	}
	if promoCode == nil {
		return nil, errors.NewValidationError(promo.ErrInvalid.Error())
	}
	if err := promoCode.ValidateFor(userID, serverID, biztime.NowUTC()); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	return promoCode, nil
}

func buildPromoMeta(baseAmount int64, promoCode *promo.PromoCode) billing.PromoMeta {
	meta := billing.PromoMeta{BaseAmountCents: baseAmount}
	if promoCode != nil {
		codeID := promoCode.ID()
		codeStr := promoCode.Code()
		discountType := string(promoCode.Discount().Type)
		discountValue := promoCode.Discount().Value
		meta.PromoCodeID = &codeID
		meta.PromoCode = &codeStr
		meta.DiscountType = &discountType
		meta.DiscountValue = &discountValue
	}
	return meta
}
