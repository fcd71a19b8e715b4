package usecases

import (
	"context"

	"quokkalist/internal/application/billing/checkoutgateway"
	"quokkalist/internal/domain/billing"
	"quokkalist/internal/domain/promotion"
	"quokkalist/internal/shared/biztime"
	"quokkalist/internal/shared/db"
	"quokkalist/internal/shared/errors"
	"quokkalist/internal/shared/logger"
)

// ReceiptSender delivers the post-payment receipt. Delivery failures never
// fail settlement.
type ReceiptSender interface {
	SendReceipt(ctx context.Context, to string, order *billing.Order) error
}

// SettleCheckoutUseCase is the webhook reconciler. Completed events claim
// the order with a guarded status flip and open the promotion window in the
// same transaction, so a duplicate delivery can never create a second
// window or consume a second promo use.
type SettleCheckoutUseCase struct {
	orderRepo  billing.OrderRepository
	windowRepo promotion.WindowRepository
	promoRepo  promoUsesIncrementer
	gateway    checkoutgateway.CheckoutGateway
	txManager  *db.TransactionManager
	receipts   ReceiptSender
	logger     logger.Interface
}

// promoUsesIncrementer is the slice of the promo repository settlement needs.
type promoUsesIncrementer interface {
	IncrementUses(ctx context.Context, id string) error
}

func NewSettleCheckoutUseCase(
	orderRepo billing.OrderRepository,
	windowRepo promotion.WindowRepository,
	promoRepo promoUsesIncrementer,
	gateway checkoutgateway.CheckoutGateway,
	txManager *db.TransactionManager,
	receipts ReceiptSender,
	logger logger.Interface,
) *SettleCheckoutUseCase {
	return &SettleCheckoutUseCase{
		orderRepo:  orderRepo,
		windowRepo: windowRepo,
		promoRepo:  promoRepo,
		gateway:    gateway,
		txManager:  txManager,
		receipts:   receipts,
		logger:     logger,
	}
}

type SettleCheckoutCommand struct {
	Payload   []byte
	Signature string
}

type SettleCheckoutResult struct {
	Processed bool   `json:"processed"`
	EventType string `json:"event_type,omitempty"`
}

func (uc *SettleCheckoutUseCase) Execute(ctx context.Context, cmd SettleCheckoutCommand) (*SettleCheckoutResult, error) {
	event, err := uc.gateway.VerifyEvent(cmd.Payload, cmd.Signature)
	if err != nil {
		uc.logger.Warnw("rejected webhook delivery", "error", err)
		return nil, errors.NewUnauthorizedError("invalid webhook signature")
	}

	switch event.Type {
	case checkoutgateway.EventCheckoutCompleted:
		return uc.settleCompleted(ctx, event)
	case checkoutgateway.EventCheckoutFailed:
		return uc.settleFailed(ctx, event)
	default:
		// Unrecognized events acknowledge cleanly so the provider stops
		// redelivering them.
		uc.logger.Debugw("ignoring webhook event", "type", event.Type)
		return &SettleCheckoutResult{EventType: event.Type}, nil
	}
}

func (uc *SettleCheckoutUseCase) settleCompleted(ctx context.Context, event *checkoutgateway.Event) (*SettleCheckoutResult, error) {
	var order *billing.Order
	var claimed bool

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		order, claimed, err = uc.orderRepo.ClaimCompleted(txCtx, event.SessionID, event.PaymentIntentID)
		if err != nil {
			return err
		}
		if !claimed {
			return nil
		}

		start, end := order.WindowBounds(biztime.NowUTC())
		window, err := promotion.NewWindow(order.ServerID(), order.Plan(), start, end)
		if err != nil {
			return err
		}
		if err := uc.windowRepo.Create(txCtx, window); err != nil {
			return err
		}
		if err := uc.orderRepo.SetPromotionWindow(txCtx, event.SessionID, start, end); err != nil {
			return err
		}
		order.SetPromotionWindow(start, end)

		if meta := order.PromoMeta(); meta != nil && meta.PromoCodeID != nil {
			return uc.promoRepo.IncrementUses(txCtx, *meta.PromoCodeID)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("settlement failed", "error", err, "session_id", event.SessionID)
		return nil, errors.NewInternalError("failed to settle checkout")
	}

	if !claimed {
		// Duplicate delivery or a session this engine never opened.
		uc.logger.Infow("checkout already settled or unknown", "session_id", event.SessionID)
		return &SettleCheckoutResult{EventType: event.Type}, nil
	}

	uc.logger.Infow("checkout settled",
		"session_id", event.SessionID,
		"order_id", order.ID(),
		"server_id", order.ServerID(),
		"window_end_at", order.WindowEndAt(),
	)

	if uc.receipts != nil && event.CustomerEmail != "" {
		if err := uc.receipts.SendReceipt(ctx, event.CustomerEmail, order); err != nil {
			uc.logger.Warnw("failed to send receipt", "error", err, "order_id", order.ID())
		}
	}

	return &SettleCheckoutResult{Processed: true, EventType: event.Type}, nil
}

func (uc *SettleCheckoutUseCase) settleFailed(ctx context.Context, event *checkoutgateway.Event) (*SettleCheckoutResult, error) {
	if err := uc.orderRepo.MarkFailed(ctx, event.SessionID); err != nil {
		uc.logger.Errorw("failed to mark order failed", "error", err, "session_id", event.SessionID)
		return nil, errors.NewInternalError("failed to record payment failure")
	}
	uc.logger.Infow("checkout failed", "session_id", event.SessionID)
	return &SettleCheckoutResult{Processed: true, EventType: event.Type}, nil
}
