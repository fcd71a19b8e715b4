package usecases

import (
	"context"

	"quokkalist/internal/domain/billing"
	"quokkalist/internal/shared/errors"
	"quokkalist/internal/shared/logger"
)

// GetOrderSummaryUseCase fetches one order for the post-checkout receipt
// page. Lookup is scoped to the requesting user, by checkout session id.
type GetOrderSummaryUseCase struct {
	orderRepo billing.OrderRepository
	logger    logger.Interface
}

func NewGetOrderSummaryUseCase(orderRepo billing.OrderRepository, logger logger.Interface) *GetOrderSummaryUseCase {
	return &GetOrderSummaryUseCase{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

type GetOrderSummaryCommand struct {
	UserID            string
	CheckoutSessionID string
}

type GetOrderSummaryResult struct {
	Order OrderDTO `json:"order"`
}

func (uc *GetOrderSummaryUseCase) Execute(ctx context.Context, cmd GetOrderSummaryCommand) (*GetOrderSummaryResult, error) {
	if cmd.CheckoutSessionID == "" {
		return nil, errors.NewValidationError("checkout session ID is required")
	}

	order, err := uc.orderRepo.GetByCheckoutSession(ctx, cmd.CheckoutSessionID, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to fetch order", "error", err, "session_id", cmd.CheckoutSessionID)
		return nil, errors.NewInternalError("failed to fetch order")
	}
	if order == nil {
		return nil, errors.NewNotFoundError("order not found")
	}

	return &GetOrderSummaryResult{Order: toOrderDTO(order)}, nil
}
