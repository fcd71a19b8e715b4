package usecases

import (
	"context"

	"quokkalist/internal/domain/billing"
	"quokkalist/internal/shared/errors"
	"quokkalist/internal/shared/logger"
)

// ListOrdersUseCase returns the caller's order history, newest first.
type ListOrdersUseCase struct {
	orderRepo billing.OrderRepository
	logger    logger.Interface
}

func NewListOrdersUseCase(orderRepo billing.OrderRepository, logger logger.Interface) *ListOrdersUseCase {
	return &ListOrdersUseCase{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

type ListOrdersCommand struct {
	UserID string
}

type ListOrdersResult struct {
	Orders []OrderDTO `json:"orders"`
	Total  int        `json:"total"`
}

func (uc *ListOrdersUseCase) Execute(ctx context.Context, cmd ListOrdersCommand) (*ListOrdersResult, error) {
	orders, err := uc.orderRepo.ListByUser(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to list orders", "error", err, "user_id", cmd.UserID)
		return nil, errors.NewInternalError("failed to list orders")
	}

	dtos := make([]OrderDTO, 0, len(orders))
	for _, order := range orders {
		dtos = append(dtos, toOrderDTO(order))
	}

	return &ListOrdersResult{Orders: dtos, Total: len(dtos)}, nil
}
