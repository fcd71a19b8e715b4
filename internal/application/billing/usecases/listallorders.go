package usecases

import (
	"context"

	"quokkalist/internal/domain/billing"
	"quokkalist/internal/shared/errors"
	"quokkalist/internal/shared/logger"
)

// ListAllOrdersUseCase returns every order across all users. Admin only.
type ListAllOrdersUseCase struct {
	orderRepo billing.OrderRepository
	logger    logger.Interface
}

func NewListAllOrdersUseCase(orderRepo billing.OrderRepository, logger logger.Interface) *ListAllOrdersUseCase {
	return &ListAllOrdersUseCase{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

type ListAllOrdersResult struct {
	Orders []OrderDTO `json:"orders"`
	Total  int        `json:"total"`
}

func (uc *ListAllOrdersUseCase) Execute(ctx context.Context) (*ListAllOrdersResult, error) {
	orders, err := uc.orderRepo.ListAll(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list orders", "error", err)
		return nil, errors.NewInternalError("failed to list orders")
	}

	dtos := make([]OrderDTO, 0, len(orders))
	for _, order := range orders {
		dtos = append(dtos, toOrderDTO(order))
	}

	return &ListAllOrdersResult{Orders: dtos, Total: len(dtos)}, nil
}
