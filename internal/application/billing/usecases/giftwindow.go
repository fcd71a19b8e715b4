package usecases

import (
	"context"
	"fmt"
	"time"

	"quokkalist/internal/domain/billing"
	"quokkalist/internal/domain/listing"
	"quokkalist/internal/domain/promotion"
	pvo "quokkalist/internal/domain/promotion/valueobjects"
	"quokkalist/internal/shared/biztime"
	"quokkalist/internal/shared/db"
	"quokkalist/internal/shared/errors"
	"quokkalist/internal/shared/logger"
)

// GiftWindowUseCase grants a promotion window without payment. Admin only.
// The grant is recorded as a zero-price completed order so it shows up in
// the owner's order history like any purchase.
type GiftWindowUseCase struct {
	orderRepo  billing.OrderRepository
	windowRepo promotion.WindowRepository
	serverRepo listing.ServerRepository
	txManager  *db.TransactionManager
	currency   string
	logger     logger.Interface
}

func NewGiftWindowUseCase(
	orderRepo billing.OrderRepository,
	windowRepo promotion.WindowRepository,
	serverRepo listing.ServerRepository,
	txManager *db.TransactionManager,
	currency string,
	logger logger.Interface,
) *GiftWindowUseCase {
	return &GiftWindowUseCase{
		orderRepo:  orderRepo,
		windowRepo: windowRepo,
		serverRepo: serverRepo,
		txManager:  txManager,
		currency:   currency,
		logger:     logger,
	}
}

type GiftWindowCommand struct {
	ServerID string
	Plan     string
	Quantity int
	StartAt  *time.Time
}

type GiftWindowResult struct {
	Order OrderDTO `json:"order"`
}

func (uc *GiftWindowUseCase) Execute(ctx context.Context, cmd GiftWindowCommand) (*GiftWindowResult, error) {
	plan := pvo.Plan(cmd.Plan)
	if !plan.IsValid() {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid plan: %s", cmd.Plan))
	}
	if cmd.Quantity < 1 || cmd.Quantity > plan.MaxQuantity() {
		return nil, errors.NewValidationError(fmt.Sprintf("quantity must be between 1 and %d for the %s plan", plan.MaxQuantity(), plan))
	}

	ownerID, err := uc.serverRepo.GetOwnerID(ctx, cmd.ServerID)
	if err != nil {
		return nil, errors.NewInternalError("failed to look up server", err.Error())
	}
	if ownerID == "" {
		return nil, errors.NewNotFoundError("server not found")
	}

	start := biztime.NowUTC()
	if cmd.StartAt != nil {
		start = cmd.StartAt.UTC()
	}
	end := start.Add(plan.WindowSpan(cmd.Quantity))

	order, err := billing.NewGiftedOrder(ownerID, cmd.ServerID, plan, cmd.Quantity, start, end, uc.currency)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	window, err := promotion.NewWindow(cmd.ServerID, plan, start, end)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.orderRepo.CreateGifted(txCtx, order); err != nil {
			return err
		}
		return uc.windowRepo.Create(txCtx, window)
	})
	if err != nil {
		uc.logger.Errorw("failed to gift promotion window", "error", err, "server_id", cmd.ServerID)
		return nil, errors.NewInternalError("failed to gift promotion window")
	}

	uc.logger.Infow("promotion window gifted",
		"server_id", cmd.ServerID,
		"plan", plan,
		"window_end_at", end,
	)

	return &GiftWindowResult{Order: toOrderDTO(order)}, nil
}
