package usecases

import (
	"context"

	"quokkalist/internal/domain/promotion"
	"quokkalist/internal/shared/errors"
	"quokkalist/internal/shared/logger"
)

// ListWindowsUseCase returns promotion window history. Owners see the
// windows bought for their servers; admins see everything.
type ListWindowsUseCase struct {
	windowRepo promotion.WindowRepository
	logger     logger.Interface
}

func NewListWindowsUseCase(windowRepo promotion.WindowRepository, logger logger.Interface) *ListWindowsUseCase {
	return &ListWindowsUseCase{
		windowRepo: windowRepo,
		logger:     logger,
	}
}

type ListWindowsCommand struct {
	// OwnerID scopes the listing to servers owned by this user.
	// Empty means all windows (admin listing).
	OwnerID string
}

type ListWindowsResult struct {
	Windows []WindowDTO `json:"windows"`
	Total   int         `json:"total"`
}

func (uc *ListWindowsUseCase) Execute(ctx context.Context, cmd ListWindowsCommand) (*ListWindowsResult, error) {
	var windows []*promotion.Window
	var err error
	if cmd.OwnerID != "" {
		windows, err = uc.windowRepo.ListForOwner(ctx, cmd.OwnerID)
	} else {
		windows, err = uc.windowRepo.ListAll(ctx)
	}
	if err != nil {
		uc.logger.Errorw("failed to list windows", "error", err, "owner_id", cmd.OwnerID)
		return nil, errors.NewInternalError("failed to list promotion windows")
	}

	dtos := make([]WindowDTO, 0, len(windows))
	for _, w := range windows {
		dtos = append(dtos, toWindowDTO(w))
	}

	return &ListWindowsResult{Windows: dtos, Total: len(dtos)}, nil
}
