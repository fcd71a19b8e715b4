package usecases

import (
	"context"
	"time"

	"quokkalist/internal/domain/promotion"
	"quokkalist/internal/shared/biztime"
	"quokkalist/internal/shared/errors"
	"quokkalist/internal/shared/logger"
)

// GetActiveWindowUseCase reports whether a server is currently promoted,
// and under which plan. Backs the public ranking badge.
type GetActiveWindowUseCase struct {
	windowRepo promotion.WindowRepository
	logger     logger.Interface
}

func NewGetActiveWindowUseCase(windowRepo promotion.WindowRepository, logger logger.Interface) *GetActiveWindowUseCase {
	return &GetActiveWindowUseCase{
		windowRepo: windowRepo,
		logger:     logger,
	}
}

type GetActiveWindowCommand struct {
	ServerID string
}

type WindowDTO struct {
	ID        uint      `json:"id"`
	ServerID  string    `json:"server_id"`
	Plan      string    `json:"plan"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	CreatedAt time.Time `json:"created_at"`
}

type GetActiveWindowResult struct {
	Promoted bool       `json:"promoted"`
	Window   *WindowDTO `json:"window,omitempty"`
}

func (uc *GetActiveWindowUseCase) Execute(ctx context.Context, cmd GetActiveWindowCommand) (*GetActiveWindowResult, error) {
	if cmd.ServerID == "" {
		return nil, errors.NewValidationError("server ID is required")
	}

	window, err := uc.windowRepo.ActiveForServer(ctx, cmd.ServerID, biztime.NowUTC())
	if err != nil {
		uc.logger.Errorw("failed to look up active window", "error", err, "server_id", cmd.ServerID)
		return nil, errors.NewInternalError("failed to look up promotion")
	}
	if window == nil {
		return &GetActiveWindowResult{}, nil
	}

	dto := toWindowDTO(window)
	return &GetActiveWindowResult{Promoted: true, Window: &dto}, nil
}

func toWindowDTO(w *promotion.Window) WindowDTO {
	return WindowDTO{
		ID:        w.ID(),
		ServerID:  w.ServerID(),
		Plan:      w.Plan().String(),
		StartAt:   w.StartAt(),
		EndAt:     w.EndAt(),
		CreatedAt: w.CreatedAt(),
	}
}
