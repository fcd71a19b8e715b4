package usecases

import (
	"context"
	"fmt"

	"quokkalist/internal/domain/listing"
	"quokkalist/internal/shared/errors"
	"quokkalist/internal/shared/logger"
)

// StatKind names the counters a client may bump.
type StatKind string

const (
	StatView  StatKind = "view"
	StatVisit StatKind = "visit"
	StatClick StatKind = "click"
)

// TrackStatUseCase bumps one of the per-server traffic counters. Likes are
// excluded: they only move through the vote path.
type TrackStatUseCase struct {
	serverRepo listing.ServerRepository
	statsRepo  listing.StatsRepository
	logger     logger.Interface
}

func NewTrackStatUseCase(serverRepo listing.ServerRepository, statsRepo listing.StatsRepository, logger logger.Interface) *TrackStatUseCase {
	return &TrackStatUseCase{
		serverRepo: serverRepo,
		statsRepo:  statsRepo,
		logger:     logger,
	}
}

type TrackStatCommand struct {
	ServerID string
	Kind     StatKind
}

func (uc *TrackStatUseCase) Execute(ctx context.Context, cmd TrackStatCommand) error {
	exists, err := uc.serverRepo.Exists(ctx, cmd.ServerID)
	if err != nil {
		return errors.NewInternalError("failed to look up server", err.Error())
	}
	if !exists {
		return errors.NewNotFoundError("server not found")
	}

	switch cmd.Kind {
	case StatView:
		err = uc.statsRepo.IncrementViews(ctx, cmd.ServerID)
	case StatVisit:
		err = uc.statsRepo.IncrementVisits(ctx, cmd.ServerID)
	case StatClick:
		err = uc.statsRepo.IncrementClicks(ctx, cmd.ServerID)
	default:
		return errors.NewValidationError(fmt.Sprintf("unknown stat kind: %s", cmd.Kind))
	}
	if err != nil {
		uc.logger.Errorw("failed to bump stat", "error", err, "server_id", cmd.ServerID, "kind", cmd.Kind)
		return errors.NewInternalError("failed to record stat")
	}
	return nil
}
