package usecases

import (
	"context"

	"quokkalist/internal/domain/listing"
	"quokkalist/internal/shared/errors"
	"quokkalist/internal/shared/logger"
)

// GetServerStatsUseCase returns the counter row for a server. A server
// with no recorded activity yet reports all zeros.
type GetServerStatsUseCase struct {
	serverRepo listing.ServerRepository
	statsRepo  listing.StatsRepository
	logger     logger.Interface
}

func NewGetServerStatsUseCase(serverRepo listing.ServerRepository, statsRepo listing.StatsRepository, logger logger.Interface) *GetServerStatsUseCase {
	return &GetServerStatsUseCase{
		serverRepo: serverRepo,
		statsRepo:  statsRepo,
		logger:     logger,
	}
}

type GetServerStatsCommand struct {
	ServerID string
}

type GetServerStatsResult struct {
	ServerID string `json:"server_id"`
	Likes    int64  `json:"likes"`
	Views    int64  `json:"views"`
	Visits   int64  `json:"visits"`
	Clicks   int64  `json:"clicks"`
}

func (uc *GetServerStatsUseCase) Execute(ctx context.Context, cmd GetServerStatsCommand) (*GetServerStatsResult, error) {
	exists, err := uc.serverRepo.Exists(ctx, cmd.ServerID)
	if err != nil {
		return nil, errors.NewInternalError("failed to look up server", err.Error())
	}
	if !exists {
		return nil, errors.NewNotFoundError("server not found")
	}

	stats, err := uc.statsRepo.GetForServer(ctx, cmd.ServerID)
	if err != nil {
		uc.logger.Errorw("failed to fetch stats", "error", err, "server_id", cmd.ServerID)
		return nil, errors.NewInternalError("failed to fetch stats")
	}

	result := &GetServerStatsResult{ServerID: cmd.ServerID}
	if stats != nil {
		result.Likes = stats.Likes
		result.Views = stats.Views
		result.Visits = stats.Visits
		result.Clicks = stats.Clicks
	}
	return result, nil
}
