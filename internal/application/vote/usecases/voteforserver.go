package usecases

import (
	"context"
	stderrors "errors"

	"quokkalist/internal/domain/listing"
	"quokkalist/internal/domain/vote"
	"quokkalist/internal/shared/biztime"
	"quokkalist/internal/shared/db"
	"quokkalist/internal/shared/errors"
	"quokkalist/internal/shared/logger"
)

// VoteForServerUseCase records one vote and bumps the server's likes.
// The likes upsert, the quota check, and the vote insert share one
// transaction, with the upsert first: its write lock on the server_stats
// row serializes concurrent votes for the same server, so the quota
// count never races a parallel insert and likes never drift from the
// vote ledger.
type VoteForServerUseCase struct {
	serverRepo listing.ServerRepository
	statsRepo  listing.StatsRepository
	voteRepo   vote.VoteRepository
	reset      *EnsureMonthlyResetUseCase
	txManager  *db.TransactionManager
	rules      vote.Rules
	logger     logger.Interface
}

func NewVoteForServerUseCase(
	serverRepo listing.ServerRepository,
	statsRepo listing.StatsRepository,
	voteRepo vote.VoteRepository,
	reset *EnsureMonthlyResetUseCase,
	txManager *db.TransactionManager,
	rules vote.Rules,
	logger logger.Interface,
) *VoteForServerUseCase {
	return &VoteForServerUseCase{
		serverRepo: serverRepo,
		statsRepo:  statsRepo,
		voteRepo:   voteRepo,
		reset:      reset,
		txManager:  txManager,
		rules:      rules,
		logger:     logger,
	}
}

type VoteForServerCommand struct {
	ServerID string
	UserID   string
}

type VoteForServerResult struct {
	Likes      int64 `json:"likes"`
	VotesToday int   `json:"votes_today"`
}

func (uc *VoteForServerUseCase) Execute(ctx context.Context, cmd VoteForServerCommand) (*VoteForServerResult, error) {
	if cmd.ServerID == "" {
		return nil, errors.NewValidationError("server ID is required")
	}

	exists, err := uc.serverRepo.Exists(ctx, cmd.ServerID)
	if err != nil {
		return nil, errors.NewInternalError("failed to look up server", err.Error())
	}
	if !exists {
		return nil, errors.NewNotFoundError("server not found")
	}

	// The reset runs before the quota check so January votes are not
	// rejected against December's ledger.
	if _, err := uc.reset.Execute(ctx); err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	dayStart := biztime.StartOfDayUTC(now)

	var result VoteForServerResult
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		// The upsert must come before the count: it locks the stats
		// row, so a second transaction for the same server blocks here
		// and its count then sees this transaction's committed vote.
		// A rejected vote rolls the bump back with everything else.
		likes, err := uc.statsRepo.IncrementLikes(txCtx, cmd.ServerID)
		if err != nil {
			return err
		}
		usage, err := uc.voteRepo.UsageFor(txCtx, cmd.ServerID, cmd.UserID, dayStart)
		if err != nil {
			return err
		}
		if err := uc.rules.Check(usage, now); err != nil {
			return err
		}
		if err := uc.voteRepo.Insert(txCtx, cmd.ServerID, cmd.UserID, now); err != nil {
			return err
		}
		result = VoteForServerResult{Likes: likes, VotesToday: usage.VotesToday + 1}
		return nil
	})
	if err != nil {
		if stderrors.Is(err, vote.ErrTooManyVotes) || stderrors.Is(err, vote.ErrCooldownActive) {
			return nil, errors.NewRateLimitedError(err.Error())
		}
		uc.logger.Errorw("failed to record vote", "error", err, "server_id", cmd.ServerID, "user_id", cmd.UserID)
		return nil, errors.NewInternalError("failed to record vote")
	}

	uc.logger.Infow("vote recorded", "server_id", cmd.ServerID, "user_id", cmd.UserID, "likes", result.Likes)
	return &result, nil
}
