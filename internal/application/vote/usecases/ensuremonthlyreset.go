package usecases

import (
	"context"

	"quokkalist/internal/domain/listing"
	"quokkalist/internal/domain/vote"
	"quokkalist/internal/shared/biztime"
	"quokkalist/internal/shared/db"
	"quokkalist/internal/shared/errors"
	"quokkalist/internal/shared/logger"
)

// EnsureMonthlyResetUseCase performs the lazy monthly likes reset. The
// singleton state row is taken under a row lock, so concurrent callers
// crossing a month boundary serialize and exactly one of them resets.
type EnsureMonthlyResetUseCase struct {
	stateRepo vote.SystemStateRepository
	voteRepo  vote.VoteRepository
	statsRepo listing.StatsRepository
	txManager *db.TransactionManager
	logger    logger.Interface
}

func NewEnsureMonthlyResetUseCase(
	stateRepo vote.SystemStateRepository,
	voteRepo vote.VoteRepository,
	statsRepo listing.StatsRepository,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *EnsureMonthlyResetUseCase {
	return &EnsureMonthlyResetUseCase{
		stateRepo: stateRepo,
		voteRepo:  voteRepo,
		statsRepo: statsRepo,
		txManager: txManager,
		logger:    logger,
	}
}

type EnsureMonthlyResetResult struct {
	ResetPerformed bool `json:"reset_performed"`
}

func (uc *EnsureMonthlyResetUseCase) Execute(ctx context.Context) (*EnsureMonthlyResetResult, error) {
	currentMonth := biztime.TruncateToMonthUTC(biztime.NowUTC())

	if err := uc.stateRepo.EnsureExists(ctx, currentMonth); err != nil {
		return nil, errors.NewInternalError("failed to initialize vote system state", err.Error())
	}

	var performed bool
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		state, err := uc.stateRepo.LockCurrent(txCtx)
		if err != nil {
			return err
		}
		if !biztime.TruncateToMonthUTC(state.LastResetMonth).Before(currentMonth) {
			return nil
		}

		if err := uc.statsRepo.ZeroAllLikes(txCtx); err != nil {
			return err
		}
		if err := uc.voteRepo.DeleteAll(txCtx); err != nil {
			return err
		}
		if err := uc.stateRepo.AdvanceMonth(txCtx, currentMonth); err != nil {
			return err
		}
		performed = true
		return nil
	})
	if err != nil {
		uc.logger.Errorw("monthly reset failed", "error", err)
		return nil, errors.NewInternalError("monthly reset failed")
	}

	if performed {
		uc.logger.Infow("monthly likes reset performed", "month", currentMonth.Format("2006-01"))
	}
	return &EnsureMonthlyResetResult{ResetPerformed: performed}, nil
}
