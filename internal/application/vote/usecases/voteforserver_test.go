package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"quokkalist/internal/domain/vote"
	"quokkalist/internal/shared/biztime"
	"quokkalist/internal/shared/db"
	apperrors "quokkalist/internal/shared/errors"
	"quokkalist/internal/shared/logger"
)

type voteFixture struct {
	serverRepo *MockServerRepository
	statsRepo  *MockStatsRepository
	voteRepo   *MockVoteRepository
	stateRepo  *MockSystemStateRepository
	uc         *VoteForServerUseCase
}

func newTestTxManager(t *testing.T) *db.TransactionManager {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db.NewTransactionManager(gdb)
}

func newVoteFixture(t *testing.T) *voteFixture {
	f := &voteFixture{
		serverRepo: new(MockServerRepository),
		statsRepo:  new(MockStatsRepository),
		voteRepo:   new(MockVoteRepository),
		stateRepo:  new(MockSystemStateRepository),
	}
	txManager := newTestTxManager(t)
	log := logger.NewLogger()
	reset := NewEnsureMonthlyResetUseCase(f.stateRepo, f.voteRepo, f.statsRepo, txManager, log)
	f.uc = NewVoteForServerUseCase(f.serverRepo, f.statsRepo, f.voteRepo, reset, txManager, vote.DefaultRules(), log)
	return f
}

// expectNoReset wires the reset path to find the current month already
// recorded, so only the vote branch runs.
func (f *voteFixture) expectNoReset() {
	currentMonth := biztime.TruncateToMonthUTC(biztime.NowUTC())
	f.stateRepo.On("EnsureExists", mock.Anything, currentMonth).Return(nil)
	f.stateRepo.On("LockCurrent", mock.Anything).Return(&vote.SystemState{LastResetMonth: currentMonth}, nil)
}

func TestVoteForServer_RecordsVoteAndBumpsLikes(t *testing.T) {
	f := newVoteFixture(t)
	f.expectNoReset()
	f.serverRepo.On("Exists", mock.Anything, "srv-1").Return(true, nil)
	f.voteRepo.On("UsageFor", mock.Anything, "srv-1", "user-1", mock.Anything).Return(vote.Usage{VotesToday: 0}, nil)
	f.voteRepo.On("Insert", mock.Anything, "srv-1", "user-1", mock.Anything).Return(nil)
	f.statsRepo.On("IncrementLikes", mock.Anything, "srv-1").Return(int64(42), nil)

	result, err := f.uc.Execute(context.Background(), VoteForServerCommand{ServerID: "srv-1", UserID: "user-1"})
	require.NoError(t, err)

	assert.Equal(t, int64(42), result.Likes)
	assert.Equal(t, 1, result.VotesToday)
	f.voteRepo.AssertExpectations(t)
	f.statsRepo.AssertExpectations(t)
}

func TestVoteForServer_DailyLimitRejected(t *testing.T) {
	f := newVoteFixture(t)
	f.expectNoReset()
	old := biztime.NowUTC().Add(-2 * time.Hour)
	f.serverRepo.On("Exists", mock.Anything, "srv-1").Return(true, nil)
	// The bump still runs to take the stats row lock; the failed check
	// rolls it back with the rest of the transaction.
	f.statsRepo.On("IncrementLikes", mock.Anything, "srv-1").Return(int64(5), nil)
	f.voteRepo.On("UsageFor", mock.Anything, "srv-1", "user-1", mock.Anything).
		Return(vote.Usage{VotesToday: 3, LastVoteAt: &old}, nil)

	_, err := f.uc.Execute(context.Background(), VoteForServerCommand{ServerID: "srv-1", UserID: "user-1"})
	require.Error(t, err)

	assert.True(t, apperrors.IsRateLimitedError(err))
	f.voteRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestVoteForServer_CooldownRejected(t *testing.T) {
	f := newVoteFixture(t)
	f.expectNoReset()
	recent := biztime.NowUTC().Add(-10 * time.Minute)
	f.serverRepo.On("Exists", mock.Anything, "srv-1").Return(true, nil)
	f.statsRepo.On("IncrementLikes", mock.Anything, "srv-1").Return(int64(5), nil)
	f.voteRepo.On("UsageFor", mock.Anything, "srv-1", "user-1", mock.Anything).
		Return(vote.Usage{VotesToday: 1, LastVoteAt: &recent}, nil)

	_, err := f.uc.Execute(context.Background(), VoteForServerCommand{ServerID: "srv-1", UserID: "user-1"})
	require.Error(t, err)

	assert.True(t, apperrors.IsRateLimitedError(err))
	f.voteRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// The stats upsert has to run before the quota count so its row lock
// serializes concurrent votes: a second transaction for the same server
// blocks on the locked stats row and counts this one's vote after it
// commits, instead of both passing the check on a stale count.
func TestVoteForServer_LocksStatsRowBeforeQuotaCount(t *testing.T) {
	f := newVoteFixture(t)
	f.expectNoReset()

	var calls []string
	f.serverRepo.On("Exists", mock.Anything, "srv-1").Return(true, nil)
	f.statsRepo.On("IncrementLikes", mock.Anything, "srv-1").
		Run(func(mock.Arguments) { calls = append(calls, "increment") }).
		Return(int64(1), nil)
	f.voteRepo.On("UsageFor", mock.Anything, "srv-1", "user-1", mock.Anything).
		Run(func(mock.Arguments) { calls = append(calls, "count") }).
		Return(vote.Usage{VotesToday: 0}, nil)
	f.voteRepo.On("Insert", mock.Anything, "srv-1", "user-1", mock.Anything).
		Run(func(mock.Arguments) { calls = append(calls, "insert") }).
		Return(nil)

	_, err := f.uc.Execute(context.Background(), VoteForServerCommand{ServerID: "srv-1", UserID: "user-1"})
	require.NoError(t, err)

	assert.Equal(t, []string{"increment", "count", "insert"}, calls)
}

func TestVoteForServer_UnknownServer(t *testing.T) {
	f := newVoteFixture(t)
	f.serverRepo.On("Exists", mock.Anything, "missing").Return(false, nil)

	_, err := f.uc.Execute(context.Background(), VoteForServerCommand{ServerID: "missing", UserID: "user-1"})
	require.Error(t, err)

	assert.True(t, apperrors.IsNotFoundError(err))
	f.stateRepo.AssertNotCalled(t, "EnsureExists", mock.Anything, mock.Anything)
}

func TestVoteForServer_RunsResetBeforeQuotaCheck(t *testing.T) {
	f := newVoteFixture(t)
	currentMonth := biztime.TruncateToMonthUTC(biztime.NowUTC())
	lastMonth := currentMonth.AddDate(0, -1, 0)

	f.serverRepo.On("Exists", mock.Anything, "srv-1").Return(true, nil)
	f.stateRepo.On("EnsureExists", mock.Anything, currentMonth).Return(nil)
	f.stateRepo.On("LockCurrent", mock.Anything).Return(&vote.SystemState{LastResetMonth: lastMonth}, nil)
	f.statsRepo.On("ZeroAllLikes", mock.Anything).Return(nil)
	f.voteRepo.On("DeleteAll", mock.Anything).Return(nil)
	f.stateRepo.On("AdvanceMonth", mock.Anything, currentMonth).Return(nil)

	f.voteRepo.On("UsageFor", mock.Anything, "srv-1", "user-1", mock.Anything).Return(vote.Usage{VotesToday: 0}, nil)
	f.voteRepo.On("Insert", mock.Anything, "srv-1", "user-1", mock.Anything).Return(nil)
	f.statsRepo.On("IncrementLikes", mock.Anything, "srv-1").Return(int64(1), nil)

	result, err := f.uc.Execute(context.Background(), VoteForServerCommand{ServerID: "srv-1", UserID: "user-1"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.Likes)
	f.stateRepo.AssertExpectations(t)
	f.statsRepo.AssertExpectations(t)
	f.voteRepo.AssertExpectations(t)
}
