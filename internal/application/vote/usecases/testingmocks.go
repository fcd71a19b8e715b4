package usecases

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"quokkalist/internal/domain/listing"
	"quokkalist/internal/domain/vote"
)

// Shared test mocks for this package.

type MockVoteRepository struct {
	mock.Mock
}

func (m *MockVoteRepository) UsageFor(ctx context.Context, serverID, userID string, dayStart time.Time) (vote.Usage, error) {
	args := m.Called(ctx, serverID, userID, dayStart)
	return args.Get(0).(vote.Usage), args.Error(1)
}

func (m *MockVoteRepository) Insert(ctx context.Context, serverID, userID string, votedAt time.Time) error {
	args := m.Called(ctx, serverID, userID, votedAt)
	return args.Error(0)
}

func (m *MockVoteRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockSystemStateRepository struct {
	mock.Mock
}

func (m *MockSystemStateRepository) EnsureExists(ctx context.Context, month time.Time) error {
	args := m.Called(ctx, month)
	return args.Error(0)
}

func (m *MockSystemStateRepository) LockCurrent(ctx context.Context) (*vote.SystemState, error) {
	args := m.Called(ctx)
	var state *vote.SystemState
	if args.Get(0) != nil {
		state = args.Get(0).(*vote.SystemState)
	}
	return state, args.Error(1)
}

func (m *MockSystemStateRepository) AdvanceMonth(ctx context.Context, month time.Time) error {
	args := m.Called(ctx, month)
	return args.Error(0)
}

type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) IncrementLikes(ctx context.Context, serverID string) (int64, error) {
	args := m.Called(ctx, serverID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStatsRepository) ZeroAllLikes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStatsRepository) IncrementViews(ctx context.Context, serverID string) error {
	args := m.Called(ctx, serverID)
	return args.Error(0)
}

func (m *MockStatsRepository) IncrementVisits(ctx context.Context, serverID string) error {
	args := m.Called(ctx, serverID)
	return args.Error(0)
}

func (m *MockStatsRepository) IncrementClicks(ctx context.Context, serverID string) error {
	args := m.Called(ctx, serverID)
	return args.Error(0)
}

func (m *MockStatsRepository) GetForServer(ctx context.Context, serverID string) (*listing.Stats, error) {
	args := m.Called(ctx, serverID)
	var stats *listing.Stats
	if args.Get(0) != nil {
		stats = args.Get(0).(*listing.Stats)
	}
	return stats, args.Error(1)
}

type MockServerRepository struct {
	mock.Mock
}

func (m *MockServerRepository) GetByID(ctx context.Context, id string) (*listing.Server, error) {
	args := m.Called(ctx, id)
	var s *listing.Server
	if args.Get(0) != nil {
		s = args.Get(0).(*listing.Server)
	}
	return s, args.Error(1)
}

func (m *MockServerRepository) GetOwnerID(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockServerRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
