package vote

import (
	"context"
	"time"
)

type VoteRepository interface {
	// UsageFor counts votes cast since dayStart and finds the most recent
	// vote for the pair. Must run inside the caller's transaction.
	UsageFor(ctx context.Context, serverID, userID string, dayStart time.Time) (Usage, error)
	Insert(ctx context.Context, serverID, userID string, votedAt time.Time) error
	// DeleteAll clears the vote history. Used only by the monthly reset.
	DeleteAll(ctx context.Context) error
}

type SystemStateRepository interface {
	// EnsureExists inserts the singleton row if absent; succeeding when
	// it already exists.
	EnsureExists(ctx context.Context, month time.Time) error
	// LockCurrent reads the singleton row under a pessimistic row lock,
	// blocking concurrent reset attempts until the transaction ends.
	LockCurrent(ctx context.Context) (*SystemState, error)
	AdvanceMonth(ctx context.Context, month time.Time) error
}
