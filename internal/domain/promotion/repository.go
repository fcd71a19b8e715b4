package promotion

import (
	"context"
	"time"
)

type WindowRepository interface {
	Create(ctx context.Context, window *Window) error
	// ActiveForServer returns the most recent window still covering now,
	// or nil when the server has no active promotion.
	ActiveForServer(ctx context.Context, serverID string, now time.Time) (*Window, error)
	ListForServer(ctx context.Context, serverID string) ([]*Window, error)
	ListForOwner(ctx context.Context, userID string) ([]*Window, error)
	ListAll(ctx context.Context) ([]*Window, error)
}
