package listing

import "context"

type ServerRepository interface {
	// GetByID returns (nil, nil) when the server does not exist.
	GetByID(ctx context.Context, id string) (*Server, error)
	// GetOwnerID returns ("", nil) when the server does not exist.
	GetOwnerID(ctx context.Context, id string) (string, error)
	Exists(ctx context.Context, id string) (bool, error)
}

type StatsRepository interface {
	// IncrementLikes upserts the stats row and bumps likes by one,
	// returning the new total. Must run inside the caller's transaction.
	IncrementLikes(ctx context.Context, serverID string) (int64, error)
	// ZeroAllLikes resets every server's likes counter. Used only by the
	// monthly reset, inside its locked transaction.
	ZeroAllLikes(ctx context.Context) error
	IncrementViews(ctx context.Context, serverID string) error
	IncrementVisits(ctx context.Context, serverID string) error
	IncrementClicks(ctx context.Context, serverID string) error
	GetForServer(ctx context.Context, serverID string) (*Stats, error)
}
