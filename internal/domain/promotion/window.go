// Package promotion holds the promotion window aggregate: the time-bounded
// interval during which a server receives elevated ranking. Windows are
// append-only history; the newest unexpired one decides the server's rank tier.
package promotion

import (
	"fmt"
	"time"

	vo "quokkalist/internal/domain/promotion/valueobjects"
)

type Window struct {
	id        uint
	serverID  string
	plan      vo.Plan
	startAt   time.Time
	endAt     time.Time
	createdAt time.Time
}

// NewWindow creates a promotion window covering [startAt, endAt).
func NewWindow(serverID string, plan vo.Plan, startAt, endAt time.Time) (*Window, error) {
	if serverID == "" {
		return nil, fmt.Errorf("server ID is required")
	}
	if !plan.IsValid() {
		return nil, fmt.Errorf("invalid plan: %s", plan)
	}
	if !endAt.After(startAt) {
		return nil, fmt.Errorf("end time must be after start time")
	}

	return &Window{
		serverID:  serverID,
		plan:      plan,
		startAt:   startAt.UTC(),
		endAt:     endAt.UTC(),
		createdAt: time.Now().UTC(),
	}, nil
}

// IsActiveAt reports whether the window covers the given instant.
func (w *Window) IsActiveAt(t time.Time) bool {
	return !t.Before(w.startAt) && t.Before(w.endAt)
}

func (w *Window) ID() uint {
	return w.id
}

func (w *Window) ServerID() string {
	return w.serverID
}

func (w *Window) Plan() vo.Plan {
	return w.plan
}

func (w *Window) StartAt() time.Time {
	return w.startAt
}

func (w *Window) EndAt() time.Time {
	return w.endAt
}

func (w *Window) CreatedAt() time.Time {
	return w.createdAt
}

// SetID sets the window ID after persistence (used by repository after Create)
func (w *Window) SetID(id uint) {
	w.id = id
}

func ReconstructWindow(id uint, serverID string, plan vo.Plan, startAt, endAt, createdAt time.Time) *Window {
	return &Window{
		id:        id,
		serverID:  serverID,
		plan:      plan,
		startAt:   startAt,
		endAt:     endAt,
		createdAt: createdAt,
	}
}
