// Package vote holds the vote ledger rules: per-user-per-server daily quota,
// the cooldown between votes, and the monthly reset guard state.
package vote

import (
	"errors"
	"time"
)

var (
	ErrTooManyVotes   = errors.New("daily vote limit reached for this server")
	ErrCooldownActive = errors.New("votes on the same server must be at least one hour apart")
)

const (
	// DefaultDailyLimit is the number of votes a user may cast for one
	// server per day.
	DefaultDailyLimit = 3
	// DefaultCooldown is the minimum gap between two votes by the same
	// user on the same server.
	DefaultCooldown = time.Hour
)

// Record is one cast vote.
type Record struct {
	ServerID string
	UserID   string
	VotedAt  time.Time
}

// Usage summarizes a (server, user) pair's voting history for quota checks.
type Usage struct {
	VotesToday int
	LastVoteAt *time.Time
}

// Rules carries the configured quota parameters.
type Rules struct {
	DailyLimit int
	Cooldown   time.Duration
}

func DefaultRules() Rules {
	return Rules{DailyLimit: DefaultDailyLimit, Cooldown: DefaultCooldown}
}

// Check validates a new vote at instant now against the usage summary.
func (r Rules) Check(usage Usage, now time.Time) error {
	if usage.VotesToday >= r.DailyLimit {
		return ErrTooManyVotes
	}
	if usage.LastVoteAt != nil && now.Sub(*usage.LastVoteAt) < r.Cooldown {
		return ErrCooldownActive
	}
	return nil
}

// SystemState is the singleton row guarding the monthly reset.
type SystemState struct {
	LastResetMonth time.Time
}
