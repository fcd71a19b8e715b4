package vote

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRules_Check(t *testing.T) {
	now := time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC)
	recent := now.Add(-30 * time.Minute)
	old := now.Add(-2 * time.Hour)

	rules := DefaultRules()

	tests := []struct {
		name    string
		usage   Usage
		wantErr error
	}{
		{name: "first vote of the day", usage: Usage{VotesToday: 0}},
		{name: "second vote after cooldown", usage: Usage{VotesToday: 1, LastVoteAt: &old}},
		{name: "at daily limit", usage: Usage{VotesToday: 3, LastVoteAt: &old}, wantErr: ErrTooManyVotes},
		{name: "over daily limit", usage: Usage{VotesToday: 5, LastVoteAt: &old}, wantErr: ErrTooManyVotes},
		{name: "within cooldown", usage: Usage{VotesToday: 1, LastVoteAt: &recent}, wantErr: ErrCooldownActive},
		{name: "limit checked before cooldown", usage: Usage{VotesToday: 3, LastVoteAt: &recent}, wantErr: ErrTooManyVotes},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := rules.Check(tc.usage, now)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRules_Check_ExactCooldownBoundary(t *testing.T) {
	now := time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC)
	exactlyOneHourAgo := now.Add(-time.Hour)

	err := DefaultRules().Check(Usage{VotesToday: 1, LastVoteAt: &exactlyOneHourAgo}, now)
	assert.NoError(t, err)
}
