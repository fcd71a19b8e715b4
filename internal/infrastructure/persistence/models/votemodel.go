package models

import "time"

// VoteModel is the votes ledger. Quota queries filter on
// (server_id, user_id, voted_at), covered by the composite index.
type VoteModel struct {
	ID       uint      `gorm:"primaryKey;autoIncrement"`
	ServerID string    `gorm:"size:64;index:idx_votes_server_user_time;not null"`
	UserID   string    `gorm:"size:64;index:idx_votes_server_user_time;not null"`
	VotedAt  time.Time `gorm:"index:idx_votes_server_user_time;not null"`
}

func (VoteModel) TableName() string {
	return "votes"
}

// VoteSystemStateModel is the singleton row guarding the monthly reset.
// ID is always 1.
type VoteSystemStateModel struct {
	ID             uint      `gorm:"primaryKey"`
	LastResetMonth time.Time `gorm:"not null"`
	UpdatedAt      time.Time
}

func (VoteSystemStateModel) TableName() string {
	return "vote_system_state"
}
