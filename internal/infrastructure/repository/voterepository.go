package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"quokkalist/internal/domain/vote"
	"quokkalist/internal/infrastructure/persistence/models"
	"quokkalist/internal/shared/db"
)

type VoteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(database *gorm.DB) *VoteRepository {
	return &VoteRepository{db: database}
}

func (r *VoteRepository) UsageFor(ctx context.Context, serverID, userID string, dayStart time.Time) (vote.Usage, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var count int64
	err := tx.Model(&models.VoteModel{}).
		Where("server_id = ? AND user_id = ? AND voted_at >= ?", serverID, userID, dayStart).
		Count(&count).Error
	if err != nil {
		return vote.Usage{}, fmt.Errorf("failed to count votes: %w", err)
	}

	usage := vote.Usage{VotesToday: int(count)}

	var last models.VoteModel
	err = tx.Where("server_id = ? AND user_id = ?", serverID, userID).
		Order("voted_at DESC").
		First(&last).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return vote.Usage{}, fmt.Errorf("failed to find last vote: %w", err)
	}
	if err == nil {
		votedAt := last.VotedAt
		usage.LastVoteAt = &votedAt
	}
	return usage, nil
}

func (r *VoteRepository) Insert(ctx context.Context, serverID, userID string, votedAt time.Time) error {
	tx := db.GetTxFromContext(ctx, r.db)

	record := &models.VoteModel{
		ServerID: serverID,
		UserID:   userID,
		VotedAt:  votedAt,
	}
	if err := tx.Create(record).Error; err != nil {
		return fmt.Errorf("failed to insert vote: %w", err)
	}
	return nil
}

func (r *VoteRepository) DeleteAll(ctx context.Context) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.VoteModel{}).Error; err != nil {
		return fmt.Errorf("failed to clear votes: %w", err)
	}
	return nil
}
