package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"quokkalist/internal/domain/vote"
	"quokkalist/internal/infrastructure/persistence/models"
	"quokkalist/internal/shared/db"
)

// voteSystemStateID is the fixed primary key of the singleton row.
const voteSystemStateID = 1

type VoteSystemStateRepository struct {
	db *gorm.DB
}

func NewVoteSystemStateRepository(database *gorm.DB) *VoteSystemStateRepository {
	return &VoteSystemStateRepository{db: database}
}

func (r *VoteSystemStateRepository) EnsureExists(ctx context.Context, month time.Time) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.VoteSystemStateModel{
		ID:             voteSystemStateID,
		LastResetMonth: month,
		UpdatedAt:      time.Now().UTC(),
	})
	if result.Error != nil {
		return fmt.Errorf("failed to initialize vote system state: %w", result.Error)
	}
	return nil
}

// LockCurrent reads the singleton row FOR UPDATE so concurrent reset
// attempts serialize. SQLite has no row locks; its single-writer
// transactions give the same guarantee, so the clause is skipped there.
func (r *VoteSystemStateRepository) LockCurrent(ctx context.Context) (*vote.SystemState, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	query := tx
	if tx.Dialector.Name() != "sqlite" {
		query = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var model models.VoteSystemStateModel
	if err := query.Where("id = ?", voteSystemStateID).First(&model).Error; err != nil {
		return nil, fmt.Errorf("failed to lock vote system state: %w", err)
	}
	return &vote.SystemState{LastResetMonth: model.LastResetMonth}, nil
}

func (r *VoteSystemStateRepository) AdvanceMonth(ctx context.Context, month time.Time) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.VoteSystemStateModel{}).
		Where("id = ?", voteSystemStateID).
		Updates(map[string]interface{}{
			"last_reset_month": month,
			"updated_at":       time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to advance reset month: %w", result.Error)
	}
	return nil
}
