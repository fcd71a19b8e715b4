package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"quokkalist/internal/domain/listing"
	"quokkalist/internal/infrastructure/persistence/mappers"
	"quokkalist/internal/infrastructure/persistence/models"
	"quokkalist/internal/shared/db"
)

type StatsRepository struct {
	db     *gorm.DB
	mapper *mappers.ServerMapper
}

func NewStatsRepository(database *gorm.DB) *StatsRepository {
	return &StatsRepository{
		db:     database,
		mapper: mappers.NewServerMapper(),
	}
}

// IncrementLikes upserts the counter row and bumps likes by one. Runs as
// a single statement so concurrent votes inside their transactions
// serialize on the row instead of losing updates.
func (r *StatsRepository) IncrementLikes(ctx context.Context, serverID string) (int64, error) {
	if err := r.bump(ctx, serverID, "likes"); err != nil {
		return 0, err
	}

	tx := db.GetTxFromContext(ctx, r.db)
	var likes int64
	err := tx.Model(&models.ServerStatsModel{}).
		Select("likes").
		Where("server_id = ?", serverID).
		Take(&likes).Error
	if err != nil {
		return 0, fmt.Errorf("failed to read likes: %w", err)
	}
	return likes, nil
}

// ZeroAllLikes clears every likes counter. Only the monthly reset calls
// this, inside its locked transaction.
func (r *StatsRepository) ZeroAllLikes(ctx context.Context) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.ServerStatsModel{}).
		Where("likes <> 0").
		Updates(map[string]interface{}{
			"likes":      0,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to zero likes: %w", result.Error)
	}
	return nil
}

func (r *StatsRepository) IncrementViews(ctx context.Context, serverID string) error {
	return r.bump(ctx, serverID, "views")
}

func (r *StatsRepository) IncrementVisits(ctx context.Context, serverID string) error {
	return r.bump(ctx, serverID, "visits")
}

func (r *StatsRepository) IncrementClicks(ctx context.Context, serverID string) error {
	return r.bump(ctx, serverID, "clicks")
}

func (r *StatsRepository) GetForServer(ctx context.Context, serverID string) (*listing.Stats, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.ServerStatsModel
	err := tx.Where("server_id = ?", serverID).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	return r.mapper.StatsToDomain(&model), nil
}

func (r *StatsRepository) bump(ctx context.Context, serverID, column string) error {
	tx := db.GetTxFromContext(ctx, r.db)
	now := time.Now().UTC()

	row := &models.ServerStatsModel{ServerID: serverID, UpdatedAt: now}
	switch column {
	case "likes":
		row.Likes = 1
	case "views":
		row.Views = 1
	case "visits":
		row.Visits = 1
	case "clicks":
		row.Clicks = 1
	}

	result := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "server_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			column:       gorm.Expr(fmt.Sprintf("server_stats.%s + 1", column)),
			"updated_at": now,
		}),
	}).Create(row)
	if result.Error != nil {
		return fmt.Errorf("failed to bump %s: %w", column, result.Error)
	}
	return nil
}
