package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"quokkalist/internal/domain/promotion"
	"quokkalist/internal/infrastructure/persistence/mappers"
	"quokkalist/internal/infrastructure/persistence/models"
	"quokkalist/internal/shared/db"
)

type WindowRepository struct {
	db     *gorm.DB
	mapper *mappers.WindowMapper
}

func NewWindowRepository(database *gorm.DB) *WindowRepository {
	return &WindowRepository{
		db:     database,
		mapper: mappers.NewWindowMapper(),
	}
}

func (r *WindowRepository) Create(ctx context.Context, window *promotion.Window) error {
	tx := db.GetTxFromContext(ctx, r.db)

	model := r.mapper.ToModel(window)
	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create promotion window: %w", err)
	}
	window.SetID(model.ID)
	return nil
}

func (r *WindowRepository) ActiveForServer(ctx context.Context, serverID string, now time.Time) (*promotion.Window, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.WindowModel
	err := tx.Where("server_id = ? AND start_at <= ? AND end_at > ?", serverID, now, now).
		Order("end_at DESC").
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active window: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *WindowRepository) ListForServer(ctx context.Context, serverID string) ([]*promotion.Window, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var modelList []*models.WindowModel
	if err := tx.Where("server_id = ?", serverID).Order("start_at DESC").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list windows: %w", err)
	}
	return r.mapper.ToDomainList(modelList), nil
}

func (r *WindowRepository) ListForOwner(ctx context.Context, userID string) ([]*promotion.Window, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var modelList []*models.WindowModel
	err := tx.
		Joins("JOIN servers ON servers.id = promotion_windows.server_id").
		Where("servers.owner_id = ?", userID).
		Order("promotion_windows.start_at DESC").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list windows: %w", err)
	}
	return r.mapper.ToDomainList(modelList), nil
}

func (r *WindowRepository) ListAll(ctx context.Context) ([]*promotion.Window, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var modelList []*models.WindowModel
	if err := tx.Order("start_at DESC").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list windows: %w", err)
	}
	return r.mapper.ToDomainList(modelList), nil
}
