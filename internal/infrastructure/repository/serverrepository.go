package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"quokkalist/internal/domain/listing"
	"quokkalist/internal/infrastructure/persistence/mappers"
	"quokkalist/internal/infrastructure/persistence/models"
	"quokkalist/internal/shared/db"
)

type ServerRepository struct {
	db     *gorm.DB
	mapper *mappers.ServerMapper
}

func NewServerRepository(database *gorm.DB) *ServerRepository {
	return &ServerRepository{
		db:     database,
		mapper: mappers.NewServerMapper(),
	}
}

func (r *ServerRepository) GetByID(ctx context.Context, id string) (*listing.Server, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.ServerModel
	err := tx.Where("id = ?", id).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get server: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *ServerRepository) GetOwnerID(ctx context.Context, id string) (string, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var ownerID string
	err := tx.Model(&models.ServerModel{}).
		Select("owner_id").
		Where("id = ?", id).
		Take(&ownerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get server owner: %w", err)
	}
	return ownerID, nil
}

func (r *ServerRepository) Exists(ctx context.Context, id string) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var count int64
	if err := tx.Model(&models.ServerModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check server existence: %w", err)
	}
	return count > 0, nil
}
