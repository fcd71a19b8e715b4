package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"quokkalist/internal/domain/promo"
	"quokkalist/internal/infrastructure/persistence/mappers"
	"quokkalist/internal/infrastructure/persistence/models"
	"quokkalist/internal/shared/db"
)

type PromoCodeRepository struct {
	db     *gorm.DB
	mapper *mappers.PromoCodeMapper
}

func NewPromoCodeRepository(database *gorm.DB) *PromoCodeRepository {
	return &PromoCodeRepository{
		db:     database,
		mapper: mappers.NewPromoCodeMapper(),
	}
}

func (r *PromoCodeRepository) Create(ctx context.Context, code *promo.PromoCode) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if code.ID() == "" {
		code.SetID(uuid.NewString())
	}
	if err := tx.Create(r.mapper.ToModel(code)).Error; err != nil {
		return fmt.Errorf("failed to create promo code: %w", err)
	}
	return nil
}

func (r *PromoCodeRepository) GetByCode(ctx context.Context, code string) (*promo.PromoCode, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.PromoCodeModel
	err := tx.Where("code = ?", code).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get promo code: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *PromoCodeRepository) GetByID(ctx context.Context, id string) (*promo.PromoCode, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.PromoCodeModel
	err := tx.Where("id = ?", id).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get promo code: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *PromoCodeRepository) List(ctx context.Context) ([]*promo.PromoCode, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var modelList []*models.PromoCodeModel
	if err := tx.Order("created_at DESC").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list promo codes: %w", err)
	}
	return r.mapper.ToDomainList(modelList), nil
}

func (r *PromoCodeRepository) SetActive(ctx context.Context, id string, active bool) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.PromoCodeModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  active,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update promo code: %w", result.Error)
	}
	return nil
}

// IncrementUses bumps the counter atomically in SQL, not read-modify-write.
// The cap guard keeps uses_count at max_uses when two checkouts validated
// the same code before either settled; the order losing that race still
// completes, the counter just stops at the cap.
func (r *PromoCodeRepository) IncrementUses(ctx context.Context, id string) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.PromoCodeModel{}).
		Where("id = ? AND (max_uses IS NULL OR uses_count < max_uses)", id).
		UpdateColumn("uses_count", gorm.Expr("uses_count + 1"))
	if result.Error != nil {
		return fmt.Errorf("failed to increment promo code uses: %w", result.Error)
	}
	return nil
}
