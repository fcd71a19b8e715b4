// Package repository contains the GORM-backed implementations of the
// domain repository interfaces.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"quokkalist/internal/domain/billing"
	"quokkalist/internal/infrastructure/persistence/mappers"
	"quokkalist/internal/infrastructure/persistence/models"
	"quokkalist/internal/shared/db"
)

type OrderRepository struct {
	db     *gorm.DB
	mapper *mappers.OrderMapper
}

func NewOrderRepository(database *gorm.DB) *OrderRepository {
	return &OrderRepository{
		db:     database,
		mapper: mappers.NewOrderMapper(),
	}
}

// CreatePending inserts the order; a conflicting checkout session id is
// silently ignored, so a retried client call cannot duplicate the order.
func (r *OrderRepository) CreatePending(ctx context.Context, order *billing.Order) error {
	tx := db.GetTxFromContext(ctx, r.db)
	model := r.mapper.ToModel(order)

	result := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "checkout_session_id"}},
		DoNothing: true,
	}).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to create order: %w", result.Error)
	}
	return nil
}

func (r *OrderRepository) CreateGifted(ctx context.Context, order *billing.Order) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(r.mapper.ToModel(order)).Error; err != nil {
		return fmt.Errorf("failed to create gifted order: %w", err)
	}
	return nil
}

// ClaimCompleted flips the order to completed with a single guarded
// update. The status check inside the WHERE clause makes the flip
// exactly-once: concurrent or repeated deliveries see zero rows affected.
func (r *OrderRepository) ClaimCompleted(ctx context.Context, checkoutSessionID, gatewayIntentID string) (*billing.Order, bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	updates := map[string]interface{}{
		"status":     "completed",
		"updated_at": time.Now().UTC(),
	}
	if gatewayIntentID != "" {
		updates["gateway_intent_id"] = gatewayIntentID
	}

	result := tx.Model(&models.OrderModel{}).
		Where("checkout_session_id = ? AND status <> ?", checkoutSessionID, "completed").
		Updates(updates)
	if result.Error != nil {
		return nil, false, fmt.Errorf("failed to claim order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, false, nil
	}

	var model models.OrderModel
	if err := tx.Where("checkout_session_id = ?", checkoutSessionID).First(&model).Error; err != nil {
		return nil, false, fmt.Errorf("failed to load claimed order: %w", err)
	}
	return r.mapper.ToDomain(&model), true, nil
}

func (r *OrderRepository) MarkFailed(ctx context.Context, checkoutSessionID string) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.OrderModel{}).
		Where("checkout_session_id = ? AND status = ?", checkoutSessionID, "pending").
		Updates(map[string]interface{}{
			"status":     "failed",
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to mark order failed: %w", result.Error)
	}
	return nil
}

func (r *OrderRepository) SetPromotionWindow(ctx context.Context, checkoutSessionID string, start, end time.Time) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.OrderModel{}).
		Where("checkout_session_id = ?", checkoutSessionID).
		Updates(map[string]interface{}{
			"window_start_at": start,
			"window_end_at":   end,
			"updated_at":      time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to set promotion window: %w", result.Error)
	}
	return nil
}

func (r *OrderRepository) UpsertPromoMeta(ctx context.Context, checkoutSessionID string, meta billing.PromoMeta) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.OrderModel{}).
		Where("checkout_session_id = ?", checkoutSessionID).
		Updates(map[string]interface{}{
			"base_amount_cents": meta.BaseAmountCents,
			"promo_code_id":     meta.PromoCodeID,
			"promo_code":        meta.PromoCode,
			"discount_type":     meta.DiscountType,
			"discount_value":    meta.DiscountValue,
			"updated_at":        time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to upsert promo meta: %w", result.Error)
	}
	return nil
}

func (r *OrderRepository) GetByCheckoutSession(ctx context.Context, checkoutSessionID, userID string) (*billing.Order, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.OrderModel
	err := tx.Where("checkout_session_id = ? AND user_id = ?", checkoutSessionID, userID).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id, userID string) (*billing.Order, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.OrderModel
	err := tx.Where("id = ? AND user_id = ?", id, userID).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]*billing.Order, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var modelList []*models.OrderModel
	if err := tx.Where("user_id = ?", userID).Order("created_at DESC").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return r.mapper.ToDomainList(modelList), nil
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]*billing.Order, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var modelList []*models.OrderModel
	if err := tx.Order("created_at DESC").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return r.mapper.ToDomainList(modelList), nil
}
