package models

import "time"

// OrderModel is the orders table. CheckoutSessionID carries a unique index;
// the settlement reconciler's guarded update keys on it.
type OrderModel struct {
	ID                string     `gorm:"type:uuid;primaryKey"`
	CheckoutSessionID string     `gorm:"size:255;uniqueIndex;not null"`
	GatewayIntentID   *string    `gorm:"size:255"`
	UserID            string     `gorm:"size:64;index;not null"`
	ServerID          string     `gorm:"size:64;index;not null"`
	Plan              string     `gorm:"size:16;not null"`
	Quantity          int        `gorm:"not null"`
	PlannedStartAt    *time.Time `gorm:""`
	AmountInCents     int64      `gorm:"not null"`
	Currency          string     `gorm:"size:8;not null"`
	Status            string     `gorm:"size:16;index;not null"`
	WindowStartAt     *time.Time `gorm:""`
	WindowEndAt       *time.Time `gorm:""`
	BaseAmountCents   *int64     `gorm:""`
	PromoCodeID       *string    `gorm:"type:uuid"`
	PromoCode         *string    `gorm:"size:64"`
	DiscountType      *string    `gorm:"size:16"`
	DiscountValue     *int64     `gorm:""`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (OrderModel) TableName() string {
	return "orders"
}
