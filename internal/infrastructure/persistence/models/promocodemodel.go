package models

import "time"

// PromoCodeModel is the promo_codes table. Code is stored normalized
// (trimmed, upper case) and uniquely indexed.
type PromoCodeModel struct {
	ID            string     `gorm:"type:uuid;primaryKey"`
	Code          string     `gorm:"size:64;uniqueIndex;not null"`
	IsActive      bool       `gorm:"not null;default:true"`
	DiscountType  string     `gorm:"size:16;not null"`
	DiscountValue int64      `gorm:"not null"`
	UserID        *string    `gorm:"size:64"`
	ServerID      *string    `gorm:"size:64"`
	MaxUses       *int       `gorm:""`
	UsesCount     int        `gorm:"not null;default:0"`
	ExpiresAt     *time.Time `gorm:""`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (PromoCodeModel) TableName() string {
	return "promo_codes"
}
