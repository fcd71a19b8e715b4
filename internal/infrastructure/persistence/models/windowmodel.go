package models

import "time"

// WindowModel is the promotion_windows table. Append-only.
type WindowModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	ServerID  string    `gorm:"size:64;index;not null"`
	Plan      string    `gorm:"size:16;not null"`
	StartAt   time.Time `gorm:"index;not null"`
	EndAt     time.Time `gorm:"index;not null"`
	CreatedAt time.Time
}

func (WindowModel) TableName() string {
	return "promotion_windows"
}
