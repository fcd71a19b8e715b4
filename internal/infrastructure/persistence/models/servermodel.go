package models

import "time"

// ServerModel is the servers table. Listings are written by the catalog
// service; this engine only reads ownership and existence.
type ServerModel struct {
	ID        string `gorm:"size:64;primaryKey"`
	Name      string `gorm:"size:255;not null"`
	OwnerID   string `gorm:"size:64;index;not null"`
	Hidden    bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
}

func (ServerModel) TableName() string {
	return "servers"
}

// ServerStatsModel is the server_stats counter table, one row per server.
type ServerStatsModel struct {
	ServerID  string `gorm:"size:64;primaryKey"`
	Likes     int64  `gorm:"not null;default:0"`
	Views     int64  `gorm:"not null;default:0"`
	Visits    int64  `gorm:"not null;default:0"`
	Clicks    int64  `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

func (ServerStatsModel) TableName() string {
	return "server_stats"
}
