// Package migrations runs schema migrations via GORM AutoMigrate.
package migrations

import (
	"fmt"

	"gorm.io/gorm"

	"quokkalist/internal/infrastructure/persistence/models"
)

// Migrate creates or updates the full schema.
func Migrate(db *gorm.DB) error {
	groups := []struct {
		name   string
		models []interface{}
	}{
		{name: "listing", models: []interface{}{
			&models.ServerModel{},
			&models.ServerStatsModel{},
		}},
		{name: "billing", models: []interface{}{
			&models.OrderModel{},
			&models.PromoCodeModel{},
		}},
		{name: "promotion", models: []interface{}{
			&models.WindowModel{},
		}},
		{name: "vote", models: []interface{}{
			&models.VoteModel{},
			&models.VoteSystemStateModel{},
		}},
	}

	for _, group := range groups {
		if err := db.AutoMigrate(group.models...); err != nil {
			return fmt.Errorf("failed to migrate %s tables: %w", group.name, err)
		}
	}
	return nil
}
