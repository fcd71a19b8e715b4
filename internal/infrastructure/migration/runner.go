// Package migration wraps schema migration strategies behind one command.
package migration

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/gorm"

	"quokkalist/internal/infrastructure/persistence/migrations"
	"quokkalist/internal/shared/logger"
)

// Runner applies schema migrations. Versioned SQL files take precedence
// when a migrations directory is configured; otherwise the schema is
// synced with AutoMigrate.
type Runner struct {
	db         *gorm.DB
	sourcePath string
	logger     logger.Interface
}

func NewRunner(db *gorm.DB, sourcePath string, log logger.Interface) *Runner {
	return &Runner{
		db:         db,
		sourcePath: sourcePath,
		logger:     log.Named("migration"),
	}
}

func (r *Runner) Up() error {
	if r.sourcePath == "" {
		r.logger.Infow("no migrations directory configured, using schema sync")
		return migrations.Migrate(r.db)
	}

	m, err := r.newMigrate()
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	r.logger.Infow("migrations applied")
	return nil
}

func (r *Runner) Down(steps int) error {
	m, err := r.newMigrate()
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}
	r.logger.Infow("migrations rolled back", "steps", steps)
	return nil
}

func (r *Runner) Version() (uint, bool, error) {
	m, err := r.newMigrate()
	if err != nil {
		return 0, false, err
	}
	defer m.Close()

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

func (r *Runner) newMigrate() (*migrate.Migrate, error) {
	sqlDB, err := r.db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+r.sourcePath, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}
	return m, nil
}
