// Package migrate implements the migrate command.
package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"quokkalist/internal/infrastructure/config"
	"quokkalist/internal/infrastructure/database"
	"quokkalist/internal/infrastructure/migration"
	"quokkalist/internal/shared/logger"
)

func NewCommand() *cobra.Command {
	var configFile string
	var sourcePath string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema migrations",
	}
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to config file")
	cmd.PersistentFlags().StringVar(&sourcePath, "source", "", "path to versioned SQL migrations")

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, cleanup, err := newRunner(configFile, sourcePath)
			if err != nil {
				return err
			}
			defer cleanup()
			return runner.Up()
		},
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, cleanup, err := newRunner(configFile, sourcePath)
			if err != nil {
				return err
			}
			defer cleanup()
			return runner.Down(steps)
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")
	cmd.AddCommand(down)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show current migration version",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, cleanup, err := newRunner(configFile, sourcePath)
			if err != nil {
				return err
			}
			defer cleanup()

			version, dirty, err := runner.Version()
			if err != nil {
				return err
			}
			fmt.Printf("version: %d dirty: %v\n", version, dirty)
			return nil
		},
	})

	return cmd
}

func newRunner(configFile, sourcePath string) (*migration.Runner, func(), error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, nil, fmt.Errorf("failed to init logger: %w", err)
	}

	gormDB, err := database.Connect(&cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = database.Close(gormDB) }

	return migration.NewRunner(gormDB, sourcePath, logger.NewLogger()), cleanup, nil
}
