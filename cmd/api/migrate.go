package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/redmonkez12/fintrack-api/internal/config"
	"github.com/redmonkez12/fintrack-api/internal/database"
	"github.com/redmonkez12/fintrack-api/internal/logging"
)

func newMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	for _, direction := range []struct {
		name  string
		short string
	}{
		{database.MigrateUp, "Apply all pending migrations"},
		{database.MigrateDown, "Roll back the most recent migration"},
		{database.MigrateStatus, "Print the status of every migration"},
	} {
		migrateCmd.AddCommand(&cobra.Command{
			Use:   direction.name,
			Short: direction.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMigrate(cmd.Context(), direction.name)
			},
		})
	}

	return migrateCmd
}

func runMigrate(ctx context.Context, direction string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadDatabase()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.NewLogger(true)

	db, err := database.Open(ctx, *cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db.DB, direction); err != nil {
		return err
	}

	logger.Info("migration finished", "direction", direction, "database", cfg.DBName)
	return nil
}
