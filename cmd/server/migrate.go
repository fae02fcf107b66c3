package main

import (
	"fmt"

	"github.com/onside-finance/onside/internal/database"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long: `Run the schema migrations against DATABASE_URL.

Rows of the superseded savings goal table, if present, are moved into goals
and the old table is dropped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate()
	},
}

func runMigrate() error {
	cfg, restore, err := loadConfig()
	if err != nil {
		return err
	}
	defer restore()

	db, err := database.ConnectWithOptions(cfg.Database.URL, database.Options{LogLevel: cfg.Database.LogLevel})
	if err != nil {
		return err
	}

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	zap.L().Info("database is up to date")
	return nil
}
