package main

import (
	"errors"

	"github.com/spf13/cobra"

	"chordbook/internal/lib/logger/utils"
	"chordbook/internal/storage/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.StoreURL != "" {
			return errors.New("migrate needs the Postgres store, unset STORE_URL")
		}
		if err := postgres.RunMigrations(cfg.MigrationsURL, cfg.DBURL); err != nil {
			return err
		}
		utils.Logger.Info("Database migrations completed successfully")
		return nil
	},
}
