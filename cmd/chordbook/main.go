// cmd/chordbook/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"chordbook/config"
	"chordbook/internal/lib/logger/utils"
)

// @title Chordbook API
// @version 1.0
// @description Song chord and lyric sheet catalog.

// @host localhost:8080
// @BasePath /
// @schemes http

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "chordbook",
	Short:         "Chordbook keeps a catalog of song chord and lyric sheets.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.LoadConfig(); err != nil {
			return fmt.Errorf("config load failed: %w", err)
		}
		if err := utils.InitLogger(cfg.LogLevel, cfg.LogFile); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		utils.Logger.Debug("Configuration loaded",
			zap.String("db_host", cfg.DBHost),
			zap.String("store_url", cfg.StoreURL),
			zap.String("collection", cfg.Collection),
			zap.Bool("cache", cfg.RedisURL != ""))
		return nil
	},
}

func main() {
	rootCmd.AddCommand(serveCmd, migrateCmd, importCmd)

	err := rootCmd.Execute()
	_ = utils.Logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
