package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"chordbook/internal/api/handlers/songs"
	"chordbook/internal/lib/logger/utils"
	"chordbook/internal/service"
	"chordbook/internal/storage/postgres"
)

var serveMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Load the catalog and serve the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		utils.Logger.Info("Starting Chordbook API")

		if serveMigrate && cfg.StoreURL == "" {
			if err := postgres.RunMigrations(cfg.MigrationsURL, cfg.DBURL); err != nil {
				return err
			}
			utils.Logger.Info("Database migrations completed successfully")
		}

		store, closeStore, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		catalog := service.NewCatalog(store, cfg.Collection, cfg.PageSize)
		// a failed load leaves an empty catalog, the API still comes up
		if err := catalog.Load(ctx); err != nil {
			utils.Logger.Error("Initial catalog load failed", zap.Error(err))
		}

		router := songs.NewRouter(songs.NewSongHandlers(catalog))
		server := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			utils.Logger.Info("Server starting", zap.String("address", server.Addr))
			errCh <- server.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server failed: %w", err)
		case <-ctx.Done():
		}

		utils.Logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", true, "apply database migrations before serving (Postgres store only)")
}
