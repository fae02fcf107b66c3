package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/onside-finance/onside/internal/app"
	"github.com/onside-finance/onside/internal/router"
	"github.com/onside-finance/onside/internal/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	shutdownTimeout   = 10 * time.Second
	tokenPurgeEvery   = time.Hour
	readHeaderTimeout = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the Onside HTTP server.

The database is migrated on startup. Configuration comes from the environment
or a .env file in the working directory.`,
	Example: `  onside serve
  PORT=9000 DATABASE_URL=sqlite:onside.db onside serve`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	cfg, restore, err := loadConfig()
	if err != nil {
		return err
	}
	defer restore()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	gin.SetMode(cfg.GinMode)
	if cfg.TestMode {
		zap.L().Warn("test mode enabled: X-Test-Username authenticates without a token")
	}

	a, err := app.Open(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.New(a, zap.L()),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go purgeExpiredTokens(ctx, a.TokenService)

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func purgeExpiredTokens(ctx context.Context, tokens *services.TokenService) {
	ticker := time.NewTicker(tokenPurgeEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purged, err := tokens.PurgeExpired()
			if err != nil {
				zap.L().Warn("failed to purge expired tokens", zap.Error(err))
				continue
			}
			if purged > 0 {
				zap.L().Info("purged expired tokens", zap.Int64("count", purged))
			}
		}
	}
}
