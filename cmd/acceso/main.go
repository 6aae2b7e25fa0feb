package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/superaisp/acceso-api/config"
	"github.com/superaisp/acceso-api/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting acceso service",
		"addr", cfg.HTTP.Addr,
		"allowlist_source", cfg.Allowlist.Source,
		"dev", cfg.IsDev)

	db, err := connectDBIfNeeded(&cfg, logger)
	if err != nil {
		return err
	}
	if db != nil {
		defer func() {
			if cerr := db.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close database failed", "error", cerr)
			}
		}()
	}

	metrics, err := bootstrap.NewMetricsSink(&cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := metrics.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close statsd client failed", "error", cerr)
		}
	}()

	authSvc, err := bootstrap.BuildAuthService(ctx, bootstrap.AuthDeps{
		Config:  &cfg,
		DB:      db,
		Metrics: metrics,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	server := bootstrap.StartHTTPServer(&bootstrap.HTTPServerConfig{
		Config: &cfg,
		Auth:   authSvc,
		Logger: logger,
	})

	// Block until interrupted, then drain in-flight requests.
	stopCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-stopCtx.Done()

	return bootstrap.ShutdownHTTPServer(bootstrap.ShutdownConfig{
		Context: ctx,
		Server:  server,
		Logger:  logger,
	})
}

// connectDBIfNeeded opens the database only when the allow-list lives there.
func connectDBIfNeeded(cfg *config.AppConfig, logger *slog.Logger) (*sql.DB, error) {
	if cfg.Allowlist.Source != config.AllowlistSourcePostgres {
		return nil, nil
	}

	db, err := bootstrap.ConnectDB(bootstrap.DatabaseConfig{
		DBConfig: cfg.Postgres,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	return db, nil
}
