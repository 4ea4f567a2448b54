package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/saturnino-fabrica-de-software/facelive/internal/api"
	"github.com/saturnino-fabrica-de-software/facelive/internal/api/middleware"
	"github.com/saturnino-fabrica-de-software/facelive/internal/audit"
	"github.com/saturnino-fabrica-de-software/facelive/internal/config"
	"github.com/saturnino-fabrica-de-software/facelive/internal/database"
	"github.com/saturnino-fabrica-de-software/facelive/internal/face"
	"github.com/saturnino-fabrica-de-software/facelive/internal/repository"
	"github.com/saturnino-fabrica-de-software/facelive/internal/service"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	logger.Info("starting facelive session backend",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.Port),
		slog.String("issuer", cfg.IssuerType),
		slog.String("version", version),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database
	pool, err := database.NewPgxPool(ctx, database.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	// Session issuer
	issuer, err := face.NewIssuer(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create session issuer: %w", err)
	}

	repo := repository.NewLivenessSessionRepository(pool)
	sessionService := service.NewSessionService(repo, issuer, logger).
		WithAudit(audit.NewSlogLogger(logger))

	// Setup router
	router := api.NewRouter(logger, &api.Dependencies{
		SessionService: sessionService,
		DB:             pool,
		Version:        version,
		RateLimit:      middleware.DefaultRateLimiterConfig(),
	})
	router.Setup()

	// Expired session sweeper
	go runCleanup(ctx, sessionService, cfg.CleanupInterval, logger)

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.Info("server listening", slog.String("addr", addr))
		if err := router.Listen(addr); err != nil {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}

	logger.Info("shutting down server...")
	if err := router.Shutdown(); err != nil {
		logger.Error("shutdown error", slog.Any("error", err))
	}

	logger.Info("server stopped")

	return nil
}

func runCleanup(ctx context.Context, svc *service.SessionService, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := svc.CleanupExpiredSessions(ctx)
			if err != nil {
				logger.Error("expired session cleanup failed", slog.Any("error", err))
				continue
			}
			if deleted > 0 {
				logger.Info("expired sessions removed", slog.Int64("count", deleted))
			}
		}
	}
}
