// Copyright (c) 2026 Plume. All rights reserved.

// Command api is the entry point for the Plume blog API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire domain services and HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/plumehq/plume/internal/api"
	"github.com/plumehq/plume/internal/blog/category"
	"github.com/plumehq/plume/internal/blog/comment"
	"github.com/plumehq/plume/internal/blog/post"
	"github.com/plumehq/plume/internal/blog/tag"
	"github.com/plumehq/plume/internal/platform/config"
	"github.com/plumehq/plume/internal/platform/constants"
	"github.com/plumehq/plume/internal/platform/migration"
	pgstore "github.com/plumehq/plume/internal/platform/postgres"
	redisstore "github.com/plumehq/plume/internal/platform/redis"
	"github.com/plumehq/plume/internal/platform/sec"
	"github.com/plumehq/plume/internal/users/auth"
)

func main() {
	// Logger first, so every startup error is structured JSON.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})).With(slog.String("app", constants.AppName))
	slog.SetDefault(logger)

	logger.Info("service_initializing", slog.String("version", constants.AppVersion))

	cfg, err := config.Load()
	must(logger, err, "load configuration")

	if cfg.Debug {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})).With(slog.String("app", constants.AppName))
		slog.SetDefault(logger)
		logger.Debug("debug_logging_enabled")
	}

	logger.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Bounded startup context: a misconfigured dependency fails fast instead
	// of hanging the boot.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, logger)
	must(logger, err, "connect to postgres")
	defer func() {
		logger.Info("closing_postgres_pool")
		pool.Close()
	}()

	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, logger)
	must(logger, err, "connect to redis")
	defer func() {
		logger.Info("closing_redis_client")
		if closeErr := rdb.Close(); closeErr != nil {
			logger.Error("redis_close_error", slog.Any("error", closeErr))
		}
	}()

	must(logger, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, logger), "run migrations")

	tokenService, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(logger, err, "initialize jwt service")

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, logger)

	// Domain wiring. The category and tag services double as the label
	// stores the post service resolves new names against.
	userRepository := auth.NewPostgresUserRepository(pool)
	sessionRepository := auth.NewRedisSessionRepository(rdb)
	authService := auth.NewService(userRepository, sessionRepository, tokenService, logger)

	categoryService := category.NewService(category.NewPostgresRepository(pool), logger)
	tagService := tag.NewService(tag.NewPostgresRepository(pool), logger)
	postService := post.NewService(post.NewPostgresRepository(pool), categoryService, tagService, logger)
	commentService := comment.NewService(comment.NewPostgresRepository(pool), logger)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		Post:      post.NewHandler(postService),
		Category:  category.NewHandler(categoryService),
		Tag:       tag.NewHandler(tagService),
		Comment:   comment.NewHandler(commentService),
	}

	// App context drives background middleware goroutines; cancelled on exit.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	server := api.NewServer(appCtx, cfg, logger, tokenService, handlers)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		logger.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server_startup_error", slog.Any("error", err))
	}

	logger.Info("shutting_down", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		logger.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("server_stopped_cleanly")
}

// must logs a structured fatal error and terminates the process if err is
// non-nil. Startup wiring only; after startup, errors are returned, never
// fatal.
func must(logger *slog.Logger, err error, step string) {
	if err != nil {
		logger.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
