// Copyright (c) 2026 Tasker. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	goredis "github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"

	"github.com/taibuivan/tasker/internal/api"
	"github.com/taibuivan/tasker/internal/auth"
	"github.com/taibuivan/tasker/internal/platform/config"
	"github.com/taibuivan/tasker/internal/platform/constants"
	"github.com/taibuivan/tasker/internal/platform/middleware"
	redisstore "github.com/taibuivan/tasker/internal/platform/redis"
	"github.com/taibuivan/tasker/internal/platform/sec"
	"github.com/taibuivan/tasker/internal/task"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "port",
				Usage: "Listen port (overrides SERVER_PORT)",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, logger, err := bootstrap(c)
			if err != nil {
				return err
			}
			if port := c.String("port"); port != "" {
				cfg.ServerPort = port
			}
			return serve(c.Context, cfg, logger)
		},
	}
}

// serve runs the API until ctx is cancelled, then drains in-flight requests.
//
// # Startup Sequence
//
//  1. Open storage and migrate when AUTO_MIGRATE is set.
//  2. Connect to Redis when REDIS_URL is set.
//  3. Wire services and HTTP handlers.
//  4. Start the HTTP server with graceful shutdown.
func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {

	// 1. Storage
	backend, err := openBackend(ctx, cfg, logger, cfg.AutoMigrate)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer backend.Close()

	// 2. Redis (optional)
	var redisClient *goredis.Client
	if cfg.UsesRedis() {
		redisClient, err = redisstore.NewClient(ctx, cfg.RedisURL, logger)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer func() {
			logger.Info("closing redis client")
			if cerr := redisClient.Close(); cerr != nil {
				logger.Error("redis_close_failed", slog.Any("error", cerr))
			}
		}()
	}

	// 3. Domain wiring
	hasher, err := sec.NewPasswordHasher(cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("initialize password hasher: %w", err)
	}

	authService := auth.NewService(
		auth.NewUsers(backend.Users, hasher),
		auth.NewSessions(backend.Sessions, cfg.SessionTTL),
		newAttemptLimiter(cfg, redisClient, logger),
	)
	taskService := task.NewService(backend.Tasks, authService)

	checks := []api.HealthCheck{{Name: backend.Driver, Check: backend.Ping}}
	if redisClient != nil {
		checks = append(checks, api.HealthCheck{
			Name: "redis",
			Check: func(ctx context.Context) error {
				return redisstore.Ping(ctx, redisClient)
			},
		})
	}
	liveness, readiness := api.NewHealthHandlers(checks, logger)

	limiter := middleware.NewRateLimiter(constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst)
	go limiter.Run(ctx)

	server := api.NewServer(cfg, logger, limiter, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService, cfg.CookieSecure),
		Task:      task.NewHandler(taskService),
	})

	// 4. Serve until signalled
	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("http server: %w", err)
	}

	logger.Info("shutting down server", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server stopped cleanly")
	return nil
}

// newAttemptLimiter picks the failed-login limiter for the configuration.
//
// Lockout needs shared counters, so it is only enabled with Redis.
func newAttemptLimiter(cfg *config.Config, client *goredis.Client, logger *slog.Logger) auth.AttemptLimiter {
	if cfg.LoginMaxAttempts == 0 {
		return auth.NoopAttemptLimiter{}
	}
	if client == nil {
		logger.Warn("login_lockout_disabled", slog.String("reason", "REDIS_URL not set"))
		return auth.NoopAttemptLimiter{}
	}
	return auth.NewRedisAttemptLimiter(client, cfg.LoginMaxAttempts, cfg.LoginLockoutWindow)
}
