// Copyright (c) 2026 Tasker. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/taibuivan/tasker/internal/platform/config"
	"github.com/taibuivan/tasker/internal/platform/constants"
	"github.com/taibuivan/tasker/internal/storage"
)

// startupTimeout bounds connecting to storage and Redis, so misconfiguration
// fails fast rather than hanging.
const startupTimeout = 30 * time.Second

// newLogger builds the process-wide JSON logger and installs it as default.
//
// Logs go to the app's error stream so command output (sweep counts) stays
// machine-readable on stdout.
func newLogger(output io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(output, &slog.HandlerOptions{Level: level})).
		With(slog.String(constants.FieldApp, constants.AppName))
	slog.SetDefault(logger)
	return logger
}

// bootstrap loads configuration and the logger shared by every command.
func bootstrap(c *cli.Context) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		// Still emit structured JSON for the failure.
		newLogger(c.App.ErrWriter, false)
		return nil, nil, err
	}

	logger := newLogger(c.App.ErrWriter, cfg.Debug || c.Bool("debug"))
	logger.Debug("debug_logging_enabled")
	logger.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("storage_driver", cfg.StorageDriver),
		slog.Bool("redis", cfg.UsesRedis()),
	)

	return cfg, logger, nil
}

// openBackend connects to the configured storage engine and, when asked,
// brings its schema up to date.
func openBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger, migrate bool) (*storage.Backend, error) {
	startupCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	backend, err := storage.Open(startupCtx, cfg, logger)
	if err != nil {
		return nil, err
	}

	if migrate {
		if err := backend.Migrate(); err != nil {
			backend.Close()
			return nil, err
		}
	}

	return backend, nil
}
