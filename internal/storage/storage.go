// Copyright (c) 2026 Tasker. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package storage selects and opens the persistence backend.

Architecture:

  - One adapter per store and engine lives next to the domain (auth, task).
  - This package owns the engine handle (*pgxpool.Pool or *sql.DB), hands the
    matching adapters to the composition root and closes the handle at exit.
*/
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/tasker/internal/auth"
	"github.com/taibuivan/tasker/internal/platform/config"
	"github.com/taibuivan/tasker/internal/platform/constants"
	"github.com/taibuivan/tasker/internal/platform/migration"
	"github.com/taibuivan/tasker/internal/platform/postgres"
	"github.com/taibuivan/tasker/internal/platform/sqlite"
	"github.com/taibuivan/tasker/internal/task"
)

// Backend bundles the repositories of one storage engine.
type Backend struct {
	// Driver is the engine name (constants.DriverSQLite or constants.DriverPostgres).
	Driver string

	Users    auth.UserRepository
	Sessions auth.SessionRepository
	Tasks    task.Repository

	ping    func(context.Context) error
	migrate func() error
	close   func()
}

// Open connects to the engine selected by cfg.StorageDriver.
func Open(context context.Context, cfg *config.Config, logger *slog.Logger) (*Backend, error) {
	switch cfg.StorageDriver {
	case constants.DriverSQLite:
		db, err := sqlite.Open(context, cfg.SQLitePath, logger)
		if err != nil {
			return nil, fmt.Errorf("storage_open_sqlite_failed: %w", err)
		}
		return NewSQLite(db, logger), nil

	case constants.DriverPostgres:
		pool, err := postgres.NewPool(context, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, fmt.Errorf("storage_open_postgres_failed: %w", err)
		}
		return NewPostgres(pool, cfg.DatabaseURL, logger), nil

	default:
		return nil, fmt.Errorf("storage_unknown_driver: %q", cfg.StorageDriver)
	}
}

// NewSQLite builds a [Backend] over an already opened SQLite handle.
func NewSQLite(db *sql.DB, logger *slog.Logger) *Backend {
	return &Backend{
		Driver:   constants.DriverSQLite,
		Users:    auth.NewSQLiteUserRepository(db),
		Sessions: auth.NewSQLiteSessionRepository(db),
		Tasks:    task.NewSQLiteRepository(db),
		ping: func(ctx context.Context) error {
			return sqlite.Ping(ctx, db)
		},
		migrate: func() error {
			return migration.RunSQLite(db, logger)
		},
		close: func() {
			logger.Info("closing sqlite database")
			if err := db.Close(); err != nil {
				logger.Error("sqlite_close_failed", slog.Any("error", err))
			}
		},
	}
}

// NewPostgres builds a [Backend] over an already opened pool.
//
// dsn is kept for the migrator, which opens its own connection.
func NewPostgres(pool *pgxpool.Pool, dsn string, logger *slog.Logger) *Backend {
	return &Backend{
		Driver:   constants.DriverPostgres,
		Users:    auth.NewPostgresUserRepository(pool),
		Sessions: auth.NewPostgresSessionRepository(pool),
		Tasks:    task.NewPostgresRepository(pool),
		ping: func(ctx context.Context) error {
			return postgres.Ping(ctx, pool)
		},
		migrate: func() error {
			return migration.RunPostgres(dsn, logger)
		},
		close: func() {
			logger.Info("closing postgres pool")
			pool.Close()
		},
	}
}

// Ping reports whether the engine is reachable.
func (backend *Backend) Ping(context context.Context) error {
	return backend.ping(context)
}

// Migrate applies pending schema migrations. It is idempotent.
func (backend *Backend) Migrate() error {
	if err := backend.migrate(); err != nil {
		return fmt.Errorf("storage_migrate_%s_failed: %w", backend.Driver, err)
	}
	return nil
}

// Close releases the engine handle.
func (backend *Backend) Close() {
	backend.close()
}
