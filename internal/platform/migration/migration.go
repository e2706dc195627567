// Copyright (c) 2026 Tasker. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration provides a thin wrapper around golang-migrate for
// running database schema migrations.
//
// # Architecture
//
// This package belongs to the Infrastructure layer. It enforces schema
// idempotency during application startup, ensuring the database is always
// in the correct state before traffic is served.
//
// The SQL files are embedded into the binary, one directory per engine, so a
// deployed binary never depends on a migrations directory on disk.
package migration

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// pgx5 driver registers "pgx5" scheme for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql
var migrationFiles embed.FS

// Engine directories inside the embedded filesystem.
const (
	dirPostgres = "sql/postgres"
	dirSQLite   = "sql/sqlite"
)

// RunPostgres applies all pending UP migrations to a PostgreSQL database.
//
// # Parameters
//   - dsn: A libpq-compatible DSN or postgres:// URL.
//   - logger: Structured logger for migration events.
func RunPostgres(dsn string, logger *slog.Logger) error {
	sourceDriver, err := iofs.New(migrationFiles, dirPostgres)
	if err != nil {
		return fmt.Errorf("migration: failed to open embedded source: %w", err)
	}

	// golang-migrate pgx/v5 driver expects "pgx5://" scheme.
	migrator, err := migrate.NewWithSourceInstance("iofs", sourceDriver, convertToPgx5DSN(dsn))
	if err != nil {
		_ = sourceDriver.Close()
		return fmt.Errorf("migration: failed to initialize: %w", err)
	}
	defer func() {
		sourceError, dbError := migrator.Close()
		if sourceError != nil {
			logger.Error("migration_source_close_failed", slog.Any("error", sourceError))
		}
		if dbError != nil {
			logger.Error("migration_db_close_failed", slog.Any("error", dbError))
		}
	}()

	return runUp(migrator, logger.With(slog.String("engine", "postgres")))
}

// RunSQLite applies all pending UP migrations to an open SQLite handle.
//
// The handle stays owned by the caller. The migrator is deliberately not
// closed, because closing a WithInstance driver closes the *sql.DB with it.
func RunSQLite(db *sql.DB, logger *slog.Logger) error {
	sourceDriver, err := iofs.New(migrationFiles, dirSQLite)
	if err != nil {
		return fmt.Errorf("migration: failed to open embedded source: %w", err)
	}
	defer closeSource(sourceDriver, logger)

	databaseDriver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("migration: failed to wrap sqlite handle: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite", databaseDriver)
	if err != nil {
		return fmt.Errorf("migration: failed to initialize: %w", err)
	}

	return runUp(migrator, logger.With(slog.String("engine", "sqlite")))
}

// runUp checks for a dirty schema and applies pending migrations.
func runUp(migrator *migrate.Migrate, logger *slog.Logger) error {
	// Route migrate's progress through slog. It is verbose at debug level.
	migrator.Log = &migrateLogger{logger: logger}

	currentVersion, isDirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration: failed to get current version: %w", err)
	}

	if isDirty {
		return fmt.Errorf("migration: database is in a dirty state at version %d (manual intervention required)", currentVersion)
	}

	logger.Info("migration_started", slog.Int("current_version", int(currentVersion)))

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("migration_already_up_to_date")
			return nil
		}
		return fmt.Errorf("migration: up failed: %w", err)
	}

	newVersion, _, _ := migrator.Version()
	logger.Info("migration_successful",
		slog.Int("from_version", int(currentVersion)),
		slog.Int("to_version", int(newVersion)),
	)

	return nil
}

func closeSource(driver source.Driver, logger *slog.Logger) {
	if err := driver.Close(); err != nil {
		logger.Error("migration_source_close_failed", slog.Any("error", err))
	}
}

// convertToPgx5DSN ensures the DSN uses the pgx5:// scheme required by golang-migrate/v4.
func convertToPgx5DSN(dsn string) string {
	const pgx5Prefix = "pgx5://"

	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(dsn, prefix) {
			return pgx5Prefix + strings.TrimPrefix(dsn, prefix)
		}
	}

	return dsn
}

// migrateLogger adapts golang-migrate's logger interface to slog.
type migrateLogger struct {
	logger *slog.Logger
}

// Printf implements migrate.Logger.
func (l *migrateLogger) Printf(format string, args ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// Verbose implements migrate.Logger. Per-file progress is only produced when
// the logger would keep debug records.
func (l *migrateLogger) Verbose() bool {
	return l.logger.Enabled(context.Background(), slog.LevelDebug)
}
