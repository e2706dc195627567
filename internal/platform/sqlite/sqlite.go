// Copyright (c) 2026 Tasker. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sqlite opens the embedded, file-backed storage engine.
//
// # Architecture
//
// This package is the SQLite counterpart of the postgres package. It uses the
// pure-Go modernc.org/sqlite driver, so the binary stays cgo-free.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	// Registers the "sqlite" driver.
	_ "modernc.org/sqlite"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

const (
	// busyTimeoutMillis lets concurrent writers wait instead of failing with SQLITE_BUSY.
	busyTimeoutMillis = 5000
	// maxFileConns caps connections to a file database; SQLite serialises writers anyway.
	maxFileConns = 4
	// pingTimeout is the maximum duration for a health check ping.
	pingTimeout = 2 * time.Second
)

// DSN builds a modernc connection string with the pragmas every connection needs.
func DSN(path string) string {
	pragmas := url.Values{}
	pragmas.Add("_pragma", "foreign_keys(1)")
	pragmas.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busyTimeoutMillis))

	if IsMemory(path) {
		return "file::memory:?" + pragmas.Encode()
	}

	pragmas.Add("_pragma", "journal_mode(WAL)")
	pragmas.Add("_pragma", "synchronous(NORMAL)")
	return "file:" + path + "?" + pragmas.Encode()
}

// IsMemory reports whether path denotes an in-memory database.
func IsMemory(path string) bool {
	return path == MemoryPath || strings.HasPrefix(path, "file::memory:")
}

// Open creates the database file's directory if needed, opens the handle and
// verifies it with a ping.
//
// An in-memory database lives exactly as long as its connection, so the pool
// is pinned to a single connection that is never recycled.
func Open(ctx context.Context, path string, logger *slog.Logger) (*sql.DB, error) {
	if !IsMemory(path) {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("sqlite: failed to create data directory: %w", err)
			}
		}
	}

	db, err := sql.Open(DriverName, DSN(path))
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open: %w", err)
	}

	if IsMemory(path) {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)
	} else {
		db.SetMaxOpenConns(maxFileConns)
	}

	if err := Ping(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("sqlite database opened",
		slog.String("path", path),
		slog.Bool("in_memory", IsMemory(path)),
	)

	return db, nil
}

// Ping verifies that the database handle is usable.
func Ping(ctx context.Context, db *sql.DB) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("sqlite: ping failed: %w", err)
	}

	return nil
}

// Millis converts a time to the INTEGER representation stored in SQLite.
func Millis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

// FromMillis converts a stored INTEGER column back to a UTC time.
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// NullableMillis is [Millis] for optional columns. A nil time is stored as NULL.
func NullableMillis(t *time.Time) any {
	if t == nil {
		return nil
	}
	return Millis(*t)
}

// FromNullableMillis converts an optional INTEGER column back to a UTC time.
func FromNullableMillis(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := FromMillis(*ms)
	return &t
}
