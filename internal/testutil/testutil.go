// Copyright (c) 2026 Tasker. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/taibuivan/tasker/internal/platform/migration"
	"github.com/taibuivan/tasker/internal/platform/sqlite"
)

// Logger returns a logger that discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// OpenSQLite opens a private, fully migrated in-memory database that is
// closed when the test ends.
func OpenSQLite(t testing.TB) *sql.DB {
	t.Helper()

	db, err := sqlite.Open(context.Background(), sqlite.MemoryPath, Logger())
	if err != nil {
		t.Fatalf("testutil: open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("testutil: close sqlite: %v", err)
		}
	})

	if err := migration.RunSQLite(db, Logger()); err != nil {
		t.Fatalf("testutil: migrate sqlite: %v", err)
	}

	return db
}

// Clock is a manually advanced time source, safe for concurrent use.
type Clock struct {
	mu      sync.Mutex
	current time.Time
}

// NewClock starts a clock at start.
func NewClock(start time.Time) *Clock {
	return &Clock{current: start}
}

// Now returns the clock's current time.
func (clock *Clock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.current
}

// Set moves the clock to t.
func (clock *Clock) Set(t time.Time) {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	clock.current = t
}

// Advance moves the clock forward by d.
func (clock *Clock) Advance(d time.Duration) {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	clock.current = clock.current.Add(d)
}
