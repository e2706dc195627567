// Copyright (c) 2026 Tasker. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tasker/internal/platform/migration"
	"github.com/taibuivan/tasker/internal/platform/sqlite"
)

func TestRunSQLite_IsIdempotent(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := sqlite.Open(context.Background(), sqlite.MemoryPath, logger)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, migration.RunSQLite(db, logger))
	require.NoError(t, migration.RunSQLite(db, logger), "second run must be a no-op")

	for _, table := range []string{"users", "sessions", "tasks"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}

	for _, column := range []string{"assignee", "start_date", "end_date"} {
		var count int
		err := db.QueryRow(`SELECT COUNT(*) FROM pragma_table_info('tasks') WHERE name = ?`, column).Scan(&count)
		require.NoError(t, err, column)
		assert.Equal(t, 1, count, column)
	}

	// The handle must still be usable after migrating.
	assert.NoError(t, db.Ping())
}
