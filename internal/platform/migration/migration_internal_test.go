// Copyright (c) 2026 Tasker. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertToPgx5DSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@localhost:5432/tasks", "pgx5://u:p@localhost:5432/tasks"},
		{"postgresql://u@db/tasks?sslmode=disable", "pgx5://u@db/tasks?sslmode=disable"},
		{"pgx5://already", "pgx5://already"},
		{"host=localhost dbname=tasks", "host=localhost dbname=tasks"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, convertToPgx5DSN(tt.in))
	}
}

func TestMigrateLogger_VerboseFollowsLevel(t *testing.T) {
	var buffer bytes.Buffer

	quiet := &migrateLogger{logger: slog.New(slog.NewTextHandler(&buffer, &slog.HandlerOptions{Level: slog.LevelInfo}))}
	assert.False(t, quiet.Verbose())

	debug := &migrateLogger{logger: slog.New(slog.NewTextHandler(&buffer, &slog.HandlerOptions{Level: slog.LevelDebug}))}
	assert.True(t, debug.Verbose())

	debug.Printf("Read and execute %s\n", "000001_init.up.sql")
	assert.Contains(t, buffer.String(), "000001_init.up.sql")
	assert.NotContains(t, buffer.String(), `\n"`)
}
