// Copyright (c) 2026 Tasker. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tasker/internal/platform/dberr"
	"github.com/taibuivan/tasker/internal/testutil"
)

func TestIsUniqueViolation_Postgres(t *testing.T) {
	unique := &pgconn.PgError{Code: pgerrcode.UniqueViolation}
	fk := &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}

	assert.True(t, dberr.IsUniqueViolation(unique))
	assert.True(t, dberr.IsUniqueViolation(fmt.Errorf("insert: %w", unique)))
	assert.False(t, dberr.IsUniqueViolation(fk))
	assert.False(t, dberr.IsUniqueViolation(errors.New("plain")))
	assert.False(t, dberr.IsUniqueViolation(nil))
}

func TestIsUniqueViolation_SQLite(t *testing.T) {
	db := testutil.OpenSQLite(t)

	_, err := db.Exec(`INSERT INTO users (username, password_hash, created_at) VALUES ('alice', 'x', 0)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO users (username, password_hash, created_at) VALUES ('alice', 'y', 0)`)
	require.Error(t, err)
	assert.True(t, dberr.IsUniqueViolation(err))

	_, err = db.Exec(`INSERT INTO tasks (owner_id, title, completed, created_at) VALUES (999, 't', 0, 0)`)
	require.Error(t, err, "foreign keys must be enforced")
	assert.False(t, dberr.IsUniqueViolation(err))
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, dberr.IsNoRows(pgx.ErrNoRows))
	assert.True(t, dberr.IsNoRows(fmt.Errorf("scan: %w", sql.ErrNoRows)))
	assert.False(t, dberr.IsNoRows(dberr.ErrNotFound))
	assert.False(t, dberr.IsNoRows(errors.New("connection reset")))
}
