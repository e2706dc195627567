// Copyright (c) 2026 Tasker. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tasker/internal/auth"
	"github.com/taibuivan/tasker/internal/platform/dberr"
)

func newPgxMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestPostgresUserRepository_Create(t *testing.T) {
	mock := newPgxMock(t)
	repository := auth.NewPostgresUserRepository(mock)
	ctx := context.Background()
	createdAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("alice", "hash").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), createdAt))

	user := &auth.User{Username: "alice", PasswordHash: "hash"}
	require.NoError(t, repository.Create(ctx, user))
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, createdAt, user.CreatedAt)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("alice", "hash").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_username_key"})

	err := repository.Create(ctx, &auth.User{Username: "alice", PasswordHash: "hash"})
	require.Error(t, err)
	assert.True(t, dberr.IsUniqueViolation(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_NotFound(t *testing.T) {
	mock := newPgxMock(t)
	repository := auth.NewPostgresUserRepository(mock)
	ctx := context.Background()

	mock.ExpectQuery("SELECT id, username, password_hash, created_at FROM users").
		WithArgs("ghost").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "password_hash", "created_at"}))

	_, err := repository.FindByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, dberr.ErrNotFound)

	mock.ExpectQuery("SELECT id, username, created_at FROM users").
		WithArgs(int64(42)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "created_at"}))

	_, err = repository.FindByID(ctx, 42)
	assert.ErrorIs(t, err, dberr.ErrNotFound)

	mock.ExpectQuery("SELECT id, username, created_at FROM users").
		WithArgs(int64(42)).
		WillReturnError(errConnReset)

	_, err = repository.FindByID(ctx, 42)
	assert.ErrorIs(t, err, errConnReset)
	assert.NotErrorIs(t, err, dberr.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSessionRepository(t *testing.T) {
	mock := newPgxMock(t)
	repository := auth.NewPostgresSessionRepository(mock)
	ctx := context.Background()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	session := &auth.Session{UserID: 7, TokenDigest: "digest", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	mock.ExpectQuery("INSERT INTO sessions").
		WithArgs(int64(7), "digest", now, now.Add(time.Hour)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(3)))

	require.NoError(t, repository.Create(ctx, session))
	assert.Equal(t, int64(3), session.ID)

	mock.ExpectQuery("SELECT id, user_id, token_digest, created_at, expires_at FROM sessions").
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "token_digest", "created_at", "expires_at"}))

	_, err := repository.FindByDigest(ctx, "missing")
	assert.ErrorIs(t, err, dberr.ErrNotFound)

	mock.ExpectExec("DELETE FROM sessions WHERE token_digest").
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.NoError(t, repository.DeleteByDigest(ctx, "missing"))

	mock.ExpectExec("DELETE FROM sessions WHERE expires_at").
		WithArgs(now).
		WillReturnResult(pgxmock.NewResult("DELETE", 4))

	removed, err := repository.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(4), removed)

	assert.NoError(t, mock.ExpectationsWereMet())
}
