// Copyright (c) 2026 Tasker. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tasker/internal/auth"
	"github.com/taibuivan/tasker/internal/platform/dberr"
	"github.com/taibuivan/tasker/internal/testutil"
)

func TestSQLiteUserRepository(t *testing.T) {
	ctx := context.Background()
	repository := auth.NewSQLiteUserRepository(testutil.OpenSQLite(t))

	user := &auth.User{Username: "alice", PasswordHash: "$2a$04$hash"}
	require.NoError(t, repository.Create(ctx, user))
	assert.Positive(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	t.Run("find_by_username_includes_hash", func(t *testing.T) {
		found, err := repository.FindByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
		assert.Equal(t, "$2a$04$hash", found.PasswordHash)
		assert.True(t, user.CreatedAt.Equal(found.CreatedAt))
	})

	t.Run("find_by_id_omits_hash", func(t *testing.T) {
		found, err := repository.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", found.Username)
		assert.Empty(t, found.PasswordHash)
	})

	t.Run("missing_rows", func(t *testing.T) {
		_, err := repository.FindByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, dberr.ErrNotFound)

		_, err = repository.FindByID(ctx, 9999)
		assert.ErrorIs(t, err, dberr.ErrNotFound)
	})

	t.Run("duplicate_is_unique_violation", func(t *testing.T) {
		err := repository.Create(ctx, &auth.User{Username: "alice", PasswordHash: "x"})
		require.Error(t, err)
		assert.True(t, dberr.IsUniqueViolation(err))
	})
}

func TestSQLiteSessionRepository(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenSQLite(t)

	user := &auth.User{Username: "bob", PasswordHash: "x"}
	require.NoError(t, auth.NewSQLiteUserRepository(db).Create(ctx, user))

	repository := auth.NewSQLiteSessionRepository(db)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	live := &auth.Session{UserID: user.ID, TokenDigest: "live", CreatedAt: base, ExpiresAt: base.Add(time.Hour)}
	stale := &auth.Session{UserID: user.ID, TokenDigest: "stale", CreatedAt: base, ExpiresAt: base.Add(time.Minute)}
	require.NoError(t, repository.Create(ctx, live))
	require.NoError(t, repository.Create(ctx, stale))

	found, err := repository.FindByDigest(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.UserID)
	assert.True(t, live.ExpiresAt.Equal(found.ExpiresAt))

	removed, err := repository.DeleteExpired(ctx, base.Add(time.Minute))
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed, "expiry at exactly now counts as expired")

	_, err = repository.FindByDigest(ctx, "stale")
	assert.ErrorIs(t, err, dberr.ErrNotFound)

	require.NoError(t, repository.DeleteByDigest(ctx, "live"))
	require.NoError(t, repository.DeleteByDigest(ctx, "live"), "deleting twice is not an error")

	_, err = repository.FindByDigest(ctx, "live")
	assert.ErrorIs(t, err, dberr.ErrNotFound)
}

func TestSQLiteSessionRepository_CascadesOnUserDelete(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenSQLite(t)

	user := &auth.User{Username: "carol", PasswordHash: "x"}
	require.NoError(t, auth.NewSQLiteUserRepository(db).Create(ctx, user))

	repository := auth.NewSQLiteSessionRepository(db)
	now := time.Now().UTC()
	require.NoError(t, repository.Create(ctx, &auth.Session{UserID: user.ID, TokenDigest: "d", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}))

	_, err := db.Exec(`DELETE FROM users WHERE id = ?`, user.ID)
	require.NoError(t, err)

	_, err = repository.FindByDigest(ctx, "d")
	assert.ErrorIs(t, err, dberr.ErrNotFound)
}
