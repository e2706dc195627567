// Copyright (c) 2026 Tasker. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/taibuivan/tasker/internal/platform/dberr"
	"github.com/taibuivan/tasker/internal/platform/dbx"
	"github.com/taibuivan/tasker/internal/platform/sqlite"
)

// # User Repository

// SQLiteUserRepository implements the UserRepository interface on database/sql.
//
// Timestamps are stored as INTEGER Unix milliseconds.
type SQLiteUserRepository struct {
	db dbx.DBTX
}

// NewSQLiteUserRepository creates a new SQLite implementation of the UserRepository.
func NewSQLiteUserRepository(db dbx.DBTX) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}

// Create inserts the user and reads back the generated ID.
func (repository *SQLiteUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users (username, password_hash, created_at)
		VALUES (?, ?, ?)
		RETURNING id`

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	err := repository.db.QueryRowContext(context, query,
		user.Username,
		user.PasswordHash,
		sqlite.Millis(user.CreatedAt),
	).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("sqlite_user_repo_create_failed: %w", err)
	}

	// Match the precision actually persisted.
	user.CreatedAt = sqlite.FromMillis(sqlite.Millis(user.CreatedAt))
	return nil
}

// FindByUsername retrieves a user record by canonical username, including the hash.
func (repository *SQLiteUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	const query = `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = ?`

	var createdAt int64
	user := &User{}
	err := repository.db.QueryRowContext(context, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&createdAt,
	)
	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, dberr.ErrNotFound
		}
		return nil, fmt.Errorf("sqlite_user_repo_find_by_username_failed: %w", err)
	}

	user.CreatedAt = sqlite.FromMillis(createdAt)
	return user, nil
}

// FindByID retrieves a user record by primary key. The hash is not selected.
func (repository *SQLiteUserRepository) FindByID(context context.Context, id int64) (*User, error) {
	const query = `
		SELECT id, username, created_at
		FROM users
		WHERE id = ?`

	var createdAt int64
	user := &User{}
	err := repository.db.QueryRowContext(context, query, id).Scan(
		&user.ID,
		&user.Username,
		&createdAt,
	)
	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, dberr.ErrNotFound
		}
		return nil, fmt.Errorf("sqlite_user_repo_find_by_id_failed: %w", err)
	}

	user.CreatedAt = sqlite.FromMillis(createdAt)
	return user, nil
}

// # Session Repository

// SQLiteSessionRepository implements the SessionRepository interface on database/sql.
type SQLiteSessionRepository struct {
	db dbx.DBTX
}

// NewSQLiteSessionRepository creates a new SQLite implementation of the SessionRepository.
func NewSQLiteSessionRepository(db dbx.DBTX) *SQLiteSessionRepository {
	return &SQLiteSessionRepository{db: db}
}

// Create inserts a session row keyed by the token digest.
func (repository *SQLiteSessionRepository) Create(context context.Context, session *Session) error {
	const query = `
		INSERT INTO sessions (user_id, token_digest, created_at, expires_at)
		VALUES (?, ?, ?, ?)
		RETURNING id`

	err := repository.db.QueryRowContext(context, query,
		session.UserID,
		session.TokenDigest,
		sqlite.Millis(session.CreatedAt),
		sqlite.Millis(session.ExpiresAt),
	).Scan(&session.ID)
	if err != nil {
		return fmt.Errorf("sqlite_session_repo_create_failed: %w", err)
	}

	return nil
}

// FindByDigest looks a session up by token digest, without filtering on expiry.
func (repository *SQLiteSessionRepository) FindByDigest(context context.Context, digest string) (*Session, error) {
	const query = `
		SELECT id, user_id, token_digest, created_at, expires_at
		FROM sessions
		WHERE token_digest = ?`

	var createdAt, expiresAt int64
	session := &Session{}
	err := repository.db.QueryRowContext(context, query, digest).Scan(
		&session.ID,
		&session.UserID,
		&session.TokenDigest,
		&createdAt,
		&expiresAt,
	)
	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, dberr.ErrNotFound
		}
		return nil, fmt.Errorf("sqlite_session_repo_find_failed: %w", err)
	}

	session.CreatedAt = sqlite.FromMillis(createdAt)
	session.ExpiresAt = sqlite.FromMillis(expiresAt)
	return session, nil
}

// DeleteByDigest removes a session. Deleting a missing row succeeds.
func (repository *SQLiteSessionRepository) DeleteByDigest(context context.Context, digest string) error {
	const query = `DELETE FROM sessions WHERE token_digest = ?`

	if _, err := repository.db.ExecContext(context, query, digest); err != nil {
		return fmt.Errorf("sqlite_session_repo_delete_failed: %w", err)
	}

	return nil
}

// DeleteExpired removes every session that expired at or before now.
func (repository *SQLiteSessionRepository) DeleteExpired(context context.Context, now time.Time) (int64, error) {
	const query = `DELETE FROM sessions WHERE expires_at <= ?`

	result, err := repository.db.ExecContext(context, query, sqlite.Millis(now))
	if err != nil {
		return 0, fmt.Errorf("sqlite_session_repo_delete_expired_failed: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sqlite_session_repo_delete_expired_failed: %w", err)
	}

	return affected, nil
}
