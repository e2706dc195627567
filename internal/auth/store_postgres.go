// Copyright (c) 2026 Tasker. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/taibuivan/tasker/internal/platform/dberr"
	"github.com/taibuivan/tasker/internal/platform/dbx"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool dbx.PgxQuerier
}

// NewPostgresUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewPostgresUserRepository(pool dbx.PgxQuerier) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

/*
Create persists a new user record into the users table.

The unique-violation error from the username constraint is returned wrapped,
so callers can classify it with [dberr.IsUniqueViolation].
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := repository.pool.QueryRow(context, query, user.Username, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByUsername retrieves a user record by canonical username, including the hash.
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	const query = `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = $1`

	user := &User{}
	err := repository.pool.QueryRow(context, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, dberr.ErrNotFound
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_username_failed: %w", err)
	}

	return user, nil
}

/*
FindByID retrieves a user record by primary key. The hash is not selected.
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id int64) (*User, error) {
	const query = `
		SELECT id, username, created_at
		FROM users
		WHERE id = $1`

	user := &User{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.CreatedAt,
	)
	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, dberr.ErrNotFound
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_id_failed: %w", err)
	}

	return user, nil
}

// # Session Repository

// PostgresSessionRepository implements the SessionRepository interface using pgx.
type PostgresSessionRepository struct {
	pool dbx.PgxQuerier
}

// NewPostgresSessionRepository creates a new PostgreSQL implementation of the SessionRepository.
func NewPostgresSessionRepository(pool dbx.PgxQuerier) *PostgresSessionRepository {
	return &PostgresSessionRepository{pool: pool}
}

// Create inserts a session row keyed by the token digest.
func (repository *PostgresSessionRepository) Create(context context.Context, session *Session) error {
	const query = `
		INSERT INTO sessions (user_id, token_digest, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := repository.pool.QueryRow(context, query,
		session.UserID,
		session.TokenDigest,
		session.CreatedAt,
		session.ExpiresAt,
	).Scan(&session.ID)
	if err != nil {
		return fmt.Errorf("postgres_session_repo_create_failed: %w", err)
	}

	return nil
}

// FindByDigest looks a session up by token digest, without filtering on expiry.
func (repository *PostgresSessionRepository) FindByDigest(context context.Context, digest string) (*Session, error) {
	const query = `
		SELECT id, user_id, token_digest, created_at, expires_at
		FROM sessions
		WHERE token_digest = $1`

	session := &Session{}
	err := repository.pool.QueryRow(context, query, digest).Scan(
		&session.ID,
		&session.UserID,
		&session.TokenDigest,
		&session.CreatedAt,
		&session.ExpiresAt,
	)
	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, dberr.ErrNotFound
		}
		return nil, fmt.Errorf("postgres_session_repo_find_failed: %w", err)
	}

	return session, nil
}

// DeleteByDigest removes a session. Deleting a missing row succeeds.
func (repository *PostgresSessionRepository) DeleteByDigest(context context.Context, digest string) error {
	const query = `DELETE FROM sessions WHERE token_digest = $1`

	if _, err := repository.pool.Exec(context, query, digest); err != nil {
		return fmt.Errorf("postgres_session_repo_delete_failed: %w", err)
	}

	return nil
}

// DeleteExpired removes every session that expired at or before now.
func (repository *PostgresSessionRepository) DeleteExpired(context context.Context, now time.Time) (int64, error) {
	const query = `DELETE FROM sessions WHERE expires_at <= $1`

	tag, err := repository.pool.Exec(context, query, now)
	if err != nil {
		return 0, fmt.Errorf("postgres_session_repo_delete_expired_failed: %w", err)
	}

	return tag.RowsAffected(), nil
}
