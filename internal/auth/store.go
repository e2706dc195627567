// Copyright (c) 2026 Tasker. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
//
// # Implementations
//
// PostgreSQL (store_postgres.go) and SQLite (store_sqlite.go). Both return
// [dberr.ErrNotFound] for missing rows and surface the engine's own
// unique-violation error from Create.
type UserRepository interface {

	/*
		Create persists a brand-new user and assigns its ID and CreatedAt.

		Parameters:
		  - context: context.Context
		  - user: *User (Username already canonical, PasswordHash already computed)

		Returns:
		  - error: Unique-constraint violations or connectivity errors
	*/
	Create(context context.Context, user *User) error

	/*
		FindByUsername returns the account with the given canonical username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity, including PasswordHash
		  - error: dberr.ErrNotFound or database errors
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		FindByID returns the account with the given ID, without its hash.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *User: Hydrated entity
		  - error: dberr.ErrNotFound or database errors
	*/
	FindByID(context context.Context, id int64) (*User, error)
}

// # Session Data Access

// SessionRepository defines the data access contract for server-side sessions.
type SessionRepository interface {

	/*
		Create persists a new session row and assigns its ID.

		Parameters:
		  - context: context.Context
		  - session: *Session

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, session *Session) error

	/*
		FindByDigest returns the session matching the token digest, expired or not.

		Parameters:
		  - context: context.Context
		  - digest: string

		Returns:
		  - *Session: Hydrated entity
		  - error: dberr.ErrNotFound or database errors
	*/
	FindByDigest(context context.Context, digest string) (*Session, error)

	/*
		DeleteByDigest removes the session matching the digest. Missing rows are not an error.

		Parameters:
		  - context: context.Context
		  - digest: string

		Returns:
		  - error: Persistence failures
	*/
	DeleteByDigest(context context.Context, digest string) error

	/*
		DeleteExpired removes every session whose ExpiresAt is at or before now.

		Parameters:
		  - context: context.Context
		  - now: time.Time

		Returns:
		  - int64: Number of rows removed
		  - error: Persistence failures
	*/
	DeleteExpired(context context.Context, now time.Time) (int64, error)
}

// # Login Throttling

// AttemptLimiter tracks failed logins per username.
//
// Implementations must be safe for concurrent use. Callers treat limiter
// errors as "not locked" (fail open) and log them.
type AttemptLimiter interface {
	// Locked returns how long the key remains locked, or zero if it is not.
	Locked(context context.Context, key string) (time.Duration, error)

	// RecordFailure counts one failed attempt for key.
	RecordFailure(context context.Context, key string) error

	// Reset forgets all failures recorded for key.
	Reset(context context.Context, key string) error
}
