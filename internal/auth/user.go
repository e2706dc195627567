// Copyright (c) 2026 Tasker. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the user identity and session management layer.

It defines the core domain entities (User, Session) and the logic for
registration, login, logout and session resolution.

# Architecture

  - Users: validates and persists accounts (store.go contracts, one adapter per engine).
  - Sessions: issues, resolves and revokes opaque server-side session tokens.
  - AttemptLimiter: throttles repeated failed logins (Redis or no-op).
  - Service: orchestrates the use cases above for the HTTP layer.
*/
package auth

import (
	"time"
)

// # Domain Entities

// User represents a registered account.
//
// Username is always in canonical form (see [ident.Canonical]).
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	CreatedAt    time.Time `json:"created_at"`
}

// Session is the persisted half of an opaque session token.
//
// Only the digest of the token is stored. The raw token exists in the
// client's cookie and nowhere else.
type Session struct {
	ID          int64
	UserID      int64
	TokenDigest string
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// Expired reports whether the session is no longer valid at now.
//
// A session is valid strictly before ExpiresAt.
func (session *Session) Expired(now time.Time) bool {
	return !now.Before(session.ExpiresAt)
}

// IssuedSession is returned exactly once, when a session is created.
type IssuedSession struct {
	Token     string
	ExpiresAt time.Time
}

// AuthResult is the outcome of a successful register or login.
type AuthResult struct {
	User    *User
	Session IssuedSession
}
