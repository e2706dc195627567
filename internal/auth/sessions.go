// Copyright (c) 2026 Tasker. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/tasker/internal/platform/ctxutil"
	"github.com/taibuivan/tasker/internal/platform/dberr"
	"github.com/taibuivan/tasker/internal/platform/sec"
)

// Sessions issues, resolves and revokes opaque session tokens.
//
// # Expiry
//
// There is no background reaper on the request path. An expired row is
// deleted by the first lookup that finds it; [Sessions.SweepExpired] exists
// for operators who want to reclaim space.
type Sessions struct {
	repository SessionRepository
	ttl        time.Duration
	now        func() time.Time
}

// SessionsOption customises a [Sessions] store.
type SessionsOption func(*Sessions)

// WithClock replaces the wall clock, mainly for TTL boundary tests.
func WithClock(now func() time.Time) SessionsOption {
	return func(sessions *Sessions) {
		sessions.now = now
	}
}

// NewSessions constructs the session store with the given lifetime.
func NewSessions(repository SessionRepository, ttl time.Duration, options ...SessionsOption) *Sessions {
	sessions := &Sessions{
		repository: repository,
		ttl:        ttl,
		now:        time.Now,
	}
	for _, option := range options {
		option(sessions)
	}
	return sessions
}

// TTL returns the lifetime of newly issued sessions.
func (sessions *Sessions) TTL() time.Duration {
	return sessions.ttl
}

/*
Create issues a new session for userID.

Returns:
  - IssuedSession: the raw token (shown to the client once) and its expiry
  - error: persistence failures
*/
func (sessions *Sessions) Create(context context.Context, userID int64) (IssuedSession, error) {
	raw, digest := sec.GenerateSessionToken()

	now := sessions.now().UTC()
	session := &Session{
		UserID:      userID,
		TokenDigest: digest,
		CreatedAt:   now,
		ExpiresAt:   now.Add(sessions.ttl),
	}

	if err := sessions.repository.Create(context, session); err != nil {
		return IssuedSession{}, fmt.Errorf("auth_sessions_create_failed: %w", err)
	}

	return IssuedSession{Token: raw, ExpiresAt: session.ExpiresAt}, nil
}

/*
Resolve maps a raw token to its user ID.

Returns:
  - int64: the owning user
  - bool: false for empty, unknown or expired tokens
  - error: storage failures only
*/
func (sessions *Sessions) Resolve(context context.Context, rawToken string) (int64, bool, error) {
	if rawToken == "" {
		return 0, false, nil
	}

	digest := sec.DigestToken(rawToken)

	session, err := sessions.repository.FindByDigest(context, digest)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("auth_sessions_resolve_failed: %w", err)
	}

	if session.Expired(sessions.now()) {
		// Lazy purge. The session is invalid whether or not the delete succeeds.
		if deleteErr := sessions.repository.DeleteByDigest(context, digest); deleteErr != nil {
			ctxutil.GetLogger(context).WarnContext(context, "expired_session_purge_failed",
				slog.Int64("session_id", session.ID),
				slog.Any("error", deleteErr),
			)
		}
		return 0, false, nil
	}

	return session.UserID, true, nil
}

// Revoke deletes the session for rawToken. Unknown tokens are not an error.
func (sessions *Sessions) Revoke(context context.Context, rawToken string) error {
	if rawToken == "" {
		return nil
	}

	if err := sessions.repository.DeleteByDigest(context, sec.DigestToken(rawToken)); err != nil {
		return fmt.Errorf("auth_sessions_revoke_failed: %w", err)
	}

	return nil
}

// SweepExpired deletes every expired session and returns how many were removed.
func (sessions *Sessions) SweepExpired(context context.Context) (int64, error) {
	removed, err := sessions.repository.DeleteExpired(context, sessions.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("auth_sessions_sweep_failed: %w", err)
	}
	return removed, nil
}
