// Copyright (c) 2026 Tasker. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/taibuivan/tasker/internal/platform/apperr"
	"github.com/taibuivan/tasker/internal/platform/ctxutil"
	"github.com/taibuivan/tasker/internal/platform/dberr"
	"github.com/taibuivan/tasker/pkg/ident"
)

// Service implements the authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed with the timing and enumeration properties
// in mind: a failed login must look the same whether or not the user exists.
type Service struct {
	users    *Users
	sessions *Sessions
	limiter  AttemptLimiter
}

// NewService constructs a new [Service]. A nil limiter disables throttling.
func NewService(users *Users, sessions *Sessions, limiter AttemptLimiter) *Service {
	if limiter == nil {
		limiter = NoopAttemptLimiter{}
	}
	return &Service{
		users:    users,
		sessions: sessions,
		limiter:  limiter,
	}
}

// SessionTTL returns the lifetime of issued sessions, used for the cookie Max-Age.
func (service *Service) SessionTTL() time.Duration {
	return service.sessions.TTL()
}

// # Registration Flow

/*
Register creates an account and logs it in.

Parameters:
  - context: context.Context
  - username: string
  - password: string

Returns:
  - *AuthResult: Created user and its first session
  - error: Validation, Conflict(username_taken) or storage errors
*/
func (service *Service) Register(context context.Context, username, password string) (*AuthResult, error) {
	user, err := service.users.Create(context, username, password)
	if err != nil {
		return nil, err
	}

	issued, err := service.sessions.Create(context, user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_register_session_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "user_registered", slog.Int64("user_id", user.ID))

	return &AuthResult{User: user, Session: issued}, nil
}

// # Authentication Flow

/*
Login verifies credentials and issues a new session.

Unknown usernames and wrong passwords produce the same error, and an unknown
username still pays for one bcrypt comparison.

Parameters:
  - context: context.Context
  - username: string
  - password: string

Returns:
  - *AuthResult: Authenticated user and a fresh session
  - error: InvalidCredentials, TooManyAttempts or storage errors
*/
func (service *Service) Login(context context.Context, username, password string) (*AuthResult, error) {
	logger := ctxutil.GetLogger(context)
	key := ident.Canonical(username)

	// 1. Refuse early while the username is locked out
	if key != "" {
		remaining, err := service.limiter.Locked(context, key)
		if err != nil {
			logger.WarnContext(context, "login_limiter_unavailable", slog.Any("error", err))
		} else if remaining > 0 {
			return nil, apperr.TooManyAttempts(int(math.Ceil(remaining.Seconds())))
		}
	}

	// 2. Look the account up
	user, err := service.users.FindByUsername(context, username)
	if err != nil && !errors.Is(err, dberr.ErrNotFound) {
		return nil, fmt.Errorf("auth_service_login_lookup_failed: %w", err)
	}

	// 3. Verify, burning equal time when the account does not exist
	if user == nil {
		service.users.BurnVerification(password)
		service.recordFailure(context, key)
		return nil, apperr.InvalidCredentials()
	}
	if !service.users.VerifyPassword(user, password) {
		service.recordFailure(context, key)
		return nil, apperr.InvalidCredentials()
	}

	// 4. Issue the session
	issued, err := service.sessions.Create(context, user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_login_session_failed: %w", err)
	}

	if err := service.limiter.Reset(context, key); err != nil {
		logger.WarnContext(context, "login_limiter_reset_failed", slog.Any("error", err))
	}

	// Never return the hash, even to internal callers.
	user.PasswordHash = ""
	return &AuthResult{User: user, Session: issued}, nil
}

func (service *Service) recordFailure(context context.Context, key string) {
	if key == "" {
		return
	}
	if err := service.limiter.RecordFailure(context, key); err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "login_limiter_record_failed", slog.Any("error", err))
	}
}

/*
Logout revokes the session behind token.

Idempotent: logging out twice, or with an unknown token, succeeds.
*/
func (service *Service) Logout(context context.Context, token string) error {
	return service.sessions.Revoke(context, token)
}

// # Session Resolution

/*
WhoAmI returns the user behind token, or nil for anonymous callers.

Returns:
  - *User: nil when the token is missing, unknown or expired
  - error: storage failures only
*/
func (service *Service) WhoAmI(context context.Context, token string) (*User, error) {
	userID, ok, err := service.sessions.Resolve(context, token)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	user, err := service.users.FindByID(context, userID)
	if err != nil {
		// The account vanished underneath a live session (cascade in flight).
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("auth_service_whoami_failed: %w", err)
	}

	return user, nil
}

/*
Authenticate resolves token to a user ID or fails with Unauthorized.

This is the gate every task operation passes through.
*/
func (service *Service) Authenticate(context context.Context, token string) (int64, error) {
	userID, ok, err := service.sessions.Resolve(context, token)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, apperr.Unauthorized("Authentication required")
	}
	return userID, nil
}

// SweepExpiredSessions deletes expired sessions and returns the count.
func (service *Service) SweepExpiredSessions(context context.Context) (int64, error) {
	return service.sessions.SweepExpired(context)
}
