// Copyright (c) 2026 Tasker. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/taibuivan/tasker/internal/platform/apperr"
	"github.com/taibuivan/tasker/internal/platform/constants"
	"github.com/taibuivan/tasker/internal/platform/dberr"
	"github.com/taibuivan/tasker/internal/platform/sec"
	"github.com/taibuivan/tasker/internal/platform/validate"
	"github.com/taibuivan/tasker/pkg/ident"
)

// errUsernameTaken is the single error for both the pre-check and the constraint.
func errUsernameTaken() *apperr.AppError {
	return apperr.Conflict(apperr.CodeUsernameTaken, "Username is already taken")
}

// Users validates and persists accounts.
type Users struct {
	repository UserRepository
	hasher     *sec.PasswordHasher
}

// NewUsers constructs the user store on top of a repository.
func NewUsers(repository UserRepository, hasher *sec.PasswordHasher) *Users {
	return &Users{repository: repository, hasher: hasher}
}

// ValidateCredentials checks a canonical username and a password against the
// account rules. It never touches storage.
func ValidateCredentials(username, password string) error {
	validator := &validate.Validator{}

	validator.Required(FieldUsername, username, apperr.CodeUsernameRequired)
	if username != "" {
		validator.LenBetween(FieldUsername, username,
			constants.UsernameMinLength, constants.UsernameMaxLength, apperr.CodeUsernameLength)
		validator.Custom(FieldUsername, ident.HasControl(username),
			apperr.CodeValidation, "Must not contain control characters")
	}

	validator.LenBetween(FieldPassword, password,
		constants.PasswordMinLength, constants.PasswordMaxLength, apperr.CodePasswordLength)

	return validator.Err()
}

/*
Create validates, hashes, and persists a new account.

Validation runs before hashing, so invalid input never costs a bcrypt round.
A concurrent registration that slips past the pre-check is caught by the
unique constraint and reported with the same error.

Parameters:
  - context: context.Context
  - username: raw username as typed
  - password: plain-text password

Returns:
  - *User: Created entity (canonical username, no hash exposed via JSON)
  - error: Validation, Conflict(username_taken) or storage errors
*/
func (users *Users) Create(context context.Context, username, password string) (*User, error) {
	canonical := ident.Canonical(username)

	// 1. Validate before any expensive or durable work
	if err := ValidateCredentials(canonical, password); err != nil {
		return nil, err
	}

	// 2. Short-circuit obvious duplicates
	_, err := users.repository.FindByUsername(context, canonical)
	if err == nil {
		return nil, errUsernameTaken()
	}
	if !errors.Is(err, dberr.ErrNotFound) {
		return nil, fmt.Errorf("auth_users_precheck_failed: %w", err)
	}

	// 3. Hash
	hash, err := users.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("auth_users_hash_failed: %w", err)
	}

	// 4. Insert; the constraint is the source of truth under concurrency
	user := &User{Username: canonical, PasswordHash: hash}
	if err := users.repository.Create(context, user); err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, errUsernameTaken()
		}
		return nil, fmt.Errorf("auth_users_create_failed: %w", err)
	}

	return user, nil
}

// FindByUsername canonicalises username and looks it up.
// Returns [dberr.ErrNotFound] when no such account exists.
func (users *Users) FindByUsername(context context.Context, username string) (*User, error) {
	canonical := ident.Canonical(username)
	if canonical == "" {
		return nil, dberr.ErrNotFound
	}
	return users.repository.FindByUsername(context, canonical)
}

// FindByID returns the public projection of an account.
func (users *Users) FindByID(context context.Context, id int64) (*User, error) {
	return users.repository.FindByID(context, id)
}

// VerifyPassword reports whether password matches user's stored hash.
func (users *Users) VerifyPassword(user *User, password string) bool {
	return users.hasher.Verify(password, user.PasswordHash)
}

// BurnVerification spends the same CPU as a real password check.
// Used when the username does not exist.
func (users *Users) BurnVerification(password string) {
	_ = users.hasher.Verify(password, users.hasher.Dummy())
}
