// Copyright (c) 2026 Tasker. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides the cryptographic primitives used by the auth layer.
//
// # Architecture
//
// This package isolates security-sensitive code (password hashing, session
// token generation) from the domain logic. It has no storage or HTTP
// dependencies.
package sec

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when none is configured.
const DefaultCost = 10

// bcryptMaxInput is the number of password bytes bcrypt actually consumes.
const bcryptMaxInput = 72

// bcryptPrefixes identify the hash formats accepted by [PasswordHasher.Verify].
var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// PasswordHasher hashes and verifies passwords with bcrypt.
//
// # Long Passwords
//
// bcrypt ignores (and newer x/crypto releases reject) input beyond 72 bytes.
// Longer passwords are first reduced to a base64 SHA-256 digest so that every
// byte the user typed contributes to the hash. The same reduction runs in
// [PasswordHasher.Verify], keeping both sides consistent.
type PasswordHasher struct {
	cost  int
	dummy string
}

// NewPasswordHasher creates a hasher with the given bcrypt cost.
// Out-of-range costs are clamped to bcrypt's valid interval.
func NewPasswordHasher(cost int) (*PasswordHasher, error) {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}

	// A throwaway hash at the same cost, used to equalise timing on unknown users.
	dummy, err := bcrypt.GenerateFromPassword([]byte("tasker-timing-equaliser"), cost)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to prepare dummy hash: %w", err)
	}

	return &PasswordHasher{cost: cost, dummy: string(dummy)}, nil
}

// Cost returns the configured bcrypt work factor.
func (hasher *PasswordHasher) Cost() int {
	return hasher.cost
}

// Hash hashes a plain-text password using the bcrypt algorithm.
func (hasher *PasswordHasher) Hash(plainTextPassword string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword(prepare(plainTextPassword), hasher.cost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// Verify compares a plain-text password with a stored hash.
//
// Hashes that do not carry a bcrypt prefix (legacy or corrupted rows) never
// match. Malformed bcrypt strings also return false.
func (hasher *PasswordHasher) Verify(plainTextPassword, existingHash string) bool {
	if !IsBcryptHash(existingHash) {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), prepare(plainTextPassword))
	return err == nil
}

// Dummy returns a valid hash that matches no real password.
func (hasher *PasswordHasher) Dummy() string {
	return hasher.dummy
}

// IsBcryptHash reports whether value is shaped like a bcrypt hash.
func IsBcryptHash(value string) bool {
	for _, prefix := range bcryptPrefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}

// prepare maps a password to the bytes fed into bcrypt.
func prepare(plainTextPassword string) []byte {
	if len(plainTextPassword) <= bcryptMaxInput {
		return []byte(plainTextPassword)
	}
	sum := sha256.Sum256([]byte(plainTextPassword))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
