// Copyright (c) 2026 Tasker. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// SessionTokenBytes is the entropy of a session token (256 bits).
const SessionTokenBytes = 32

// GenerateSessionToken returns a fresh bearer token and its storage digest.
//
// The raw token goes to the client once. Only the digest is persisted.
func GenerateSessionToken() (raw, digest string) {
	buffer := make([]byte, SessionTokenBytes)

	// crypto/rand.Read never returns an error on supported platforms.
	_, _ = rand.Read(buffer)

	raw = hex.EncodeToString(buffer)
	return raw, DigestToken(raw)
}

// DigestToken derives the storage lookup key for a raw token.
func DigestToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
