// Copyright (c) 2026 Tasker. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ident produces the canonical form of user-chosen identifiers.
//
// # Usage
//
// Usernames are stored, compared and returned in canonical form, so
// "Alice", " alice " and "ALİCE" written with different Unicode encodings
// cannot register as distinct accounts.
package ident

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Canonical converts a username into its canonical form.
//
// # Transformation Pipeline
//
// 1. Trims surrounding whitespace.
// 2. Normalizes to NFC (composes "e" + combining acute into "é").
// 3. Applies Unicode case folding.
// 4. Re-normalizes, since folding can emit decomposed sequences.
func Canonical(s string) string {
	// 1. Trim
	result := strings.TrimSpace(s)
	if result == "" {
		return ""
	}

	// 2. Compose
	result = norm.NFC.String(result)

	// 3. Fold. A Caser is stateful, so one is created per call.
	result = cases.Fold().String(result)

	// 4. Compose again
	return norm.NFC.String(result)
}

// HasControl reports whether s contains control or non-printable characters.
func HasControl(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsControl(r) || !unicode.IsPrint(r) && !unicode.IsSpace(r)
	}) >= 0
}
