// Copyright (c) 2026 Tasker. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # Field Identifiers

// Field names used in validation details and JSON payloads.
const (
	FieldUsername = "username"
	FieldPassword = "password"
	FieldUser     = "user"
	FieldOK       = "ok"
)
