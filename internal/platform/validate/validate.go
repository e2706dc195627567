// Copyright (c) 2026 Tasker. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// This package is used in the service layer, before any durable write. It
// ensures that business logic only operates on semantically valid data.
//
// # Codes
//
// Every rule carries a machine-readable code. The first failing rule decides
// the top-level code of the resulting error, so clients can branch on a single
// value while still receiving every failure in Details.
package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/tasker/internal/platform/apperr"
)

var (
	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.Validation(apperr.CodeInvalidJSON, "Invalid JSON payload")
)

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value, code string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, code, "This field is required")
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int, code string) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, code, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// LenBetween fails if the Unicode character count is outside [min, max] (inclusive).
func (v *Validator) LenBetween(field, value string, min, max int, code string) *Validator {
	n := utf8.RuneCountInString(value)
	if n < min || n > max {
		v.add(field, code, fmt.Sprintf("Must be between %d and %d characters", min, max))
	}
	return v
}

// OneOf fails if the value is not in the allowed set of strings.
func (v *Validator) OneOf(field, value, code string, allowed ...string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.add(field, code, fmt.Sprintf("Must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("id", id <= 0, apperr.CodeInvalidID, "Must be a positive integer")
func (v *Validator) Custom(field string, failed bool, code, message string) *Validator {
	if failed {
		v.add(field, code, message)
	}
	return v
}

// Err returns a validation [apperr.AppError] if any rules failed, or nil if
// all rules passed. The first failure provides the top-level code and message.
//
// Call it once, at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	first := v.errs[0]
	return apperr.Validation(first.Code, first.Field+": "+first.Message, v.errs...)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, code, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Code: code, Message: message})
}

// FieldErr is a shortcut to create a single-field validation error.
func FieldErr(field, code, message string) *apperr.AppError {
	return apperr.Validation(code, field+": "+message, apperr.FieldError{
		Field:   field,
		Code:    code,
		Message: message,
	})
}
