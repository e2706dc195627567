// Copyright (c) 2026 Tasker. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tasker/internal/platform/apperr"
	"github.com/taibuivan/tasker/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		hasError bool
	}{
		{"valid_string", "buy milk", false},
		{"empty_string", "", true},
		{"whitespace_only", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required("title", tt.value, apperr.CodeTitleRequired)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, apperr.CodeTitleRequired, ae.Code)
				assert.Equal(t, "title", ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_LenBetween checks the inclusive bounds, counted in runes.
*/
func TestValidator_LenBetween(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"below_min", "ab", false},
		{"at_min", "abc", true},
		{"at_max", "abcdefgh", true},
		{"above_max", "abcdefghi", false},
		{"multibyte_counts_runes", "ñññ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.LenBetween("username", tt.value, 3, 8, apperr.CodeUsernameLength)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Chain_FirstCodeWins tests error accumulation and code precedence.
*/
func TestValidator_Chain_FirstCodeWins(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("username", "", apperr.CodeUsernameRequired).
		LenBetween("username", "", 3, 32, apperr.CodeUsernameLength).
		LenBetween("password", "123", 6, 100, apperr.CodePasswordLength).
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	assert.Equal(t, apperr.CodeUsernameRequired, ae.Code)
	assert.Len(t, ae.Details, 3)
	assert.Equal(t, apperr.CodePasswordLength, ae.Details[2].Code)
}

/*
TestValidator_OneOf verifies enumerated values.
*/
func TestValidator_OneOf(t *testing.T) {
	v := &validate.Validator{}
	v.OneOf("action", "completeAll", apperr.CodeUnknownAction, "completeAll", "clearCompleted")
	assert.NoError(t, v.Err())

	v = &validate.Validator{}
	v.OneOf("action", "explode", apperr.CodeUnknownAction, "completeAll", "clearCompleted")
	assert.True(t, apperr.HasCode(v.Err(), apperr.CodeUnknownAction))
}

/*
TestFieldErr verifies the single-field shortcut.
*/
func TestFieldErr(t *testing.T) {
	err := validate.FieldErr("id", apperr.CodeInvalidID, "Must be a positive integer")
	assert.Equal(t, apperr.CodeInvalidID, err.Code)
	require.Len(t, err.Details, 1)
	assert.Equal(t, "id", err.Details[0].Field)
}
