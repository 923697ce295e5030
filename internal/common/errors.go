// Package common defines shared constants and sentinel errors used across
// authd components. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrInternal = errors.New("internal error")

	// Auth outcomes. Expected rejections, not failures.
	ErrInvalidPassword = errors.New("invalid password")
	ErrUserLocked      = errors.New("user locked")
	ErrUnauthorized    = errors.New("unauthorized")
)

// ValidationError reports a malformed input field. The field name is part of
// the message so the caller can fix the request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
