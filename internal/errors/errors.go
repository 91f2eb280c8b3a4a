// Package errors provides domain-specific error types and sentinel errors
// for improved error handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrSessionNotFound indicates no session exists for a visitor.
	ErrSessionNotFound = errors.New("session not found")

	// ErrStoreClosed indicates the session store has been shut down.
	ErrStoreClosed = errors.New("session store closed")

	// ErrRateLimitExceeded indicates rate limit has been exceeded.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// ErrInvalidInput indicates user provided invalid input.
	ErrInvalidInput = errors.New("invalid input")
)

// IsSessionNotFound reports whether err is or wraps ErrSessionNotFound.
func IsSessionNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound)
}

// IsStoreClosed reports whether err is or wraps ErrStoreClosed.
func IsStoreClosed(err error) bool {
	return errors.Is(err, ErrStoreClosed)
}

// IsRateLimitExceeded reports whether err is or wraps ErrRateLimitExceeded.
func IsRateLimitExceeded(err error) bool {
	return errors.Is(err, ErrRateLimitExceeded)
}

// StoreError represents session store failures with context.
type StoreError struct {
	Op        string // Operation being performed (e.g., "get_or_create", "save")
	VisitorID string
	Err       error
}

func (e *StoreError) Error() string {
	if e.VisitorID != "" {
		return fmt.Sprintf("store error (op=%s, visitor=%s): %v", e.Op, e.VisitorID, e.Err)
	}
	return fmt.Sprintf("store error (op=%s): %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new store error.
func NewStoreError(op, visitorID string, err error) *StoreError {
	return &StoreError{
		Op:        op,
		VisitorID: visitorID,
		Err:       err,
	}
}
