package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		checkFn  func(error) bool
		expected bool
	}{
		{
			name:     "ErrSessionNotFound is recognized",
			err:      ErrSessionNotFound,
			checkFn:  IsSessionNotFound,
			expected: true,
		},
		{
			name:     "Wrapped ErrSessionNotFound is recognized",
			err:      fmt.Errorf("lookup failed: %w", ErrSessionNotFound),
			checkFn:  IsSessionNotFound,
			expected: true,
		},
		{
			name:     "Different error is not ErrSessionNotFound",
			err:      ErrStoreClosed,
			checkFn:  IsSessionNotFound,
			expected: false,
		},
		{
			name:     "ErrStoreClosed is recognized",
			err:      ErrStoreClosed,
			checkFn:  IsStoreClosed,
			expected: true,
		},
		{
			name:     "ErrRateLimitExceeded is recognized",
			err:      ErrRateLimitExceeded,
			checkFn:  IsRateLimitExceeded,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.checkFn(tt.err); got != tt.expected {
				t.Errorf("check = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestStoreError(t *testing.T) {
	cause := errors.New("disk full")
	err := NewStoreError("save", "visitor-1", cause)

	if !errors.Is(err, cause) {
		t.Error("StoreError should unwrap to its cause")
	}

	msg := err.Error()
	if msg != "store error (op=save, visitor=visitor-1): disk full" {
		t.Errorf("unexpected message: %s", msg)
	}

	anon := NewStoreError("cleanup", "", cause)
	if anon.Error() != "store error (op=cleanup): disk full" {
		t.Errorf("unexpected message without visitor: %s", anon.Error())
	}
}
