package session

import (
	"context"
	"time"
)

// Store persists sessions keyed by visitor id.
//
// All implementations hand out deep copies from GetOrCreate and persist
// copies in Save, so callers own the session they hold. Serialization of
// concurrent webhooks for the same visitor is the caller's job via Lock.
type Store interface {
	// GetOrCreate returns the visitor's session, creating it in the
	// default state when none exists. The second result reports whether
	// the session was created by this call.
	GetOrCreate(ctx context.Context, visitorID string) (*Session, bool, error)

	// Save persists the session, stamping UpdatedAt.
	Save(ctx context.Context, sess *Session) error

	// Lock serializes access to one visitor's session. It blocks until
	// the visitor's lock is available and returns the unlock function.
	Lock(visitorID string) (unlock func())

	// Count returns the number of live sessions.
	Count(ctx context.Context) (int, error)

	// EvictIdle removes sessions not updated within ttl and returns how
	// many were removed.
	EvictIdle(ctx context.Context, ttl time.Duration) (int, error)

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error

	// Close releases the store's resources.
	Close() error
}
