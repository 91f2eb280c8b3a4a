package session

import (
	"context"
	"sync"
	"time"

	apperrors "github.com/selec-cl/salesiq-bot-go/internal/errors"
)

// MemoryStore keeps sessions in a process-local map. It is the default
// backend: sessions do not survive a restart, which the conversation flow
// tolerates by resetting unknown visitors to the menu.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	locks    *KeyedMutex
	closed   bool
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
		locks:    NewKeyedMutex(),
	}
}

// GetOrCreate returns a copy of the visitor's session, creating a fresh one
// when the visitor is unknown.
func (m *MemoryStore) GetOrCreate(_ context.Context, visitorID string) (*Session, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, false, apperrors.NewStoreError("get_or_create", visitorID, apperrors.ErrStoreClosed)
	}

	if sess, ok := m.sessions[visitorID]; ok {
		return sess.Clone(), false, nil
	}

	sess := New(visitorID)
	m.sessions[visitorID] = sess.Clone()

	return sess, true, nil
}

// Save stores a copy of the session and stamps UpdatedAt.
func (m *MemoryStore) Save(_ context.Context, sess *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return apperrors.NewStoreError("save", sess.VisitorID, apperrors.ErrStoreClosed)
	}

	sess.UpdatedAt = time.Now()
	m.sessions[sess.VisitorID] = sess.Clone()

	return nil
}

// Lock serializes access to one visitor's session.
func (m *MemoryStore) Lock(visitorID string) func() {
	return m.locks.Lock(visitorID)
}

// Count returns the number of live sessions.
func (m *MemoryStore) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return 0, apperrors.ErrStoreClosed
	}

	return len(m.sessions), nil
}

// EvictIdle removes sessions not updated within ttl.
func (m *MemoryStore) EvictIdle(_ context.Context, ttl time.Duration) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0, apperrors.ErrStoreClosed
	}

	cutoff := time.Now().Add(-ttl)
	evicted := 0

	for id, sess := range m.sessions {
		if sess.UpdatedAt.Before(cutoff) {
			delete(m.sessions, id)
			evicted++
		}
	}

	return evicted, nil
}

// Ping reports whether the store accepts operations.
func (m *MemoryStore) Ping(_ context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return apperrors.ErrStoreClosed
	}

	return nil
}

// Close marks the store closed. Further operations fail with ErrStoreClosed.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.sessions = nil

	return nil
}
