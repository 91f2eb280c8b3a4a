package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	apperrors "github.com/selec-cl/salesiq-bot-go/internal/errors"
	"github.com/selec-cl/salesiq-bot-go/internal/session"
)

// SessionStore persists sessions in SQLite. It implements session.Store.
//
// Per-visitor locking stays in process: SalesIQ delivers one conversation's
// webhooks to one instance, so a keyed mutex is enough and the database
// never takes row locks across requests.
type SessionStore struct {
	db    *DB
	locks *session.KeyedMutex
}

// NewSessionStore creates a session store backed by db.
func NewSessionStore(db *DB) *SessionStore {
	return &SessionStore{
		db:    db,
		locks: session.NewKeyedMutex(),
	}
}

// GetOrCreate loads the visitor's session, inserting a fresh one when the
// visitor is unknown.
func (s *SessionStore) GetOrCreate(ctx context.Context, visitorID string) (*session.Session, bool, error) {
	row := s.db.conn.QueryRowContext(ctx,
		`SELECT state, data, updated_at FROM sessions WHERE visitor_id = ?`, visitorID)

	var (
		stateName string
		rawData   string
		updatedAt int64
	)

	err := row.Scan(&stateName, &rawData, &updatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		sess := session.New(visitorID)
		if err := s.insert(ctx, sess); err != nil {
			return nil, false, err
		}
		return sess, true, nil
	case err != nil:
		return nil, false, apperrors.NewStoreError("get_or_create", visitorID, err)
	}

	// Unknown state names, e.g. written by an older deployment, come back
	// as StateInvalid and the flow engine resets the conversation.
	state, _ := session.ParseState(stateName)

	data := make(map[string]string)
	if err := json.Unmarshal([]byte(rawData), &data); err != nil {
		data = make(map[string]string)
	}

	return &session.Session{
		VisitorID: visitorID,
		State:     state,
		Data:      data,
		UpdatedAt: time.Unix(updatedAt, 0),
	}, false, nil
}

func (s *SessionStore) insert(ctx context.Context, sess *session.Session) error {
	rawData, err := json.Marshal(sess.Data)
	if err != nil {
		return apperrors.NewStoreError("insert", sess.VisitorID, err)
	}

	_, err = s.db.conn.ExecContext(ctx,
		`INSERT INTO sessions (visitor_id, state, data, updated_at) VALUES (?, ?, ?, ?)`,
		sess.VisitorID, sess.State.String(), string(rawData), sess.UpdatedAt.Unix())
	if err != nil {
		return apperrors.NewStoreError("insert", sess.VisitorID, err)
	}

	return nil
}

// Save upserts the session and stamps UpdatedAt.
func (s *SessionStore) Save(ctx context.Context, sess *session.Session) error {
	rawData, err := json.Marshal(sess.Data)
	if err != nil {
		return apperrors.NewStoreError("save", sess.VisitorID, err)
	}

	sess.UpdatedAt = time.Now()

	_, err = s.db.conn.ExecContext(ctx,
		`INSERT INTO sessions (visitor_id, state, data, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(visitor_id) DO UPDATE SET
			state = excluded.state,
			data = excluded.data,
			updated_at = excluded.updated_at`,
		sess.VisitorID, sess.State.String(), string(rawData), sess.UpdatedAt.Unix())
	if err != nil {
		return apperrors.NewStoreError("save", sess.VisitorID, err)
	}

	return nil
}

// Lock serializes access to one visitor's session.
func (s *SessionStore) Lock(visitorID string) func() {
	return s.locks.Lock(visitorID)
}

// Count returns the number of live sessions.
func (s *SessionStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&count); err != nil {
		return 0, apperrors.NewStoreError("count", "", err)
	}
	return count, nil
}

// EvictIdle removes sessions not updated within ttl.
func (s *SessionStore) EvictIdle(ctx context.Context, ttl time.Duration) (int, error) {
	cutoff := time.Now().Add(-ttl).Unix()

	result, err := s.db.conn.ExecContext(ctx,
		`DELETE FROM sessions WHERE updated_at < ?`, cutoff)
	if err != nil {
		return 0, apperrors.NewStoreError("evict_idle", "", err)
	}

	evicted, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.NewStoreError("evict_idle", "", err)
	}

	return int(evicted), nil
}

// Ping reports whether the database is reachable.
func (s *SessionStore) Ping(ctx context.Context) error {
	return s.db.conn.PingContext(ctx)
}

// Close closes the backing database.
func (s *SessionStore) Close() error {
	return s.db.Close()
}
