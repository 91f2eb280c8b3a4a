package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selec-cl/salesiq-bot-go/internal/session"
)

func setupTestStore(t *testing.T) *SessionStore {
	t.Helper()

	// A file-backed database per test keeps tests fully isolated; the
	// shared-cache behavior of :memory: databases leaks across conns.
	db, err := New(t.TempDir() + "/test.db")
	require.NoError(t, err)

	store := NewSessionStore(db)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestSessionStoreGetOrCreate(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	sess, created, err := store.GetOrCreate(ctx, "visitor-1")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, session.StateStart, sess.State)
	assert.Equal(t, "visitor-1", sess.VisitorID)

	_, created, err = store.GetOrCreate(ctx, "visitor-1")
	require.NoError(t, err)
	assert.False(t, created)
}

func TestSessionStoreSaveRoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	sess, _, err := store.GetOrCreate(ctx, "visitor-1")
	require.NoError(t, err)

	sess.State = session.StateQuoteBlock
	sess.Set("empresa", "Acme Ltda")
	sess.Set("correo", "maria@acme.cl")

	require.NoError(t, store.Save(ctx, sess))

	loaded, created, err := store.GetOrCreate(ctx, "visitor-1")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, session.StateQuoteBlock, loaded.State)
	assert.Equal(t, "Acme Ltda", loaded.Get("empresa"))
	assert.Equal(t, "maria@acme.cl", loaded.Get("correo"))
	assert.False(t, loaded.UpdatedAt.IsZero())
}

func TestSessionStoreUnknownStateLoadsAsInvalid(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.db.Conn().ExecContext(ctx,
		`INSERT INTO sessions (visitor_id, state, data, updated_at) VALUES (?, ?, ?, ?)`,
		"visitor-1", "estado_legado", "{}", time.Now().Unix())
	require.NoError(t, err)

	loaded, created, err := store.GetOrCreate(ctx, "visitor-1")
	require.NoError(t, err)
	assert.False(t, created)
	// The flow engine resets invalid states to the menu.
	assert.Equal(t, session.StateInvalid, loaded.State)
}

func TestSessionStoreCorruptDataLoadsEmpty(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.db.Conn().ExecContext(ctx,
		`INSERT INTO sessions (visitor_id, state, data, updated_at) VALUES (?, ?, ?, ?)`,
		"visitor-1", "menu_principal", "not json", time.Now().Unix())
	require.NoError(t, err)

	loaded, _, err := store.GetOrCreate(ctx, "visitor-1")
	require.NoError(t, err)
	assert.Empty(t, loaded.Data)
}

func TestSessionStoreCount(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b"} {
		_, _, err := store.GetOrCreate(ctx, id)
		require.NoError(t, err)
	}

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestSessionStoreEvictIdle(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.db.Conn().ExecContext(ctx,
		`INSERT INTO sessions (visitor_id, state, data, updated_at) VALUES (?, ?, ?, ?)`,
		"stale", "menu_principal", "{}", time.Now().Add(-2*time.Hour).Unix())
	require.NoError(t, err)

	fresh, _, err := store.GetOrCreate(ctx, "fresh")
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, fresh))

	evicted, err := store.EvictIdle(ctx, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, evicted)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSessionStorePing(t *testing.T) {
	store := setupTestStore(t)

	assert.NoError(t, store.Ping(context.Background()))
}

func TestSessionStoreLockSerializes(t *testing.T) {
	store := setupTestStore(t)

	unlock := store.Lock("visitor-1")

	acquired := make(chan struct{})
	go func() {
		second := store.Lock("visitor-1")
		close(acquired)
		second()
	}()

	select {
	case <-acquired:
		t.Fatal("second Lock acquired while first still held")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second Lock never acquired after unlock")
	}
}
