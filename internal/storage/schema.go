package storage

import (
	"database/sql"
	"fmt"
)

// initSchema creates the sessions table and its indexes.
// Note: WAL mode is configured in db.go's New function.
func initSchema(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS sessions (
		visitor_id TEXT PRIMARY KEY,
		state      TEXT NOT NULL,
		data       TEXT NOT NULL DEFAULT '{}',
		updated_at INTEGER NOT NULL
	)`

	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create sessions table: %w", err)
	}

	// updated_at drives idle eviction.
	indexQuery := `CREATE INDEX IF NOT EXISTS idx_sessions_updated_at ON sessions(updated_at)`
	if _, err := db.Exec(indexQuery); err != nil {
		return fmt.Errorf("failed to create sessions index: %w", err)
	}

	return nil
}
