package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jarda-app/jarda/internal/repository"
)

// Backend is the durable side of the store: one complete payload per named
// record, overwritten wholesale on every save.
type Backend interface {
	LoadSnapshot(ctx context.Context, name string) ([]byte, error)
	SaveSnapshot(ctx context.Context, name string, payload []byte) error
}

// DB wraps a SQLite database connection holding the snapshots table.
type DB struct {
	*sql.DB
}

// NewDB opens (and prepares) the snapshot database.
func NewDB(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	schema := `
CREATE TABLE IF NOT EXISTS snapshots (
    name TEXT PRIMARY KEY,
    payload BLOB NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create snapshots table: %w", err)
	}

	return &DB{db}, nil
}

// LoadSnapshot returns the stored payload for a record, or
// repository.ErrNotFound when none was ever saved.
func (db *DB) LoadSnapshot(ctx context.Context, name string) ([]byte, error) {
	var payload []byte
	err := db.QueryRowContext(ctx,
		`SELECT payload FROM snapshots WHERE name = ?`, name,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %q: %w", name, err)
	}
	return payload, nil
}

// SaveSnapshot overwrites the payload for a record.
func (db *DB) SaveSnapshot(ctx context.Context, name string, payload []byte) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO snapshots (name, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`, name, payload, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save snapshot %q: %w", name, err)
	}
	return nil
}
