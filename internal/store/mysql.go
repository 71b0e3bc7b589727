package store

import (
    "context"
    "database/sql"
    "errors"
    "fmt"
)

// MySQL adapts a relational database to the KV contract by storing every
// collection as a blob in a single two-column table.  The persisted layout
// stays an opaque key-to-value map regardless of backend.
type MySQL struct {
    db *sql.DB
}

// NewMySQL wraps an open database handle and creates the state table when it
// does not exist yet.
func NewMySQL(ctx context.Context, db *sql.DB) (*MySQL, error) {
    const ddl = `CREATE TABLE IF NOT EXISTS app_state (
        k VARCHAR(191) NOT NULL PRIMARY KEY,
        v LONGBLOB NOT NULL,
        updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
    )`
    if _, err := db.ExecContext(ctx, ddl); err != nil {
        return nil, fmt.Errorf("store: create app_state table: %w", err)
    }
    return &MySQL{db: db}, nil
}

// Get returns the value under key, translating sql.ErrNoRows to
// ErrKeyNotFound.
func (m *MySQL) Get(ctx context.Context, key string) ([]byte, error) {
    const q = `SELECT v FROM app_state WHERE k = ?`
    var raw []byte
    if err := m.db.QueryRowContext(ctx, q, key).Scan(&raw); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrKeyNotFound
        }
        return nil, err
    }
    return raw, nil
}

// Set inserts or replaces the value under key.
func (m *MySQL) Set(ctx context.Context, key string, value []byte) error {
    const q = `INSERT INTO app_state (k, v) VALUES (?, ?) ON DUPLICATE KEY UPDATE v = VALUES(v)`
    _, err := m.db.ExecContext(ctx, q, key, value)
    return err
}
