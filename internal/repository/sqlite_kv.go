package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iremince/garden-project/internal/db"
)

// KVEntry is one stored value. Values are written and read whole.
type KVEntry struct {
	Key       string
	Value     []byte
	UpdatedAt time.Time
}

// SQLiteKVRepo is an opaque key to blob store on the kv_store table.
type SQLiteKVRepo struct {
	db db.DBTX
}

// NewSQLiteKVRepo creates a KV repository over a *sql.DB or *sql.Tx.
func NewSQLiteKVRepo(conn db.DBTX) *SQLiteKVRepo {
	return &SQLiteKVRepo{db: conn}
}

func (r *SQLiteKVRepo) Get(ctx context.Context, key string) (*KVEntry, error) {
	query := `SELECT key, value, updated_at FROM kv_store WHERE key = ?`
	row := r.db.QueryRowContext(ctx, query, key)

	var e KVEntry
	var updatedAt string
	if err := row.Scan(&e.Key, &e.Value, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("kv entry %q: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning kv entry: %w", err)
	}
	e.UpdatedAt = parseTimestamp(updatedAt)
	return &e, nil
}

func (r *SQLiteKVRepo) Put(ctx context.Context, key string, value []byte) error {
	query := `INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`
	if value == nil {
		value = []byte{}
	}
	if _, err := r.db.ExecContext(ctx, query, key, value, nowUTC()); err != nil {
		return fmt.Errorf("writing kv entry %q: %w", key, err)
	}
	return nil
}

func (r *SQLiteKVRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting kv entry %q: %w", key, err)
	}
	return nil
}
