package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/iremince/garden-project/internal/db"
	"github.com/iremince/garden-project/internal/repository"
)

// SQLiteBackend stores values in the kv_store table. Every write runs in its
// own transaction so a failed save leaves the previous value in place.
type SQLiteBackend struct {
	uow db.UnitOfWork
}

func NewSQLiteBackend(uow db.UnitOfWork) *SQLiteBackend {
	return &SQLiteBackend{uow: uow}
}

func (b *SQLiteBackend) Read(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := b.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		entry, err := repository.NewSQLiteKVRepo(tx).Get(ctx, key)
		if err != nil {
			return err
		}
		value = entry.Value
		return nil
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", key, ErrNotStored)
	}
	return value, err
}

func (b *SQLiteBackend) Write(ctx context.Context, key string, value []byte) error {
	return b.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteKVRepo(tx).Put(ctx, key, value)
	})
}

func (b *SQLiteBackend) Remove(ctx context.Context, key string) error {
	return b.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteKVRepo(tx).Delete(ctx, key)
	})
}
