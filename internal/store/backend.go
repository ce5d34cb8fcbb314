package store

import (
	"context"
	"errors"
)

// ErrNotStored is returned by a Backend when a key has no value.
var ErrNotStored = errors.New("no stored value")

// Backend is opaque key → serialized-log storage. Values are always read and
// written whole; there are no partial writes.
type Backend interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}
