package store

import (
	"context"
	"fmt"
	"sync"
)

// MemoryBackend keeps values in a map. Setting FailWrites makes every Write
// and Remove fail with that error, which is how tests simulate a full disk.
type MemoryBackend struct {
	mu         sync.Mutex
	values     map[string][]byte
	FailWrites error
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string][]byte)}
}

func (b *MemoryBackend) Read(_ context.Context, key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.values[key]
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, ErrNotStored)
	}
	return append([]byte(nil), v...), nil
}

func (b *MemoryBackend) Write(_ context.Context, key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.FailWrites != nil {
		return b.FailWrites
	}
	b.values[key] = append([]byte(nil), value...)
	return nil
}

func (b *MemoryBackend) Remove(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.FailWrites != nil {
		return b.FailWrites
	}
	delete(b.values, key)
	return nil
}
