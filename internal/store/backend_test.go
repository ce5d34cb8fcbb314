package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/iremince/garden-project/internal/domain"
	"github.com/iremince/garden-project/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Backend {
	t.Helper()
	return map[string]Backend{
		"sqlite": NewSQLiteBackend(testutil.NewTestUoW(t)),
		"file":   NewFileBackend(filepath.Join(t.TempDir(), "garden")),
		"memory": NewMemoryBackend(),
	}
}

func TestBackends_Contract(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := b.Read(ctx, DefaultKey)
			assert.ErrorIs(t, err, ErrNotStored)

			require.NoError(t, b.Write(ctx, DefaultKey, []byte("first")))
			require.NoError(t, b.Write(ctx, DefaultKey, []byte("second")))
			got, err := b.Read(ctx, DefaultKey)
			require.NoError(t, err)
			assert.Equal(t, "second", string(got))

			require.NoError(t, b.Remove(ctx, DefaultKey))
			_, err = b.Read(ctx, DefaultKey)
			assert.ErrorIs(t, err, ErrNotStored)
			assert.NoError(t, b.Remove(ctx, DefaultKey), "removing twice is fine")
		})
	}
}

func TestSQLiteBackend_FailedSaveKeepsPreviousValue(t *testing.T) {
	database := testutil.NewTestDB(t)
	quota := errors.New("database or disk is full")
	// First Exec succeeds (initial save), the second one fails.
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: quota}
	s := New(NewSQLiteBackend(uow))
	ctx := context.Background()

	first := domain.SessionLog{testutil.NewTestSession(30)}
	require.NoError(t, s.Save(ctx, first))

	second := append(first, testutil.NewTestSession(45))
	err := s.Save(ctx, second)
	require.ErrorIs(t, err, domain.ErrPersistenceFailure)
	assert.ErrorIs(t, err, quota)

	loaded := s.Load(ctx)
	require.Len(t, loaded, 1, "the failed write rolled back")
	assert.Equal(t, first[0].ID, loaded[0].ID)
}

func TestFileBackend_RejectsPathKeys(t *testing.T) {
	b := NewFileBackend(t.TempDir())
	ctx := context.Background()
	for _, key := range []string{"", "../escape", `a\b`, ".."} {
		assert.Error(t, b.Write(ctx, key, []byte("x")), "key %q", key)
	}
}

func TestFileBackend_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	b := NewFileBackend(dir)
	require.NoError(t, b.Write(context.Background(), "garden", []byte("{}")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "garden.json", entries[0].Name())
}
