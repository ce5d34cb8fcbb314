package testutil

import (
	"database/sql"
	"testing"

	"github.com/iremince/garden-project/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens a migrated in-memory SQLite database that is closed with
// the test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err, "opening in-memory garden db")
	t.Cleanup(func() { _ = database.Close() })
	return database
}

// NewTestUoW opens a fresh test database and wraps it in a unit of work.
func NewTestUoW(t *testing.T) *db.SQLiteUnitOfWork {
	t.Helper()
	return db.NewSQLiteUnitOfWork(NewTestDB(t))
}
