package testutil

import (
	"database/sql"
	"testing"

	"github.com/fieldserve/dispatch/internal/db"
)

// NewTestDB opens a fully migrated in-memory database that is torn down
// with the test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

// NewTestUoW wraps a test database in a real SQLite unit of work.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
