// Package dbtest opens migrated throwaway SQLite databases for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/skillswap/skillswap/internal/db"
)

// New returns a migrated SQLite database living in the test's temp dir.
// It is closed when the test finishes.
func New(t testing.TB) *sqlx.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "skillswap_test.db") + "?_pragma=foreign_keys(1)&_time_format=sqlite"
	database, err := db.Init("sqlite", dsn, db.Pool{MaxOpenConns: 4, MaxIdleConns: 4})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	err = db.RunMigrations(database.DB, "sqlite")
	if err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return database
}
