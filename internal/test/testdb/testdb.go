// Package testdb provides an in-memory SQLite store with the full schema.
package testdb

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/malamapl09/donaciones-pola-allande/internal/infrastructure/database"
	"gorm.io/gorm"
)

// NewPool returns a migrated in-memory pool closed at test cleanup.
// A single connection keeps every query on the same in-memory database.
func NewPool(t testing.TB) *database.ConnectionPool {
	t.Helper()

	pool, err := database.OpenPool(sqlite.Open(":memory:"), 1, 1)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = pool.Close() })

	if err := database.Migrate(pool.DB, "auto"); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return pool
}

// New returns the gorm handle of a fresh migrated database
func New(t testing.TB) *gorm.DB {
	t.Helper()
	return NewPool(t).GetDB()
}
