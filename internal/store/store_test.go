package store

import (
	"testing"

	"github.com/jrfournier/carttally/internal/database"
)

// setupTestDB opens a fresh in-memory database with migrations and seed data
// applied.
func setupTestDB(t *testing.T) (*ListStore, *ItemStore, *CategoryStore, *SettingsStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewListStore(db), NewItemStore(db), NewCategoryStore(db), NewSettingsStore(db)
}
