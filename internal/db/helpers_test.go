// ABOUTME: Shared test helpers for backend database tests.
// ABOUTME: Provides an isolated database and a registered user per test.
package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := InitDB(filepath.Join(t.TempDir(), "backend.db"))
	if err != nil {
		t.Fatalf("failed to init test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// setupTestUser registers an unnamed user.
func setupTestUser(t *testing.T, db *sql.DB) *User {
	t.Helper()
	u, err := CreateUser(context.Background(), db, "")
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return u
}
