package sqlite

import (
	"context"
	"testing"

	"github.com/sakif/gamevault/internal/model"
)

// newTestDB returns a *DB backed by an in-memory SQLite database.
// Each test gets a fresh schema; the database vanishes when the test ends.
func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("New(:memory:) error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

// createTestUser inserts a password-auth user and fails the test on error.
func createTestUser(t *testing.T, db *DB, name, email string) *model.User {
	t.Helper()
	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: "$2a$04$fakehashfortests",
	}
	if err := db.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// createTestGame inserts a catalog entry and fails the test on error.
func createTestGame(t *testing.T, db *DB, title, genre, platform string) *model.Game {
	t.Helper()
	games := []model.Game{{
		Title:     title,
		Genre:     genre,
		Platform:  platform,
		Publisher: "Test Publisher",
		Thumbnail: "https://example.com/thumb.png",
	}}
	n, err := db.Games().InsertNew(context.Background(), games)
	if err != nil {
		t.Fatalf("failed to create test game: %v", err)
	}
	if n != 1 {
		t.Fatalf("InsertNew() inserted %d rows, want 1", n)
	}
	return &games[0]
}
