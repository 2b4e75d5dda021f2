// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// WHY SQLITE?
// SQLite is an embedded database — it lives inside the Go binary as a
// single file. No separate database server to install, configure, or
// manage. Use ":memory:" for tests.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo, which means you need a C compiler installed
// and cross-compilation becomes painful. modernc.org/sqlite is a pure Go
// translation of the SQLite C code — works everywhere Go works.
package sqlite

import (
	"database/sql"
	"fmt"

	// Side-effect import: registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and hands out the per-entity
// repositories. They all share the same pool and the same migration set.
type DB struct {
	conn *sql.DB
}

// Users returns the UserRepository backed by this pool.
func (db *DB) Users() *UserDB { return &UserDB{conn: db.conn} }

// Games returns the GameRepository backed by this pool.
func (db *DB) Games() *GameDB { return &GameDB{conn: db.conn} }

// Favorites returns the FavoriteRepository backed by this pool.
func (db *DB) Favorites() *FavoriteDB { return &FavoriteDB{conn: db.conn} }

// AIRequests returns the AIRequestRepository backed by this pool.
func (db *DB) AIRequests() *AIRequestDB { return &AIRequestDB{conn: db.conn} }

// New creates a new SQLite database connection and runs migrations.
//
// dbPath examples:
//   - "data/gamevault.db" → file-based database (persistent)
//   - ":memory:"          → in-memory database (tests, lost on close)
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Ping forces an immediate connection so a bad path or permissions
	// issue surfaces here rather than on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL mode allows concurrent reads while a write is happening —
	// default SQLite locks the whole database during writes.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are OFF by default in SQLite. The favorites and
	// ai_requests tables reference users/games, so turn them on.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps it
// idempotent, so it is safe to run on every startup.
func (db *DB) migrate() error {
	// Users authenticate via exactly one path: password_hash XOR google_id.
	// Both columns are nullable; the uniqueness of email and google_id is
	// enforced here rather than checked-then-inserted in application code.
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL DEFAULT '',
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT,
			google_id     TEXT UNIQUE,
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	// api_id is the upstream catalog's numeric ID. NULL for games without
	// an upstream source; UNIQUE otherwise so a cache refresh never
	// duplicates an already-imported game.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS games (
			id         TEXT PRIMARY KEY,
			api_id     INTEGER UNIQUE,
			title      TEXT NOT NULL,
			genre      TEXT NOT NULL DEFAULT '',
			platform   TEXT NOT NULL DEFAULT '',
			publisher  TEXT NOT NULL DEFAULT '',
			thumbnail  TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_games_genre ON games(genre);
		CREATE INDEX IF NOT EXISTS idx_games_platform ON games(platform);
	`)
	if err != nil {
		return fmt.Errorf("creating games table: %w", err)
	}

	// UNIQUE(user_id, game_id) is the backstop against the check-then-
	// insert race: two concurrent adds for the same pair cannot both
	// commit, regardless of what the service layer saw.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS favorites (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL REFERENCES users(id),
			game_id    TEXT NOT NULL REFERENCES games(id) ON DELETE CASCADE,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(user_id, game_id)
		);
		CREATE INDEX IF NOT EXISTS idx_favorites_user_id ON favorites(user_id);
		CREATE INDEX IF NOT EXISTS idx_favorites_game_id ON favorites(game_id);
	`)
	if err != nil {
		return fmt.Errorf("creating favorites table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS ai_requests (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL REFERENCES users(id),
			prompt     TEXT NOT NULL,
			response   TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_ai_requests_user_created
			ON ai_requests(user_id, created_at);
	`)
	if err != nil {
		return fmt.Errorf("creating ai_requests table: %w", err)
	}

	return nil
}
