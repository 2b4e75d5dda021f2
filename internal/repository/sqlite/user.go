package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/gamevault/internal/apperror"
	"github.com/sakif/gamevault/internal/model"
	"github.com/sakif/gamevault/internal/repository"
)

// UserDB implements repository.UserRepository on the shared pool.
type UserDB struct {
	conn *sql.DB
}

// compile-time check that *UserDB implements repository.UserRepository
var _ repository.UserRepository = (*UserDB)(nil)

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint
// failure. modernc.org/sqlite surfaces these as plain errors carrying the
// constraint name in the message, so string matching is the available
// signal.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Create inserts a new user. The ID and timestamps are generated here.
// A duplicate email maps to the duplicate error kind — the email UNIQUE
// constraint is the authoritative check, not the service's pre-lookup.
func (db *UserDB) Create(ctx context.Context, user *model.User) error {
	now := time.Now()
	user.ID = xid.New().String()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, google_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Name,
		user.Email,
		nullIfEmpty(user.PasswordHash),
		nullIfEmpty(user.GoogleID),
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Duplicate("email is already registered")
		}
		return fmt.Errorf("sqlite: inserting user (email=%s): %w", user.Email, err)
	}

	return nil
}

// GetByID retrieves a user by their internal ID.
// Returns apperror.ErrNotFound if no user exists with that ID.
func (db *UserDB) GetByID(ctx context.Context, id string) (*model.User, error) {
	return db.getUser(ctx, `WHERE id = ?`, id)
}

// GetByEmail retrieves a user by email.
// Returns apperror.ErrNotFound if no user is registered with it.
func (db *UserDB) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return db.getUser(ctx, `WHERE email = ?`, email)
}

// UpsertByGoogleID inserts or updates a user based on their Google ID.
//
// First OAuth login → INSERT with a new internal ID and no password.
// Subsequent logins → UPDATE name/email in case they changed on Google,
// keeping the existing internal ID.
func (db *UserDB) UpsertByGoogleID(ctx context.Context, user *model.User) error {
	var existingID string
	err := db.conn.QueryRowContext(ctx,
		`SELECT id FROM users WHERE google_id = ?`, user.GoogleID,
	).Scan(&existingID)

	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("sqlite: looking up user by google_id: %w", err)
	}

	if existingID != "" {
		user.ID = existingID
		user.UpdatedAt = time.Now()
		_, err = db.conn.ExecContext(ctx,
			`UPDATE users SET name = ?, email = ?, updated_at = ? WHERE id = ?`,
			user.Name,
			user.Email,
			user.UpdatedAt,
			user.ID,
		)
		if err != nil {
			return fmt.Errorf("sqlite: updating user %s: %w", user.ID, err)
		}
		return nil
	}

	return db.Create(ctx, user)
}

// getUser runs the shared SELECT with the given WHERE clause.
func (db *UserDB) getUser(ctx context.Context, where string, arg any) (*model.User, error) {
	var (
		u        model.User
		hash     sql.NullString
		googleID sql.NullString
	)

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, google_id, created_at, updated_at
		 FROM users `+where,
		arg,
	).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&hash,
		&googleID,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", fmt.Sprint(arg))
		}
		return nil, fmt.Errorf("sqlite: getting user: %w", err)
	}

	u.PasswordHash = hash.String
	u.GoogleID = googleID.String
	return &u, nil
}

// nullIfEmpty maps "" to NULL so that the UNIQUE constraint on google_id
// doesn't collide every password-only account with the next one.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
