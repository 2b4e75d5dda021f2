// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// A user authenticates through exactly one of two paths:
//   - email/password: PasswordHash is set, GoogleID is empty
//   - Google OAuth:   GoogleID is set, PasswordHash is empty
//
// WHY PasswordHash string (not *string)?
// An OAuth-only account simply has no hash. We use the empty string as the
// zero value rather than a nullable pointer — the login path treats "" the
// same as a wrong password, so OAuth-only accounts can never be logged into
// with a password. The column is still NULLable in SQLite; the repository
// maps NULL to "".
//
// PasswordHash carries `json:"-"` so it can never leak into a response,
// no matter which handler serializes the struct.
type User struct {
	ID           string    `json:"id"       db:"id"`
	Name         string    `json:"name"     db:"name"`
	Email        string    `json:"email"    db:"email"`      // unique
	PasswordHash string    `json:"-"        db:"password_hash"`
	GoogleID     string    `json:"-"        db:"google_id"`  // Google's stable subject ID (may be empty)
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// PublicUser is the projection of User returned inside auth responses and
// game-detail listings. It exists so the full User (with audit timestamps)
// never has to be trimmed ad hoc in handlers.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Public returns the response-safe projection of the user.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email}
}
