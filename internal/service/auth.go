// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates, enforces rules, orchestrates
//	Repository (Data layer)  → reads/writes to the database
//
// Services accept primitives and context, never *http.Request, and return
// domain errors from internal/apperror, never HTTP status codes. The
// handler layer translates both directions. Every service takes its
// repository as an interface, so tests inject in-memory fakes.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/gamevault/internal/apperror"
	"github.com/sakif/gamevault/internal/auth"
	"github.com/sakif/gamevault/internal/model"
	"github.com/sakif/gamevault/internal/repository"
)

// AuthService handles registration, login, and the Google OAuth upsert.
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// AuthResult bundles the user record and the issued JWT so the handler can
// respond in one step.
type AuthResult struct {
	User  *model.User
	Token string
}

// Register creates an email/password account and issues a token.
//
// Failure modes, all 400-class: any missing field, password/confirmation
// mismatch, or an already-registered email. The email uniqueness check is
// the database constraint, not a pre-lookup — two concurrent registrations
// for the same address cannot both succeed.
func (s *AuthService) Register(ctx context.Context, name, email, password, passwordConfirm string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" || email == "" || password == "" || passwordConfirm == "" {
		return nil, apperror.ValidationFailed("", "name, email, password and passwordConfirm are required")
	}
	if password != passwordConfirm {
		return nil, apperror.ValidationFailed("passwordConfirm", "password and confirmation do not match")
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("service/auth: hashing password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Duplicate email surfaces here as apperror.ErrDuplicate
		return nil, fmt.Errorf("service/auth: creating user: %w", err)
	}

	s.logger.Info("user registered",
		slog.String("userID", user.ID),
		slog.String("email", user.Email),
	)

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token for user %s: %w", user.ID, err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

// Login authenticates an email/password pair.
//
// The three failure modes — unknown email, OAuth-only account (no stored
// hash), and wrong password — all return the SAME generic error. Returning
// anything more specific would let a caller probe which emails have
// accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperror.ValidationFailed("", "email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperror.InvalidCredentials()
	}

	// An OAuth-only account has no hash; bcrypt verification against ""
	// always fails, but short-circuit explicitly for clarity.
	if user.PasswordHash == "" {
		return nil, apperror.InvalidCredentials()
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return nil, apperror.InvalidCredentials()
	}

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token for user %s: %w", user.ID, err)
	}

	s.logger.Info("user logged in", slog.String("userID", user.ID))

	return &AuthResult{User: user, Token: token}, nil
}

// GoogleLogin handles the OAuth upsert: create the user on first login,
// sync name/email on subsequent ones, and always issue a fresh token.
// The operation is idempotent with respect to the Google subject ID.
func (s *AuthService) GoogleLogin(ctx context.Context, googleID, name, email string) (*AuthResult, error) {
	googleID = strings.TrimSpace(googleID)
	email = strings.TrimSpace(email)

	if googleID == "" || email == "" {
		return nil, apperror.ValidationFailed("", "googleId and email are required")
	}

	user := &model.User{
		Name:     strings.TrimSpace(name),
		Email:    email,
		GoogleID: googleID,
	}
	if err := s.users.UpsertByGoogleID(ctx, user); err != nil {
		return nil, fmt.Errorf("service/auth: upserting google user: %w", err)
	}

	s.logger.Info("user authenticated via Google", slog.String("userID", user.ID))

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token for user %s: %w", user.ID, err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

// GetProfile returns the user for the given authenticated ID.
// Returns ErrNotFound if the identity no longer resolves to a row (the
// account was deleted out-of-band after the token was issued).
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	if userID == "" {
		return nil, fmt.Errorf("service/auth: user ID must not be empty")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return user, nil
}
