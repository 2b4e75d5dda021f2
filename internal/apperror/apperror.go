package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation error")
	ErrDuplicate          = errors.New("duplicate")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingToken       = errors.New("missing token")
	ErrInvalidToken       = errors.New("invalid token")
	ErrProviderKey        = errors.New("invalid provider key")
	ErrConfig             = errors.New("configuration error")
)

type AppError struct {
	Err     error  // sentinel identifying the error kind
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Duplicate(message string) *AppError {
	return &AppError{
		Err:     ErrDuplicate,
		Message: message,
	}
}

// Forbidden returns an AppError indicating the caller lacks permission.
// HTTP handlers map this to 403 Forbidden.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}

// InvalidCredentials returns the single generic login failure.
//
// The message is deliberately identical for every failure mode (unknown
// email, OAuth-only account, wrong password) so a caller cannot probe which
// accounts exist.
func InvalidCredentials() *AppError {
	return &AppError{
		Err:     ErrInvalidCredentials,
		Message: "invalid email or password",
	}
}

// MissingToken is returned when a protected route receives no bearer token.
// Maps to 401 Unauthorized.
func MissingToken() *AppError {
	return &AppError{
		Err:     ErrMissingToken,
		Message: "authentication token is required",
	}
}

// InvalidToken is returned when a bearer token is malformed, expired, or
// fails signature verification. Maps to 403 Forbidden.
func InvalidToken() *AppError {
	return &AppError{
		Err:     ErrInvalidToken,
		Message: "token is invalid or expired",
	}
}

// InvalidProviderKey is returned when the AI provider rejects our
// credential. Maps to 401 so the operator can tell a bad server-side key
// apart from an ordinary provider outage.
func InvalidProviderKey() *AppError {
	return &AppError{
		Err:     ErrProviderKey,
		Message: "AI provider rejected the configured API key",
	}
}

// Config returns an AppError for a missing or unusable server-side setting.
func Config(message string) *AppError {
	return &AppError{
		Err:     ErrConfig,
		Message: message,
	}
}
