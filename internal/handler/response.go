// Package handler contains the HTTP layer: request parsing, response
// writing, and the translation between domain errors and status codes.
package handler

// RESPONSE HELPERS:
// Every endpoint answers with the same envelope:
//
//	{"success": true,  "message": "...", "data": {...}, "pagination": {...}?}
//	{"success": false, "message": "..."}
//
// The frontend can always branch on `success` and show `message`, whatever
// the endpoint and whatever the status code. Helpers keep the handlers
// from repeating the encode/header boilerplate.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/gamevault/internal/apperror"
)

// Response is the envelope every endpoint writes.
type Response struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination mirrors the bookkeeping fields of paginated listings.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// writeJSON sends the envelope with the given status. Headers must be set
// before the first body write, hence the strict header/status/body order.
func writeJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		// Headers are already gone at this point; logging is all we can do.
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// writeSuccess sends a success envelope.
func writeSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, Response{Success: true, Message: message, Data: data})
}

// writePage sends a success envelope with pagination metadata attached.
func writePage(w http.ResponseWriter, message string, data interface{}, p Pagination) {
	writeJSON(w, http.StatusOK, Response{
		Success:    true,
		Message:    message,
		Data:       data,
		Pagination: &p,
	})
}

// writeError maps a domain error to an HTTP status and sends the failure
// envelope.
//
// This is the only place domain errors meet status codes. The service
// layer returns apperror sentinels; errors.Is walks the wrap chain to
// find them, errors.As extracts the human-readable message.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError

		switch {
		case errors.Is(err, apperror.ErrValidation), errors.Is(err, apperror.ErrDuplicate):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrInvalidCredentials),
			errors.Is(err, apperror.ErrMissingToken),
			errors.Is(err, apperror.ErrProviderKey):
			status = http.StatusUnauthorized
		case errors.Is(err, apperror.ErrForbidden), errors.Is(err, apperror.ErrInvalidToken):
			status = http.StatusForbidden
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		}

		writeJSON(w, status, Response{Success: false, Message: appErr.Message})
		return
	}

	// Unclassified error. Never leak the raw message — it may contain SQL
	// or file paths.
	writeJSON(w, http.StatusInternalServerError, Response{
		Success: false,
		Message: "an internal error occurred",
	})
}

// decodeBody parses a JSON request body into dst, turning malformed input
// into a validation error instead of a 500.
func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.ValidationFailed("", "request body must be valid JSON")
	}
	return nil
}
