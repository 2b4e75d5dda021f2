package auth

import (
	"context"
	"net/http"
	"strings"
)

// contextKey is an unexported type used for context keys in this package.
//
// WHY A CUSTOM TYPE FOR CONTEXT KEYS?
// context.WithValue uses any as the key type. If you use a plain string
// like "identity", ANY package that knows the string can read or shadow
// your value. A package-private type prevents collisions: only this package
// can create a key of type contextKey, so only this package can attach
// identity values to the context.
type contextKey string

const identityKey contextKey = "identity"

// RequireAuth is a middleware that enforces authentication on protected
// routes.
//
// It reads the token from the "Authorization: Bearer <token>" header,
// validates it, and stores the decoded Claims in the request context.
// The two failure modes are deliberately distinct:
//   - no token present at all      → 401 Unauthorized
//   - token malformed/expired/bad  → 403 Forbidden
//
// There is no refresh flow and no revocation list; a token is valid until
// expiry by signature alone.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, "authentication token is required")
				return
			}

			claims, err := tokens.Validate(raw)
			if err != nil {
				writeAuthError(w, http.StatusForbidden, "token is invalid or expired")
				return
			}

			// Store the identity in context so handlers can read it
			ctx := context.WithValue(r.Context(), identityKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext retrieves the authenticated identity from the request
// context.
//
// Returns (Claims{}, false) if the request is anonymous. On routes behind
// RequireAuth it always returns (claims, true).
func IdentityFromContext(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(identityKey).(Claims)
	return claims, ok && claims.UserID != ""
}

// bearerToken extracts the token from the Authorization header.
// Returns ("", false) when the header is absent or carries no credential.
//
// A header that exists but isn't of the form "Bearer <token>" is treated as
// a present-but-malformed token, so it flows into the 403 path rather than
// the 401 one — the caller DID attempt to authenticate.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		// Present but unusable — validation will reject it.
		return header, true
	}

	return token, true
}

// writeAuthError emits the standard error envelope without importing the
// handler package (which would create an import cycle — handlers import
// auth for IdentityFromContext).
func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"success":false,"message":"` + message + `"}`))
}
