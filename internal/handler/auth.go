package handler

import (
	"log/slog"
	"net/http"

	"github.com/rs/xid"

	"github.com/sakif/gamevault/internal/apperror"
	"github.com/sakif/gamevault/internal/auth"
	"github.com/sakif/gamevault/internal/model"
	"github.com/sakif/gamevault/internal/service"
)

// AuthHandler serves registration, login, the Google OAuth flows, and the
// profile endpoint.
//
// TWO GOOGLE FLOWS:
//   - POST /auth/google        → the SPA already ran the OAuth dance and
//     posts the resulting profile; we upsert and issue a token.
//   - GET /auth/google/login + /callback → full server-side flow for
//     clients without their own OAuth plumbing. Optional: google may be
//     nil when no client credentials are configured.
type AuthHandler struct {
	auth   *service.AuthService
	google *auth.GoogleProvider
	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler. google may be nil; the
// server-side OAuth routes are then not registered.
func NewAuthHandler(authSvc *service.AuthService, google *auth.GoogleProvider, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: authSvc, google: google, logger: logger}
}

type registerRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type googleLoginRequest struct {
	GoogleID string `json:"googleId"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// authPayload is the data object for every endpoint that issues a token.
type authPayload struct {
	User  model.PublicUser `json:"user"`
	Token string           `json:"token"`
}

// HandleRegister creates an account.
//
// HTTP: POST /auth/register
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.auth.Register(r.Context(), req.Name, req.Email, req.Password, req.PasswordConfirm)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "registration successful", authPayload{
		User:  result.User.Public(),
		Token: result.Token,
	})
}

// HandleLogin authenticates an email/password pair.
//
// HTTP: POST /auth/login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "login successful", authPayload{
		User:  result.User.Public(),
		Token: result.Token,
	})
}

// HandleGoogleLogin upserts a user from an already-completed client-side
// Google sign-in.
//
// HTTP: POST /auth/google
func (h *AuthHandler) HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req googleLoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.auth.GoogleLogin(r.Context(), req.GoogleID, req.Name, req.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "login successful", authPayload{
		User:  result.User.Public(),
		Token: result.Token,
	})
}

// HandleGoogleRedirect starts the server-side OAuth flow.
//
// HTTP: GET /auth/google/login
//
// CSRF PROTECTION VIA STATE:
// A random state value goes both into the authorization URL and into a
// short-lived HttpOnly cookie; the callback rejects any response whose
// state does not match the cookie.
func (h *AuthHandler) HandleGoogleRedirect(w http.ResponseWriter, r *http.Request) {
	state := xid.New().String()

	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		MaxAge:   600, // 10 minutes
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.google.AuthURL(state), http.StatusTemporaryRedirect)
}

// HandleGoogleCallback completes the server-side OAuth flow: verify the
// state, exchange the code for a Google profile, upsert the user, and
// return the token in the usual envelope.
//
// HTTP: GET /auth/google/callback?code=xxx&state=yyy
func (h *AuthHandler) HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" || r.URL.Query().Get("state") != stateCookie.Value {
		h.logger.Warn("google callback: state mismatch or missing cookie")
		writeError(w, apperror.ValidationFailed("state", "invalid OAuth state"))
		return
	}

	// The state is single-use.
	http.SetCookie(w, &http.Cookie{Name: "oauth_state", Value: "", Path: "/", MaxAge: -1})

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.logger.Info("google callback: user denied authorization", slog.String("error", errParam))
		writeError(w, apperror.Forbidden("authorization was denied"))
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		writeError(w, apperror.ValidationFailed("code", "missing OAuth code"))
		return
	}

	profile, err := h.google.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Error("google callback: exchange failed", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	result, err := h.auth.GoogleLogin(r.Context(), profile.Sub, profile.Name, profile.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "login successful", authPayload{
		User:  result.User.Public(),
		Token: result.Token,
	})
}

// HandleProfile returns the authenticated user's profile.
//
// HTTP: GET /auth/profile
func (h *AuthHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apperror.MissingToken())
		return
	}

	user, err := h.auth.GetProfile(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", user.Public())
}

// HandleLogout acknowledges a logout. Tokens are stateless, so there is
// nothing to revoke server-side; the client discards its copy.
//
// HTTP: POST /auth/logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, "logged out", nil)
}
