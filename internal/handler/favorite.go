package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/gamevault/internal/apperror"
	"github.com/sakif/gamevault/internal/auth"
	"github.com/sakif/gamevault/internal/service"
)

// FavoriteHandler serves the authenticated user's favorites list. Every
// route lives behind RequireAuth; the user ID always comes from the
// token, never from the request.
type FavoriteHandler struct {
	favorites *service.FavoriteService
}

// NewFavoriteHandler creates a FavoriteHandler.
func NewFavoriteHandler(favorites *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

// HandleList returns the caller's favorites, newest first.
//
// HTTP: GET /favorites
func (h *FavoriteHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apperror.MissingToken())
		return
	}

	favorites, err := h.favorites.List(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", favorites)
}

// HandleAdd favorites a game for the caller.
//
// HTTP: POST /favorites/{gameId}
func (h *FavoriteHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apperror.MissingToken())
		return
	}

	fav, err := h.favorites.Add(r.Context(), identity.UserID, chi.URLParam(r, "gameId"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "game added to favorites", fav)
}

// HandleRemove unfavorites a game for the caller.
//
// HTTP: DELETE /favorites/{gameId}
func (h *FavoriteHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apperror.MissingToken())
		return
	}

	if err := h.favorites.Remove(r.Context(), identity.UserID, chi.URLParam(r, "gameId")); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "game removed from favorites", nil)
}
