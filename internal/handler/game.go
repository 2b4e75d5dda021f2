package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/gamevault/internal/repository"
	"github.com/sakif/gamevault/internal/service"
)

// GameHandler serves the cached game catalog.
type GameHandler struct {
	games *service.GameService
}

// NewGameHandler creates a GameHandler.
func NewGameHandler(games *service.GameService) *GameHandler {
	return &GameHandler{games: games}
}

// HandleList returns one page of the catalog.
//
// HTTP: GET /games?page=N
func (h *GameHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 0)

	games, err := h.games.List(r.Context(), page)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", games)
}

// HandleSearch filters the catalog by genre, platform, and title keyword.
//
// HTTP: GET /games/search?genre=&platform=&keyword=
func (h *GameHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	filter := repository.GameFilter{
		Genre:    r.URL.Query().Get("genre"),
		Platform: r.URL.Query().Get("platform"),
		Keyword:  r.URL.Query().Get("keyword"),
	}

	games, err := h.games.Search(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", games)
}

// HandleDetail returns one game with the users who favorited it. The ID
// may be the internal one or the upstream catalog ID.
//
// HTTP: GET /games/{id}
func (h *GameHandler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.games.GetDetail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", detail)
}

// HandleRefreshCache pulls the upstream catalog into the cache.
//
// HTTP: POST /games/refresh-cache
func (h *GameHandler) HandleRefreshCache(w http.ResponseWriter, r *http.Request) {
	inserted, err := h.games.RefreshCache(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, fmt.Sprintf("cached %d new games", inserted), map[string]int{
		"inserted": inserted,
	})
}

// HandleClearCache deletes every cached game.
//
// HTTP: DELETE /games/clear-cache
func (h *GameHandler) HandleClearCache(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.games.ClearCache(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, fmt.Sprintf("removed %d games", deleted), map[string]int64{
		"deleted": deleted,
	})
}

// queryInt parses an integer query parameter, falling back to def when
// the parameter is absent or malformed.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
