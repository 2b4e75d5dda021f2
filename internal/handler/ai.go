package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/gamevault/internal/apperror"
	"github.com/sakif/gamevault/internal/auth"
	"github.com/sakif/gamevault/internal/service"
)

// AIHandler serves game recommendations and the per-user request history.
type AIHandler struct {
	ai *service.AIService
}

// NewAIHandler creates an AIHandler.
func NewAIHandler(ai *service.AIService) *AIHandler {
	return &AIHandler{ai: ai}
}

type recommendRequest struct {
	Prompt string `json:"prompt"`
}

// HandleRecommend generates a recommendation and stores it in the
// caller's history.
//
// HTTP: POST /ai/recommend
func (h *AIHandler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apperror.MissingToken())
		return
	}

	var req recommendRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	rec, err := h.ai.Recommend(r.Context(), identity.UserID, req.Prompt)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "recommendation generated", rec)
}

// HandleHistory returns one page of the caller's past recommendations.
//
// HTTP: GET /ai/history?page=N&limit=M
func (h *AIHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apperror.MissingToken())
		return
	}

	page, err := h.ai.History(r.Context(), identity.UserID, queryInt(r, "page", 0), queryInt(r, "limit", 0))
	if err != nil {
		writeError(w, err)
		return
	}

	writePage(w, "", page.Requests, Pagination{
		Total:      page.Total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
	})
}

// HandleDelete removes one entry from the caller's history.
//
// HTTP: DELETE /ai/history/{id}
func (h *AIHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apperror.MissingToken())
		return
	}

	if err := h.ai.Delete(r.Context(), identity.UserID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "recommendation deleted", nil)
}
