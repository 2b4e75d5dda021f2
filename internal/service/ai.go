package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sakif/gamevault/internal/apperror"
	"github.com/sakif/gamevault/internal/model"
	"github.com/sakif/gamevault/internal/repository"
)

// completionTimeout bounds a single provider call. Generation is the one
// genuinely slow operation in the system; without a deadline a hung
// provider would pin the request goroutine indefinitely.
const completionTimeout = 30 * time.Second

// defaultHistoryLimit is the history page length when the caller does not
// specify one.
const defaultHistoryLimit = 50

// Completer generates a free-text response for a prompt. internal/ai
// provides the Gemini-backed implementation; tests supply a fake. A
// provider that rejects its credentials must return
// apperror.ErrProviderKey so the handler can map it to 401.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// AIService produces game recommendations and manages each user's
// request history.
type AIService struct {
	requests  repository.AIRequestRepository
	completer Completer
	logger    *slog.Logger
}

// NewAIService creates an AIService. completer may be nil when no
// provider is configured; Recommend then fails with a config error while
// history reads keep working.
func NewAIService(
	requests repository.AIRequestRepository,
	completer Completer,
	logger *slog.Logger,
) *AIService {
	return &AIService{
		requests:  requests,
		completer: completer,
		logger:    logger,
	}
}

// HistoryPage is one page of a user's recommendation history together
// with the pagination bookkeeping the handler echoes back.
type HistoryPage struct {
	Requests   []model.AIRequest
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

// Recommend sends the prompt to the provider and persists the exchange.
//
// The record is only written after a successful generation, so a failed
// provider call leaves no trace in the history.
func (s *AIService) Recommend(ctx context.Context, userID, prompt string) (*model.AIRequest, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, apperror.ValidationFailed("prompt", "prompt is required")
	}
	if s.completer == nil {
		return nil, apperror.Config("no AI provider is configured")
	}

	callCtx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	started := time.Now()
	response, err := s.completer.Complete(callCtx, prompt)
	if err != nil {
		return nil, fmt.Errorf("service/ai: generating recommendation: %w", err)
	}

	s.logger.Info("recommendation generated",
		slog.String("userID", userID),
		slog.Duration("took", time.Since(started)),
	)

	req := &model.AIRequest{
		UserID:   userID,
		Prompt:   prompt,
		Response: response,
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("service/ai: saving recommendation: %w", err)
	}

	return req, nil
}

// History returns one page of the user's past recommendations, newest
// first. page defaults to 0, limit to defaultHistoryLimit; out-of-range
// values are clamped rather than rejected.
func (s *AIService) History(ctx context.Context, userID string, page, limit int) (*HistoryPage, error) {
	if page < 0 {
		page = 0
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	requests, err := s.requests.ListByUser(ctx, userID, repository.ListOptions{
		Limit:  limit,
		Offset: page * limit,
	})
	if err != nil {
		return nil, fmt.Errorf("service/ai: listing history for user %s: %w", userID, err)
	}

	total, err := s.requests.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/ai: counting history for user %s: %w", userID, err)
	}

	return &HistoryPage{
		Requests:   requests,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}

// Delete removes one history entry. A missing entry is 404; an entry
// owned by another user is 403, not 404 — the distinction tells the
// caller the ID was valid but not theirs.
func (s *AIService) Delete(ctx context.Context, userID, requestID string) error {
	if requestID == "" {
		return apperror.ValidationFailed("id", "request ID is required")
	}

	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req.UserID != userID {
		return apperror.Forbidden("recommendation belongs to another user")
	}

	if err := s.requests.Delete(ctx, requestID); err != nil {
		return err
	}

	s.logger.Info("recommendation deleted",
		slog.String("userID", userID),
		slog.String("requestID", requestID),
	)

	return nil
}
