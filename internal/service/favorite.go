package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/gamevault/internal/apperror"
	"github.com/sakif/gamevault/internal/model"
	"github.com/sakif/gamevault/internal/repository"
)

// FavoriteService manages each user's personal list of favorited games.
type FavoriteService struct {
	favorites repository.FavoriteRepository
	games     repository.GameRepository
	logger    *slog.Logger
}

// NewFavoriteService creates a FavoriteService.
func NewFavoriteService(
	favorites repository.FavoriteRepository,
	games repository.GameRepository,
	logger *slog.Logger,
) *FavoriteService {
	return &FavoriteService{
		favorites: favorites,
		games:     games,
		logger:    logger,
	}
}

// List returns the user's favorites, newest first, each with a summary of
// the favorited game. A user with no favorites gets an empty slice.
func (s *FavoriteService) List(ctx context.Context, userID string) ([]model.FavoriteWithGame, error) {
	favs, err := s.favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/favorite: listing favorites for user %s: %w", userID, err)
	}

	return favs, nil
}

// Add favorites a game for the user.
//
// The game must exist in the cache (404 otherwise), and the pair must not
// already be favorited (400). The caller may pass either the internal ID
// or the upstream catalog ID; the stored row always references the
// internal ID, so adding by one and removing by the other works.
func (s *FavoriteService) Add(ctx context.Context, userID, gameID string) (*model.Favorite, error) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return nil, apperror.ValidationFailed("gameId", "gameId is required")
	}

	game, err := s.games.GetByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if _, err := s.favorites.Get(ctx, userID, game.ID); err == nil {
		return nil, apperror.Duplicate("game is already in favorites")
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("service/favorite: checking existing favorite: %w", err)
	}

	fav := &model.Favorite{UserID: userID, GameID: game.ID}
	if err := s.favorites.Create(ctx, fav); err != nil {
		return nil, fmt.Errorf("service/favorite: creating favorite: %w", err)
	}

	s.logger.Info("favorite added",
		slog.String("userID", userID),
		slog.String("gameID", game.ID),
	)

	return fav, nil
}

// Remove unfavorites a game for the user. The lookup is scoped to the
// caller, so a favorite belonging to someone else is indistinguishable
// from one that never existed.
func (s *FavoriteService) Remove(ctx context.Context, userID, gameID string) error {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return apperror.ValidationFailed("gameId", "gameId is required")
	}

	// Resolve the catalog ID form too; a game that does not exist cannot
	// have a favorite row, so the not-found falls through unchanged.
	game, err := s.games.GetByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.NotFound("favorite", gameID)
		}
		return err
	}

	if err := s.favorites.Delete(ctx, userID, game.ID); err != nil {
		return err
	}

	s.logger.Info("favorite removed",
		slog.String("userID", userID),
		slog.String("gameID", game.ID),
	)

	return nil
}
