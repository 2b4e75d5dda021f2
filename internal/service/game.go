package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/gamevault/internal/apperror"
	"github.com/sakif/gamevault/internal/model"
	"github.com/sakif/gamevault/internal/repository"
)

// pageSize is the fixed page length for catalog listing and search.
const pageSize = 50

// CatalogSource fetches the full game list from the upstream catalog API.
// internal/catalog provides the production implementation; tests supply a
// stub.
type CatalogSource interface {
	Fetch(ctx context.Context) ([]model.Game, error)
}

// GameService serves the cached game catalog: listing, lookup, search,
// and cache maintenance.
type GameService struct {
	games     repository.GameRepository
	favorites repository.FavoriteRepository
	catalog   CatalogSource
	logger    *slog.Logger
}

// NewGameService creates a GameService. catalog may be nil when no
// upstream source is configured; RefreshCache then fails with a config
// error while the read paths keep working.
func NewGameService(
	games repository.GameRepository,
	favorites repository.FavoriteRepository,
	catalog CatalogSource,
	logger *slog.Logger,
) *GameService {
	return &GameService{
		games:     games,
		favorites: favorites,
		catalog:   catalog,
		logger:    logger,
	}
}

// List returns one page of the catalog ordered by insertion. Pages are
// zero-based; negative pages are treated as the first page. An empty
// cache yields an empty slice, never an error.
func (s *GameService) List(ctx context.Context, page int) ([]model.Game, error) {
	if page < 0 {
		page = 0
	}

	games, err := s.games.List(ctx, repository.ListOptions{
		Limit:  pageSize,
		Offset: page * pageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("service/game: listing games: %w", err)
	}

	return games, nil
}

// GetDetail looks up one game by its internal ID or its upstream catalog
// ID and attaches the public profiles of every user who favorited it.
func (s *GameService) GetDetail(ctx context.Context, id string) (*model.GameDetail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "game ID is required")
	}

	game, err := s.games.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	users, err := s.favorites.UsersForGame(ctx, game.ID)
	if err != nil {
		return nil, fmt.Errorf("service/game: loading favoriters for game %s: %w", game.ID, err)
	}

	return &model.GameDetail{Game: *game, FavoritedBy: users}, nil
}

// Search filters the cached catalog. All supplied criteria must match
// (AND semantics); matching is case-insensitive and partial. With no
// criteria at all it degenerates to a bounded listing.
func (s *GameService) Search(ctx context.Context, filter repository.GameFilter) ([]model.Game, error) {
	games, err := s.games.Search(ctx, filter, pageSize)
	if err != nil {
		return nil, fmt.Errorf("service/game: searching games: %w", err)
	}

	return games, nil
}

// RefreshCache pulls the upstream catalog and inserts every game not yet
// cached. Already-cached games are left untouched, so repeated refreshes
// are idempotent. Returns the number of newly inserted rows.
func (s *GameService) RefreshCache(ctx context.Context) (int, error) {
	if s.catalog == nil {
		return 0, apperror.Config("no game catalog source is configured")
	}

	games, err := s.catalog.Fetch(ctx)
	if err != nil {
		return 0, fmt.Errorf("service/game: fetching upstream catalog: %w", err)
	}

	inserted, err := s.games.InsertNew(ctx, games)
	if err != nil {
		return 0, fmt.Errorf("service/game: caching games: %w", err)
	}

	s.logger.Info("game cache refreshed",
		slog.Int("fetched", len(games)),
		slog.Int("inserted", inserted),
	)

	return inserted, nil
}

// ClearCache deletes every cached game. Favorites referencing the deleted
// rows are removed by the schema's cascade. Returns the number of games
// removed; clearing an empty cache succeeds with zero.
func (s *GameService) ClearCache(ctx context.Context) (int64, error) {
	deleted, err := s.games.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("service/game: clearing cache: %w", err)
	}

	s.logger.Info("game cache cleared", slog.Int64("deleted", deleted))

	return deleted, nil
}
