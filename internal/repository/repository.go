package repository

import (
	"context"

	"github.com/sakif/gamevault/internal/model"
)

type ListOptions struct {
	Limit  int
	Offset int
}

// GameFilter holds the optional search filters. Empty fields are ignored;
// provided fields are combined with AND semantics.
type GameFilter struct {
	Genre    string
	Platform string
	Keyword  string
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// UpsertByGoogleID creates the user on first OAuth login and syncs
	// name/email on subsequent logins. The caller's struct is updated with
	// the canonical row.
	UpsertByGoogleID(ctx context.Context, user *model.User) error
}

type GameRepository interface {
	// List returns a page of the catalog ordered by id ascending.
	List(ctx context.Context, opts ListOptions) ([]model.Game, error)
	// GetByID looks up a game by primary id, falling back to the external
	// catalog id.
	GetByID(ctx context.Context, id string) (*model.Game, error)
	Search(ctx context.Context, filter GameFilter, limit int) ([]model.Game, error)
	// InsertNew inserts the games whose api_id is not already cached and
	// returns how many were inserted.
	InsertNew(ctx context.Context, games []model.Game) (int, error)
	// DeleteAll purges the catalog and returns the number of rows deleted.
	DeleteAll(ctx context.Context) (int64, error)
}

type FavoriteRepository interface {
	ListByUser(ctx context.Context, userID string) ([]model.FavoriteWithGame, error)
	Get(ctx context.Context, userID, gameID string) (*model.Favorite, error)
	Create(ctx context.Context, favorite *model.Favorite) error
	// Delete removes the favorite for (userID, gameID). The lookup is
	// scoped to userID, so a caller can never touch another user's row.
	Delete(ctx context.Context, userID, gameID string) error
	// UsersForGame returns the users who favorited the given game,
	// projected without credential fields.
	UsersForGame(ctx context.Context, gameID string) ([]model.PublicUser, error)
}

type AIRequestRepository interface {
	Create(ctx context.Context, req *model.AIRequest) error
	GetByID(ctx context.Context, id string) (*model.AIRequest, error)
	// ListByUser returns the user's requests newest-first.
	ListByUser(ctx context.Context, userID string, opts ListOptions) ([]model.AIRequest, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	Delete(ctx context.Context, id string) error
}
