package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/gamevault/internal/apperror"
	"github.com/sakif/gamevault/internal/model"
	"github.com/sakif/gamevault/internal/repository"
)

// FavoriteDB implements repository.FavoriteRepository on the shared pool.
type FavoriteDB struct {
	conn *sql.DB
}

var _ repository.FavoriteRepository = (*FavoriteDB)(nil)

// ListByUser returns the user's favorites, each joined with the projected
// game fields shown in listings.
func (db *FavoriteDB) ListByUser(ctx context.Context, userID string) ([]model.FavoriteWithGame, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT f.id, f.user_id, f.game_id, f.created_at,
		        g.id, g.title, g.genre, g.platform, g.publisher, g.thumbnail
		 FROM favorites f
		 JOIN games g ON g.id = f.game_id
		 WHERE f.user_id = ?
		 ORDER BY f.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing favorites for user %s: %w", userID, err)
	}
	defer rows.Close()

	favorites := []model.FavoriteWithGame{}
	for rows.Next() {
		var f model.FavoriteWithGame
		if err := rows.Scan(
			&f.ID, &f.UserID, &f.GameID, &f.CreatedAt,
			&f.Game.ID, &f.Game.Title, &f.Game.Genre,
			&f.Game.Platform, &f.Game.Publisher, &f.Game.Thumbnail,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning favorite row: %w", err)
		}
		favorites = append(favorites, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating favorite rows: %w", err)
	}
	return favorites, nil
}

// Get returns the favorite for (userID, gameID), or ErrNotFound.
// The lookup is always scoped to userID — another user's favorite for the
// same game is invisible here, which is how ownership is enforced.
func (db *FavoriteDB) Get(ctx context.Context, userID, gameID string) (*model.Favorite, error) {
	var f model.Favorite

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, game_id, created_at
		 FROM favorites WHERE user_id = ? AND game_id = ?`,
		userID, gameID,
	).Scan(&f.ID, &f.UserID, &f.GameID, &f.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("favorite", gameID)
		}
		return nil, fmt.Errorf("sqlite: getting favorite (user=%s, game=%s): %w", userID, gameID, err)
	}

	return &f, nil
}

// Create inserts the join row. If a concurrent request won the race past
// the service's duplicate check, the UNIQUE(user_id, game_id) constraint
// fires here and is reported as a duplicate, not a 500.
func (db *FavoriteDB) Create(ctx context.Context, favorite *model.Favorite) error {
	favorite.ID = xid.New().String()
	favorite.CreatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO favorites (id, user_id, game_id, created_at)
		 VALUES (?, ?, ?, ?)`,
		favorite.ID, favorite.UserID, favorite.GameID, favorite.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Duplicate("game is already in favorites")
		}
		return fmt.Errorf("sqlite: inserting favorite (user=%s, game=%s): %w",
			favorite.UserID, favorite.GameID, err)
	}

	return nil
}

// Delete removes the favorite for (userID, gameID).
// Returns ErrNotFound when the user has no such favorite — including when
// the game is favorited only by somebody else.
func (db *FavoriteDB) Delete(ctx context.Context, userID, gameID string) error {
	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = ? AND game_id = ?`,
		userID, gameID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting favorite (user=%s, game=%s): %w", userID, gameID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: rows affected deleting favorite: %w", err)
	}
	if n == 0 {
		return apperror.NotFound("favorite", gameID)
	}

	return nil
}

// UsersForGame returns the users who favorited the given game. Only the
// public projection is selected — password hashes never leave the
// database on this path.
func (db *FavoriteDB) UsersForGame(ctx context.Context, gameID string) ([]model.PublicUser, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT u.id, u.name, u.email
		 FROM favorites f
		 JOIN users u ON u.id = f.user_id
		 WHERE f.game_id = ?
		 ORDER BY f.created_at ASC`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing users for game %s: %w", gameID, err)
	}
	defer rows.Close()

	users := []model.PublicUser{}
	for rows.Next() {
		var u model.PublicUser
		if err := rows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
			return nil, fmt.Errorf("sqlite: scanning user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating user rows: %w", err)
	}
	return users, nil
}
