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

// GameDB implements repository.GameRepository on the shared pool.
type GameDB struct {
	conn *sql.DB
}

var _ repository.GameRepository = (*GameDB)(nil)

const gameColumns = `id, api_id, title, genre, platform, publisher, thumbnail, created_at, updated_at`

// List returns a page of the catalog ordered by id ascending — a stable
// ordering so the same page request always returns the same rows.
func (db *GameDB) List(ctx context.Context, opts repository.ListOptions) ([]model.Game, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+gameColumns+` FROM games ORDER BY id ASC LIMIT ? OFFSET ?`,
		opts.Limit, opts.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing games: %w", err)
	}
	defer rows.Close()

	return scanGames(rows)
}

// GetByID looks a game up by primary id, falling back to the external
// catalog id. Clients that only know the upstream numeric ID can use it
// directly in the URL.
func (db *GameDB) GetByID(ctx context.Context, id string) (*model.Game, error) {
	var (
		g     model.Game
		apiID sql.NullInt64
	)

	err := db.conn.QueryRowContext(ctx,
		`SELECT `+gameColumns+` FROM games WHERE id = ? OR api_id = ?`,
		id, id,
	).Scan(
		&g.ID, &apiID, &g.Title, &g.Genre, &g.Platform,
		&g.Publisher, &g.Thumbnail, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("game", id)
		}
		return nil, fmt.Errorf("sqlite: getting game %s: %w", id, err)
	}

	g.ApiID = apiID.Int64
	return &g, nil
}

// Search filters the catalog. Provided filters combine with AND; each is
// matched case-insensitively as a substring. SQLite's LIKE is already
// case-insensitive for ASCII, which covers the catalog's genre/platform
// vocabulary.
func (db *GameDB) Search(ctx context.Context, filter repository.GameFilter, limit int) ([]model.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE 1=1`
	var args []any

	if filter.Genre != "" {
		query += ` AND genre LIKE ?`
		args = append(args, "%"+filter.Genre+"%")
	}
	if filter.Platform != "" {
		query += ` AND platform LIKE ?`
		args = append(args, "%"+filter.Platform+"%")
	}
	if filter.Keyword != "" {
		query += ` AND title LIKE ?`
		args = append(args, "%"+filter.Keyword+"%")
	}

	query += ` ORDER BY id ASC LIMIT ?`
	args = append(args, limit)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: searching games: %w", err)
	}
	defer rows.Close()

	return scanGames(rows)
}

// InsertNew inserts the games whose api_id is not already cached and
// returns how many were inserted. INSERT OR IGNORE leans on the api_id
// UNIQUE constraint so a refresh is idempotent.
func (db *GameDB) InsertNew(ctx context.Context, games []model.Game) (int, error) {
	inserted := 0
	now := time.Now()

	for i := range games {
		g := &games[i]
		g.ID = xid.New().String()
		g.CreatedAt = now
		g.UpdatedAt = now

		res, err := db.conn.ExecContext(ctx,
			`INSERT OR IGNORE INTO games (id, api_id, title, genre, platform, publisher, thumbnail, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			g.ID,
			nullIfZero(g.ApiID),
			g.Title, g.Genre, g.Platform, g.Publisher, g.Thumbnail,
			g.CreatedAt, g.UpdatedAt,
		)
		if err != nil {
			return inserted, fmt.Errorf("sqlite: inserting game %q: %w", g.Title, err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return inserted, fmt.Errorf("sqlite: rows affected for game %q: %w", g.Title, err)
		}
		inserted += int(n)
	}

	return inserted, nil
}

// DeleteAll purges the catalog and returns the number of rows deleted.
// Favorites referencing the purged games go with them (ON DELETE CASCADE).
func (db *GameDB) DeleteAll(ctx context.Context) (int64, error) {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM games`)
	if err != nil {
		return 0, fmt.Errorf("sqlite: clearing games: %w", err)
	}

	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting cleared games: %w", err)
	}
	return count, nil
}

func scanGames(rows *sql.Rows) ([]model.Game, error) {
	games := []model.Game{}
	for rows.Next() {
		var (
			g     model.Game
			apiID sql.NullInt64
		)
		if err := rows.Scan(
			&g.ID, &apiID, &g.Title, &g.Genre, &g.Platform,
			&g.Publisher, &g.Thumbnail, &g.CreatedAt, &g.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning game row: %w", err)
		}
		g.ApiID = apiID.Int64
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating game rows: %w", err)
	}
	return games, nil
}

func nullIfZero(n int64) any {
	if n == 0 {
		return nil
	}
	return n
}
