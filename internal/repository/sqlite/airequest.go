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

// AIRequestDB implements repository.AIRequestRepository on the shared pool.
type AIRequestDB struct {
	conn *sql.DB
}

var _ repository.AIRequestRepository = (*AIRequestDB)(nil)

// Create inserts a new AI request log row, generating its ID and timestamp.
func (db *AIRequestDB) Create(ctx context.Context, req *model.AIRequest) error {
	req.ID = xid.New().String()
	req.CreatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO ai_requests (id, user_id, prompt, response, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		req.ID, req.UserID, req.Prompt, req.Response, req.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting ai request for user %s: %w", req.UserID, err)
	}

	return nil
}

// GetByID returns the request regardless of owner — the service layer
// decides between 404 (unknown) and 403 (someone else's).
func (db *AIRequestDB) GetByID(ctx context.Context, id string) (*model.AIRequest, error) {
	var r model.AIRequest

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, prompt, response, created_at
		 FROM ai_requests WHERE id = ?`,
		id,
	).Scan(&r.ID, &r.UserID, &r.Prompt, &r.Response, &r.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("AI request", id)
		}
		return nil, fmt.Errorf("sqlite: getting ai request %s: %w", id, err)
	}

	return &r, nil
}

// ListByUser returns a page of the user's requests, newest first.
func (db *AIRequestDB) ListByUser(ctx context.Context, userID string, opts repository.ListOptions) ([]model.AIRequest, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, user_id, prompt, response, created_at
		 FROM ai_requests
		 WHERE user_id = ?
		 ORDER BY created_at DESC
		 LIMIT ? OFFSET ?`,
		userID, opts.Limit, opts.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing ai requests for user %s: %w", userID, err)
	}
	defer rows.Close()

	requests := []model.AIRequest{}
	for rows.Next() {
		var r model.AIRequest
		if err := rows.Scan(&r.ID, &r.UserID, &r.Prompt, &r.Response, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning ai request row: %w", err)
		}
		requests = append(requests, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating ai request rows: %w", err)
	}
	return requests, nil
}

// CountByUser returns how many requests the user has logged in total.
func (db *AIRequestDB) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM ai_requests WHERE user_id = ?`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting ai requests for user %s: %w", userID, err)
	}
	return count, nil
}

// Delete removes the row by ID. Ownership has already been checked by the
// service against GetByID.
func (db *AIRequestDB) Delete(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM ai_requests WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting ai request %s: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: rows affected deleting ai request: %w", err)
	}
	if n == 0 {
		return apperror.NotFound("AI request", id)
	}

	return nil
}
