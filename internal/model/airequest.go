package model

import "time"

// AIRequest logs one recommendation call: the user's prompt and the
// provider's response text. Rows are owned by the requesting user — only
// the owner may delete them, and history listings are always scoped to the
// owner's ID.
type AIRequest struct {
	ID        string    `json:"id"        db:"id"`
	UserID    string    `json:"userId"    db:"user_id"`
	Prompt    string    `json:"prompt"    db:"prompt"`
	Response  string    `json:"response"  db:"response"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
