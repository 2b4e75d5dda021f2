package model

import "time"

// Favorite is the join record expressing that a user marked a game as liked.
// The (UserID, GameID) pair is unique — enforced both by the service's
// duplicate check and by a UNIQUE constraint at the storage layer, so two
// concurrent adds for the same pair cannot both succeed.
type Favorite struct {
	ID        string    `json:"id"        db:"id"`
	UserID    string    `json:"userId"    db:"user_id"`
	GameID    string    `json:"gameId"    db:"game_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// FavoriteWithGame is a Favorite joined with a projected subset of the
// game's fields, as returned by GET /favorites.
type FavoriteWithGame struct {
	Favorite
	Game GameSummary `json:"game"`
}

// GameSummary is the projection of Game embedded in favorites listings.
type GameSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Genre     string `json:"genre"`
	Platform  string `json:"platform"`
	Publisher string `json:"publisher"`
	Thumbnail string `json:"thumbnail"`
}
