package model

import "time"

// Game is a catalog entry cached locally from the external games API.
//
// Rows are immutable once imported — the only mutations are the bulk
// clear-cache and refresh-cache operations. ApiID is the upstream catalog's
// numeric ID; it is zero for games inserted without an upstream source and
// unique otherwise, so a refresh never duplicates an already-cached game.
type Game struct {
	ID        string    `json:"id"        db:"id"`
	ApiID     int64     `json:"apiId,omitempty" db:"api_id"` // upstream catalog ID (0 = none)
	Title     string    `json:"title"     db:"title"`
	Genre     string    `json:"genre"     db:"genre"`
	Platform  string    `json:"platform"  db:"platform"`
	Publisher string    `json:"publisher" db:"publisher"`
	Thumbnail string    `json:"thumbnail" db:"thumbnail"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// GameDetail is a Game joined with the users who favorited it.
// Returned by GET /games/{id}. FavoritedBy uses PublicUser so password
// hashes are excluded by construction.
type GameDetail struct {
	Game
	FavoritedBy []PublicUser `json:"favoritedBy"`
}
