// Package catalog fetches the game list from the FreeToGame API, the
// upstream source the local cache is seeded from.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sakif/gamevault/internal/model"
)

const defaultBaseURL = "https://www.freetogameapi.com/api"

// Client is an HTTP client for the FreeToGame API. It implements
// service.CatalogSource.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient creates a Client with a sane request timeout. The API serves
// the full catalog in one response, so no pagination is needed.
func NewClient() *Client {
	return &Client{
		http:    &http.Client{Timeout: 15 * time.Second},
		baseURL: defaultBaseURL,
	}
}

// upstreamGame mirrors the fields of the FreeToGame response we keep.
type upstreamGame struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
	Genre     string `json:"genre"`
	Platform  string `json:"platform"`
	Publisher string `json:"publisher"`
}

// Fetch downloads the full upstream catalog and converts it to the local
// game model. The upstream ID is preserved as ApiID so repeated fetches
// can be deduplicated against the cache.
func (c *Client) Fetch(ctx context.Context) ([]model.Game, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/games", nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: fetching games: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog: upstream returned status %d", resp.StatusCode)
	}

	var upstream []upstreamGame
	if err := json.NewDecoder(resp.Body).Decode(&upstream); err != nil {
		return nil, fmt.Errorf("catalog: decoding response: %w", err)
	}

	games := make([]model.Game, 0, len(upstream))
	for _, g := range upstream {
		games = append(games, model.Game{
			ApiID:     g.ID,
			Title:     g.Title,
			Genre:     g.Genre,
			Platform:  g.Platform,
			Publisher: g.Publisher,
			Thumbnail: g.Thumbnail,
		})
	}

	return games, nil
}
