package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(upstream *httptest.Server) *Client {
	return &Client{http: upstream.Client(), baseURL: upstream.URL}
}

func TestClient_Fetch(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/games" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": 452, "title": "Call of War", "thumbnail": "https://cdn.example/452.jpg",
			 "genre": "Strategy", "platform": "PC (Windows), Web Browser", "publisher": "Bytro Labs"},
			{"id": 540, "title": "Overwatch 2", "thumbnail": "https://cdn.example/540.jpg",
			 "genre": "Shooter", "platform": "PC (Windows)", "publisher": "Activision Blizzard"}
		]`))
	}))
	defer upstream.Close()

	games, err := newTestClient(upstream).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if len(games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(games))
	}
	g := games[0]
	if g.ApiID != 452 || g.Title != "Call of War" || g.Genre != "Strategy" || g.Publisher != "Bytro Labs" {
		t.Errorf("unexpected mapping: %+v", g)
	}
	if g.ID != "" {
		t.Error("upstream games must not carry a local ID")
	}
}

func TestClient_Fetch_UpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down for maintenance", http.StatusBadGateway)
	}))
	defer upstream.Close()

	if _, err := newTestClient(upstream).Fetch(context.Background()); err == nil {
		t.Fatal("expected an error for a non-200 response")
	}
}

func TestClient_Fetch_MalformedBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "a list"}`))
	}))
	defer upstream.Close()

	if _, err := newTestClient(upstream).Fetch(context.Background()); err == nil {
		t.Fatal("expected an error for a malformed body")
	}
}
