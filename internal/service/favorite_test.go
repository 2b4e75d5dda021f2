package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/gamevault/internal/apperror"
	"github.com/sakif/gamevault/internal/model"
)

func newFavoriteService(games []model.Game) (*FavoriteService, *fakeFavoriteRepo) {
	favorites := &fakeFavoriteRepo{}
	svc := NewFavoriteService(favorites, &fakeGameRepo{games: games}, testLogger())
	return svc, favorites
}

func TestFavoriteService_AddAndList(t *testing.T) {
	svc, _ := newFavoriteService(seedGames(2))
	ctx := context.Background()

	fav, err := svc.Add(ctx, "user-1", "game-a")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if fav.ID == "" {
		t.Error("expected a generated favorite ID")
	}

	list, err := svc.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 1 || list[0].GameID != "game-a" {
		t.Errorf("unexpected list: %+v", list)
	}

	// Another user's list is unaffected.
	list, err = svc.List(ctx, "user-2")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected empty list for user-2, got %d", len(list))
	}
}

// Adding by the upstream catalog ID stores the internal ID, so the two
// forms refer to the same underlying favorite.
func TestFavoriteService_Add_ByApiID(t *testing.T) {
	svc, favorites := newFavoriteService(seedGames(1))
	ctx := context.Background()

	fav, err := svc.Add(ctx, "user-1", "100")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if fav.GameID != "game-a" {
		t.Errorf("expected stored internal ID game-a, got %q", fav.GameID)
	}

	if _, err := svc.Add(ctx, "user-1", "game-a"); !errors.Is(err, apperror.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
	if len(favorites.favorites) != 1 {
		t.Errorf("expected 1 stored favorite, got %d", len(favorites.favorites))
	}
}

func TestFavoriteService_Add_GameNotCached(t *testing.T) {
	svc, _ := newFavoriteService(nil)

	_, err := svc.Add(context.Background(), "user-1", "game-x")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFavoriteService_Add_Duplicate(t *testing.T) {
	svc, _ := newFavoriteService(seedGames(1))
	ctx := context.Background()

	if _, err := svc.Add(ctx, "user-1", "game-a"); err != nil {
		t.Fatalf("first Add failed: %v", err)
	}
	if _, err := svc.Add(ctx, "user-1", "game-a"); !errors.Is(err, apperror.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}

	// The same game is still addable by a different user.
	if _, err := svc.Add(ctx, "user-2", "game-a"); err != nil {
		t.Errorf("Add for second user failed: %v", err)
	}
}

func TestFavoriteService_Add_EmptyGameID(t *testing.T) {
	svc, _ := newFavoriteService(seedGames(1))

	_, err := svc.Add(context.Background(), "user-1", "")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestFavoriteService_RemoveThenReAdd(t *testing.T) {
	svc, _ := newFavoriteService(seedGames(1))
	ctx := context.Background()

	if _, err := svc.Add(ctx, "user-1", "game-a"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := svc.Remove(ctx, "user-1", "game-a"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := svc.Add(ctx, "user-1", "game-a"); err != nil {
		t.Errorf("re-Add after Remove failed: %v", err)
	}
}

func TestFavoriteService_Remove_NotFavorited(t *testing.T) {
	svc, _ := newFavoriteService(seedGames(1))

	err := svc.Remove(context.Background(), "user-1", "game-a")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// Removing someone else's favorite reads as not-found, and their row
// survives.
func TestFavoriteService_Remove_OtherUsers(t *testing.T) {
	svc, favorites := newFavoriteService(seedGames(1))
	ctx := context.Background()

	if _, err := svc.Add(ctx, "user-1", "game-a"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	err := svc.Remove(ctx, "user-2", "game-a")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if len(favorites.favorites) != 1 {
		t.Error("owner's favorite must survive another user's remove")
	}
}

func TestFavoriteService_Remove_UnknownGame(t *testing.T) {
	svc, _ := newFavoriteService(nil)

	err := svc.Remove(context.Background(), "user-1", "game-x")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
