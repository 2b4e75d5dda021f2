package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sakif/gamevault/internal/apperror"
	"github.com/sakif/gamevault/internal/model"
	"github.com/sakif/gamevault/internal/repository"
)

// In-memory fakes for the repository interfaces. Each fake implements just
// enough behavior for the service tests: uniqueness checks, scoping, and
// ordering, without a real database.

type fakeUserRepo struct {
	users  map[string]*model.User // keyed by ID
	nextID int
	err    error // when set, every method fails with it
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	if f.err != nil {
		return f.err
	}
	for _, u := range f.users {
		if u.Email == user.Email {
			return apperror.Duplicate("email already registered")
		}
	}
	f.nextID++
	user.ID = "user-" + strconv.Itoa(f.nextID)
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperror.NotFound("user", email)
}

func (f *fakeUserRepo) UpsertByGoogleID(_ context.Context, user *model.User) error {
	if f.err != nil {
		return f.err
	}
	for _, u := range f.users {
		if u.GoogleID == user.GoogleID {
			u.Name = user.Name
			u.Email = user.Email
			user.ID = u.ID
			return nil
		}
	}
	f.nextID++
	user.ID = "user-" + strconv.Itoa(f.nextID)
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

type fakeGameRepo struct {
	games []model.Game
	err   error

	deleteAllCalls int
}

func (f *fakeGameRepo) List(_ context.Context, opts repository.ListOptions) ([]model.Game, error) {
	if f.err != nil {
		return nil, f.err
	}
	start := opts.Offset
	if start > len(f.games) {
		start = len(f.games)
	}
	end := start + opts.Limit
	if end > len(f.games) {
		end = len(f.games)
	}
	return append([]model.Game(nil), f.games[start:end]...), nil
}

func (f *fakeGameRepo) GetByID(_ context.Context, id string) (*model.Game, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, g := range f.games {
		if g.ID == id || (g.ApiID != 0 && strconv.FormatInt(g.ApiID, 10) == id) {
			clone := g
			return &clone, nil
		}
	}
	return nil, apperror.NotFound("game", id)
}

func (f *fakeGameRepo) Search(_ context.Context, filter repository.GameFilter, limit int) ([]model.Game, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Game
	for _, g := range f.games {
		if filter.Genre != "" && g.Genre != filter.Genre {
			continue
		}
		if filter.Platform != "" && g.Platform != filter.Platform {
			continue
		}
		out = append(out, g)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeGameRepo) InsertNew(_ context.Context, games []model.Game) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	inserted := 0
	for _, g := range games {
		exists := false
		for _, have := range f.games {
			if have.ApiID != 0 && have.ApiID == g.ApiID {
				exists = true
				break
			}
		}
		if exists {
			continue
		}
		g.ID = fmt.Sprintf("game-%d", len(f.games)+1)
		f.games = append(f.games, g)
		inserted++
	}
	return inserted, nil
}

func (f *fakeGameRepo) DeleteAll(_ context.Context) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.deleteAllCalls++
	n := int64(len(f.games))
	f.games = nil
	return n, nil
}

type fakeFavoriteRepo struct {
	favorites []model.Favorite
	err       error
}

func (f *fakeFavoriteRepo) ListByUser(_ context.Context, userID string) ([]model.FavoriteWithGame, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []model.FavoriteWithGame{}
	for _, fav := range f.favorites {
		if fav.UserID == userID {
			out = append(out, model.FavoriteWithGame{Favorite: fav})
		}
	}
	return out, nil
}

func (f *fakeFavoriteRepo) Get(_ context.Context, userID, gameID string) (*model.Favorite, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, fav := range f.favorites {
		if fav.UserID == userID && fav.GameID == gameID {
			clone := fav
			return &clone, nil
		}
	}
	return nil, apperror.NotFound("favorite", gameID)
}

func (f *fakeFavoriteRepo) Create(_ context.Context, fav *model.Favorite) error {
	if f.err != nil {
		return f.err
	}
	for _, have := range f.favorites {
		if have.UserID == fav.UserID && have.GameID == fav.GameID {
			return apperror.Duplicate("game is already in favorites")
		}
	}
	fav.ID = fmt.Sprintf("fav-%d", len(f.favorites)+1)
	f.favorites = append(f.favorites, *fav)
	return nil
}

func (f *fakeFavoriteRepo) Delete(_ context.Context, userID, gameID string) error {
	if f.err != nil {
		return f.err
	}
	for i, fav := range f.favorites {
		if fav.UserID == userID && fav.GameID == gameID {
			f.favorites = append(f.favorites[:i], f.favorites[i+1:]...)
			return nil
		}
	}
	return apperror.NotFound("favorite", gameID)
}

func (f *fakeFavoriteRepo) UsersForGame(_ context.Context, gameID string) ([]model.PublicUser, error) {
	if f.err != nil {
		return nil, f.err
	}
	users := []model.PublicUser{}
	for _, fav := range f.favorites {
		if fav.GameID == gameID {
			users = append(users, model.PublicUser{ID: fav.UserID})
		}
	}
	return users, nil
}

type fakeAIRequestRepo struct {
	requests []model.AIRequest
	err      error
}

func (f *fakeAIRequestRepo) Create(_ context.Context, req *model.AIRequest) error {
	if f.err != nil {
		return f.err
	}
	req.ID = fmt.Sprintf("req-%d", len(f.requests)+1)
	f.requests = append(f.requests, *req)
	return nil
}

func (f *fakeAIRequestRepo) GetByID(_ context.Context, id string) (*model.AIRequest, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, r := range f.requests {
		if r.ID == id {
			clone := r
			return &clone, nil
		}
	}
	return nil, apperror.NotFound("recommendation", id)
}

func (f *fakeAIRequestRepo) ListByUser(_ context.Context, userID string, opts repository.ListOptions) ([]model.AIRequest, error) {
	if f.err != nil {
		return nil, f.err
	}
	var mine []model.AIRequest
	for _, r := range f.requests {
		if r.UserID == userID {
			mine = append(mine, r)
		}
	}
	// Newest first, matching the real query's ORDER BY created_at DESC.
	for i, j := 0, len(mine)-1; i < j; i, j = i+1, j-1 {
		mine[i], mine[j] = mine[j], mine[i]
	}
	start := opts.Offset
	if start > len(mine) {
		start = len(mine)
	}
	end := start + opts.Limit
	if end > len(mine) {
		end = len(mine)
	}
	return mine[start:end], nil
}

func (f *fakeAIRequestRepo) CountByUser(_ context.Context, userID string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	count := 0
	for _, r := range f.requests {
		if r.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeAIRequestRepo) Delete(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	for i, r := range f.requests {
		if r.ID == id {
			f.requests = append(f.requests[:i], f.requests[i+1:]...)
			return nil
		}
	}
	return apperror.NotFound("recommendation", id)
}

// fakeCompleter implements Completer with a canned reply or error, and
// records the prompt it received.
type fakeCompleter struct {
	reply  string
	err    error
	prompt string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

// fakeCatalog implements CatalogSource.
type fakeCatalog struct {
	games []model.Game
	err   error
	calls int
}

func (f *fakeCatalog) Fetch(_ context.Context) ([]model.Game, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.games, nil
}
