package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iliyamo/movie-ticket-booking/internal/model"
	"github.com/iliyamo/movie-ticket-booking/internal/store"
)

type testEnv struct {
	ctx  context.Context
	dir  string
	repo *Repository
}

func newTestEnv(t testing.TB) *testEnv {
	t.Helper()
	dir := t.TempDir()
	st, err := store.NewFileStore(dir)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return &testEnv{ctx: context.Background(), dir: dir, repo: New(st, nil)}
}

func TestMovieRepoCRUD(t *testing.T) {
	env := newTestEnv(t)
	movies := env.repo.Movies

	list, err := movies.List(env.ctx)
	if err != nil || len(list) != 0 {
		t.Fatalf("empty catalog: %v %v", list, err)
	}
	if err := movies.Insert(env.ctx, model.Movie{ID: "m_1", Title: "A"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := movies.Insert(env.ctx, model.Movie{ID: "m_2", Title: "B"}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := movies.Get(env.ctx, "m_2")
	if err != nil || got.Title != "B" {
		t.Fatalf("get: %+v %v", got, err)
	}

	updated, err := movies.Update(env.ctx, "m_1", func(m model.Movie) (model.Movie, error) {
		m.Title = "A2"
		m.ID = "hijack"
		return m, nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != "m_1" || updated.Title != "A2" {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	if _, err := movies.Update(env.ctx, "missing", func(m model.Movie) (model.Movie, error) { return m, nil }); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update missing: %v", err)
	}
	if err := movies.Delete(env.ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete missing: %v", err)
	}
	if err := movies.Delete(env.ctx, "m_1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	list, _ = movies.List(env.ctx)
	if len(list) != 1 || list[0].ID != "m_2" {
		t.Fatalf("after delete: %+v", list)
	}
}

func TestUserRepoCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	users := env.repo.Users

	if err := users.Create(env.ctx, model.Account{AccountID: "Ann123", PasswordHash: "h"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := users.Create(env.ctx, model.Account{AccountID: "ANN123", PasswordHash: "h"}); !errors.Is(err, ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}
	got, err := users.Get(env.ctx, "ann123")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.AccountID != "Ann123" || got.Bookings == nil {
		t.Fatalf("unexpected account: %+v", got)
	}
	if _, err := users.Get(env.ctx, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepoUpdateAbortsOnError(t *testing.T) {
	env := newTestEnv(t)
	users := env.repo.Users
	_ = users.Create(env.ctx, model.Account{AccountID: "ann123"})

	if _, err := users.Update(env.ctx, "ANN123", func(a *model.Account) error {
		a.Bookings = append(a.Bookings, model.Booking{ID: "b_1", Seats: 2, BookedAt: time.Now()})
		return nil
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	boom := errors.New("boom")
	if _, err := users.Update(env.ctx, "ann123", func(a *model.Account) error {
		a.Bookings = nil
		return boom
	}); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	got, _ := users.Get(env.ctx, "ann123")
	if len(got.Bookings) != 1 || got.Bookings[0].ID != "b_1" {
		t.Fatalf("failed update leaked: %+v", got.Bookings)
	}
}

func TestReviewRepoFiltersByMovie(t *testing.T) {
	env := newTestEnv(t)
	reviews := env.repo.Reviews
	for _, rv := range []model.Review{
		{ID: "r_1", MovieID: "m_1", Text: "good"},
		{ID: "r_2", MovieID: "m_2", Text: "meh"},
		{ID: "r_3", MovieID: "m_1", Text: "great"},
	} {
		if err := reviews.Insert(env.ctx, rv); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	got, err := reviews.List(env.ctx, "m_1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != "r_1" || got[1].ID != "r_3" {
		t.Fatalf("unexpected reviews: %+v", got)
	}
	all, _ := reviews.List(env.ctx, "")
	if len(all) != 3 {
		t.Fatalf("expected all reviews, got %d", len(all))
	}
}

func TestCorruptCollectionReadsEmptyButRefusesWrites(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(env.dir, "movies.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	list, err := env.repo.Movies.List(env.ctx)
	if err != nil || len(list) != 0 {
		t.Fatalf("corrupt read should be empty: %v %v", list, err)
	}
	if err := env.repo.Movies.Insert(env.ctx, model.Movie{ID: "m_1"}); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
	raw, _ := os.ReadFile(path)
	if string(raw) != "{not json" {
		t.Fatalf("corrupt file was overwritten: %q", raw)
	}
}

func TestNullCollectionDecodesEmpty(t *testing.T) {
	env := newTestEnv(t)
	if err := os.WriteFile(filepath.Join(env.dir, "reviews.json"), []byte("null"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := env.repo.Reviews.Insert(env.ctx, model.Review{ID: "r_1"}); err != nil {
		t.Fatalf("insert over null: %v", err)
	}
	got, _ := env.repo.Reviews.List(env.ctx, "")
	if len(got) != 1 {
		t.Fatalf("expected one review, got %+v", got)
	}
}
