package repository

import (
	"context"

	"go.uber.org/zap"

	"github.com/iliyamo/movie-ticket-booking/internal/model"
	"github.com/iliyamo/movie-ticket-booking/internal/store"
)

// MovieRepo persists the catalog.
type MovieRepo struct {
	c collection[model.Movie]
}

// NewMovieRepo returns a repository over the movies collection of st.
func NewMovieRepo(st store.Store, log *zap.Logger) *MovieRepo {
	return &MovieRepo{c: collection[model.Movie]{st: st, name: store.Movies, log: log}}
}

// List returns all movies in stored order.
func (r *MovieRepo) List(ctx context.Context) ([]model.Movie, error) {
	return r.c.all(ctx)
}

// Get returns the movie with id or ErrNotFound.
func (r *MovieRepo) Get(ctx context.Context, id string) (model.Movie, error) {
	movies, err := r.c.all(ctx)
	if err != nil {
		return model.Movie{}, err
	}
	for _, m := range movies {
		if m.ID == id {
			return m, nil
		}
	}
	return model.Movie{}, ErrNotFound
}

// Index returns the movies keyed by id, for joins.
func (r *MovieRepo) Index(ctx context.Context) (map[string]model.Movie, error) {
	movies, err := r.c.all(ctx)
	if err != nil {
		return nil, err
	}
	idx := make(map[string]model.Movie, len(movies))
	for _, m := range movies {
		idx[m.ID] = m
	}
	return idx, nil
}

// Insert appends m to the catalog.
func (r *MovieRepo) Insert(ctx context.Context, m model.Movie) error {
	return r.c.mutate(ctx, func(movies []model.Movie) ([]model.Movie, error) {
		return append(movies, m), nil
	})
}

// Update replaces the movie with id by the result of fn and returns it.
func (r *MovieRepo) Update(ctx context.Context, id string, fn func(model.Movie) (model.Movie, error)) (model.Movie, error) {
	var updated model.Movie
	err := r.c.mutate(ctx, func(movies []model.Movie) ([]model.Movie, error) {
		for i := range movies {
			if movies[i].ID != id {
				continue
			}
			next, err := fn(movies[i])
			if err != nil {
				return nil, err
			}
			next.ID = id
			movies[i] = next
			updated = next
			return movies, nil
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return model.Movie{}, err
	}
	return updated, nil
}

// Delete removes the movie with id.
func (r *MovieRepo) Delete(ctx context.Context, id string) error {
	return r.c.mutate(ctx, func(movies []model.Movie) ([]model.Movie, error) {
		kept := movies[:0]
		for _, m := range movies {
			if m.ID != id {
				kept = append(kept, m)
			}
		}
		if len(kept) == len(movies) {
			return nil, ErrNotFound
		}
		return kept, nil
	})
}
