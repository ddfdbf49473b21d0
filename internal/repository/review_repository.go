package repository

import (
	"context"

	"go.uber.org/zap"

	"github.com/iliyamo/movie-ticket-booking/internal/model"
	"github.com/iliyamo/movie-ticket-booking/internal/store"
)

// ReviewRepo persists reviews, independent of movies and accounts.
type ReviewRepo struct {
	c collection[model.Review]
}

// NewReviewRepo returns a repository over the reviews collection of st.
func NewReviewRepo(st store.Store, log *zap.Logger) *ReviewRepo {
	return &ReviewRepo{c: collection[model.Review]{st: st, name: store.Reviews, log: log}}
}

// List returns reviews for movieID in insertion order; an empty movieID
// returns all of them.
func (r *ReviewRepo) List(ctx context.Context, movieID string) ([]model.Review, error) {
	reviews, err := r.c.all(ctx)
	if err != nil || movieID == "" {
		return reviews, err
	}
	out := make([]model.Review, 0, len(reviews))
	for _, rv := range reviews {
		if rv.MovieID == movieID {
			out = append(out, rv)
		}
	}
	return out, nil
}

// Insert appends rv.
func (r *ReviewRepo) Insert(ctx context.Context, rv model.Review) error {
	return r.c.mutate(ctx, func(reviews []model.Review) ([]model.Review, error) {
		return append(reviews, rv), nil
	})
}
