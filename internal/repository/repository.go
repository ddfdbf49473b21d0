package repository

import (
	"go.uber.org/zap"

	"github.com/iliyamo/movie-ticket-booking/internal/store"
)

// Repository aggregates the per-collection repositories.
type Repository struct {
	Movies  *MovieRepo
	Users   *UserRepo
	Reviews *ReviewRepo
}

// New builds every repository on top of st.
func New(st store.Store, log *zap.Logger) *Repository {
	if log == nil {
		log = zap.NewNop()
	}
	return &Repository{
		Movies:  NewMovieRepo(st, log),
		Users:   NewUserRepo(st, log),
		Reviews: NewReviewRepo(st, log),
	}
}
