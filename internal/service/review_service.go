package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/movie-ticket-booking/internal/model"
	"github.com/iliyamo/movie-ticket-booking/internal/repository"
	"github.com/iliyamo/movie-ticket-booking/internal/utils"
)

// ReviewRepository is the review persistence.
type ReviewRepository interface {
	List(ctx context.Context, movieID string) ([]model.Review, error)
	Insert(ctx context.Context, rv model.Review) error
}

// AccountLookup finds an account by id, ignoring case.
type AccountLookup interface {
	Get(ctx context.Context, accountID string) (model.Account, error)
}

// CreateReviewParams is the input of ReviewService.Create.
type CreateReviewParams struct {
	AccountID string `json:"accountId" validate:"required"`
	MovieID   string `json:"movieId" validate:"required"`
	Text      string `json:"text" validate:"required,max=500"`
}

// ReviewService records reviews. The movie id is stored as given.
type ReviewService struct {
	reviews ReviewRepository
	users   AccountLookup
	newID   func() string
	now     func() time.Time
	log     *zap.Logger
}

// NewReviewService wires a ReviewService.
func NewReviewService(reviews ReviewRepository, users AccountLookup, log *zap.Logger) *ReviewService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReviewService{
		reviews: reviews,
		users:   users,
		newID:   func() string { return utils.NewID("r") },
		now:     time.Now,
		log:     log,
	}
}

// Create stores a review written by an existing account.
func (s *ReviewService) Create(ctx context.Context, p CreateReviewParams) (model.Review, error) {
	p.AccountID = strings.TrimSpace(p.AccountID)
	p.MovieID = strings.TrimSpace(p.MovieID)
	p.Text = strings.TrimSpace(p.Text)
	if err := validateParams(p); err != nil {
		return model.Review{}, err
	}
	acc, err := s.users.Get(ctx, p.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Review{}, notFound("user not found")
		}
		return model.Review{}, err
	}
	rv := model.Review{
		ID:        s.newID(),
		MovieID:   p.MovieID,
		AccountID: acc.AccountID,
		Text:      p.Text,
		CreatedAt: s.now().UTC(),
	}
	if err := s.reviews.Insert(ctx, rv); err != nil {
		return model.Review{}, err
	}
	s.log.Info("review created", zap.String("review_id", rv.ID), zap.String("movie_id", rv.MovieID))
	return rv, nil
}

// List returns the reviews of movieID, or every review when it is empty.
func (s *ReviewService) List(ctx context.Context, movieID string) ([]model.Review, error) {
	return s.reviews.List(ctx, strings.TrimSpace(movieID))
}
