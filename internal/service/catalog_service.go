package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/iliyamo/movie-ticket-booking/internal/model"
	"github.com/iliyamo/movie-ticket-booking/internal/repository"
	"github.com/iliyamo/movie-ticket-booking/internal/utils"
)

// MovieRepository is the catalog persistence.
type MovieRepository interface {
	List(ctx context.Context) ([]model.Movie, error)
	Get(ctx context.Context, id string) (model.Movie, error)
	Insert(ctx context.Context, m model.Movie) error
	Update(ctx context.Context, id string, fn func(model.Movie) (model.Movie, error)) (model.Movie, error)
	Delete(ctx context.Context, id string) error
}

// MovieFilter narrows List. Zero values match everything.
type MovieFilter struct {
	Query  string // case-insensitive substring of the title
	Status string // exact status, compared ignoring case
}

// CatalogService manages the movie catalog. Movie bodies are not validated:
// whatever object the admin sends becomes the record.
type CatalogService struct {
	movies MovieRepository
	newID  func() string
	log    *zap.Logger
}

// NewCatalogService wires a CatalogService.
func NewCatalogService(movies MovieRepository, log *zap.Logger) *CatalogService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CatalogService{
		movies: movies,
		newID:  func() string { return utils.NewID("m") },
		log:    log,
	}
}

// List returns the movies matching f in catalog order.
func (s *CatalogService) List(ctx context.Context, f MovieFilter) ([]model.Movie, error) {
	movies, err := s.movies.List(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	status := strings.TrimSpace(f.Status)
	if q == "" && status == "" {
		return movies, nil
	}
	out := make([]model.Movie, 0, len(movies))
	for _, m := range movies {
		if q != "" && !strings.Contains(strings.ToLower(m.Title), q) {
			continue
		}
		if status != "" && !strings.EqualFold(m.Status, status) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

// Get returns one movie.
func (s *CatalogService) Get(ctx context.Context, id string) (model.Movie, error) {
	m, err := s.movies.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Movie{}, notFound("movie not found")
	}
	return m, err
}

// Create stores fields as a new movie under a fresh id; an id in fields is ignored.
func (s *CatalogService) Create(ctx context.Context, fields map[string]json.RawMessage) (model.Movie, error) {
	m, err := model.MovieFromFields(s.newID(), fields)
	if err != nil {
		return model.Movie{}, movieFieldsError(err)
	}
	if err := s.movies.Insert(ctx, m); err != nil {
		return model.Movie{}, err
	}
	s.log.Info("movie created", zap.String("movie_id", m.ID), zap.String("title", m.Title))
	return m, nil
}

// Update merges patch over the stored movie. Fields the patch does not name
// are kept, including showtimes or release_date that a status change made
// irrelevant.
func (s *CatalogService) Update(ctx context.Context, id string, patch map[string]json.RawMessage) (model.Movie, error) {
	m, err := s.movies.Update(ctx, id, func(cur model.Movie) (model.Movie, error) {
		next, err := cur.Merge(patch)
		if err != nil {
			return model.Movie{}, movieFieldsError(err)
		}
		return next, nil
	})
	if errors.Is(err, repository.ErrNotFound) {
		return model.Movie{}, notFound("movie not found")
	}
	if err != nil {
		return model.Movie{}, err
	}
	s.log.Info("movie updated", zap.String("movie_id", id))
	return m, nil
}

// Delete removes a movie. Bookings and reviews pointing at it are kept.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	err := s.movies.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound("movie not found")
	}
	if err != nil {
		return err
	}
	s.log.Info("movie deleted", zap.String("movie_id", id))
	return nil
}

// movieFieldsError turns a decode failure into a client-safe validation
// error that names the offending field.
func movieFieldsError(err error) error {
	var fe *model.FieldError
	if errors.As(err, &fe) {
		return validationf("%s", fe.Error())
	}
	return validationf("invalid movie fields")
}
