package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/movie-ticket-booking/internal/model"
	"github.com/iliyamo/movie-ticket-booking/internal/queue"
	"github.com/iliyamo/movie-ticket-booking/internal/repository"
	"github.com/iliyamo/movie-ticket-booking/internal/utils"
)

// MovieLookup is the read side of the catalog that bookings need.
type MovieLookup interface {
	Get(ctx context.Context, id string) (model.Movie, error)
	Index(ctx context.Context) (map[string]model.Movie, error)
}

// CreateBookingParams is the input of BookingService.Create.
type CreateBookingParams struct {
	AccountID string `json:"accountId" validate:"required"`
	MovieID   string `json:"movieId" validate:"required"`
	Date      string `json:"date" validate:"required"`
	Time      string `json:"time" validate:"required"`
	Seats     int    `json:"seats" validate:"min=1,max=10"`
}

// CancelBookingParams is the input of BookingService.Cancel.
type CancelBookingParams struct {
	AccountID string `json:"accountId" validate:"required"`
	BookingID string `json:"bookingId" validate:"required"`
}

// BookingService creates, lists and cancels the bookings stored inside
// accounts. The showtime is not checked against the movie and there is no
// capacity limit.
type BookingService struct {
	users  AccountRepository
	movies MovieLookup
	events EventPublisher
	newID  func() string
	now    func() time.Time
	log    *zap.Logger
}

// NewBookingService wires a BookingService. A nil publisher disables events.
func NewBookingService(users AccountRepository, movies MovieLookup, events EventPublisher, log *zap.Logger) *BookingService {
	if events == nil {
		events = NopPublisher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &BookingService{
		users:  users,
		movies: movies,
		events: events,
		newID:  func() string { return utils.NewID("b") },
		now:    time.Now,
		log:    log,
	}
}

func trimBooking(p *CreateBookingParams) {
	p.AccountID = strings.TrimSpace(p.AccountID)
	p.MovieID = strings.TrimSpace(p.MovieID)
	p.Date = strings.TrimSpace(p.Date)
	p.Time = strings.TrimSpace(p.Time)
}

// Create books seats for an existing account and movie.
func (s *BookingService) Create(ctx context.Context, p CreateBookingParams) (model.Booking, error) {
	trimBooking(&p)
	if err := validateParams(p); err != nil {
		return model.Booking{}, err
	}
	if _, err := s.users.Get(ctx, p.AccountID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Booking{}, notFound("user not found")
		}
		return model.Booking{}, err
	}
	movie, err := s.movies.Get(ctx, p.MovieID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Booking{}, notFound("movie not found")
		}
		return model.Booking{}, err
	}

	b := model.Booking{
		ID:       s.newID(),
		MovieID:  movie.ID,
		Date:     p.Date,
		Time:     p.Time,
		Seats:    p.Seats,
		BookedAt: s.now().UTC(),
	}
	acc, err := s.users.Update(ctx, p.AccountID, func(a *model.Account) error {
		a.Bookings = append(a.Bookings, b)
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Booking{}, notFound("user not found")
		}
		return model.Booking{}, err
	}

	s.log.Info("booking created",
		zap.String("booking_id", b.ID), zap.String("account_id", acc.AccountID),
		zap.String("movie_id", b.MovieID), zap.Int("seats", b.Seats))
	s.publish(ctx, queue.BookingCreated, acc.AccountID, b, movie.Title)
	return b, nil
}

// ListForAccount returns the account's bookings, each joined with its movie.
// A booking whose movie has been deleted comes back with a nil Movie.
func (s *BookingService) ListForAccount(ctx context.Context, accountID string) ([]model.EnrichedBooking, error) {
	acc, err := s.users.Get(ctx, strings.TrimSpace(accountID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("user not found")
		}
		return nil, err
	}
	movies, err := s.movies.Index(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.EnrichedBooking, 0, len(acc.Bookings))
	for _, b := range acc.Bookings {
		eb := model.EnrichedBooking{Booking: b}
		if m, ok := movies[b.MovieID]; ok {
			eb.Movie = &m
		}
		out = append(out, eb)
	}
	return out, nil
}

// Cancel removes bookingID from the account's bookings. A booking id that
// belongs to another account is reported as not found and nothing changes.
func (s *BookingService) Cancel(ctx context.Context, p CancelBookingParams) error {
	p.AccountID = strings.TrimSpace(p.AccountID)
	p.BookingID = strings.TrimSpace(p.BookingID)
	if err := validateParams(p); err != nil {
		return err
	}
	var removed model.Booking
	acc, err := s.users.Update(ctx, p.AccountID, func(a *model.Account) error {
		kept := make([]model.Booking, 0, len(a.Bookings))
		found := false
		for _, b := range a.Bookings {
			if b.ID == p.BookingID {
				removed = b
				found = true
				continue
			}
			kept = append(kept, b)
		}
		if !found {
			return notFound("booking not found")
		}
		a.Bookings = kept
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("user not found")
		}
		return err
	}

	s.log.Info("booking cancelled", zap.String("booking_id", removed.ID), zap.String("account_id", acc.AccountID))
	title := ""
	if m, err := s.movies.Get(ctx, removed.MovieID); err == nil {
		title = m.Title
	}
	s.publish(ctx, queue.BookingCancelled, acc.AccountID, removed, title)
	return nil
}

func (s *BookingService) publish(ctx context.Context, kind, accountID string, b model.Booking, title string) {
	ev := queue.BookingEvent{
		Type:       kind,
		BookingID:  b.ID,
		AccountID:  accountID,
		MovieID:    b.MovieID,
		MovieTitle: title,
		Date:       b.Date,
		Time:       b.Time,
		Seats:      b.Seats,
		OccurredAt: s.now().UTC().Format(time.RFC3339),
	}
	if err := s.events.Publish(ctx, ev); err != nil {
		s.log.Warn("publish booking event failed", zap.String("type", kind), zap.String("booking_id", b.ID), zap.Error(err))
	}
}
