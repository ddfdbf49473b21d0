package repository

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/iliyamo/movie-ticket-booking/internal/model"
	"github.com/iliyamo/movie-ticket-booking/internal/store"
)

// UserRepo persists accounts and the bookings embedded in them. Account ids
// are matched ignoring case everywhere.
type UserRepo struct {
	c collection[model.Account]
}

// NewUserRepo returns a repository over the users collection of st.
func NewUserRepo(st store.Store, log *zap.Logger) *UserRepo {
	return &UserRepo{c: collection[model.Account]{st: st, name: store.Users, log: log}}
}

func findAccount(accounts []model.Account, accountID string) int {
	for i := range accounts {
		if strings.EqualFold(accounts[i].AccountID, accountID) {
			return i
		}
	}
	return -1
}

// Get returns the account matching accountID or ErrNotFound.
func (r *UserRepo) Get(ctx context.Context, accountID string) (model.Account, error) {
	accounts, err := r.c.all(ctx)
	if err != nil {
		return model.Account{}, err
	}
	if i := findAccount(accounts, accountID); i >= 0 {
		return accounts[i], nil
	}
	return model.Account{}, ErrNotFound
}

// Create stores a new account, or returns ErrAccountExists.
func (r *UserRepo) Create(ctx context.Context, a model.Account) error {
	return r.c.mutate(ctx, func(accounts []model.Account) ([]model.Account, error) {
		if findAccount(accounts, a.AccountID) >= 0 {
			return nil, ErrAccountExists
		}
		if a.Bookings == nil {
			a.Bookings = []model.Booking{}
		}
		return append(accounts, a), nil
	})
}

// Update applies fn to the stored account and persists the result. An error
// from fn aborts the write.
func (r *UserRepo) Update(ctx context.Context, accountID string, fn func(*model.Account) error) (model.Account, error) {
	var updated model.Account
	err := r.c.mutate(ctx, func(accounts []model.Account) ([]model.Account, error) {
		i := findAccount(accounts, accountID)
		if i < 0 {
			return nil, ErrNotFound
		}
		a := accounts[i]
		a.Bookings = append([]model.Booking(nil), a.Bookings...)
		if err := fn(&a); err != nil {
			return nil, err
		}
		if a.Bookings == nil {
			a.Bookings = []model.Booking{}
		}
		accounts[i] = a
		updated = a
		return accounts, nil
	})
	if err != nil {
		return model.Account{}, err
	}
	return updated, nil
}
