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

// AccountRepository is the account persistence the services need. Lookups
// ignore the case of accountID.
type AccountRepository interface {
	Get(ctx context.Context, accountID string) (model.Account, error)
	Create(ctx context.Context, a model.Account) error
	Update(ctx context.Context, accountID string, fn func(*model.Account) error) (model.Account, error)
}

// maxPasswordBytes is bcrypt's input limit. The validate tag counts
// characters, so multibyte passwords need this extra check.
const maxPasswordBytes = 72

// RegisterParams is the input of AccountService.Register.
type RegisterParams struct {
	AccountID string `json:"accountId" validate:"required,min=3,max=64"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
}

// LoginParams is the input of AccountService.Login.
type LoginParams struct {
	AccountID string `json:"accountId" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

// AccountService registers and authenticates accounts.
type AccountService struct {
	users      AccountRepository
	bcryptCost int
	now        func() time.Time
	log        *zap.Logger
}

// NewAccountService wires an AccountService. A nil logger is replaced by a no-op one.
func NewAccountService(users AccountRepository, bcryptCost int, log *zap.Logger) *AccountService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AccountService{users: users, bcryptCost: bcryptCost, now: time.Now, log: log}
}

// Register creates a non-admin account with no bookings.
func (s *AccountService) Register(ctx context.Context, p RegisterParams) (model.PublicAccount, error) {
	p.AccountID = strings.TrimSpace(p.AccountID)
	if err := validateParams(p); err != nil {
		return model.PublicAccount{}, err
	}
	if len(p.Password) > maxPasswordBytes {
		return model.PublicAccount{}, validationf("password must be at most %d bytes long", maxPasswordBytes)
	}
	hash, err := utils.HashPassword(p.Password, s.bcryptCost)
	if err != nil {
		return model.PublicAccount{}, err
	}
	acc := model.Account{
		AccountID:    p.AccountID,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
		Bookings:     []model.Booking{},
	}
	if err := s.users.Create(ctx, acc); err != nil {
		if errors.Is(err, repository.ErrAccountExists) {
			return model.PublicAccount{}, &Error{Kind: ErrAccountExists, Message: "account ID already exists"}
		}
		return model.PublicAccount{}, err
	}
	s.log.Info("account registered", zap.String("account_id", acc.AccountID))
	return acc.Public(), nil
}

// Login checks the credentials. Unknown accounts and wrong passwords yield
// the same error.
func (s *AccountService) Login(ctx context.Context, p LoginParams) (model.PublicAccount, error) {
	p.AccountID = strings.TrimSpace(p.AccountID)
	if err := validateParams(p); err != nil {
		return model.PublicAccount{}, err
	}
	invalid := &Error{Kind: ErrInvalidCredentials, Message: "invalid account ID or password"}
	acc, err := s.users.Get(ctx, p.AccountID)
	if errors.Is(err, repository.ErrNotFound) {
		return model.PublicAccount{}, invalid
	}
	if err != nil {
		return model.PublicAccount{}, err
	}
	if !utils.VerifyPassword(acc.PasswordHash, p.Password) {
		return model.PublicAccount{}, invalid
	}
	return acc.Public(), nil
}

// Get returns the account without its credential.
func (s *AccountService) Get(ctx context.Context, accountID string) (model.PublicAccount, error) {
	acc, err := s.users.Get(ctx, strings.TrimSpace(accountID))
	if errors.Is(err, repository.ErrNotFound) {
		return model.PublicAccount{}, notFound("user not found")
	}
	if err != nil {
		return model.PublicAccount{}, err
	}
	return acc.Public(), nil
}

// EnsureAdmin makes accountID an admin, registering it with password first
// when it does not exist. An existing account keeps its password.
func (s *AccountService) EnsureAdmin(ctx context.Context, accountID, password string) error {
	promote := func(a *model.Account) error {
		a.IsAdmin = true
		return nil
	}
	_, err := s.users.Update(ctx, accountID, promote)
	if err == nil || !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if _, err := s.Register(ctx, RegisterParams{AccountID: accountID, Password: password}); err != nil && !errors.Is(err, ErrAccountExists) {
		return err
	}
	_, err = s.users.Update(ctx, accountID, promote)
	if err == nil {
		s.log.Info("admin account ensured", zap.String("account_id", accountID))
	}
	return err
}
