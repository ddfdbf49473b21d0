package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/movie-ticket-booking/internal/service"
)

// UserHandler serves account lookups and the account's bookings.
type UserHandler struct {
	Accounts *service.AccountService
	Bookings *service.BookingService
	Log      *zap.Logger
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(accounts *service.AccountService, bookings *service.BookingService, log *zap.Logger) *UserHandler {
	return &UserHandler{Accounts: accounts, Bookings: bookings, Log: log}
}

// Get handles GET /api/users/:accountId.
func (h *UserHandler) Get(c echo.Context) error {
	accountID := c.Param("accountId")
	if !canActFor(c, accountID) {
		return forbidden(c)
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	user, err := h.Accounts.Get(ctx, accountID)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, user)
}

// ListBookings handles GET /api/users/:accountId/bookings. Bookings of deleted
// movies are returned with "movie": null.
func (h *UserHandler) ListBookings(c echo.Context) error {
	accountID := c.Param("accountId")
	if !canActFor(c, accountID) {
		return forbidden(c)
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	list, err := h.Bookings.ListForAccount(ctx, accountID)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, list)
}
