package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/movie-ticket-booking/internal/service"
)

// BookingHandler creates and cancels bookings.
type BookingHandler struct {
	Bookings *service.BookingService
	Log      *zap.Logger
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(bookings *service.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{Bookings: bookings, Log: log}
}

type cancelBookingReq struct {
	AccountID string `json:"accountId"`
}

// Create handles POST /api/bookings. accountId defaults to the token's
// account when omitted.
func (h *BookingHandler) Create(c echo.Context) error {
	var req service.CreateBookingParams
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, "invalid request body")
	}
	req.AccountID = accountOrCaller(c, req.AccountID)
	if !canActFor(c, req.AccountID) {
		return forbidden(c)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	b, err := h.Bookings.Create(ctx, req)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "booking created", "booking": b})
}

// Cancel handles DELETE /api/bookings/:bookingId with body {accountId}.
func (h *BookingHandler) Cancel(c echo.Context) error {
	var req cancelBookingReq
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, "invalid request body")
	}
	req.AccountID = accountOrCaller(c, req.AccountID)
	if !canActFor(c, req.AccountID) {
		return forbidden(c)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	err := h.Bookings.Cancel(ctx, service.CancelBookingParams{AccountID: req.AccountID, BookingID: c.Param("bookingId")})
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return message(c, http.StatusOK, "booking cancelled")
}
