package handler // HTTP handlers of the booking API

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/movie-ticket-booking/internal/middleware"
	"github.com/iliyamo/movie-ticket-booking/internal/service"
)

// requestTimeout bounds the store work of a single request.
const requestTimeout = 5 * time.Second

func requestContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), requestTimeout)
}

func message(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"message": msg})
}

// writeError turns a service error into its HTTP response. Anything that is
// not a *service.Error is logged and reported as a generic 500.
func writeError(c echo.Context, log *zap.Logger, err error) error {
	var se *service.Error
	if errors.As(err, &se) {
		switch {
		case errors.Is(se.Kind, service.ErrValidation):
			return message(c, http.StatusBadRequest, se.Message)
		case errors.Is(se.Kind, service.ErrNotFound):
			return message(c, http.StatusNotFound, se.Message)
		case errors.Is(se.Kind, service.ErrAccountExists):
			return message(c, http.StatusConflict, se.Message)
		case errors.Is(se.Kind, service.ErrInvalidCredentials):
			return message(c, http.StatusUnauthorized, se.Message)
		}
	}
	if log != nil {
		log.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Error(err))
	}
	return message(c, http.StatusInternalServerError, "internal server error")
}

// canActFor reports whether the caller may act on accountID. Anonymous
// callers are allowed here; routes that need a token enforce it in
// middleware.
func canActFor(c echo.Context, accountID string) bool {
	caller, ok := middleware.AccountID(c)
	if !ok || middleware.IsAdmin(c) {
		return true
	}
	return strings.EqualFold(caller, strings.TrimSpace(accountID))
}

// accountOrCaller returns accountID, falling back to the authenticated
// caller when it is blank.
func accountOrCaller(c echo.Context, accountID string) string {
	if strings.TrimSpace(accountID) != "" {
		return accountID
	}
	if caller, ok := middleware.AccountID(c); ok {
		return caller
	}
	return accountID
}

func forbidden(c echo.Context) error {
	return message(c, http.StatusForbidden, "you may only act on your own account")
}
