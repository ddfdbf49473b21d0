package middleware // reusable HTTP middleware: identity, access control, cache, rate limit, logging

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-ticket-booking/internal/utils"
)

// Context keys set by Identity.
const (
	ctxAccountID = "account_id"
	ctxIsAdmin   = "is_admin"
)

// Identity returns a middleware that authenticates an optional Bearer access
// token. Requests without an Authorization header pass through anonymously;
// a header that is present but not a valid token is rejected with 401. On
// success the account id and admin flag are stored in the context, see
// AccountID and IsAdmin.
func Identity(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if auth == "" {
				return next(c)
			}
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "missing bearer token"})
			}
			claims, err := utils.ParseAccessToken(secret, strings.TrimSpace(strings.TrimPrefix(auth, "Bearer ")))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid token"})
			}
			c.Set(ctxAccountID, claims.AccountID)
			c.Set(ctxIsAdmin, claims.IsAdmin)
			return next(c)
		}
	}
}
