package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireAuth rejects requests that Identity did not authenticate.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := AccountID(c); !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "authentication required"})
			}
			return next(c)
		}
	}
}

// RequireAdmin lets only admin tokens through: anonymous callers get 401 and
// authenticated non-admins 403.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := AccountID(c); !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "authentication required"})
			}
			if !IsAdmin(c) {
				return c.JSON(http.StatusForbidden, echo.Map{"message": "admin access required"})
			}
			return next(c)
		}
	}
}
