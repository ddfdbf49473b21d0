package middleware

import "github.com/labstack/echo/v4"

// AccountID returns the authenticated account id, if any.
func AccountID(c echo.Context) (string, bool) {
	s, ok := c.Get(ctxAccountID).(string)
	return s, ok && s != ""
}

// IsAdmin reports whether the caller holds an admin token.
func IsAdmin(c echo.Context) bool {
	v, _ := c.Get(ctxIsAdmin).(bool)
	return v
}

// userID is the caller identity used in rate-limit keys; "anon" when no
// token was presented.
func userID(c echo.Context) string {
	if id, ok := AccountID(c); ok {
		return id
	}
	return "anon"
}
