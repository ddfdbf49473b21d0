package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/movie-ticket-booking/internal/config"
	"github.com/iliyamo/movie-ticket-booking/internal/handler"
	"github.com/iliyamo/movie-ticket-booking/internal/middleware"
)

// Handlers groups every HTTP handler of the API.
type Handlers struct {
	Health   *handler.HealthHandler
	Movies   *handler.MovieHandler
	Auth     *handler.AuthHandler
	Users    *handler.UserHandler
	Bookings *handler.BookingHandler
	Reviews  *handler.ReviewHandler
}

// Options carries the settings that shape the middleware chains. Redis may
// be nil, which turns caching and rate limiting off.
type Options struct {
	JWTSecret    string
	AuthRequired bool
	Cache        config.CacheConfig
	RateLimit    config.RateLimitConfig
	Redis        *redis.Client
	Log          *zap.Logger
}

// RegisterRoutes registers /healthz and every /api route on e.
func RegisterRoutes(e *echo.Echo, h Handlers, opt Options) {
	e.GET("/healthz", h.Health.Health)

	// Login must work even when the client still holds a stale token, so
	// the auth routes sit outside the Identity chain.
	registerAuth(e, h, opt)

	api := e.Group("/api", middleware.Identity(opt.JWTSecret))
	registerCatalog(api, h, opt)
	registerAccounts(api, h, opt)
}

// authed returns the middleware for routes that act on an account: a token
// is required only when the deployment asks for it.
func authed(opt Options) []echo.MiddlewareFunc {
	if opt.AuthRequired {
		return []echo.MiddlewareFunc{middleware.RequireAuth()}
	}
	return nil
}

// adminOnly guards catalog writes when auth is required.
func adminOnly(opt Options) []echo.MiddlewareFunc {
	if opt.AuthRequired {
		return []echo.MiddlewareFunc{middleware.RequireAdmin()}
	}
	return nil
}

func with(mws []echo.MiddlewareFunc, more ...echo.MiddlewareFunc) []echo.MiddlewareFunc {
	out := make([]echo.MiddlewareFunc, 0, len(mws)+len(more))
	out = append(out, mws...)
	return append(out, more...)
}
