package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-ticket-booking/internal/middleware"
)

// registerAuth exposes registration and login, rate limited per client IP.
func registerAuth(e *echo.Echo, h Handlers, opt Options) {
	auth := e.Group("/api/auth", middleware.NewTokenBucket(opt.RateLimit, opt.Redis, opt.Log))
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
}

// registerAccounts exposes account lookups and bookings.
func registerAccounts(api *echo.Group, h Handlers, opt Options) {
	api.GET("/users/:accountId", h.Users.Get, authed(opt)...)
	api.GET("/users/:accountId/bookings", h.Users.ListBookings, authed(opt)...)

	api.POST("/bookings", h.Bookings.Create, authed(opt)...)
	api.DELETE("/bookings/:bookingId", h.Bookings.Cancel, authed(opt)...)
}
