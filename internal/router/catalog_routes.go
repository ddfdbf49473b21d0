package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-ticket-booking/internal/middleware"
)

// registerCatalog exposes movies and reviews. Reads are served through the
// response cache; writes purge the matching cache tag.
func registerCatalog(api *echo.Group, h Handlers, opt Options) {
	cacheMovies := middleware.NewRedisCache(opt.Cache, opt.Redis, middleware.TagMovies)
	purgeMovies := middleware.InvalidateCache(opt.Cache, opt.Redis, opt.Log, middleware.TagMovies)

	api.GET("/movies", h.Movies.List, cacheMovies)
	api.GET("/movies/:id", h.Movies.Get, cacheMovies)
	api.POST("/movies", h.Movies.Create, with(adminOnly(opt), purgeMovies)...)
	api.PUT("/movies/:id", h.Movies.Update, with(adminOnly(opt), purgeMovies)...)
	api.DELETE("/movies/:id", h.Movies.Delete, with(adminOnly(opt), purgeMovies)...)

	cacheReviews := middleware.NewRedisCache(opt.Cache, opt.Redis, middleware.TagReviews)
	purgeReviews := middleware.InvalidateCache(opt.Cache, opt.Redis, opt.Log, middleware.TagReviews)

	api.GET("/reviews", h.Reviews.List, cacheReviews)
	api.POST("/reviews", h.Reviews.Create, with(authed(opt), purgeReviews)...)
}
