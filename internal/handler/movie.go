package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/movie-ticket-booking/internal/service"
)

// MovieHandler serves the catalog.
type MovieHandler struct {
	Catalog *service.CatalogService
	Log     *zap.Logger
}

// NewMovieHandler constructs a MovieHandler.
func NewMovieHandler(catalog *service.CatalogService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{Catalog: catalog, Log: log}
}

// List handles GET /api/movies?q=&status=.
func (h *MovieHandler) List(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()
	movies, err := h.Catalog.List(ctx, service.MovieFilter{Query: c.QueryParam("q"), Status: c.QueryParam("status")})
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, movies)
}

// Get handles GET /api/movies/:id.
func (h *MovieHandler) Get(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()
	m, err := h.Catalog.Get(ctx, c.Param("id"))
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, m)
}

// Create handles POST /api/movies. The body must be a JSON object.
func (h *MovieHandler) Create(c echo.Context) error {
	fields, ok := decodeObject(c)
	if !ok {
		return message(c, http.StatusBadRequest, "movie body must be a JSON object")
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	m, err := h.Catalog.Create(ctx, fields)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, m)
}

// Update handles PUT /api/movies/:id as a top-level merge.
func (h *MovieHandler) Update(c echo.Context) error {
	patch, ok := decodeObject(c)
	if !ok {
		return message(c, http.StatusBadRequest, "movie body must be a JSON object")
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	m, err := h.Catalog.Update(ctx, c.Param("id"), patch)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, m)
}

// Delete handles DELETE /api/movies/:id.
func (h *MovieHandler) Delete(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()
	if err := h.Catalog.Delete(ctx, c.Param("id")); err != nil {
		return writeError(c, h.Log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// decodeObject reads the request body as a JSON object. null, arrays and
// scalars are rejected.
func decodeObject(c echo.Context) (map[string]json.RawMessage, bool) {
	var fields map[string]json.RawMessage
	if err := json.NewDecoder(c.Request().Body).Decode(&fields); err != nil || fields == nil {
		return nil, false
	}
	return fields, true
}
