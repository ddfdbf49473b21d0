package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/movie-ticket-booking/internal/service"
)

// ReviewHandler serves movie reviews.
type ReviewHandler struct {
	Reviews *service.ReviewService
	Log     *zap.Logger
}

// NewReviewHandler constructs a ReviewHandler.
func NewReviewHandler(reviews *service.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{Reviews: reviews, Log: log}
}

// Create handles POST /api/reviews.
func (h *ReviewHandler) Create(c echo.Context) error {
	var req service.CreateReviewParams
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, "invalid request body")
	}
	req.AccountID = accountOrCaller(c, req.AccountID)
	if !canActFor(c, req.AccountID) {
		return forbidden(c)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	rv, err := h.Reviews.Create(ctx, req)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "review added", "review": rv})
}

// List handles GET /api/reviews?movieId=.
func (h *ReviewHandler) List(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()
	list, err := h.Reviews.List(ctx, c.QueryParam("movieId"))
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, list)
}
