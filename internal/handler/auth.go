package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/movie-ticket-booking/internal/model"
	"github.com/iliyamo/movie-ticket-booking/internal/service"
	"github.com/iliyamo/movie-ticket-booking/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Accounts     *service.AccountService
	JWTSecret    string
	AccessTTLMin int
	Log          *zap.Logger
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(accounts *service.AccountService, secret string, ttlMin int, log *zap.Logger) *AuthHandler {
	return &AuthHandler{Accounts: accounts, JWTSecret: secret, AccessTTLMin: ttlMin, Log: log}
}

type credentialsReq struct {
	AccountID string `json:"accountId"`
	Password  string `json:"password"`
}

type authResp struct {
	Message   string              `json:"message"`
	User      model.PublicAccount `json:"user"`
	Token     string              `json:"token"`
	ExpiresAt time.Time           `json:"expiresAt"`
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, "invalid request body")
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.Accounts.Register(ctx, service.RegisterParams{AccountID: req.AccountID, Password: req.Password})
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return h.respond(c, http.StatusCreated, "registration successful", user)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, "invalid request body")
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.Accounts.Login(ctx, service.LoginParams{AccountID: req.AccountID, Password: req.Password})
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return h.respond(c, http.StatusOK, "login successful", user)
}

func (h *AuthHandler) respond(c echo.Context, status int, msg string, user model.PublicAccount) error {
	access, err := utils.NewAccessToken(h.JWTSecret, user.AccountID, user.IsAdmin, h.AccessTTLMin)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(status, authResp{Message: msg, User: user, Token: access.Token, ExpiresAt: access.Exp})
}
