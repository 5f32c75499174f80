package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"gamehub/internal/auth"
	"gamehub/internal/middleware"
	"gamehub/internal/models"
)

type UserServicer interface {
	Register(username, email, password string) (*models.User, error)
	Login(username, password string) (*models.User, error)
	GetByID(id int64) (*models.User, error)
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string         `json:"token"`
	User  models.UserRef `json:"user"`
	Role  models.UserRole `json:"role"`
}

type AuthController struct {
	users    UserServicer
	log      *slog.Logger
	secret   string
	tokenTTL time.Duration
}

func NewAuthController(users UserServicer, log *slog.Logger, secret string, tokenTTL time.Duration) *AuthController {
	return &AuthController{
		users:    users,
		log:      log,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	const op = "controllers.auth.Register"

	var request RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondError(w, ErrBadRequest)
		return
	}

	if strings.TrimSpace(request.Username) == "" ||
		strings.TrimSpace(request.Email) == "" ||
		request.Password == "" {
		respondError(w, ErrBadRequest)
		return
	}

	user, err := c.users.Register(request.Username, request.Email, request.Password)
	if err != nil {
		c.log.Error(
			"failed to register user",
			slog.String("operation", op),
			slog.String("error", err.Error()))
		respondError(w, err)
		return
	}

	token, err := auth.NewToken(user, c.secret, c.tokenTTL)
	if err != nil {
		c.log.Error(
			"failed to issue token",
			slog.String("operation", op),
			slog.String("error", err.Error()))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, AuthResponse{
		Token: token,
		User:  user.Ref(),
		Role:  user.Role,
	})
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	const op = "controllers.auth.Login"

	var request LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondError(w, ErrBadRequest)
		return
	}

	user, err := c.users.Login(request.Username, request.Password)
	if err != nil {
		c.log.Error(
			"login failed",
			slog.String("operation", op),
			slog.String("username", request.Username),
			slog.String("error", err.Error()))
		respondError(w, err)
		return
	}

	token, err := auth.NewToken(user, c.secret, c.tokenTTL)
	if err != nil {
		c.log.Error(
			"failed to issue token",
			slog.String("operation", op),
			slog.String("error", err.Error()))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, AuthResponse{
		Token: token,
		User:  user.Ref(),
		Role:  user.Role,
	})
}

func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	const op = "controllers.auth.Me"

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, ErrUnauthorized)
		return
	}

	user, err := c.users.GetByID(userID)
	if err != nil {
		c.log.Error(
			"failed to get user",
			slog.String("operation", op),
			slog.String("error", err.Error()))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}
