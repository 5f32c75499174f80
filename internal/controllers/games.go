package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"gamehub/internal/middleware"
	"gamehub/internal/models"
	"gamehub/internal/services"

	"github.com/go-chi/chi/v5"
)

type GameServicer interface {
	Create(ownerID int64, g *models.Game) (*models.GameResponse, error)
	GetByID(id int64) (*models.GameResponse, error)
	GetMine(ownerID int64) ([]models.GameResponse, error)
	List(page, limit int, sort string) ([]models.GameResponse, int, error)
	Delete(id, actorID int64, role models.UserRole) error
}

type ReportServicer interface {
	Report(gameID, userID int64, reason string) (int, error)
	ListReported() ([]models.GameResponse, error)
}

type CreateGameRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	ImageURL    string            `json:"image_url"`
	Price       float64           `json:"price"`
	Categories  models.StringList `json:"categories"`
	Platforms   models.StringList `json:"platforms"`
}

type ReportGameRequest struct {
	Reason string `json:"reason"`
}

type ReportGameResponse struct {
	Message     string `json:"message"`
	ReportCount int    `json:"report_count"`
}

type Pagination struct {
	TotalGames  int  `json:"total_games"`
	CurrentPage int  `json:"current_page"`
	TotalPages  int  `json:"total_pages"`
	Limit       int  `json:"limit"`
	HasNextPage bool `json:"has_next_page"`
	HasPrevPage bool `json:"has_prev_page"`
}

type ListGamesResponse struct {
	Games      []models.GameResponse `json:"games"`
	Pagination Pagination            `json:"pagination"`
}

type GameController struct {
	games   GameServicer
	reports ReportServicer
	log     *slog.Logger
}

func NewGameController(games GameServicer, reports ReportServicer, log *slog.Logger) *GameController {
	return &GameController{
		games:   games,
		reports: reports,
		log:     log,
	}
}

func (c *GameController) List(w http.ResponseWriter, r *http.Request) {
	const op = "controllers.games.List"

	query := r.URL.Query()

	page := 1
	if raw := query.Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, services.ErrInvalidPage)
			return
		}
		page = parsed
	}

	limit, _ := strconv.Atoi(query.Get("limit"))
	limit = services.ClampLimit(limit)

	sort := query.Get("sort")

	games, total, err := c.games.List(page, limit, sort)
	if err != nil {
		c.log.Error(
			"failed to list games",
			slog.String("operation", op),
			slog.String("error", err.Error()))
		respondError(w, err)
		return
	}

	totalPages := services.TotalPages(total, limit)

	respondJSON(w, http.StatusOK, ListGamesResponse{
		Games: games,
		Pagination: Pagination{
			TotalGames:  total,
			CurrentPage: page,
			TotalPages:  totalPages,
			Limit:       limit,
			HasNextPage: page < totalPages,
			HasPrevPage: page > 1,
		},
	})
}

func (c *GameController) GetByID(w http.ResponseWriter, r *http.Request) {
	const op = "controllers.games.GetByID"

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, ErrInvalidURL)
		return
	}

	game, err := c.games.GetByID(id)
	if err != nil {
		c.log.Error(
			"failed to get game",
			slog.String("operation", op),
			slog.Int64("id", id),
			slog.String("error", err.Error()))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, game)
}

func (c *GameController) GetMine(w http.ResponseWriter, r *http.Request) {
	const op = "controllers.games.GetMine"

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, ErrUnauthorized)
		return
	}

	games, err := c.games.GetMine(userID)
	if err != nil {
		c.log.Error(
			"failed to get user games",
			slog.String("operation", op),
			slog.String("error", err.Error()))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, games)
}

func (c *GameController) Create(w http.ResponseWriter, r *http.Request) {
	const op = "controllers.games.Create"

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, ErrUnauthorized)
		return
	}

	var request CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondError(w, ErrBadRequest)
		return
	}

	game := &models.Game{
		Title:       request.Title,
		Description: request.Description,
		ImageURL:    request.ImageURL,
		Price:       request.Price,
		Categories:  request.Categories,
		Platforms:   request.Platforms,
	}

	created, err := c.games.Create(userID, game)
	if err != nil {
		c.log.Error(
			"failed to create game",
			slog.String("operation", op),
			slog.String("error", err.Error()))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

func (c *GameController) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "controllers.games.Delete"

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, ErrUnauthorized)
		return
	}
	role, _ := middleware.RoleFromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, ErrInvalidURL)
		return
	}

	if err := c.games.Delete(id, userID, role); err != nil {
		c.log.Error(
			"failed to delete game",
			slog.String("operation", op),
			slog.Int64("id", id),
			slog.String("error", err.Error()))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, MessageResponse{Message: "game deleted", ID: id})
}

func (c *GameController) Report(w http.ResponseWriter, r *http.Request) {
	const op = "controllers.games.Report"

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, ErrUnauthorized)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, ErrInvalidURL)
		return
	}

	var request ReportGameRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondError(w, ErrBadRequest)
		return
	}

	count, err := c.reports.Report(id, userID, request.Reason)
	if err != nil {
		c.log.Error(
			"failed to report game",
			slog.String("operation", op),
			slog.Int64("id", id),
			slog.String("error", err.Error()))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ReportGameResponse{
		Message:     "game reported successfully",
		ReportCount: count,
	})
}

// GetReported is admin-only; the router guards it with RequireAdmin.
func (c *GameController) GetReported(w http.ResponseWriter, r *http.Request) {
	const op = "controllers.games.GetReported"

	games, err := c.reports.ListReported()
	if err != nil {
		c.log.Error(
			"failed to list reported games",
			slog.String("operation", op),
			slog.String("error", err.Error()))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, games)
}
