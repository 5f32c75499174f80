package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"gamehub/internal/middleware"
	"gamehub/internal/models"

	"github.com/go-chi/chi/v5"
)

type CommentServicer interface {
	Add(gameID, userID int64, text string, parentID *int64) (*models.CommentResponse, error)
	List(gameID int64) ([]models.CommentResponse, error)
	Delete(commentID, actorID int64, role models.UserRole) error
}

type AddCommentRequest struct {
	Text          string `json:"text"`
	ParentComment *int64 `json:"parent_comment"`
}

type CommentController struct {
	comments CommentServicer
	log      *slog.Logger
}

func NewCommentController(comments CommentServicer, log *slog.Logger) *CommentController {
	return &CommentController{
		comments: comments,
		log:      log,
	}
}

func (c *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	const op = "controllers.comments.Create"

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, ErrUnauthorized)
		return
	}

	gameID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, ErrInvalidURL)
		return
	}

	var request AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondError(w, ErrBadRequest)
		return
	}

	comment, err := c.comments.Add(gameID, userID, request.Text, request.ParentComment)
	if err != nil {
		c.log.Error(
			"failed to add comment",
			slog.String("operation", op),
			slog.Int64("game_id", gameID),
			slog.String("error", err.Error()))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, comment)
}

func (c *CommentController) List(w http.ResponseWriter, r *http.Request) {
	const op = "controllers.comments.List"

	gameID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, ErrInvalidURL)
		return
	}

	comments, err := c.comments.List(gameID)
	if err != nil {
		c.log.Error(
			"failed to list comments",
			slog.String("operation", op),
			slog.Int64("game_id", gameID),
			slog.String("error", err.Error()))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, comments)
}

func (c *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "controllers.comments.Delete"

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

	if err := c.comments.Delete(id, userID, role); err != nil {
		c.log.Error(
			"failed to delete comment",
			slog.String("operation", op),
			slog.Int64("id", id),
			slog.String("error", err.Error()))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, MessageResponse{Message: "comment deleted successfully", ID: id})
}
