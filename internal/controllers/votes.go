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

type VoteServicer interface {
	Cast(gameID, userID int64, vote models.VoteType) (*models.VoteResult, error)
}

type CastVoteRequest struct {
	VoteType string `json:"vote_type"`
}

type VoteController struct {
	votes VoteServicer
	log   *slog.Logger
}

func NewVoteController(votes VoteServicer, log *slog.Logger) *VoteController {
	return &VoteController{
		votes: votes,
		log:   log,
	}
}

func (c *VoteController) Cast(w http.ResponseWriter, r *http.Request) {
	const op = "controllers.votes.Cast"

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

	var request CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondError(w, ErrBadRequest)
		return
	}

	result, err := c.votes.Cast(gameID, userID, models.VoteType(request.VoteType))
	if err != nil {
		c.log.Error(
			"failed to cast vote",
			slog.String("operation", op),
			slog.Int64("game_id", gameID),
			slog.String("error", err.Error()))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
