package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"gamehub/internal/clients/ollama"
	"gamehub/internal/services"
)

var (
	ErrBadRequest   = errors.New("bad request")
	ErrInvalidURL   = errors.New("invalid url")
	ErrUnauthorized = errors.New("unauthorized")
	ErrEncoding     = errors.New("failed to encode response")
)

// MessageResponse is the error/ack body shape every endpoint shares.
type MessageResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, err error) {
	respondJSON(w, statusFromErr(err), MessageResponse{Message: err.Error()})
}

// statusFromErr maps domain failures onto HTTP status codes. Anything not
// recognized is an infrastructure error.
func statusFromErr(err error) int {
	switch {
	case errors.Is(err, services.ErrGameNotFound),
		errors.Is(err, services.ErrCommentNotFound),
		errors.Is(err, services.ErrParentNotFound),
		errors.Is(err, services.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidVote),
		errors.Is(err, services.ErrEmptyReason),
		errors.Is(err, services.ErrEmptyComment),
		errors.Is(err, services.ErrMissingFields),
		errors.Is(err, services.ErrInvalidPage),
		errors.Is(err, services.ErrParentMismatch),
		errors.Is(err, ErrBadRequest),
		errors.Is(err, ErrInvalidURL):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrAlreadyReported),
		errors.Is(err, services.ErrHasReplies),
		errors.Is(err, services.ErrUserExists):
		return http.StatusConflict
	case errors.Is(err, services.ErrNotCommentOwner),
		errors.Is(err, services.ErrNotGameOwner):
		return http.StatusForbidden
	case errors.Is(err, services.ErrBadCredentials),
		errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ollama.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
