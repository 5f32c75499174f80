package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gamehub/internal/auth"
	"gamehub/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestValidateToken(t *testing.T) {
	mw := NewAuthMiddleware("test-secret")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, int64(7), userID)

		role, ok := RoleFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, models.RoleAdmin, role)

		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("valid bearer token passes through with identity in context", func(t *testing.T) {
		token, err := auth.NewToken(&models.User{ID: 7, Username: "alice", Role: models.RoleAdmin}, "test-secret", time.Hour)
		assert.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/games", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		mw.ValidateToken(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/games", nil)
		w := httptest.NewRecorder()

		mw.ValidateToken(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		token, err := auth.NewToken(&models.User{ID: 7, Username: "alice", Role: models.RoleUser}, "another-secret", time.Hour)
		assert.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/games", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		mw.ValidateToken(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	mw := NewAuthMiddleware("test-secret")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("admin allowed", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/games/reported", nil)
		req = req.WithContext(context.WithValue(req.Context(), RoleKey, models.RoleAdmin))
		w := httptest.NewRecorder()

		mw.RequireAdmin(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("regular user forbidden", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/games/reported", nil)
		req = req.WithContext(context.WithValue(req.Context(), RoleKey, models.RoleUser))
		w := httptest.NewRecorder()

		mw.RequireAdmin(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("no role in context forbidden", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/games/reported", nil)
		w := httptest.NewRecorder()

		mw.RequireAdmin(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
