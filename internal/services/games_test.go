package services

import (
	"regexp"
	"testing"
	"time"

	"gamehub/internal/models"
	"gamehub/internal/storage/mysql"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*mysql.Storage, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}

	gormDB, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return &mysql.Storage{DB: gormDB}, mock
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 5, ClampLimit(5))
	assert.Equal(t, 10, ClampLimit(10))
	assert.Equal(t, 20, ClampLimit(20))
	assert.Equal(t, 50, ClampLimit(50))

	// anything outside the allowed set falls back to the default
	assert.Equal(t, 10, ClampLimit(7))
	assert.Equal(t, 10, ClampLimit(0))
	assert.Equal(t, 10, ClampLimit(-1))
	assert.Equal(t, 10, ClampLimit(100))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 3, TotalPages(25, 10))
	assert.Equal(t, 2, TotalPages(6, 5))
}

func TestGameService_GetByID(t *testing.T) {
	storage, mock := setupMockDB(t)
	defer storage.Close()

	service := NewGameService(storage, nil)

	t.Run("success with interaction state", func(t *testing.T) {
		gameRows := sqlmock.NewRows([]string{"id", "title", "description", "owner_id"}).
			AddRow(1, "Elden Ring", "Action RPG", 2)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `games` WHERE `games`.`id` = ?")).
			WillReturnRows(gameRows)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users`")).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(2, "alice"))

		voteRows := sqlmock.NewRows([]string{"id", "game_id", "user_id", "vote"}).
			AddRow(1, 1, 5, "like").
			AddRow(2, 1, 6, "like").
			AddRow(3, 1, 7, "dislike")
		mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `game_votes`")).
			WillReturnRows(voteRows)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `game_reports`")).
			WillReturnRows(sqlmock.NewRows([]string{"id", "game_id", "user_id", "reason", "created_at"}))

		game, err := service.GetByID(1)

		assert.NoError(t, err)
		assert.Equal(t, "Elden Ring", game.Title)
		assert.Equal(t, "alice", game.Owner.Username)
		assert.Equal(t, []int64{5, 6}, game.Likes)
		assert.Equal(t, []int64{7}, game.Dislikes)
		assert.Equal(t, 1, game.Popularity)
		assert.False(t, game.IsReported)
		assert.Empty(t, game.Reports)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `games` WHERE `games`.`id` = ?")).
			WillReturnError(gorm.ErrRecordNotFound)

		game, err := service.GetByID(999)

		assert.ErrorIs(t, err, ErrGameNotFound)
		assert.Nil(t, game)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGameService_Create_Validation(t *testing.T) {
	storage, mock := setupMockDB(t)
	defer storage.Close()

	service := NewGameService(storage, nil)

	t.Run("missing title", func(t *testing.T) {
		_, err := service.Create(1, &models.Game{Description: "desc"})
		assert.ErrorIs(t, err, ErrMissingFields)
	})

	t.Run("missing description", func(t *testing.T) {
		_, err := service.Create(1, &models.Game{Title: "title"})
		assert.ErrorIs(t, err, ErrMissingFields)
	})

	t.Run("whitespace only", func(t *testing.T) {
		_, err := service.Create(1, &models.Game{Title: "   ", Description: "\t"})
		assert.ErrorIs(t, err, ErrMissingFields)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGameService_List(t *testing.T) {
	t.Run("invalid page", func(t *testing.T) {
		storage, mock := setupMockDB(t)
		defer storage.Close()
		service := NewGameService(storage, nil)

		_, _, err := service.List(0, 10, SortNewest)
		assert.ErrorIs(t, err, ErrInvalidPage)

		_, _, err = service.List(-3, 10, SortNewest)
		assert.ErrorIs(t, err, ErrInvalidPage)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty catalog short-circuits", func(t *testing.T) {
		storage, mock := setupMockDB(t)
		defer storage.Close()
		service := NewGameService(storage, nil)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `games`")).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		games, total, err := service.List(1, 10, SortNewest)

		assert.NoError(t, err)
		assert.Empty(t, games)
		assert.Equal(t, 0, total)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("page past the end returns empty slice", func(t *testing.T) {
		storage, mock := setupMockDB(t)
		defer storage.Close()
		service := NewGameService(storage, nil)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `games`")).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `games`")).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "owner_id"}))

		games, total, err := service.List(9, 10, SortNewest)

		assert.NoError(t, err)
		assert.Empty(t, games)
		assert.Equal(t, 25, total)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("out-of-set limit falls back to 10", func(t *testing.T) {
		storage, mock := setupMockDB(t)
		defer storage.Close()
		service := NewGameService(storage, nil)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `games`")).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `games`")).
			WithArgs(10).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "owner_id"}))

		_, _, err := service.List(1, 7, SortNewest)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("popularity sort derives score from vote rows", func(t *testing.T) {
		storage, mock := setupMockDB(t)
		defer storage.Close()
		service := NewGameService(storage, nil)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `games`")).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
		mock.ExpectQuery(regexp.QuoteMeta("SUM(CASE WHEN vote = 'like' THEN 1 ELSE -1 END)")).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "owner_id", "created_at"}).
				AddRow(2, "Game B", 1, time.Now()).
				AddRow(1, "Game A", 1, time.Now()))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users`")).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(1, "alice"))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `game_votes`")).
			WillReturnRows(sqlmock.NewRows([]string{"id", "game_id", "user_id", "vote"}).
				AddRow(1, 2, 3, "like"))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `game_reports`")).
			WillReturnRows(sqlmock.NewRows([]string{"id", "game_id", "user_id", "reason", "created_at"}))

		games, total, err := service.List(1, 10, SortPopularity)

		assert.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Len(t, games, 2)
		assert.Equal(t, int64(2), games[0].ID)
		assert.Equal(t, 1, games[0].Popularity)
		assert.Equal(t, 0, games[1].Popularity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGameService_Delete(t *testing.T) {
	t.Run("owner deletes own game and interaction rows", func(t *testing.T) {
		storage, mock := setupMockDB(t)
		defer storage.Close()
		service := NewGameService(storage, nil)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `games` WHERE `games`.`id` = ?")).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "owner_id"}).AddRow(1, "Game", 7))

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `game_votes`")).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `game_reports`")).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `comments`")).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `games`")).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := service.Delete(1, 7, models.RoleUser)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("non-owner non-admin is forbidden", func(t *testing.T) {
		storage, mock := setupMockDB(t)
		defer storage.Close()
		service := NewGameService(storage, nil)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `games` WHERE `games`.`id` = ?")).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "owner_id"}).AddRow(1, "Game", 7))

		err := service.Delete(1, 8, models.RoleUser)

		assert.ErrorIs(t, err, ErrNotGameOwner)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("admin may delete any game", func(t *testing.T) {
		storage, mock := setupMockDB(t)
		defer storage.Close()
		service := NewGameService(storage, nil)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `games` WHERE `games`.`id` = ?")).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "owner_id"}).AddRow(1, "Game", 7))

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `game_votes`")).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `game_reports`")).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `comments`")).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `games`")).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := service.Delete(1, 99, models.RoleAdmin)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("game not found", func(t *testing.T) {
		storage, mock := setupMockDB(t)
		defer storage.Close()
		service := NewGameService(storage, nil)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `games` WHERE `games`.`id` = ?")).
			WillReturnError(gorm.ErrRecordNotFound)

		err := service.Delete(404, 7, models.RoleUser)

		assert.ErrorIs(t, err, ErrGameNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
