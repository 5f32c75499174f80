package services

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestUserService_Register(t *testing.T) {
	t.Run("new user gets the default role and a hashed password", func(t *testing.T) {
		storage, mock := setupMockDB(t)
		defer storage.Close()
		service := NewUserService(storage, nil)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `users`")).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		user, err := service.Register("  alice ", "alice@example.com", "s3cret")

		assert.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "user", string(user.Role))
		assert.NotEqual(t, "s3cret", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("taken username is a conflict", func(t *testing.T) {
		storage, mock := setupMockDB(t)
		defer storage.Close()
		service := NewUserService(storage, nil)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `users`")).
			WillReturnError(gorm.ErrDuplicatedKey)
		mock.ExpectRollback()

		_, err := service.Register("alice", "alice@example.com", "s3cret")

		assert.ErrorIs(t, err, ErrUserExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	assert.NoError(t, err)

	t.Run("correct password", func(t *testing.T) {
		storage, mock := setupMockDB(t)
		defer storage.Close()
		service := NewUserService(storage, nil)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users`")).
			WithArgs("alice", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "role"}).
				AddRow(7, "alice", string(hash), "user"))

		user, err := service.Login("alice", "s3cret")

		assert.NoError(t, err)
		assert.Equal(t, int64(7), user.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wrong password", func(t *testing.T) {
		storage, mock := setupMockDB(t)
		defer storage.Close()
		service := NewUserService(storage, nil)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users`")).
			WithArgs("alice", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "role"}).
				AddRow(7, "alice", string(hash), "user"))

		_, err := service.Login("alice", "wrong")

		assert.ErrorIs(t, err, ErrBadCredentials)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown username reads the same as a wrong password", func(t *testing.T) {
		storage, mock := setupMockDB(t)
		defer storage.Close()
		service := NewUserService(storage, nil)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users`")).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := service.Login("nobody", "s3cret")

		assert.ErrorIs(t, err, ErrBadCredentials)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserService_GetByID(t *testing.T) {
	storage, mock := setupMockDB(t)
	defer storage.Close()
	service := NewUserService(storage, nil)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users`")).
		WillReturnError(gorm.ErrRecordNotFound)

	_, err := service.GetByID(404)

	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
