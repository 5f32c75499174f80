package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gamehub/internal/models"
	"gamehub/internal/storage/mysql"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	storage *mysql.Storage
	log     *slog.Logger
}

func NewUserService(s *mysql.Storage, log *slog.Logger) *UserService {
	return &UserService{
		storage: s,
		log:     log,
	}
}

func (s *UserService) Register(username, email, password string) (*models.User, error) {
	const op = "services.users.Register"

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		CreatedAt:    time.Now(),
	}

	if err := s.storage.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &user, nil
}

func (s *UserService) Login(username, password string) (*models.User, error) {
	const op = "services.users.Login"

	var user models.User
	if err := s.storage.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrBadCredentials
	}

	return &user, nil
}

func (s *UserService) GetByID(id int64) (*models.User, error) {
	const op = "services.users.GetByID"

	var user models.User
	if err := s.storage.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &user, nil
}
