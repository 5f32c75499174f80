package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gamehub/internal/models"
	"gamehub/internal/storage/mysql"

	"gorm.io/gorm"
)

type ReportService struct {
	storage *mysql.Storage
	log     *slog.Logger
}

func NewReportService(s *mysql.Storage, log *slog.Logger) *ReportService {
	return &ReportService{
		storage: s,
		log:     log,
	}
}

// Report files a complaint against a game. One report per user per game for
// the game's lifetime; the unique index backstops the pre-check when two
// requests race.
func (s *ReportService) Report(gameID, userID int64, reason string) (int, error) {
	const op = "services.reports.Report"

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return 0, ErrEmptyReason
	}

	var g models.Game
	if err := s.storage.DB.Select("id").First(&g, gameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrGameNotFound
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var existing models.GameReport
	err := s.storage.DB.
		Where("game_id = ? AND user_id = ?", gameID, userID).
		First(&existing).Error
	if err == nil {
		return 0, ErrAlreadyReported
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	report := models.GameReport{
		GameID:    gameID,
		UserID:    userID,
		Reason:    reason,
		CreatedAt: time.Now(),
	}

	if err := s.storage.DB.Create(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, ErrAlreadyReported
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var count int64
	err = s.storage.DB.Model(&models.GameReport{}).
		Where("game_id = ?", gameID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return int(count), nil
}

// ListReported returns every game with at least one report, most recently
// reported first. A game's place is determined by its newest report, ties
// broken by game id.
func (s *ReportService) ListReported() ([]models.GameResponse, error) {
	const op = "services.reports.ListReported"

	var games []models.Game
	err := s.storage.DB.Preload("Owner").
		Joins("JOIN game_reports ON game_reports.game_id = games.id").
		Group("games.id").
		Order("MAX(game_reports.created_at) DESC, games.id ASC").
		Find(&games).Error
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	responses, err := projectGames(s.storage.DB, games)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return responses, nil
}
