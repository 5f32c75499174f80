package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gamehub/internal/models"
	"gamehub/internal/storage/mysql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VoteService struct {
	storage *mysql.Storage
	log     *slog.Logger
}

func NewVoteService(s *mysql.Storage, log *slog.Logger) *VoteService {
	return &VoteService{
		storage: s,
		log:     log,
	}
}

// Cast records a user's vote on a game. Replacement semantics: casting the
// same vote twice is a no-op, casting the other vote moves the user between
// the sets. The write is a single upsert keyed on (game_id, user_id), so
// concurrent votes cannot lose updates.
func (s *VoteService) Cast(gameID, userID int64, vote models.VoteType) (*models.VoteResult, error) {
	const op = "services.votes.Cast"

	if !vote.Valid() {
		return nil, ErrInvalidVote
	}

	var g models.Game
	if err := s.storage.DB.Select("id").First(&g, gameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	gv := models.GameVote{
		GameID:    gameID,
		UserID:    userID,
		Vote:      vote,
		CreatedAt: time.Now(),
	}

	err := s.storage.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "game_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"vote": vote}),
	}).Create(&gv).Error
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	likes, dislikes, err := s.counts(gameID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.VoteResult{
		Likes:    likes,
		Dislikes: dislikes,
		UserVote: vote,
	}, nil
}

func (s *VoteService) counts(gameID int64) (int, int, error) {
	var likes, dislikes int64

	err := s.storage.DB.Model(&models.GameVote{}).
		Where("game_id = ? AND vote = ?", gameID, models.VoteLike).
		Count(&likes).Error
	if err != nil {
		return 0, 0, err
	}

	err = s.storage.DB.Model(&models.GameVote{}).
		Where("game_id = ? AND vote = ?", gameID, models.VoteDislike).
		Count(&dislikes).Error
	if err != nil {
		return 0, 0, err
	}

	return int(likes), int(dislikes), nil
}
