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

type CommentService struct {
	storage *mysql.Storage
	log     *slog.Logger
}

func NewCommentService(s *mysql.Storage, log *slog.Logger) *CommentService {
	return &CommentService{
		storage: s,
		log:     log,
	}
}

// Add creates a comment on an existing game. A reply must point at a comment
// that exists and belongs to the same game.
func (s *CommentService) Add(gameID, userID int64, text string, parentID *int64) (*models.CommentResponse, error) {
	const op = "services.comments.Add"

	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyComment
	}

	var g models.Game
	if err := s.storage.DB.Select("id").First(&g, gameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if parentID != nil {
		var parent models.Comment
		if err := s.storage.DB.First(&parent, *parentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if parent.GameID != gameID {
			return nil, ErrParentMismatch
		}
	}

	comment := models.Comment{
		GameID:    gameID,
		UserID:    userID,
		Text:      text,
		ParentID:  parentID,
		CreatedAt: time.Now(),
	}

	if err := s.storage.DB.Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var author models.User
	if err := s.storage.DB.First(&author, userID).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.CommentResponse{
		ID:        comment.ID,
		Game:      comment.GameID,
		User:      author.Ref(),
		Text:      comment.Text,
		Parent:    comment.ParentID,
		CreatedAt: comment.CreatedAt,
	}, nil
}

// List returns the flat chronological comment list for a game, oldest first.
// Callers rebuild threads from the parent references.
func (s *CommentService) List(gameID int64) ([]models.CommentResponse, error) {
	const op = "services.comments.List"

	var comments []models.Comment
	err := s.storage.DB.
		Where("game_id = ?", gameID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	responses := make([]models.CommentResponse, 0, len(comments))
	if len(comments) == 0 {
		return responses, nil
	}

	authorIDs := make([]int64, 0, len(comments))
	for _, c := range comments {
		authorIDs = append(authorIDs, c.UserID)
	}

	var authors []models.User
	if err := s.storage.DB.Where("id IN ?", authorIDs).Find(&authors).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	refs := make(map[int64]models.UserRef, len(authors))
	for i := range authors {
		refs[authors[i].ID] = authors[i].Ref()
	}

	for _, c := range comments {
		ref, ok := refs[c.UserID]
		if !ok {
			ref = models.UserRef{ID: c.UserID}
		}
		responses = append(responses, models.CommentResponse{
			ID:        c.ID,
			Game:      c.GameID,
			User:      ref,
			Text:      c.Text,
			Parent:    c.ParentID,
			CreatedAt: c.CreatedAt,
		})
	}

	return responses, nil
}

// Delete removes a single comment. Admins may delete anything, including a
// parent with replies (the replies stay behind, pointing at the gone parent).
// Owners may delete only their own comments and only while nothing has
// replied to them. Nobody else may delete at all.
func (s *CommentService) Delete(commentID, actorID int64, role models.UserRole) error {
	const op = "services.comments.Delete"

	var comment models.Comment
	if err := s.storage.DB.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	isAdmin := role == models.RoleAdmin
	isOwner := comment.UserID == actorID

	if !isOwner && !isAdmin {
		return ErrNotCommentOwner
	}

	if !isAdmin {
		var replies int64
		err := s.storage.DB.Model(&models.Comment{}).
			Where("parent_id = ?", commentID).
			Count(&replies).Error
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if replies > 0 {
			return ErrHasReplies
		}
	}

	if err := s.storage.DB.Delete(&models.Comment{}, commentID).Error; err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
