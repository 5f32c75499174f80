package services

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"gamehub/internal/models"
	"gamehub/internal/storage/mysql"

	"gorm.io/gorm"
)

// Page sizes callers may request; anything else falls back to DefaultLimit.
var allowedLimits = map[int]bool{5: true, 10: true, 20: true, 50: true}

const DefaultLimit = 10

const (
	SortNewest     = "newest"
	SortOldest     = "oldest"
	SortPriceHigh  = "price-high"
	SortPriceLow   = "price-low"
	SortPopularity = "popularity"
)

type GameService struct {
	storage *mysql.Storage
	log     *slog.Logger
}

func NewGameService(s *mysql.Storage, log *slog.Logger) *GameService {
	return &GameService{
		storage: s,
		log:     log,
	}
}

func (s *GameService) Create(ownerID int64, g *models.Game) (*models.GameResponse, error) {
	const op = "services.games.Create"

	if strings.TrimSpace(g.Title) == "" || strings.TrimSpace(g.Description) == "" {
		return nil, ErrMissingFields
	}

	if g.ImageURL == "" {
		g.ImageURL = models.DefaultGameImage
	}
	if g.Categories == nil {
		g.Categories = models.StringList{}
	}
	if g.Platforms == nil {
		g.Platforms = models.StringList{}
	}

	g.OwnerID = ownerID
	timeNow := time.Now()
	g.CreatedAt = timeNow
	g.UpdatedAt = timeNow

	if err := s.storage.DB.Create(g).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.GetByID(g.ID)
}

func (s *GameService) GetByID(id int64) (*models.GameResponse, error) {
	const op = "services.games.GetByID"

	var g models.Game
	if err := s.storage.DB.Preload("Owner").First(&g, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	responses, err := s.project([]models.Game{g})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &responses[0], nil
}

func (s *GameService) GetMine(ownerID int64) ([]models.GameResponse, error) {
	const op = "services.games.GetMine"

	var games []models.Game
	err := s.storage.DB.Preload("Owner").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Find(&games).Error
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	responses, err := s.project(games)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return responses, nil
}

// GetAll returns the raw catalog without interaction state. Used to build the
// AI assistant's system prompt and by the listing tests.
func (s *GameService) GetAll() ([]models.Game, error) {
	const op = "services.games.GetAll"

	var games []models.Game
	if err := s.storage.DB.Find(&games).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return games, nil
}

// ClampLimit narrows a requested page size to the allowed set.
func ClampLimit(limit int) int {
	if allowedLimits[limit] {
		return limit
	}
	return DefaultLimit
}

// List returns one page of the catalog plus the total item count. The limit
// is clamped before the offset is computed, so an out-of-set limit cannot
// shift the page window.
func (s *GameService) List(page, limit int, sort string) ([]models.GameResponse, int, error) {
	const op = "services.games.List"

	if page < 1 {
		return nil, 0, ErrInvalidPage
	}
	limit = ClampLimit(limit)
	offset := (page - 1) * limit

	var count int64
	if err := s.storage.DB.Model(&models.Game{}).Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	if count == 0 {
		return []models.GameResponse{}, 0, nil
	}

	var order string
	switch sort {
	case SortOldest:
		order = "created_at ASC, id ASC"
	case SortPriceHigh:
		order = "price DESC, id ASC"
	case SortPriceLow:
		order = "price ASC, id ASC"
	case SortPopularity:
		// Popularity is |likes| - |dislikes|, derived from the vote rows at
		// read time. The id tie-break keeps equal scores in a stable order.
		order = "(SELECT COALESCE(SUM(CASE WHEN vote = 'like' THEN 1 ELSE -1 END), 0)" +
			" FROM game_votes WHERE game_votes.game_id = games.id) DESC, id ASC"
	case SortNewest, "":
		order = "created_at DESC, id DESC"
	default:
		order = "created_at DESC, id DESC"
	}

	var games []models.Game
	err := s.storage.DB.Preload("Owner").
		Order(order).
		Offset(offset).
		Limit(limit).
		Find(&games).Error
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	responses, err := s.project(games)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return responses, int(count), nil
}

func (s *GameService) Delete(id, actorID int64, role models.UserRole) error {
	const op = "services.games.Delete"

	var g models.Game
	if err := s.storage.DB.First(&g, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGameNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if g.OwnerID != actorID && role != models.RoleAdmin {
		return ErrNotGameOwner
	}

	tx := s.storage.DB.Begin()
	if tx.Error != nil {
		return fmt.Errorf("%s: %w", op, tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("game_id = ?", id).Delete(&models.GameVote{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := tx.Where("game_id = ?", id).Delete(&models.GameReport{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := tx.Where("game_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := tx.Delete(&models.Game{}, id).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// TotalPages computes pagination metadata the same way everywhere: zero items
// means zero pages, otherwise ceil(total/limit).
func TotalPages(total, limit int) int {
	if total == 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}

// project attaches interaction state (votes, reports, popularity) to a batch
// of games in two queries, regardless of batch size.
func (s *GameService) project(games []models.Game) ([]models.GameResponse, error) {
	return projectGames(s.storage.DB, games)
}

func projectGames(db *gorm.DB, games []models.Game) ([]models.GameResponse, error) {
	responses := make([]models.GameResponse, 0, len(games))
	if len(games) == 0 {
		return responses, nil
	}

	ids := make([]int64, 0, len(games))
	for _, g := range games {
		ids = append(ids, g.ID)
	}

	var votes []models.GameVote
	if err := db.Where("game_id IN ?", ids).Order("id ASC").Find(&votes).Error; err != nil {
		return nil, err
	}

	var reports []models.GameReport
	err := db.Preload("User").
		Where("game_id IN ?", ids).
		Order("created_at ASC, id ASC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}

	likesByGame := make(map[int64][]int64)
	dislikesByGame := make(map[int64][]int64)
	for _, v := range votes {
		if v.Vote == models.VoteLike {
			likesByGame[v.GameID] = append(likesByGame[v.GameID], v.UserID)
		} else {
			dislikesByGame[v.GameID] = append(dislikesByGame[v.GameID], v.UserID)
		}
	}

	reportsByGame := make(map[int64][]models.ReportResponse)
	for _, r := range reports {
		ref := models.UserRef{ID: r.UserID}
		if r.User != nil {
			ref = r.User.Ref()
		}
		reportsByGame[r.GameID] = append(reportsByGame[r.GameID], models.ReportResponse{
			User:      ref,
			Reason:    r.Reason,
			CreatedAt: r.CreatedAt,
		})
	}

	for _, g := range games {
		likes := likesByGame[g.ID]
		if likes == nil {
			likes = []int64{}
		}
		dislikes := dislikesByGame[g.ID]
		if dislikes == nil {
			dislikes = []int64{}
		}
		gameReports := reportsByGame[g.ID]
		if gameReports == nil {
			gameReports = []models.ReportResponse{}
		}

		owner := models.UserRef{ID: g.OwnerID}
		if g.Owner != nil {
			owner = g.Owner.Ref()
		}

		responses = append(responses, models.GameResponse{
			ID:          g.ID,
			Title:       g.Title,
			Description: g.Description,
			ImageURL:    g.ImageURL,
			Price:       g.Price,
			Categories:  g.Categories,
			Platforms:   g.Platforms,
			Owner:       owner,
			Likes:       likes,
			Dislikes:    dislikes,
			Reports:     gameReports,
			IsReported:  len(gameReports) > 0,
			Popularity:  len(likes) - len(dislikes),
			CreatedAt:   g.CreatedAt,
		})
	}

	return responses, nil
}
