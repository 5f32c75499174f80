package models

import "time"

// GameReport records one user's complaint about a game. The unique index
// enforces at most one report per user per game for the game's lifetime.
type GameReport struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	GameID    int64     `json:"game_id" gorm:"uniqueIndex:idx_game_user_report;not null"`
	UserID    int64     `json:"user_id" gorm:"uniqueIndex:idx_game_user_report;not null"`
	User      *User     `json:"-" gorm:"foreignKey:UserID"`
	Reason    string    `json:"reason" gorm:"size:500;not null"`
	CreatedAt time.Time `json:"created_at"`
}

type ReportResponse struct {
	User      UserRef   `json:"user"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}
