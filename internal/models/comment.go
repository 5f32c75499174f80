package models

import "time"

// Comment is a flat threaded discussion entry. ParentID is a weak reference
// to another comment on the same game; threads are rebuilt from it on the
// client, so there is no FK constraint and no cascade.
type Comment struct {
	ID        int64     `gorm:"primaryKey"`
	GameID    int64     `gorm:"index;not null"`
	UserID    int64     `gorm:"index;not null"`
	Text      string    `gorm:"type:text;not null"`
	ParentID  *int64    `gorm:"index"`
	CreatedAt time.Time
}

type CommentResponse struct {
	ID        int64     `json:"id"`
	Game      int64     `json:"game"`
	User      UserRef   `json:"user"`
	Text      string    `json:"text"`
	Parent    *int64    `json:"parent_comment"`
	CreatedAt time.Time `json:"created_at"`
}
