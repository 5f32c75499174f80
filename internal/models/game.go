package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const DefaultGameImage = "https://via.placeholder.com/150"

// StringList is an ordered list of tags stored as a JSON array column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type %T for StringList", src)
	}
}

type Game struct {
	ID          int64      `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"size:255;not null"`
	Description string     `json:"description" gorm:"type:text;not null"`
	ImageURL    string     `json:"image_url" gorm:"size:500"`
	Price       float64    `json:"price" gorm:"default:0"`
	Categories  StringList `json:"categories" gorm:"type:json"`
	Platforms   StringList `json:"platforms" gorm:"type:json"`
	OwnerID     int64      `json:"owner_id" gorm:"index;not null"`
	Owner       *User      `json:"-" gorm:"foreignKey:OwnerID"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// GameResponse is the public projection of a game together with its
// interaction state. Popularity is derived from the vote sets on every read
// and is never persisted.
type GameResponse struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	ImageURL    string           `json:"image_url"`
	Price       float64          `json:"price"`
	Categories  StringList       `json:"categories"`
	Platforms   StringList       `json:"platforms"`
	Owner       UserRef          `json:"owner"`
	Likes       []int64          `json:"likes"`
	Dislikes    []int64          `json:"dislikes"`
	Reports     []ReportResponse `json:"reports"`
	IsReported  bool             `json:"is_reported"`
	Popularity  int              `json:"popularity"`
	CreatedAt   time.Time        `json:"created_at"`
}
