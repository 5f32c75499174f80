package models

import "time"

type VoteType string

const (
	VoteLike    VoteType = "like"
	VoteDislike VoteType = "dislike"
)

func (v VoteType) Valid() bool {
	return v == VoteLike || v == VoteDislike
}

// GameVote holds one user's vote on one game. The (game_id, user_id) unique
// index keeps the like/dislike sets disjoint: recasting replaces the previous
// value in place instead of adding a second row.
type GameVote struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	GameID    int64     `json:"game_id" gorm:"uniqueIndex:idx_game_user_vote;not null"`
	UserID    int64     `json:"user_id" gorm:"uniqueIndex:idx_game_user_vote;not null"`
	Vote      VoteType  `json:"vote" gorm:"type:varchar(10);not null"`
	CreatedAt time.Time `json:"created_at"`
}

type VoteResult struct {
	Likes    int      `json:"likes"`
	Dislikes int      `json:"dislikes"`
	UserVote VoteType `json:"user_vote"`
}
