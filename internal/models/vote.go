package models

import "time"

// Vote polarity values as exposed to clients
const (
	VoteUp   = "up"
	VoteDown = "down"
)

// Vote represents a single user's vote on a post.
// At most one row exists per (post, user) pair; flipping polarity
// updates the row in place rather than inserting a second one.
type Vote struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"index;uniqueIndex:idx_post_user_vote"` // MongoDB ObjectID as string
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_post_user_vote"`
	IsUpvote  bool      `json:"is_upvote"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Polarity returns the client-facing polarity string for the vote.
func (v Vote) Polarity() string {
	if v.IsUpvote {
		return VoteUp
	}
	return VoteDown
}

// VoteCounts holds the tallied votes for a single post
type VoteCounts struct {
	Upvotes   int64 `json:"upvotes"`
	Downvotes int64 `json:"downvotes"`
}

// VoteRequest defines the request body for casting, flipping or retracting a vote
type VoteRequest struct {
	Polarity string `json:"polarity" validate:"required,oneof=up down"`
}
