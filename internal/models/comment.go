package models

import "time"

// Comment represents a comment on a post. A nil ParentID marks a root
// comment; replies point at their root via ParentID. Nesting is capped
// at two levels: a reply can never be the parent of another comment.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"index"` // MongoDB ObjectID as string
	UserID    uint      `json:"user_id" gorm:"index"`
	ParentID  *uint     `json:"parent_id,omitempty" gorm:"index"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsRoot reports whether the comment starts a thread.
func (c Comment) IsRoot() bool {
	return c.ParentID == nil
}

// CommentThread is a root comment together with its replies, newest first
type CommentThread struct {
	Comment
	Replies []Comment `json:"replies"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=500"`
	ParentID *uint  `json:"parent_id,omitempty"`
}

// UpdateCommentRequest defines the request body for updating an existing comment
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}
