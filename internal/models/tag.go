package models

import "time"

// Tag is a reusable label. Names are matched case-sensitively; tags are
// never deleted when a post's tag list changes.
type Tag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;size:50"`
	CreatedAt time.Time `json:"created_at"`
}

// PostTag is the join row associating a post with a tag
type PostTag struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	PostID string `json:"post_id" gorm:"index;uniqueIndex:idx_post_tag"` // MongoDB ObjectID as string
	TagID  uint   `json:"tag_id" gorm:"index;uniqueIndex:idx_post_tag"`
}
