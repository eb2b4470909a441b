package models

// FeedItem is a post enriched with aggregated counts, tags, author info
// and viewer-specific state. It is derived per request, never stored.
type FeedItem struct {
	Post
	Author       UserCompact `json:"author"`
	Upvotes      int64       `json:"upvotes"`
	Downvotes    int64       `json:"downvotes"`
	CommentCount int64       `json:"comment_count"`
	Tags         []string    `json:"tags"`
	ViewerVote   *string     `json:"viewer_vote"` // "up", "down" or null
	IsSaved      bool        `json:"is_saved"`
}

// NetScore returns upvotes minus downvotes.
func (f FeedItem) NetScore() int64 {
	return f.Upvotes - f.Downvotes
}

// EngagementVolume returns upvotes plus downvotes.
func (f FeedItem) EngagementVolume() int64 {
	return f.Upvotes + f.Downvotes
}
