package feed

import (
	"testing"
	"time"

	"github.com/sgallard/picstream/internal/models"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func feedItem(title string, createdAt time.Time, up, down int64) models.FeedItem {
	return models.FeedItem{
		Post: models.Post{
			ID:        primitive.NewObjectID(),
			Title:     title,
			CreatedAt: createdAt,
		},
		Upvotes:   up,
		Downvotes: down,
	}
}

func titles(items []models.FeedItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Title
	}
	return out
}

func TestTrendingExcludesPostsOutsideWindow(t *testing.T) {
	now := time.Now()

	// A: 25h old, 10 up / 2 down. B: 1h old, 1 up / 0 down.
	a := feedItem("a", now.Add(-25*time.Hour), 10, 2)
	b := feedItem("b", now.Add(-1*time.Hour), 1, 0)

	ranked := Rank([]models.FeedItem{a, b}, ModeTrending, now)
	assert.Equal(t, []string{"b"}, titles(ranked))
}

func TestTrendingSortsByEngagementVolumeNotNetScore(t *testing.T) {
	now := time.Now()

	// Heavily downvoted post has higher volume than a mildly upvoted one.
	controversial := feedItem("controversial", now.Add(-time.Hour), 5, 20)
	liked := feedItem("liked", now.Add(-time.Hour), 6, 0)

	ranked := Rank([]models.FeedItem{liked, controversial}, ModeTrending, now)
	assert.Equal(t, []string{"controversial", "liked"}, titles(ranked))
}

func TestPopularSortsByNetScoreWithoutRecencyFilter(t *testing.T) {
	now := time.Now()

	a := feedItem("a", now.Add(-25*time.Hour), 10, 2) // net 8
	b := feedItem("b", now.Add(-1*time.Hour), 1, 0)   // net 1

	ranked := Rank([]models.FeedItem{a, b}, ModePopular, now)
	assert.Equal(t, []string{"a", "b"}, titles(ranked))
}

func TestPopularTiesKeepFetchOrder(t *testing.T) {
	now := time.Now()

	first := feedItem("first", now, 3, 1)   // net 2
	second := feedItem("second", now, 2, 0) // net 2
	third := feedItem("third", now, 5, 0)   // net 5

	ranked := Rank([]models.FeedItem{first, second, third}, ModePopular, now)
	assert.Equal(t, []string{"third", "first", "second"}, titles(ranked))
}

func TestFreshIsIdentity(t *testing.T) {
	now := time.Now()

	items := []models.FeedItem{
		feedItem("newest", now, 0, 0),
		feedItem("older", now.Add(-time.Hour), 100, 0),
	}

	ranked := Rank(items, ModeFresh, now)
	assert.Equal(t, []string{"newest", "older"}, titles(ranked))
}

func TestValidMode(t *testing.T) {
	assert.True(t, ValidMode(ModeFresh))
	assert.True(t, ValidMode(ModeTrending))
	assert.True(t, ValidMode(ModePopular))
	assert.False(t, ValidMode("spicy"))
}
