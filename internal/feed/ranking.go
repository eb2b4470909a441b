package feed

import (
	"sort"
	"time"

	"github.com/sgallard/picstream/internal/models"
)

// Feed ranking modes
const (
	ModeFresh    = "fresh"
	ModeTrending = "trending"
	ModePopular  = "popular"
)

// TrendingWindow is the recency window for trending candidates.
const TrendingWindow = 24 * time.Hour

// ValidMode reports whether mode names a known ranking mode.
func ValidMode(mode string) bool {
	return mode == ModeFresh || mode == ModeTrending || mode == ModePopular
}

// Rank orders assembled feed items for the given mode.
//
//   - fresh: identity; the input is already createdAt-descending.
//   - trending: drops items older than TrendingWindow relative to now,
//     then sorts by engagement volume (upvotes + downvotes) descending.
//   - popular: no recency filter; net score (upvotes - downvotes)
//     descending, stable so ties keep their fetch order.
//
// Trending ranking by volume while popular ranks by net score is
// deliberate product behavior, not an oversight to normalize.
func Rank(items []models.FeedItem, mode string, now time.Time) []models.FeedItem {
	switch mode {
	case ModeTrending:
		cutoff := now.Add(-TrendingWindow)
		recent := make([]models.FeedItem, 0, len(items))
		for _, item := range items {
			if item.CreatedAt.After(cutoff) {
				recent = append(recent, item)
			}
		}
		sort.SliceStable(recent, func(i, j int) bool {
			return recent[i].EngagementVolume() > recent[j].EngagementVolume()
		})
		return recent
	case ModePopular:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].NetScore() > items[j].NetScore()
		})
	}
	return items
}
