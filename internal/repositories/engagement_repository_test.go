package repositories

import (
	"testing"

	"github.com/sgallard/picstream/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurgePostDataRemovesAllEngagementRows(t *testing.T) {
	db := newTestDB(t)
	votes := NewPostgresVoteRepository(db)
	comments := NewPostgresCommentRepository(db)
	tags := NewPostgresTagRepository(db)
	saves := NewPostgresSavedPostRepository(db)
	repo := NewPostgresEngagementRepository(db, votes, comments, tags, saves)

	deleted := "64f000000000000000000001"
	kept := "64f000000000000000000002"

	for _, postID := range []string{deleted, kept} {
		_, err := votes.CastVote(postID, 1, true)
		require.NoError(t, err)
		require.NoError(t, comments.CreateComment(&models.Comment{PostID: postID, UserID: 1, Content: "hi"}))
		require.NoError(t, tags.ReplacePostTags(postID, []string{"funny"}))
		_, err = saves.SavePost(1, postID)
		require.NoError(t, err)
	}

	require.NoError(t, repo.PurgePostData(deleted))

	counts, err := votes.GetVoteCounts(deleted)
	require.NoError(t, err)
	assert.Equal(t, models.VoteCounts{}, counts)

	commentCount, err := comments.CountByPostID(deleted)
	require.NoError(t, err)
	assert.Equal(t, int64(0), commentCount)

	names, err := tags.GetTagNamesByPostID(deleted)
	require.NoError(t, err)
	assert.Empty(t, names)

	saved, err := saves.IsPostSaved(1, deleted)
	require.NoError(t, err)
	assert.False(t, saved)

	// The other post's rows, and the tag itself, survive.
	counts, err = votes.GetVoteCounts(kept)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Upvotes)

	var tagCount int64
	require.NoError(t, db.Model(&models.Tag{}).Count(&tagCount).Error)
	assert.Equal(t, int64(1), tagCount)
}
