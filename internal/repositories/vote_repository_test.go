package repositories

import (
	"testing"

	"github.com/sgallard/picstream/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetVoteCountsNoVotes(t *testing.T) {
	repo := NewPostgresVoteRepository(newTestDB(t))

	counts, err := repo.GetVoteCounts("64f000000000000000000001")
	require.NoError(t, err)
	assert.Equal(t, int64(0), counts.Upvotes)
	assert.Equal(t, int64(0), counts.Downvotes)
}

func TestCastVoteThenFlipLeavesSingleRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresVoteRepository(db)
	postID := "64f000000000000000000001"

	_, err := repo.CastVote(postID, 1, true)
	require.NoError(t, err)

	flipped, err := repo.FlipVote(postID, 1, false)
	require.NoError(t, err)
	assert.False(t, flipped.IsUpvote)

	vote, err := repo.GetUserVote(postID, 1)
	require.NoError(t, err)
	require.NotNil(t, vote)
	assert.Equal(t, models.VoteDown, vote.Polarity())

	counts, err := repo.GetVoteCounts(postID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), counts.Upvotes)
	assert.Equal(t, int64(1), counts.Downvotes)

	var total int64
	require.NoError(t, db.Model(&models.Vote{}).Count(&total).Error)
	assert.Equal(t, int64(1), total)
}

func TestCastVoteSamePolarityTwiceConflicts(t *testing.T) {
	repo := NewPostgresVoteRepository(newTestDB(t))
	postID := "64f000000000000000000001"

	_, err := repo.CastVote(postID, 1, true)
	require.NoError(t, err)

	_, err = repo.CastVote(postID, 1, true)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCastVoteOppositePolarityFlips(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresVoteRepository(db)
	postID := "64f000000000000000000001"

	_, err := repo.CastVote(postID, 1, true)
	require.NoError(t, err)

	vote, err := repo.CastVote(postID, 1, false)
	require.NoError(t, err)
	assert.False(t, vote.IsUpvote)

	var total int64
	require.NoError(t, db.Model(&models.Vote{}).Count(&total).Error)
	assert.Equal(t, int64(1), total)
}

func TestFlipVoteWithoutExistingRowCasts(t *testing.T) {
	repo := NewPostgresVoteRepository(newTestDB(t))
	postID := "64f000000000000000000001"

	vote, err := repo.FlipVote(postID, 7, true)
	require.NoError(t, err)
	assert.True(t, vote.IsUpvote)

	counts, err := repo.GetVoteCounts(postID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Upvotes)
}

func TestRetractVotePolarityMismatchIsNoOp(t *testing.T) {
	repo := NewPostgresVoteRepository(newTestDB(t))
	postID := "64f000000000000000000001"

	_, err := repo.CastVote(postID, 1, true)
	require.NoError(t, err)

	// Retracting the polarity that was never cast leaves the vote alone.
	require.NoError(t, repo.RetractVote(postID, 1, false))
	vote, err := repo.GetUserVote(postID, 1)
	require.NoError(t, err)
	assert.NotNil(t, vote)

	require.NoError(t, repo.RetractVote(postID, 1, true))
	vote, err = repo.GetUserVote(postID, 1)
	require.NoError(t, err)
	assert.Nil(t, vote)
}

func TestGetVoteCountsForPostsGroupsInOneQuery(t *testing.T) {
	repo := NewPostgresVoteRepository(newTestDB(t))
	postA := "64f000000000000000000001"
	postB := "64f000000000000000000002"

	for userID := uint(1); userID <= 3; userID++ {
		_, err := repo.CastVote(postA, userID, true)
		require.NoError(t, err)
	}
	_, err := repo.CastVote(postA, 4, false)
	require.NoError(t, err)
	_, err = repo.CastVote(postB, 1, false)
	require.NoError(t, err)

	counts, err := repo.GetVoteCountsForPosts([]string{postA, postB, "64f000000000000000000003"})
	require.NoError(t, err)
	assert.Equal(t, models.VoteCounts{Upvotes: 3, Downvotes: 1}, counts[postA])
	assert.Equal(t, models.VoteCounts{Upvotes: 0, Downvotes: 1}, counts[postB])
	assert.Equal(t, models.VoteCounts{}, counts["64f000000000000000000003"])
}

func TestGetUserVotesForPosts(t *testing.T) {
	repo := NewPostgresVoteRepository(newTestDB(t))
	postA := "64f000000000000000000001"
	postB := "64f000000000000000000002"

	_, err := repo.CastVote(postA, 1, true)
	require.NoError(t, err)
	_, err = repo.CastVote(postB, 2, false)
	require.NoError(t, err)

	votes, err := repo.GetUserVotesForPosts(1, []string{postA, postB})
	require.NoError(t, err)
	require.Len(t, votes, 1)
	assert.True(t, votes[postA].IsUpvote)

	empty, err := repo.GetUserVotesForPosts(1, []string{})
	require.NoError(t, err)
	assert.Empty(t, empty)
}
