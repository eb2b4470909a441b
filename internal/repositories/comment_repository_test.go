package repositories

import (
	"testing"
	"time"

	"github.com/sgallard/picstream/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReplyValidation(t *testing.T) {
	repo := NewPostgresCommentRepository(newTestDB(t))
	postA := "64f000000000000000000001"
	postB := "64f000000000000000000002"

	root := &models.Comment{PostID: postA, UserID: 1, Content: "nice shot"}
	require.NoError(t, repo.CreateComment(root))

	t.Run("reply to same post succeeds", func(t *testing.T) {
		reply := &models.Comment{PostID: postA, UserID: 2, ParentID: &root.ID, Content: "agreed"}
		require.NoError(t, repo.CreateComment(reply))
	})

	t.Run("reply across posts is rejected", func(t *testing.T) {
		reply := &models.Comment{PostID: postB, UserID: 2, ParentID: &root.ID, Content: "wrong post"}
		assert.ErrorIs(t, repo.CreateComment(reply), ErrInvalidReference)
	})

	t.Run("missing parent is rejected", func(t *testing.T) {
		missing := uint(9999)
		reply := &models.Comment{PostID: postA, UserID: 2, ParentID: &missing, Content: "orphan"}
		assert.ErrorIs(t, repo.CreateComment(reply), ErrInvalidReference)
	})

	t.Run("reply to a reply is rejected", func(t *testing.T) {
		reply := &models.Comment{PostID: postA, UserID: 2, ParentID: &root.ID, Content: "first level"}
		require.NoError(t, repo.CreateComment(reply))

		nested := &models.Comment{PostID: postA, UserID: 3, ParentID: &reply.ID, Content: "too deep"}
		assert.ErrorIs(t, repo.CreateComment(nested), ErrInvalidReference)
	})
}

func TestDeleteRootCascadesToReplies(t *testing.T) {
	repo := NewPostgresCommentRepository(newTestDB(t))
	postID := "64f000000000000000000001"

	root := &models.Comment{PostID: postID, UserID: 1, Content: "root"}
	require.NoError(t, repo.CreateComment(root))
	for i := 0; i < 3; i++ {
		reply := &models.Comment{PostID: postID, UserID: 2, ParentID: &root.ID, Content: "reply"}
		require.NoError(t, repo.CreateComment(reply))
	}

	require.NoError(t, repo.DeleteCommentTree(root.ID))

	roots, err := repo.GetRootComments(postID)
	require.NoError(t, err)
	assert.Empty(t, roots)

	replies, err := repo.GetReplies(root.ID)
	require.NoError(t, err)
	assert.Empty(t, replies)

	count, err := repo.CountByPostID(postID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestDeleteReplyLeavesRoot(t *testing.T) {
	repo := NewPostgresCommentRepository(newTestDB(t))
	postID := "64f000000000000000000001"

	root := &models.Comment{PostID: postID, UserID: 1, Content: "root"}
	require.NoError(t, repo.CreateComment(root))
	reply := &models.Comment{PostID: postID, UserID: 2, ParentID: &root.ID, Content: "reply"}
	require.NoError(t, repo.CreateComment(reply))

	require.NoError(t, repo.DeleteCommentTree(reply.ID))

	roots, err := repo.GetRootComments(postID)
	require.NoError(t, err)
	assert.Len(t, roots, 1)
}

func TestDeleteMissingCommentIsNotFound(t *testing.T) {
	repo := NewPostgresCommentRepository(newTestDB(t))
	assert.ErrorIs(t, repo.DeleteCommentTree(42), ErrNotFound)
}

func TestCountForPosts(t *testing.T) {
	repo := NewPostgresCommentRepository(newTestDB(t))
	postA := "64f000000000000000000001"
	postB := "64f000000000000000000002"

	root := &models.Comment{PostID: postA, UserID: 1, Content: "root"}
	require.NoError(t, repo.CreateComment(root))
	reply := &models.Comment{PostID: postA, UserID: 2, ParentID: &root.ID, Content: "reply"}
	require.NoError(t, repo.CreateComment(reply))
	other := &models.Comment{PostID: postB, UserID: 1, Content: "solo"}
	require.NoError(t, repo.CreateComment(other))

	counts, err := repo.CountForPosts([]string{postA, postB, "64f000000000000000000003"})
	require.NoError(t, err)
	// Replies count toward the post total.
	assert.Equal(t, int64(2), counts[postA])
	assert.Equal(t, int64(1), counts[postB])
	assert.Equal(t, int64(0), counts["64f000000000000000000003"])

	empty, err := repo.CountForPosts([]string{})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGetThreadsByPostIDNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresCommentRepository(db)
	postID := "64f000000000000000000001"

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	oldRoot := &models.Comment{PostID: postID, UserID: 1, Content: "old root", CreatedAt: base}
	require.NoError(t, repo.CreateComment(oldRoot))
	newRoot := &models.Comment{PostID: postID, UserID: 1, Content: "new root", CreatedAt: base.Add(time.Hour)}
	require.NoError(t, repo.CreateComment(newRoot))

	oldReply := &models.Comment{PostID: postID, UserID: 2, ParentID: &oldRoot.ID, Content: "old reply", CreatedAt: base.Add(10 * time.Minute)}
	require.NoError(t, repo.CreateComment(oldReply))
	newReply := &models.Comment{PostID: postID, UserID: 3, ParentID: &oldRoot.ID, Content: "new reply", CreatedAt: base.Add(20 * time.Minute)}
	require.NoError(t, repo.CreateComment(newReply))

	threads, err := repo.GetThreadsByPostID(postID)
	require.NoError(t, err)
	require.Len(t, threads, 2)

	assert.Equal(t, "new root", threads[0].Content)
	assert.Equal(t, "old root", threads[1].Content)
	assert.Empty(t, threads[0].Replies)

	require.Len(t, threads[1].Replies, 2)
	assert.Equal(t, "new reply", threads[1].Replies[0].Content)
	assert.Equal(t, "old reply", threads[1].Replies[1].Content)
}
