package feed

import (
	"context"
	"testing"

	"github.com/sgallard/picstream/internal/models"
	"github.com/sgallard/picstream/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type assemblerFixture struct {
	assembler *Assembler
	votes     repositories.VoteRepository
	comments  repositories.CommentRepository
	tags      repositories.TagRepository
	saves     repositories.SavedPostRepository
	users     repositories.UserRepository
}

func newAssemblerFixture(t *testing.T) *assemblerFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Vote{},
		&models.Comment{},
		&models.Tag{},
		&models.PostTag{},
		&models.SavedPost{},
	))

	users := repositories.NewPostgresUserRepository(db)
	votes := repositories.NewPostgresVoteRepository(db)
	comments := repositories.NewPostgresCommentRepository(db)
	tags := repositories.NewPostgresTagRepository(db)
	saves := repositories.NewPostgresSavedPostRepository(db)

	return &assemblerFixture{
		assembler: NewAssembler(users, votes, comments, tags, saves),
		votes:     votes,
		comments:  comments,
		tags:      tags,
		saves:     saves,
		users:     users,
	}
}

func (f *assemblerFixture) createUser(t *testing.T, name string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: name + "@example.com"}
	require.NoError(t, f.users.CreateUser(user))
	return user
}

func newPost(authorID uint, title string) models.Post {
	return models.Post{
		ID:     primitive.NewObjectID(),
		UserID: authorID,
		Title:  title,
	}
}

func TestAssembleEmptyInput(t *testing.T) {
	f := newAssemblerFixture(t)

	items, err := f.assembler.Assemble(context.Background(), nil, 0)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAssembleDefaultsForZeroEngagement(t *testing.T) {
	f := newAssemblerFixture(t)
	author := f.createUser(t, "ada")
	post := newPost(author.ID, "sunrise")

	items, err := f.assembler.Assemble(context.Background(), []models.Post{post}, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, int64(0), item.Upvotes)
	assert.Equal(t, int64(0), item.Downvotes)
	assert.Equal(t, int64(0), item.CommentCount)
	assert.Equal(t, []string{}, item.Tags)
	assert.Nil(t, item.ViewerVote)
	assert.False(t, item.IsSaved)
	assert.Equal(t, "ada", item.Author.Name)
}

func TestAssembleJoinsEngagementData(t *testing.T) {
	f := newAssemblerFixture(t)
	author := f.createUser(t, "ada")
	viewer := f.createUser(t, "bob")

	post := newPost(author.ID, "sunrise")
	other := newPost(author.ID, "sunset")
	postID := post.ID.Hex()

	_, err := f.votes.CastVote(postID, viewer.ID, true)
	require.NoError(t, err)
	_, err = f.votes.CastVote(postID, author.ID, false)
	require.NoError(t, err)

	root := &models.Comment{PostID: postID, UserID: viewer.ID, Content: "wow"}
	require.NoError(t, f.comments.CreateComment(root))
	reply := &models.Comment{PostID: postID, UserID: author.ID, ParentID: &root.ID, Content: "thanks"}
	require.NoError(t, f.comments.CreateComment(reply))

	require.NoError(t, f.tags.ReplacePostTags(postID, []string{"sky", "morning"}))
	_, err = f.saves.SavePost(viewer.ID, postID)
	require.NoError(t, err)

	items, err := f.assembler.Assemble(context.Background(), []models.Post{post, other}, viewer.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	item := items[0]
	assert.Equal(t, int64(1), item.Upvotes)
	assert.Equal(t, int64(1), item.Downvotes)
	assert.Equal(t, int64(2), item.CommentCount)
	assert.ElementsMatch(t, []string{"sky", "morning"}, item.Tags)
	require.NotNil(t, item.ViewerVote)
	assert.Equal(t, models.VoteUp, *item.ViewerVote)
	assert.True(t, item.IsSaved)

	// The untouched post keeps its defaults.
	assert.Equal(t, int64(0), items[1].Upvotes)
	assert.Nil(t, items[1].ViewerVote)
	assert.False(t, items[1].IsSaved)
}

func TestAssembleAnonymousViewerSkipsViewerState(t *testing.T) {
	f := newAssemblerFixture(t)
	author := f.createUser(t, "ada")
	post := newPost(author.ID, "sunrise")

	_, err := f.votes.CastVote(post.ID.Hex(), author.ID, true)
	require.NoError(t, err)
	_, err = f.saves.SavePost(author.ID, post.ID.Hex())
	require.NoError(t, err)

	items, err := f.assembler.Assemble(context.Background(), []models.Post{post}, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, int64(1), items[0].Upvotes)
	assert.Nil(t, items[0].ViewerVote)
	assert.False(t, items[0].IsSaved)
}

func TestAssembleMissingAuthorFails(t *testing.T) {
	f := newAssemblerFixture(t)
	post := newPost(999, "orphan")

	_, err := f.assembler.Assemble(context.Background(), []models.Post{post}, 0)
	assert.ErrorIs(t, err, repositories.ErrDataIntegrity)
}
