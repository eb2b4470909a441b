package repositories

import "gorm.io/gorm"

// EngagementRepository coordinates referential cleanup of the
// PostgreSQL engagement rows attached to a post. Posts live in MongoDB,
// so the cleanup is the engine's job rather than a database constraint.
type EngagementRepository interface {
	PurgePostData(postID string) error
}

// PostgresEngagementRepository implements EngagementRepository
type PostgresEngagementRepository struct {
	db       *gorm.DB
	votes    VoteRepository
	comments CommentRepository
	tags     TagRepository
	saves    SavedPostRepository
}

// NewPostgresEngagementRepository creates a new PostgresEngagementRepository
func NewPostgresEngagementRepository(db *gorm.DB, votes VoteRepository, comments CommentRepository, tags TagRepository, saves SavedPostRepository) *PostgresEngagementRepository {
	return &PostgresEngagementRepository{db: db, votes: votes, comments: comments, tags: tags, saves: saves}
}

// PurgePostData deletes all votes, comments, tag associations and saves
// of a deleted post in one transaction.
func (r *PostgresEngagementRepository) PurgePostData(postID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := r.votes.DeleteVotesByPostID(tx, postID); err != nil {
			return err
		}
		if err := r.comments.DeleteCommentsByPostID(tx, postID); err != nil {
			return err
		}
		if err := r.tags.DeletePostTagsByPostID(tx, postID); err != nil {
			return err
		}
		return r.saves.DeleteSavesByPostID(tx, postID)
	})
}
