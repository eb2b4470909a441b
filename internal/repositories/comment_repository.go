package repositories

import (
	"fmt"

	"github.com/sgallard/picstream/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	GetRootComments(postID string) ([]models.Comment, error)
	GetReplies(parentID uint) ([]models.Comment, error)
	GetThreadsByPostID(postID string) ([]models.CommentThread, error)
	CountByPostID(postID string) (int64, error)
	CountForPosts(postIDs []string) (map[string]int64, error)
	UpdateComment(comment *models.Comment) error
	DeleteCommentTree(id uint) error
	DeleteCommentsByPostID(tx *gorm.DB, postID string) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment creates a new comment. A reply must reference a root
// comment on the same post; anything else is an invalid reference.
func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	if comment.ParentID == nil {
		return r.db.Create(comment).Error
	}
	var parent models.Comment
	if err := r.db.First(&parent, *comment.ParentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("parent comment %d: %w", *comment.ParentID, ErrInvalidReference)
		}
		return err
	}
	if parent.PostID != comment.PostID {
		return fmt.Errorf("parent comment belongs to another post: %w", ErrInvalidReference)
	}
	if parent.ParentID != nil {
		return fmt.Errorf("replies to replies are not allowed: %w", ErrInvalidReference)
	}
	return r.db.Create(comment).Error
}

// GetCommentByID retrieves a comment by ID from PostgreSQL
func (r *PostgresCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("comment %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &comment, nil
}

// GetRootComments retrieves the root comments of a post, newest first
func (r *PostgresCommentRepository) GetRootComments(postID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("post_id = ? AND parent_id IS NULL", postID).
		Order("created_at DESC").Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// GetReplies retrieves the replies of a comment, newest first
func (r *PostgresCommentRepository) GetReplies(parentID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("parent_id = ?", parentID).
		Order("created_at DESC").Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// GetThreadsByPostID reconstructs the comment tree of a post from a
// single query, indexing replies by parent ID instead of querying per
// node. Roots and replies are both ordered newest first.
func (r *PostgresCommentRepository) GetThreadsByPostID(postID string) ([]models.CommentThread, error) {
	var comments []models.Comment
	err := r.db.Where("post_id = ?", postID).
		Order("created_at DESC").Find(&comments).Error
	if err != nil {
		return nil, err
	}

	repliesByParent := make(map[uint][]models.Comment)
	for _, c := range comments {
		if c.ParentID != nil {
			repliesByParent[*c.ParentID] = append(repliesByParent[*c.ParentID], c)
		}
	}

	threads := make([]models.CommentThread, 0, len(comments))
	for _, c := range comments {
		if c.ParentID == nil {
			replies := repliesByParent[c.ID]
			if replies == nil {
				replies = []models.Comment{}
			}
			threads = append(threads, models.CommentThread{Comment: c, Replies: replies})
		}
	}
	return threads, nil
}

// CountByPostID counts all comments (roots and replies) on a post
func (r *PostgresCommentRepository) CountByPostID(postID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// commentCountRow is the scan target for the grouped count query
type commentCountRow struct {
	PostID string
	Count  int64
}

// CountForPosts counts comments for many posts in a single grouped query
func (r *PostgresCommentRepository) CountForPosts(postIDs []string) (map[string]int64, error) {
	result := make(map[string]int64)
	if len(postIDs) == 0 {
		return result, nil
	}
	var rows []commentCountRow
	err := r.db.Model(&models.Comment{}).
		Select("post_id, COUNT(*) AS count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.PostID] = row.Count
	}
	return result, nil
}

// UpdateComment updates an existing comment in PostgreSQL
func (r *PostgresCommentRepository) UpdateComment(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

// DeleteCommentTree deletes a comment. Deleting a root also deletes all
// of its replies; both deletions happen in one transaction so a crash
// can never leave replies without their root or vice versa.
func (r *PostgresCommentRepository) DeleteCommentTree(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("comment %d: %w", id, ErrNotFound)
			}
			return err
		}
		if comment.ParentID == nil {
			if err := tx.Where("parent_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Comment{}, id).Error
	})
}

// DeleteCommentsByPostID removes all comments of a post, as part of
// post deletion. Runs inside the caller's transaction.
func (r *PostgresCommentRepository) DeleteCommentsByPostID(tx *gorm.DB, postID string) error {
	return tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error
}
