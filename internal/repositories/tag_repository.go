package repositories

import (
	"github.com/sgallard/picstream/internal/models"
	"gorm.io/gorm"
)

// TagRepository defines the interface for tag data operations
type TagRepository interface {
	GetTagNamesByPostID(postID string) ([]string, error)
	GetTagNamesForPosts(postIDs []string) (map[string][]string, error)
	ReplacePostTags(postID string, tagNames []string) error
	DeletePostTagsByPostID(tx *gorm.DB, postID string) error
}

// PostgresTagRepository implements TagRepository for PostgreSQL
type PostgresTagRepository struct {
	db *gorm.DB
}

// NewPostgresTagRepository creates a new PostgresTagRepository
func NewPostgresTagRepository(db *gorm.DB) *PostgresTagRepository {
	return &PostgresTagRepository{db: db}
}

// GetTagNamesByPostID resolves the tag names of a single post
func (r *PostgresTagRepository) GetTagNamesByPostID(postID string) ([]string, error) {
	names, err := r.GetTagNamesForPosts([]string{postID})
	if err != nil {
		return nil, err
	}
	if names[postID] == nil {
		return []string{}, nil
	}
	return names[postID], nil
}

// GetTagNamesForPosts resolves tag names for many posts. The distinct
// set of tag IDs across all posts is collected first and fetched in one
// query, then mapped back, so a tag shared by fifty posts is looked up once.
func (r *PostgresTagRepository) GetTagNamesForPosts(postIDs []string) (map[string][]string, error) {
	result := make(map[string][]string)
	if len(postIDs) == 0 {
		return result, nil
	}

	var joins []models.PostTag
	if err := r.db.Where("post_id IN ?", postIDs).Find(&joins).Error; err != nil {
		return nil, err
	}
	if len(joins) == 0 {
		return result, nil
	}

	tagIDSet := make(map[uint]bool)
	for _, j := range joins {
		tagIDSet[j.TagID] = true
	}
	tagIDs := make([]uint, 0, len(tagIDSet))
	for id := range tagIDSet {
		tagIDs = append(tagIDs, id)
	}

	var tags []models.Tag
	if err := r.db.Where("id IN ?", tagIDs).Find(&tags).Error; err != nil {
		return nil, err
	}
	nameByID := make(map[uint]string, len(tags))
	for _, t := range tags {
		nameByID[t.ID] = t.Name
	}

	for _, j := range joins {
		if name, ok := nameByID[j.TagID]; ok {
			result[j.PostID] = append(result[j.PostID], name)
		}
	}
	return result, nil
}

// ReplacePostTags resolves each name to a tag (creating missing ones)
// and replaces the post's join rows with the resolved set. Existing
// tags are matched by exact, case-sensitive name. Duplicate names in
// the input collapse to one association.
func (r *PostgresTagRepository) ReplacePostTags(postID string, tagNames []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		seen := make(map[string]bool)
		tagIDs := make([]uint, 0, len(tagNames))
		for _, name := range tagNames {
			if seen[name] {
				continue
			}
			seen[name] = true

			var tag models.Tag
			if err := tx.Where("name = ?", name).FirstOrCreate(&tag, models.Tag{Name: name}).Error; err != nil {
				return err
			}
			tagIDs = append(tagIDs, tag.ID)
		}

		if err := tx.Where("post_id = ?", postID).Delete(&models.PostTag{}).Error; err != nil {
			return err
		}
		for _, tagID := range tagIDs {
			if err := tx.Create(&models.PostTag{PostID: postID, TagID: tagID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeletePostTagsByPostID removes a post's join rows (never the tags
// themselves), as part of post deletion. Runs inside the caller's transaction.
func (r *PostgresTagRepository) DeletePostTagsByPostID(tx *gorm.DB, postID string) error {
	return tx.Where("post_id = ?", postID).Delete(&models.PostTag{}).Error
}
