package repositories

import (
	"fmt"

	"github.com/sgallard/picstream/internal/models"
	"gorm.io/gorm"
)

// SavedPostRepository defines the interface for saved post operations
type SavedPostRepository interface {
	SavePost(userID uint, postID string) (*models.SavedPost, error)
	UnsavePost(userID uint, postID string) error
	IsPostSaved(userID uint, postID string) (bool, error)
	GetSavedPostIDs(userID uint, postIDs []string) (map[string]bool, error)
	GetSavedPostsByUser(userID uint) ([]models.SavedPost, error)
	DeleteSavesByPostID(tx *gorm.DB, postID string) error
}

// PostgresSavedPostRepository implements SavedPostRepository
type PostgresSavedPostRepository struct {
	db *gorm.DB
}

func NewPostgresSavedPostRepository(db *gorm.DB) *PostgresSavedPostRepository {
	return &PostgresSavedPostRepository{db: db}
}

// SavePost bookmarks a post for a user. Saving twice is a conflict.
func (r *PostgresSavedPostRepository) SavePost(userID uint, postID string) (*models.SavedPost, error) {
	var result *models.SavedPost
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.SavedPost{}).
			Where("user_id = ? AND post_id = ?", userID, postID).Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("post already saved: %w", ErrConflict)
		}
		saved := models.SavedPost{UserID: userID, PostID: postID}
		if err := tx.Create(&saved).Error; err != nil {
			return err
		}
		result = &saved
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UnsavePost removes a bookmark; removing one that does not exist is NotFound.
func (r *PostgresSavedPostRepository) UnsavePost(userID uint, postID string) error {
	res := r.db.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.SavedPost{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("saved post: %w", ErrNotFound)
	}
	return nil
}

func (r *PostgresSavedPostRepository) IsPostSaved(userID uint, postID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.SavedPost{}).Where("user_id = ? AND post_id = ?", userID, postID).Count(&count).Error
	return count > 0, err
}

// GetSavedPostIDs checks saved state for many posts in one query
func (r *PostgresSavedPostRepository) GetSavedPostIDs(userID uint, postIDs []string) (map[string]bool, error) {
	result := make(map[string]bool)
	if len(postIDs) == 0 {
		return result, nil
	}
	var saved []models.SavedPost
	err := r.db.Where("user_id = ? AND post_id IN ?", userID, postIDs).Find(&saved).Error
	if err != nil {
		return nil, err
	}
	for _, s := range saved {
		result[s.PostID] = true
	}
	return result, nil
}

func (r *PostgresSavedPostRepository) GetSavedPostsByUser(userID uint) ([]models.SavedPost, error) {
	var saved []models.SavedPost
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&saved).Error
	return saved, err
}

// DeleteSavesByPostID removes all saves of a post, as part of post
// deletion. Runs inside the caller's transaction.
func (r *PostgresSavedPostRepository) DeleteSavesByPostID(tx *gorm.DB, postID string) error {
	return tx.Where("post_id = ?", postID).Delete(&models.SavedPost{}).Error
}
