package repositories

import (
	"fmt"

	"github.com/sgallard/picstream/internal/models"
	"gorm.io/gorm"
)

// VoteRepository defines the interface for vote data operations
type VoteRepository interface {
	GetVoteCounts(postID string) (models.VoteCounts, error)
	GetVoteCountsForPosts(postIDs []string) (map[string]models.VoteCounts, error)
	GetUserVote(postID string, userID uint) (*models.Vote, error)
	GetUserVotesForPosts(userID uint, postIDs []string) (map[string]models.Vote, error)
	CastVote(postID string, userID uint, isUpvote bool) (*models.Vote, error)
	FlipVote(postID string, userID uint, isUpvote bool) (*models.Vote, error)
	RetractVote(postID string, userID uint, isUpvote bool) error
	DeleteVotesByPostID(tx *gorm.DB, postID string) error
}

// PostgresVoteRepository implements VoteRepository for PostgreSQL
type PostgresVoteRepository struct {
	db *gorm.DB
}

// NewPostgresVoteRepository creates a new PostgresVoteRepository
func NewPostgresVoteRepository(db *gorm.DB) *PostgresVoteRepository {
	return &PostgresVoteRepository{db: db}
}

// voteCountRow is the scan target for the grouped tally query
type voteCountRow struct {
	PostID   string
	IsUpvote bool
	Count    int64
}

// GetVoteCounts tallies up- and downvotes for a single post. Posts with
// no votes tally as zero, never as an error.
func (r *PostgresVoteRepository) GetVoteCounts(postID string) (models.VoteCounts, error) {
	counts, err := r.GetVoteCountsForPosts([]string{postID})
	if err != nil {
		return models.VoteCounts{}, err
	}
	return counts[postID], nil
}

// GetVoteCountsForPosts tallies votes for many posts in a single
// grouped aggregation. Posts absent from the result simply have no votes.
func (r *PostgresVoteRepository) GetVoteCountsForPosts(postIDs []string) (map[string]models.VoteCounts, error) {
	result := make(map[string]models.VoteCounts)
	if len(postIDs) == 0 {
		return result, nil
	}
	var rows []voteCountRow
	err := r.db.Model(&models.Vote{}).
		Select("post_id, is_upvote, COUNT(*) AS count").
		Where("post_id IN ?", postIDs).
		Group("post_id, is_upvote").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts := result[row.PostID]
		if row.IsUpvote {
			counts.Upvotes = row.Count
		} else {
			counts.Downvotes = row.Count
		}
		result[row.PostID] = counts
	}
	return result, nil
}

// GetUserVote retrieves the user's vote on a post, or nil if none was cast
func (r *PostgresVoteRepository) GetUserVote(postID string, userID uint) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&vote).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &vote, nil
}

// GetUserVotesForPosts retrieves the user's votes across many posts in one query
func (r *PostgresVoteRepository) GetUserVotesForPosts(userID uint, postIDs []string) (map[string]models.Vote, error) {
	result := make(map[string]models.Vote)
	if len(postIDs) == 0 {
		return result, nil
	}
	var votes []models.Vote
	err := r.db.Where("user_id = ? AND post_id IN ?", userID, postIDs).Find(&votes).Error
	if err != nil {
		return nil, err
	}
	for _, v := range votes {
		result[v.PostID] = v
	}
	return result, nil
}

// CastVote records a new vote. Casting the same polarity twice is a
// conflict; casting the opposite polarity flips the existing row in
// place so the (post, user) pair never holds more than one row.
func (r *PostgresVoteRepository) CastVote(postID string, userID uint, isUpvote bool) (*models.Vote, error) {
	var result *models.Vote
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Vote
		err := tx.Where("post_id = ? AND user_id = ?", postID, userID).First(&existing).Error
		if err != nil && err != gorm.ErrRecordNotFound {
			return err
		}
		if err == nil {
			if existing.IsUpvote == isUpvote {
				return fmt.Errorf("vote already cast: %w", ErrConflict)
			}
			existing.IsUpvote = isUpvote
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			result = &existing
			return nil
		}
		vote := models.Vote{PostID: postID, UserID: userID, IsUpvote: isUpvote}
		if err := tx.Create(&vote).Error; err != nil {
			return err
		}
		result = &vote
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// FlipVote atomically updates the existing row's polarity and
// timestamp. If no row exists it behaves like CastVote.
func (r *PostgresVoteRepository) FlipVote(postID string, userID uint, isUpvote bool) (*models.Vote, error) {
	var result *models.Vote
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Vote
		err := tx.Where("post_id = ? AND user_id = ?", postID, userID).First(&existing).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				vote := models.Vote{PostID: postID, UserID: userID, IsUpvote: isUpvote}
				if err := tx.Create(&vote).Error; err != nil {
					return err
				}
				result = &vote
				return nil
			}
			return err
		}
		existing.IsUpvote = isUpvote
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		result = &existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RetractVote deletes the user's vote only if it matches the given
// polarity; a mismatch or a missing row is a no-op.
func (r *PostgresVoteRepository) RetractVote(postID string, userID uint, isUpvote bool) error {
	return r.db.Where("post_id = ? AND user_id = ? AND is_upvote = ?", postID, userID, isUpvote).
		Delete(&models.Vote{}).Error
}

// DeleteVotesByPostID removes all votes for a post, as part of post
// deletion. Runs inside the caller's transaction.
func (r *PostgresVoteRepository) DeleteVotesByPostID(tx *gorm.DB, postID string) error {
	return tx.Where("post_id = ?", postID).Delete(&models.Vote{}).Error
}
