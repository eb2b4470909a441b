package feed

import (
	"context"
	"fmt"

	"github.com/sgallard/picstream/internal/models"
	"github.com/sgallard/picstream/internal/repositories"
)

// Assembler joins posts with their aggregated engagement data. Every
// join is batched: one grouped query per concern regardless of how many
// posts the feed returns.
type Assembler struct {
	userRepository      repositories.UserRepository
	voteRepository      repositories.VoteRepository
	commentRepository   repositories.CommentRepository
	tagRepository       repositories.TagRepository
	savedPostRepository repositories.SavedPostRepository
}

// NewAssembler creates a new Assembler
func NewAssembler(
	userRepo repositories.UserRepository,
	voteRepo repositories.VoteRepository,
	commentRepo repositories.CommentRepository,
	tagRepo repositories.TagRepository,
	savedPostRepo repositories.SavedPostRepository,
) *Assembler {
	return &Assembler{
		userRepository:      userRepo,
		voteRepository:      voteRepo,
		commentRepository:   commentRepo,
		tagRepository:       tagRepo,
		savedPostRepository: savedPostRepo,
	}
}

// Assemble builds one FeedItem per post. viewerID == 0 means an
// anonymous viewer: viewer vote and saved state stay at their zero
// values. Absence from any batch map is normal (zero engagement so
// far); a failed batch query aborts the whole call rather than
// returning guessed defaults.
func (a *Assembler) Assemble(ctx context.Context, posts []models.Post, viewerID uint) ([]models.FeedItem, error) {
	if len(posts) == 0 {
		return []models.FeedItem{}, nil
	}

	postIDs := make([]string, 0, len(posts))
	seenPosts := make(map[string]bool, len(posts))
	authorIDSet := make(map[uint]bool)
	for _, p := range posts {
		pid := p.ID.Hex()
		if !seenPosts[pid] {
			seenPosts[pid] = true
			postIDs = append(postIDs, pid)
		}
		authorIDSet[p.UserID] = true
	}

	voteCounts, err := a.voteRepository.GetVoteCountsForPosts(postIDs)
	if err != nil {
		return nil, fmt.Errorf("tallying votes: %w", err)
	}
	commentCounts, err := a.commentRepository.CountForPosts(postIDs)
	if err != nil {
		return nil, fmt.Errorf("counting comments: %w", err)
	}
	tagNames, err := a.tagRepository.GetTagNamesForPosts(postIDs)
	if err != nil {
		return nil, fmt.Errorf("resolving tags: %w", err)
	}

	viewerVotes := map[string]models.Vote{}
	savedMap := map[string]bool{}
	if viewerID > 0 {
		viewerVotes, err = a.voteRepository.GetUserVotesForPosts(viewerID, postIDs)
		if err != nil {
			return nil, fmt.Errorf("resolving viewer votes: %w", err)
		}
		savedMap, err = a.savedPostRepository.GetSavedPostIDs(viewerID, postIDs)
		if err != nil {
			return nil, fmt.Errorf("resolving viewer saves: %w", err)
		}
	}

	authorIDs := make([]uint, 0, len(authorIDSet))
	for id := range authorIDSet {
		authorIDs = append(authorIDs, id)
	}
	authors, err := a.userRepository.GetUsersByIDs(authorIDs)
	if err != nil {
		return nil, fmt.Errorf("fetching authors: %w", err)
	}

	items := make([]models.FeedItem, len(posts))
	for i, p := range posts {
		pid := p.ID.Hex()

		author, ok := authors[p.UserID]
		if !ok {
			// A post without its author is an upstream contract violation, not a user error.
			return nil, fmt.Errorf("post %s references missing author %d: %w", pid, p.UserID, repositories.ErrDataIntegrity)
		}

		tags := tagNames[pid]
		if tags == nil {
			tags = []string{}
		}

		var viewerVote *string
		if vote, ok := viewerVotes[pid]; ok {
			polarity := vote.Polarity()
			viewerVote = &polarity
		}

		counts := voteCounts[pid]
		items[i] = models.FeedItem{
			Post:         p,
			Author:       author.ToCompact(),
			Upvotes:      counts.Upvotes,
			Downvotes:    counts.Downvotes,
			CommentCount: commentCounts[pid],
			Tags:         tags,
			ViewerVote:   viewerVote,
			IsSaved:      savedMap[pid],
		}
	}
	return items, nil
}
