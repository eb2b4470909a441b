package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/sgallard/picstream/internal/models"
	"github.com/sgallard/picstream/internal/repositories"
)

// VoteHandler handles HTTP requests related to votes
type VoteHandler struct {
	voteRepository repositories.VoteRepository
	postRepository repositories.PostRepository // To verify posts exist before voting
}

// NewVoteHandler creates a new VoteHandler
func NewVoteHandler(voteRepo repositories.VoteRepository, postRepo repositories.PostRepository) *VoteHandler {
	return &VoteHandler{
		voteRepository: voteRepo,
		postRepository: postRepo,
	}
}

// RegisterVoteRoutes registers vote-related routes
func (h *VoteHandler) RegisterVoteRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/votes", h.CastVote)
	g.PUT("/posts/:post_id/votes", h.FlipVote)
	g.DELETE("/posts/:post_id/votes", h.RetractVote)
	g.GET("/posts/:post_id/votes", h.GetVoteCounts)
}

func (h *VoteHandler) bindVoteRequest(c echo.Context) (postID string, isUpvote bool, httpErr error) {
	postID = c.Param("post_id")

	var req models.VoteRequest
	if err := c.Bind(&req); err != nil {
		return "", false, echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return "", false, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Verify post exists
	if _, err := h.postRepository.GetPostByID(c.Request().Context(), postID); err != nil {
		return "", false, repoHTTPError(err, "Post not found")
	}

	return postID, req.Polarity == models.VoteUp, nil
}

// CastVote records a vote on a post. Casting the same polarity twice
// yields 409; the opposite polarity flips the existing vote.
func (h *VoteHandler) CastVote(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, isUpvote, httpErr := h.bindVoteRequest(c)
	if httpErr != nil {
		return httpErr
	}

	vote, err := h.voteRepository.CastVote(postID, currentUserID, isUpvote)
	if err != nil {
		return repoHTTPError(err, "Vote already cast with this polarity")
	}

	return c.JSON(http.StatusCreated, vote)
}

// FlipVote changes the polarity of an existing vote; with no existing
// vote it behaves like CastVote.
func (h *VoteHandler) FlipVote(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, isUpvote, httpErr := h.bindVoteRequest(c)
	if httpErr != nil {
		return httpErr
	}

	vote, err := h.voteRepository.FlipVote(postID, currentUserID, isUpvote)
	if err != nil {
		return repoHTTPError(err, "Failed to flip vote")
	}

	return c.JSON(http.StatusOK, vote)
}

// RetractVote removes the user's vote if it matches the given polarity
func (h *VoteHandler) RetractVote(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, isUpvote, httpErr := h.bindVoteRequest(c)
	if httpErr != nil {
		return httpErr
	}

	if err := h.voteRepository.RetractVote(postID, currentUserID, isUpvote); err != nil {
		return repoHTTPError(err, "Failed to retract vote")
	}

	return c.NoContent(http.StatusNoContent)
}

// GetVoteCounts returns the vote tally for a post, plus the viewer's
// own vote state when authenticated
func (h *VoteHandler) GetVoteCounts(c echo.Context) error {
	postID := c.Param("post_id")

	// Verify post exists
	if _, err := h.postRepository.GetPostByID(c.Request().Context(), postID); err != nil {
		return repoHTTPError(err, "Post not found")
	}

	counts, err := h.voteRepository.GetVoteCounts(postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var viewerVote *string
	if currentUserID := getUserIDFromContext(c); currentUserID > 0 {
		vote, err := h.voteRepository.GetUserVote(postID, currentUserID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if vote != nil {
			polarity := vote.Polarity()
			viewerVote = &polarity
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"post_id":     postID,
		"upvotes":     counts.Upvotes,
		"downvotes":   counts.Downvotes,
		"viewer_vote": viewerVote,
	})
}
