package handlers

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sgallard/picstream/internal/feed"
	"github.com/sgallard/picstream/internal/models"
	"github.com/sgallard/picstream/internal/repositories"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	postRepository repositories.PostRepository
	assembler      *feed.Assembler
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(postRepo repositories.PostRepository, assembler *feed.Assembler) *FeedHandler {
	return &FeedHandler{
		postRepository: postRepo,
		assembler:      assembler,
	}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// GetFeed returns the ranked, enriched feed. Modes: fresh (default,
// newest first), trending (last 24h by engagement volume), popular
// (all time by net score).
func (h *FeedHandler) GetFeed(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	mode := c.QueryParam("mode")
	if mode == "" {
		mode = feed.ModeFresh
	}
	if !feed.ValidMode(mode) {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown feed mode: "+mode)
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}

	skip := int64((page - 1) * limit)

	ctx := c.Request().Context()
	var posts []models.Post
	var err error
	if mode == feed.ModeTrending {
		// Candidates outside the window are excluded before assembly.
		posts, err = h.postRepository.GetPostsSince(ctx, time.Now().Add(-feed.TrendingWindow), skip, int64(limit))
	} else {
		posts, err = h.postRepository.GetAllPosts(ctx, skip, int64(limit))
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	totalItems, err := h.postRepository.CountPosts(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	items, err := h.assembler.Assemble(ctx, posts, currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	items = feed.Rank(items, mode, time.Now())

	totalPages := int(math.Ceil(float64(totalItems) / float64(limit)))

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"posts": items,
			"mode":  mode,
		},
		"meta": echo.Map{
			"currentPage":     page,
			"totalPages":      totalPages,
			"totalItems":      totalItems,
			"itemsPerPage":    limit,
			"hasNextPage":     page < totalPages,
			"hasPreviousPage": page > 1,
		},
	})
}
