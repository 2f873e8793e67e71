package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Shelkonty/feedback-whole/internal/middleware"
	"github.com/Shelkonty/feedback-whole/internal/service"
)

// FeedbackHandler handles feedback post HTTP requests.
type FeedbackHandler struct {
	feedbackService service.FeedbackService
}

// NewFeedbackHandler creates a new FeedbackHandler instance.
func NewFeedbackHandler(feedbackService service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// FeedbackRequest represents the create/update payload for a post.
type FeedbackRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	CategoryID  int64  `json:"categoryId" binding:"required"`
	StatusID    int64  `json:"statusId" binding:"required"`
}

// VoteResponse represents the toggle-vote result.
type VoteResponse struct {
	Message string `json:"message"`
	Voted   bool   `json:"voted"`
	Votes   int64  `json:"votes"`
}

// List godoc
// @Summary List feedback posts
// @Description Paginated listing with optional category/status filters; pass a bearer token to receive hasVoted flags
// @Tags feedback
// @Produce json
// @Param page query int false "1-based page" default(1)
// @Param limit query int false "page size" default(10)
// @Param categoryId query int false "filter by category id"
// @Param statusId query int false "filter by status id"
// @Param sortBy query string false "votes or createdAt" default(createdAt)
// @Success 200 {object} service.FeedbackList
// @Failure 400 {object} ErrorResponse
// @Router /feedback [get]
func (h *FeedbackHandler) List(c *gin.Context) {
	params := service.ListParams{
		Page:   intQuery(c, "page", 1),
		Limit:  intQuery(c, "limit", 10),
		SortBy: c.DefaultQuery("sortBy", "createdAt"),
	}

	var ok bool
	if params.CategoryID, ok = optionalIDQuery(c, "categoryId"); !ok {
		RespondError(c, http.StatusBadRequest, "invalid categoryId")
		return
	}
	if params.StatusID, ok = optionalIDQuery(c, "statusId"); !ok {
		RespondError(c, http.StatusBadRequest, "invalid statusId")
		return
	}

	if userID, authed := middleware.CurrentUserID(c); authed {
		params.UserID = &userID
	}

	list, err := h.feedbackService.List(c.Request.Context(), params)
	if err != nil {
		LogAndRespondError(c, http.StatusInternalServerError, err, "failed to list feedback")
		return
	}

	c.JSON(http.StatusOK, list)
}

// Create godoc
// @Summary Create a feedback post
// @Tags feedback
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body FeedbackRequest true "Post payload"
// @Success 201 {object} models.Post
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /feedback [post]
func (h *FeedbackHandler) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondErrorDetails(c, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	post, err := h.feedbackService.Create(c.Request.Context(), userID, service.PostInput{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		StatusID:    req.StatusID,
	})
	if err != nil {
		h.respondFeedbackError(c, err, "failed to create feedback")
		return
	}

	c.JSON(http.StatusCreated, post)
}

// Update godoc
// @Summary Update an own feedback post
// @Description Full replace of title, description, category and status; author only
// @Tags feedback
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "post id"
// @Param request body FeedbackRequest true "Post payload"
// @Success 200 {object} models.Post
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /feedback/{id} [put]
func (h *FeedbackHandler) Update(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	postID, err := pathID(c, "id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid post id")
		return
	}

	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondErrorDetails(c, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	post, err := h.feedbackService.Update(c.Request.Context(), userID, postID, service.PostInput{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		StatusID:    req.StatusID,
	})
	if err != nil {
		h.respondFeedbackError(c, err, "failed to update feedback")
		return
	}

	c.JSON(http.StatusOK, post)
}

// Delete godoc
// @Summary Delete an own feedback post
// @Tags feedback
// @Security BearerAuth
// @Param id path int true "post id"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /feedback/{id} [delete]
func (h *FeedbackHandler) Delete(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	postID, err := pathID(c, "id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid post id")
		return
	}

	if err := h.feedbackService.Delete(c.Request.Context(), userID, postID); err != nil {
		h.respondFeedbackError(c, err, "failed to delete feedback")
		return
	}

	c.Status(http.StatusNoContent)
}

// ToggleVote godoc
// @Summary Toggle own vote on a post
// @Description Creates the vote when absent, removes it when present
// @Tags feedback
// @Security BearerAuth
// @Produce json
// @Param id path int true "post id"
// @Success 200 {object} VoteResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /feedback/{id}/vote [post]
func (h *FeedbackHandler) ToggleVote(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	postID, err := pathID(c, "id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid post id")
		return
	}

	result, err := h.feedbackService.ToggleVote(c.Request.Context(), userID, postID)
	if err != nil {
		h.respondFeedbackError(c, err, "failed to toggle vote")
		return
	}

	message := "vote recorded"
	if !result.Voted {
		message = "vote removed"
	}
	c.JSON(http.StatusOK, VoteResponse{
		Message: message,
		Voted:   result.Voted,
		Votes:   result.Votes,
	})
}

func (h *FeedbackHandler) respondFeedbackError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		RespondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotPostAuthor):
		RespondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrCategoryNotFound), errors.Is(err, service.ErrStatusNotFound):
		RespondErrorDetails(c, http.StatusBadRequest, "validation error", err.Error())
	default:
		LogAndRespondError(c, http.StatusInternalServerError, err, fallback)
	}
}

func pathID(c *gin.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

func intQuery(c *gin.Context, name string, defaultValue int) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return defaultValue
	}
	return value
}

func optionalIDQuery(c *gin.Context, name string) (*int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, false
	}
	return &id, true
}
