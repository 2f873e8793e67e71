package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shelkonty/feedback-whole/internal/service"
)

// TaxonomyHandler handles category and status HTTP requests.
type TaxonomyHandler struct {
	taxonomyService service.TaxonomyService
}

// NewTaxonomyHandler creates a new TaxonomyHandler instance.
func NewTaxonomyHandler(taxonomyService service.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{taxonomyService: taxonomyService}
}

// CreateCategoryRequest represents the category creation payload.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// ListCategories godoc
// @Summary List categories
// @Tags taxonomy
// @Produce json
// @Success 200 {array} models.Category
// @Router /categories [get]
func (h *TaxonomyHandler) ListCategories(c *gin.Context) {
	categories, err := h.taxonomyService.ListCategories(c.Request.Context())
	if err != nil {
		LogAndRespondError(c, http.StatusInternalServerError, err, "failed to list categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

// ListStatuses godoc
// @Summary List statuses
// @Tags taxonomy
// @Produce json
// @Success 200 {array} models.Status
// @Router /categories/statuses [get]
func (h *TaxonomyHandler) ListStatuses(c *gin.Context) {
	statuses, err := h.taxonomyService.ListStatuses(c.Request.Context())
	if err != nil {
		LogAndRespondError(c, http.StatusInternalServerError, err, "failed to list statuses")
		return
	}
	c.JSON(http.StatusOK, statuses)
}

// CreateCategory godoc
// @Summary Create a category
// @Tags taxonomy
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateCategoryRequest true "Category payload"
// @Success 201 {object} models.Category
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /categories [post]
func (h *TaxonomyHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondErrorDetails(c, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	category, err := h.taxonomyService.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNameTaken) {
			RespondError(c, http.StatusConflict, err.Error())
			return
		}
		LogAndRespondError(c, http.StatusInternalServerError, err, "failed to create category")
		return
	}

	c.JSON(http.StatusCreated, category)
}
