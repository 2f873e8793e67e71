// Package handlers contains HTTP request handlers for the feedback service.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shelkonty/feedback-whole/internal/middleware"
	"github.com/Shelkonty/feedback-whole/internal/service"
)

// AuthHandler handles account HTTP requests.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents the registration payload.
type RegisterRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=6"`
	Name     *string `json:"name"`
	Avatar   *string `json:"avatar"`
}

// LoginRequest represents the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest represents the partial profile update payload.
// Absent fields are left unchanged.
type UpdateProfileRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=6"`
	Name     *string `json:"name"`
	Avatar   *string `json:"avatar"`
}

// Register godoc
// @Summary Register a new account
// @Description Create an account and return the user with a bearer token
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration payload"
// @Success 201 {object} service.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /users/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondErrorDetails(c, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	response, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Avatar:   req.Avatar,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			RespondError(c, http.StatusConflict, err.Error())
			return
		}
		LogAndRespondError(c, http.StatusInternalServerError, err, "registration failed")
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Login godoc
// @Summary Log in
// @Description Authenticate with email and password, return the user with a bearer token
// @Tags users
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} service.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /users/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondErrorDetails(c, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	response, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			RespondError(c, http.StatusUnauthorized, err.Error())
			return
		}
		LogAndRespondError(c, http.StatusInternalServerError, err, "login failed")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetProfile godoc
// @Summary Fetch own profile
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /users/profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := h.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			RespondError(c, http.StatusNotFound, err.Error())
			return
		}
		LogAndRespondError(c, http.StatusInternalServerError, err, "failed to load profile")
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary Update own profile
// @Description Apply the supplied fields only; email changes are re-checked for uniqueness
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body UpdateProfileRequest true "Fields to update"
// @Success 200 {object} models.User
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /users/profile [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondErrorDetails(c, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), userID, service.ProfileUpdate{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Avatar:   req.Avatar,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			RespondError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrEmailTaken):
			RespondError(c, http.StatusConflict, err.Error())
		default:
			LogAndRespondError(c, http.StatusInternalServerError, err, "failed to update profile")
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteProfile godoc
// @Summary Delete own account
// @Description Permanently removes the account, its posts and votes
// @Tags users
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Router /users/profile [delete]
func (h *AuthHandler) DeleteProfile(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.authService.DeleteAccount(c.Request.Context(), userID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			RespondError(c, http.StatusNotFound, err.Error())
			return
		}
		LogAndRespondError(c, http.StatusInternalServerError, err, "failed to delete account")
		return
	}

	c.Status(http.StatusNoContent)
}
