package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tsismis-backend/internal/domains/user/model"
	"tsismis-backend/internal/domains/user/service"
	"tsismis-backend/internal/shared/middleware"
	"tsismis-backend/internal/shared/response"
)

// =====================================================
// USER HANDLER
// =====================================================

type UserHandler struct {
	userService service.ServiceInterface
}

func NewUserHandler(userService service.ServiceInterface) *UserHandler {
	return &UserHandler{userService: userService}
}

// Signup registers a new account
// POST /api/v1/auth/signup
func (h *UserHandler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.userService.Signup(c.Request.Context(), req); err != nil {
		status, code := mapUserError(err)
		response.ErrorResponse(c, status, code, err.Error())
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"message": "User has been registered"})
}

// Login exchanges credentials for a token
// POST /api/v1/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		status, code := mapUserError(err)
		response.ErrorResponse(c, status, code, err.Error())
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Me returns the authenticated user's profile with derived counters
// GET /api/v1/users/me
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	profile, err := h.userService.Me(c.Request.Context(), userID)
	if err != nil {
		status, code := mapUserError(err)
		response.ErrorResponse(c, status, code, err.Error())
		return
	}

	response.Success(c, http.StatusOK, profile)
}

// GetByUsername returns another user's profile
// GET /api/v1/users/:username
func (h *UserHandler) GetByUsername(c *gin.Context) {
	profile, err := h.userService.GetProfileByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		status, code := mapUserError(err)
		response.ErrorResponse(c, status, code, err.Error())
		return
	}

	response.Success(c, http.StatusOK, profile)
}

// UpdateProfile updates display name and description
// PUT /api/v1/users/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	profile, err := h.userService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		status, code := mapUserError(err)
		response.ErrorResponse(c, status, code, err.Error())
		return
	}

	response.Success(c, http.StatusOK, profile)
}

// UpdatePassword changes the password after verifying the old one
// PUT /api/v1/users/me/password
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.userService.UpdatePassword(c.Request.Context(), userID, req); err != nil {
		status, code := mapUserError(err)
		response.ErrorResponse(c, status, code, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"success": true})
}

// LatestUsers returns the three most recent signups
// GET /api/v1/users/latest
func (h *UserHandler) LatestUsers(c *gin.Context) {
	users, err := h.userService.LatestUsers(c.Request.Context())
	if err != nil {
		status, code := mapUserError(err)
		response.ErrorResponse(c, status, code, err.Error())
		return
	}

	response.Success(c, http.StatusOK, users)
}

// SearchUsers searches usernames with cursor pagination
// GET /api/v1/users/search?q=...&cursor=...&limit=...
func (h *UserHandler) SearchUsers(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		response.BadRequest(c, "invalid limit")
		return
	}

	page, err := h.userService.SearchUsers(c.Request.Context(), c.Query("q"), c.Query("cursor"), limit)
	if err != nil {
		status, code := mapUserError(err)
		response.ErrorResponse(c, status, code, err.Error())
		return
	}

	response.Success(c, http.StatusOK, page)
}

// mapUserError maps user domain errors to HTTP status codes
func mapUserError(err error) (int, string) {
	var userErr *model.UserError
	if errors.As(err, &userErr) {
		switch userErr.Code {
		case model.ErrCodeUserNotFound:
			return http.StatusNotFound, userErr.Code
		case model.ErrCodeUsernameTaken:
			return http.StatusConflict, userErr.Code
		case model.ErrCodeInvalidCredentials:
			return http.StatusUnauthorized, userErr.Code
		case model.ErrCodeTooManyAttempts:
			return http.StatusTooManyRequests, userErr.Code
		case model.ErrCodeInvalidInput:
			return http.StatusBadRequest, userErr.Code
		default:
			return http.StatusInternalServerError, "INTERNAL_ERROR"
		}
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}
