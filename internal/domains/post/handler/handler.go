package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tsismis-backend/internal/domains/post/model"
	"tsismis-backend/internal/domains/post/service"
	"tsismis-backend/internal/shared/middleware"
	"tsismis-backend/internal/shared/response"
)

// =====================================================
// POST HANDLER
// =====================================================

type PostHandler struct {
	postService service.ServiceInterface
}

func NewPostHandler(postService service.ServiceInterface) *PostHandler {
	return &PostHandler{postService: postService}
}

// CreatePost creates a new post
// POST /api/v1/posts
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), userID, req)
	if err != nil {
		status, code := mapPostError(err)
		response.ErrorResponse(c, status, code, err.Error())
		return
	}

	response.Success(c, http.StatusCreated, post)
}

// GetPost fetches a single post
// GET /api/v1/posts/:id
func (h *PostHandler) GetPost(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post ID")
		return
	}

	post, err := h.postService.GetPost(c.Request.Context(), postID)
	if err != nil {
		status, code := mapPostError(err)
		response.ErrorResponse(c, status, code, err.Error())
		return
	}

	response.Success(c, http.StatusOK, post)
}

// UpdatePost updates the author's own post
// PUT /api/v1/posts/:id
func (h *PostHandler) UpdatePost(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post ID")
		return
	}

	var req model.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	post, err := h.postService.UpdatePost(c.Request.Context(), userID, postID, req)
	if err != nil {
		status, code := mapPostError(err)
		response.ErrorResponse(c, status, code, err.Error())
		return
	}

	response.Success(c, http.StatusOK, post)
}

// DeletePost deletes the author's own post and its edges
// DELETE /api/v1/posts/:id
func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post ID")
		return
	}

	if err := h.postService.DeletePost(c.Request.Context(), userID, postID); err != nil {
		status, code := mapPostError(err)
		response.ErrorResponse(c, status, code, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"success": true})
}

// mapPostError maps post domain errors to HTTP status codes
func mapPostError(err error) (int, string) {
	var postErr *model.PostError
	if errors.As(err, &postErr) {
		switch postErr.Code {
		case model.ErrCodePostNotFound:
			return http.StatusNotFound, postErr.Code
		case model.ErrCodeNotOwner:
			return http.StatusForbidden, postErr.Code
		case model.ErrCodeInvalidInput:
			return http.StatusBadRequest, postErr.Code
		default:
			return http.StatusInternalServerError, "INTERNAL_ERROR"
		}
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}
