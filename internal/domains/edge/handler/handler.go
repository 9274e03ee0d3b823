package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tsismis-backend/internal/domains/edge/model"
	"tsismis-backend/internal/domains/edge/service"
	"tsismis-backend/internal/shared/middleware"
	"tsismis-backend/internal/shared/response"
)

// =====================================================
// EDGE HANDLER (LIKES & FAVORITES)
// =====================================================

type EdgeHandler struct {
	edgeService service.ServiceInterface
}

func NewEdgeHandler(edgeService service.ServiceInterface) *EdgeHandler {
	return &EdgeHandler{edgeService: edgeService}
}

// Like likes a post
// POST /api/v1/posts/:id/like
func (h *EdgeHandler) Like(c *gin.Context) {
	h.toggle(c, h.edgeService.Like)
}

// Unlike removes a like
// DELETE /api/v1/posts/:id/like
func (h *EdgeHandler) Unlike(c *gin.Context) {
	h.toggle(c, h.edgeService.Unlike)
}

// Favorite favorites a post
// POST /api/v1/posts/:id/favorite
func (h *EdgeHandler) Favorite(c *gin.Context) {
	h.toggle(c, h.edgeService.Favorite)
}

// Unfavorite removes a favorite
// DELETE /api/v1/posts/:id/favorite
func (h *EdgeHandler) Unfavorite(c *gin.Context) {
	h.toggle(c, h.edgeService.Unfavorite)
}

func (h *EdgeHandler) toggle(c *gin.Context, op func(ctx context.Context, userID, postID uuid.UUID) error) {
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

	if err := op(c.Request.Context(), userID, postID); err != nil {
		status, code := mapEdgeError(err)
		response.ErrorResponse(c, status, code, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"success": true})
}

// mapEdgeError maps edge domain errors to HTTP status codes
func mapEdgeError(err error) (int, string) {
	var edgeErr *model.EdgeError
	if errors.As(err, &edgeErr) {
		switch edgeErr.Code {
		case model.ErrCodeEdgeNotFound, model.ErrCodePostNotFound:
			return http.StatusNotFound, edgeErr.Code
		case model.ErrCodeAlreadyExists:
			return http.StatusConflict, edgeErr.Code
		default:
			return http.StatusInternalServerError, "INTERNAL_ERROR"
		}
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}
