package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tsismis-backend/internal/domains/feed/model"
	"tsismis-backend/internal/domains/feed/service"
	"tsismis-backend/internal/shared/middleware"
	"tsismis-backend/internal/shared/response"
)

// =====================================================
// FEED HANDLER
// =====================================================

type FeedHandler struct {
	feedService service.ServiceInterface
}

func NewFeedHandler(feedService service.ServiceInterface) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// pageParams reads the shared cursor/limit query parameters.
func pageParams(c *gin.Context) (cursor string, limit int, ok bool) {
	cursor = c.Query("cursor")

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		response.BadRequest(c, "invalid limit")
		return "", 0, false
	}
	return cursor, limit, true
}

// GetFeed returns the global feed
// GET /api/v1/feed?cursor=...&limit=...
func (h *FeedHandler) GetFeed(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	cursor, limit, ok := pageParams(c)
	if !ok {
		return
	}

	page, err := h.feedService.GetFeed(c.Request.Context(), userID, cursor, limit)
	if err != nil {
		status, code := mapFeedError(err)
		response.ErrorResponse(c, status, code, err.Error())
		return
	}

	response.Success(c, http.StatusOK, page)
}

// GetOwnFeed returns the requester's own posts
// GET /api/v1/feed/me
func (h *FeedHandler) GetOwnFeed(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	cursor, limit, ok := pageParams(c)
	if !ok {
		return
	}

	page, err := h.feedService.GetOwnFeed(c.Request.Context(), userID, cursor, limit)
	if err != nil {
		status, code := mapFeedError(err)
		response.ErrorResponse(c, status, code, err.Error())
		return
	}

	response.Success(c, http.StatusOK, page)
}

// GetFeedByUsername returns one user's posts
// GET /api/v1/feed/user/:username
func (h *FeedHandler) GetFeedByUsername(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	cursor, limit, ok := pageParams(c)
	if !ok {
		return
	}

	page, err := h.feedService.GetFeedByUsername(c.Request.Context(), userID, c.Param("username"), cursor, limit)
	if err != nil {
		status, code := mapFeedError(err)
		response.ErrorResponse(c, status, code, err.Error())
		return
	}

	response.Success(c, http.StatusOK, page)
}

// GetFavoritedFeed returns the posts the requester has favorited
// GET /api/v1/feed/favorites
func (h *FeedHandler) GetFavoritedFeed(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	cursor, limit, ok := pageParams(c)
	if !ok {
		return
	}

	page, err := h.feedService.GetFavoritedFeed(c.Request.Context(), userID, cursor, limit)
	if err != nil {
		status, code := mapFeedError(err)
		response.ErrorResponse(c, status, code, err.Error())
		return
	}

	response.Success(c, http.StatusOK, page)
}

// SearchMessages searches post messages
// GET /api/v1/feed/search?q=...
func (h *FeedHandler) SearchMessages(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	cursor, limit, ok := pageParams(c)
	if !ok {
		return
	}

	page, err := h.feedService.SearchMessages(c.Request.Context(), userID, c.Query("q"), cursor, limit)
	if err != nil {
		status, code := mapFeedError(err)
		response.ErrorResponse(c, status, code, err.Error())
		return
	}

	response.Success(c, http.StatusOK, page)
}

// mapFeedError maps feed domain errors to HTTP status codes
func mapFeedError(err error) (int, string) {
	var feedErr *model.FeedError
	if errors.As(err, &feedErr) {
		switch feedErr.Code {
		case model.ErrCodeInvalidCursor, model.ErrCodeInvalidLimit:
			return http.StatusBadRequest, feedErr.Code
		case model.ErrCodeUserNotFound:
			return http.StatusNotFound, feedErr.Code
		default:
			return http.StatusInternalServerError, "INTERNAL_ERROR"
		}
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}
