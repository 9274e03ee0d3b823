package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"tsismis-backend/internal/shared/middleware"
	"tsismis-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupPostRoutes(v1, c)
		setupFeedRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	// Signup and login are the brute-force surface; keep them behind a
	// tighter per-IP limit than the rest of the API.
	auth.Use(middleware.RateLimit(rate.Limit(5), 10))
	{
		auth.POST("/signup", c.UserHandler.Signup)
		auth.POST("/login", c.UserHandler.Login)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	users.Use(middleware.AuthMiddleware(c.Config.JWT.Secret))
	{
		users.GET("/me", c.UserHandler.Me)
		users.PUT("/me", c.UserHandler.UpdateProfile)
		users.PUT("/me/password", c.UserHandler.UpdatePassword)
		users.GET("/latest", c.UserHandler.LatestUsers)
		users.GET("/search", c.UserHandler.SearchUsers)
		users.GET("/:username", c.UserHandler.GetByUsername)
	}
}

// ========================================
// POST ROUTES
// ========================================
func setupPostRoutes(v1 *gin.RouterGroup, c *container.Container) {
	posts := v1.Group("/posts")
	posts.Use(middleware.AuthMiddleware(c.Config.JWT.Secret))
	{
		posts.POST("", c.PostHandler.CreatePost)
		posts.GET("/:id", c.PostHandler.GetPost)
		posts.PUT("/:id", c.PostHandler.UpdatePost)
		posts.DELETE("/:id", c.PostHandler.DeletePost)

		// Like/favorite edges hang off the post they reference.
		posts.POST("/:id/like", c.EdgeHandler.Like)
		posts.DELETE("/:id/like", c.EdgeHandler.Unlike)
		posts.POST("/:id/favorite", c.EdgeHandler.Favorite)
		posts.DELETE("/:id/favorite", c.EdgeHandler.Unfavorite)
	}
}

// ========================================
// FEED ROUTES
// ========================================
func setupFeedRoutes(v1 *gin.RouterGroup, c *container.Container) {
	feed := v1.Group("/feed")
	feed.Use(middleware.AuthMiddleware(c.Config.JWT.Secret))
	{
		feed.GET("", c.FeedHandler.GetFeed)
		feed.GET("/me", c.FeedHandler.GetOwnFeed)
		feed.GET("/favorites", c.FeedHandler.GetFavoritedFeed)
		feed.GET("/search", c.FeedHandler.SearchMessages)
		feed.GET("/user/:username", c.FeedHandler.GetFeedByUsername)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"services":  gin.H{},
		}

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		// Check redis; a dead cache degrades features, not the service.
		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
