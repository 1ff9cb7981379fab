package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/shared/middleware"
	"blog-backend/pkg/container"
)

// multipartOverhead - phần dư cho boundary + text fields ngoài file
const multipartOverhead = 1 << 20

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// File upload nằm trọn trong memory, không spill ra disk
	router.MaxMultipartMemory = c.Config.Upload.MaxBytes + multipartOverhead

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.App.FrontendURL),
		middleware.ErrorHandler(),
	)

	router.GET("/health", healthCheckHandler(c))

	setupAuthorRoutes(router, c)
	setupBlogPostRoutes(router, c)
	setupAuthRoutes(router, c)

	return router
}

// ========================================
// AUTHOR ROUTES
// ========================================
func setupAuthorRoutes(r *gin.Engine, c *container.Container) {
	uploadLimit := middleware.BodyLimit(c.Config.Upload.MaxBytes + multipartOverhead)

	authors := r.Group("/authors")
	{
		authors.POST("", c.AuthorHandler.Create)
		authors.POST("/login", c.AuthorHandler.Login)
		authors.GET("", c.AuthorHandler.List)
		authors.GET("/:id", c.AuthorHandler.Get)
		authors.PUT("/:id", c.AuthorHandler.Update)
		authors.DELETE("/:id", c.AuthorHandler.Delete)
		authors.PATCH("/:id/avatar", uploadLimit, c.AuthorHandler.UpdateAvatar)
		authors.GET("/:id/blogPosts", c.BlogPostHandler.ListByAuthor)
	}

	r.GET("/me", middleware.AuthMiddleware(c.JWTManager), c.AuthorHandler.Me)
}

// ========================================
// BLOG POST ROUTES
// ========================================
func setupBlogPostRoutes(r *gin.Engine, c *container.Container) {
	uploadLimit := middleware.BodyLimit(c.Config.Upload.MaxBytes + multipartOverhead)

	posts := r.Group("/blogPosts")
	{
		// Public
		posts.GET("", c.BlogPostHandler.List)
		posts.GET("/:id", c.BlogPostHandler.Get)
		posts.GET("/:id/comments", c.BlogPostHandler.ListComments)
		posts.GET("/:id/comments/:commentId", c.BlogPostHandler.GetComment)

		// Protected
		protected := posts.Group("", middleware.AuthMiddleware(c.JWTManager))
		{
			protected.POST("", uploadLimit, c.BlogPostHandler.Create)
			protected.PUT("/:id", c.BlogPostHandler.Update)
			protected.DELETE("/:id", c.BlogPostHandler.Delete)
			protected.PATCH("/:id/cover", uploadLimit, c.BlogPostHandler.UpdateCover)

			protected.POST("/:id/comments", c.BlogPostHandler.AddComment)
			protected.PUT("/:id/comments/:commentId", c.BlogPostHandler.UpdateComment)
			protected.DELETE("/:id/comments/:commentId", c.BlogPostHandler.DeleteComment)
		}
	}
}

// ========================================
// GOOGLE OAUTH ROUTES
// ========================================
// Chỉ mount khi OAUTH_ENABLED=true
func setupAuthRoutes(r *gin.Engine, c *container.Container) {
	if !c.Config.OAuth.Enabled || c.AuthHandler == nil {
		return
	}

	google := r.Group("/auth/google")
	{
		google.GET("", c.AuthHandler.GoogleLogin)
		google.GET("/callback", c.AuthHandler.GoogleCallback)
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
			"version":   appCtx.Config.App.Version,
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

		// Check redis (OAuth state + email queue)
		redisStatus := "ok"
		if appCtx.Redis == nil {
			redisStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Redis.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
			}
		}

		// Check minio (avatar + cover upload)
		storageStatus := "ok"
		if appCtx.Storage == nil {
			storageStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Storage.HealthCheck(ctx); err != nil {
				storageStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
			"storage":  storageStatus,
		}

		if dbStatus == "ok" {
			if stats, err := appCtx.DB.Stats(); err == nil {
				health["pool"] = stats
			}
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
