package api

import (
	"net/http"
	"time"

	"github.com/blog-platform-api/internal/auth"
	"github.com/blog-platform-api/internal/blobstore"
	"github.com/blog-platform-api/internal/config"
	"github.com/blog-platform-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, gate *auth.Gate, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	postHandler := NewPostHandler(services, log)
	categoryHandler := NewCategoryHandler(services, log)
	thumbnailHandler := NewThumbnailHandler(services, cfg, log)

	// Health check
	router.GET("/health", healthCheck)
	router.GET("/metrics", metricsHandler(services, log))

	// Locally stored thumbnails are served by this process
	if cfg.Storage.Backend == config.StorageBackendLocal {
		router.Static(blobstore.LocalPathPrefix, cfg.Storage.LocalDir)
	}

	api := router.Group("/api")
	{
		// Public reader endpoints
		posts := api.Group("/posts")
		{
			posts.GET("", postHandler.ListPosts)
			posts.GET("/:id", postHandler.GetPost)
		}

		// Admin endpoints, every route passes the authorization gate first
		admin := api.Group("/admin", requireAdmin(gate, log))
		{
			adminPosts := admin.Group("/posts")
			{
				adminPosts.GET("", postHandler.ListPosts)
				adminPosts.POST("", postHandler.CreatePost)
				adminPosts.GET("/:id", postHandler.GetPost)
				adminPosts.PUT("/:id", postHandler.UpdatePost)
				adminPosts.PUT("/:id/categories", postHandler.SetPostCategories)
				adminPosts.DELETE("/:id", postHandler.DeletePost)
			}

			categories := admin.Group("/categories")
			{
				categories.GET("", categoryHandler.ListCategories)
				categories.POST("", categoryHandler.CreateCategory)
				categories.GET("/:id", categoryHandler.GetCategory)
				categories.PUT("/:id", categoryHandler.UpdateCategory)
				categories.DELETE("/:id", categoryHandler.DeleteCategory)
			}

			admin.POST("/thumbnails", thumbnailHandler.UploadThumbnail)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "blog-platform-api",
	})
}

// metricsHandler returns record counts, or 503 if the database cannot be counted
func metricsHandler(services *service.Services, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		postsCount, err := services.Post.Count(ctx)
		if err != nil {
			metricsUnavailable(c, log, err)
			return
		}
		categoriesCount, err := services.Category.Count(ctx)
		if err != nil {
			metricsUnavailable(c, log, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"database": gin.H{
				"posts":      postsCount,
				"categories": categoriesCount,
			},
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

func metricsUnavailable(c *gin.Context, log zerolog.Logger, err error) {
	log.Error().Err(err).Msg("Failed to collect metrics")
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"status":    "database unavailable",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"status": "internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
