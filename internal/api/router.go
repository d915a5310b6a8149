package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/quiz-content-api/internal/config"
	"github.com/quiz-content-api/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	quizHandler := NewQuizHandler(services, log)
	contentHandler := NewContentHandler(services, log)
	adminHandler := NewAdminHandler(services, cfg, log)

	// Health check
	router.GET("/health", healthCheck)
	router.GET("/metrics", metricsHandler(services))

	// API v1
	v1 := router.Group("/v1")
	{
		// Public site endpoints
		v1.GET("/quiz-sets", quizHandler.ListSets)
		v1.GET("/quiz-sets/:category/:set_num", quizHandler.GetSet)
		v1.GET("/articles", contentHandler.ListArticles)
		v1.GET("/articles/:slug", contentHandler.GetArticle)
		v1.GET("/contests", contentHandler.ListContests)

		// Authoring endpoints (single-operator tool; no auth by design)
		admin := v1.Group("/admin")
		{
			admin.GET("/questions", adminHandler.ListQuestions)
			admin.POST("/questions", adminHandler.SaveQuestion)
			admin.DELETE("/questions/:id", adminHandler.DeleteQuestion)

			admin.POST("/articles", adminHandler.PublishArticle)
			admin.DELETE("/articles/:slug", adminHandler.DeleteArticle)

			admin.POST("/import", adminHandler.Import)
			admin.GET("/export", adminHandler.Export)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "quiz-content-api",
	})
}

// metricsHandler returns store record counts
func metricsHandler(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		questionsCount, _ := services.Export.GetCount(ctx, "questions")
		articlesCount, _ := services.Export.GetCount(ctx, "articles")
		contestsCount, _ := services.Export.GetCount(ctx, "contests")

		c.JSON(http.StatusOK, gin.H{
			"stores": gin.H{
				"questions": questionsCount,
				"articles":  articlesCount,
				"contests":  contestsCount,
			},
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
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
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
