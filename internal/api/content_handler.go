package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/quiz-content-api/internal/service"
)

// ContentHandler handles the public article and contest endpoints
type ContentHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(services *service.Services, log zerolog.Logger) *ContentHandler {
	return &ContentHandler{
		services: services,
		log:      log.With().Str("handler", "content").Logger(),
	}
}

// ListArticles handles GET /v1/articles
func (h *ContentHandler) ListArticles(c *gin.Context) {
	articles, err := h.services.Content.ListArticles()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list articles")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list articles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

// GetArticle handles GET /v1/articles/:slug
func (h *ContentHandler) GetArticle(c *gin.Context) {
	slug := c.Param("slug")

	article, err := h.services.Content.GetArticle(slug)
	if err != nil {
		h.log.Error().Err(err).Str("slug", slug).Msg("Failed to load article")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load article"})
		return
	}
	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}

	c.JSON(http.StatusOK, article)
}

// ListContests handles GET /v1/contests
func (h *ContentHandler) ListContests(c *gin.Context) {
	live, expired, err := h.services.Content.ListContests(time.Now())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list contests")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list contests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"live":    live,
		"expired": expired,
	})
}
