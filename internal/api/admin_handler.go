package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/quiz-content-api/internal/config"
	"github.com/quiz-content-api/internal/models"
	"github.com/quiz-content-api/internal/service"
)

// AdminHandler handles the authoring write path: question and article
// upserts, deletes, and bulk import/export
type AdminHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "admin").Logger(),
	}
}

// ListQuestions handles GET /v1/admin/questions
// Returns every question ordered for the authoring list view.
func (h *AdminHandler) ListQuestions(c *gin.Context) {
	questions, err := h.services.Quiz.ListQuestions(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list questions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list questions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

// SaveQuestion handles POST /v1/admin/questions
// Upserts one question; a record without an id is created with a generated
// one. Validation failures come back as a 400 with the error list.
func (h *AdminHandler) SaveQuestion(c *gin.Context) {
	var q models.Question
	if err := c.ShouldBindJSON(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	saved, validationErrs, err := h.services.Quiz.SaveQuestion(c.Request.Context(), &q)
	if err != nil {
		h.log.Error().Err(err).Str("question_id", q.ID).Msg("Failed to save question")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save question"})
		return
	}
	if len(validationErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": validationErrs})
		return
	}

	c.JSON(http.StatusOK, saved)
}

// DeleteQuestion handles DELETE /v1/admin/questions/:id
func (h *AdminHandler) DeleteQuestion(c *gin.Context) {
	id := c.Param("id")

	if err := h.services.Quiz.DeleteQuestion(c.Request.Context(), id); err != nil {
		h.log.Error().Err(err).Str("question_id", id).Msg("Failed to delete question")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete question"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// publishArticleRequest carries the article fields plus the raw video input
// (a pasted iframe or URL) the video id is extracted from
type publishArticleRequest struct {
	models.Article
	VideoInput string `json:"video_input"`
}

// PublishArticle handles POST /v1/admin/articles
func (h *AdminHandler) PublishArticle(c *gin.Context) {
	var req publishArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	saved, validationErrs, err := h.services.Content.PublishArticle(&req.Article, req.VideoInput)
	if err != nil {
		h.log.Error().Err(err).Str("slug", req.Slug).Msg("Failed to publish article")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to publish article"})
		return
	}
	if len(validationErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": validationErrs})
		return
	}

	c.JSON(http.StatusOK, saved)
}

// DeleteArticle handles DELETE /v1/admin/articles/:slug
func (h *AdminHandler) DeleteArticle(c *gin.Context) {
	slug := c.Param("slug")

	if err := h.services.Content.DeleteArticle(slug); err != nil {
		h.log.Error().Err(err).Str("slug", slug).Msg("Failed to delete article")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete article"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": slug})
}

// Import handles POST /v1/admin/import
// Accepts a multipart file upload plus resource=questions|articles and runs
// the import synchronously, returning the summary.
func (h *AdminHandler) Import(c *gin.Context) {
	resource := c.PostForm("resource")
	if resource == "" {
		resource = c.Query("resource")
	}
	if resource != "questions" && resource != "articles" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resource must be one of: questions, articles"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file upload is required"})
		return
	}
	defer file.Close()

	if header.Size > h.cfg.Import.MaxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("file too large, max size is %d MB", h.cfg.Import.MaxUploadSize/(1024*1024)),
		})
		return
	}

	ctx := c.Request.Context()
	var summary *service.ImportSummary
	switch resource {
	case "questions":
		summary, err = h.services.Import.ImportQuestions(ctx, file)
	case "articles":
		summary, err = h.services.Import.ImportArticles(ctx, file)
	}
	if err != nil {
		h.log.Error().Err(err).Str("resource", resource).Msg("Import failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Export handles GET /v1/admin/export?resource=&format=
func (h *AdminHandler) Export(c *gin.Context) {
	resource := c.DefaultQuery("resource", "questions")
	format := c.DefaultQuery("format", "ndjson")

	var err error
	switch resource {
	case "questions":
		err = h.services.Export.StreamQuestions(c.Request.Context(), c.Writer, format)
	case "articles":
		err = h.services.Export.StreamArticles(c.Writer, format)
	case "contests":
		err = h.services.Export.StreamContests(c.Writer)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "resource must be one of: questions, articles, contests"})
		return
	}

	if err != nil {
		h.log.Error().Err(err).Str("resource", resource).Str("format", format).Msg("Export failed")
		// Headers may already be written; nothing safe to send beyond logging.
		c.Status(http.StatusInternalServerError)
	}
}
