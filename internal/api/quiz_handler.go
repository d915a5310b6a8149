package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/quiz-content-api/internal/service"
)

// QuizHandler handles the public quiz-set endpoints
type QuizHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewQuizHandler creates a new QuizHandler
func NewQuizHandler(services *service.Services, log zerolog.Logger) *QuizHandler {
	return &QuizHandler{
		services: services,
		log:      log.With().Str("handler", "quiz").Logger(),
	}
}

// ListSets handles GET /v1/quiz-sets?page=N
// Returns one page of set summaries; the client detects the last page when it
// receives fewer entries than the fixed page size.
func (h *QuizHandler) ListSets(c *gin.Context) {
	page := 1
	if raw := c.Query("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "page must be an integer"})
			return
		}
		page = parsed
	}

	sets, err := h.services.Quiz.ListSetsPage(c.Request.Context(), page)
	if err != nil {
		h.log.Error().Err(err).Int("page", page).Msg("Failed to list quiz sets")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list quiz sets"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page": page,
		"sets": sets,
	})
}

// GetSet handles GET /v1/quiz-sets/:category/:set_num
// The category segment is the hyphenated-lowercase slug.
func (h *QuizHandler) GetSet(c *gin.Context) {
	categorySlug := c.Param("category")

	setNum, err := strconv.Atoi(c.Param("set_num"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "set number must be an integer"})
		return
	}

	detail, err := h.services.Quiz.GetSet(c.Request.Context(), categorySlug, setNum)
	if err != nil {
		h.log.Error().Err(err).
			Str("category", categorySlug).
			Int("set_num", setNum).
			Msg("Failed to load quiz set")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load quiz set"})
		return
	}
	if detail == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "quiz set not found"})
		return
	}

	c.JSON(http.StatusOK, detail)
}
