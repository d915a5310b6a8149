package service

import (
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/quiz-content-api/internal/models"
	"github.com/quiz-content-api/internal/store"
	"github.com/quiz-content-api/internal/validation"
)

var (
	// Matches the 11-character video id inside a pasted YouTube iframe,
	// share URL, or watch URL.
	videoIDRegex = regexp.MustCompile(`(?:v=|/|embed/)([0-9A-Za-z_-]{11})`)

	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
)

// contentService is the concrete implementation of ContentService
type contentService struct {
	articles *store.ArticleStore
	contests *store.ContestStore
	log      zerolog.Logger
}

// newContentService creates a new ContentService
func newContentService(articles *store.ArticleStore, contests *store.ContestStore, log zerolog.Logger) *contentService {
	return &contentService{
		articles: articles,
		contests: contests,
		log:      log.With().Str("service", "content").Logger(),
	}
}

// ListArticles returns all articles in persisted order (newest first)
func (s *contentService) ListArticles() ([]*models.Article, error) {
	return s.articles.List()
}

// GetArticle returns one article by slug, nil when absent
func (s *contentService) GetArticle(slug string) (*models.Article, error) {
	return s.articles.FindBySlug(slug)
}

// PublishArticle fills derived fields and saves the article: the slug is
// derived from the title when absent, the video id is extracted from a pasted
// iframe or URL, and the display date is stamped on first publish.
func (s *contentService) PublishArticle(a *models.Article, videoInput string) (*models.Article, []validation.ValidationError, error) {
	if a.Slug == "" {
		a.Slug = Slugify(a.Title)
	}
	if a.VideoID == "" && videoInput != "" {
		a.VideoID = ParseVideoID(videoInput)
	}
	if a.Date == "" {
		a.Date = time.Now().Format(models.ArticleDateLayout)
	}

	if errs := validation.NewValidator().ValidateArticle(a); len(errs) > 0 {
		return nil, errs, nil
	}

	if err := s.articles.Save(a); err != nil {
		return nil, nil, err
	}
	return a, nil, nil
}

// DeleteArticle removes one article by slug
func (s *contentService) DeleteArticle(slug string) error {
	return s.articles.Delete(slug)
}

// ListContests partitions the stored contests into live and expired
func (s *contentService) ListContests(now time.Time) (live, expired []*models.Contest, err error) {
	return s.contests.List(now)
}

// ParseVideoID extracts the 11-character YouTube video id from an iframe
// embed, share URL, or watch URL. Returns "" when nothing matches.
func ParseVideoID(input string) string {
	match := videoIDRegex.FindStringSubmatch(input)
	if match == nil {
		return ""
	}
	return match[1]
}

// Slugify turns a display title into a kebab-case URL slug
func Slugify(title string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}
