package service

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/quiz-content-api/internal/config"
	"github.com/quiz-content-api/internal/models"
	"github.com/quiz-content-api/internal/repository"
	"github.com/quiz-content-api/internal/store"
	"github.com/quiz-content-api/internal/validation"
)

// QuizService defines the interface for quiz-set operations
type QuizService interface {
	ListSetsPage(ctx context.Context, page int) ([]models.QuizSet, error)
	GetSet(ctx context.Context, categorySlug string, setNum int) (*models.QuizSetDetail, error)
	ListQuestions(ctx context.Context) ([]*models.Question, error)
	SaveQuestion(ctx context.Context, q *models.Question) (*models.Question, []validation.ValidationError, error)
	DeleteQuestion(ctx context.Context, id string) error
}

// ContentService defines the interface for article and contest operations
type ContentService interface {
	ListArticles() ([]*models.Article, error)
	GetArticle(slug string) (*models.Article, error)
	PublishArticle(a *models.Article, videoInput string) (*models.Article, []validation.ValidationError, error)
	DeleteArticle(slug string) error
	ListContests(now time.Time) (live, expired []*models.Contest, err error)
}

// ImportService defines the interface for synchronous bulk imports
type ImportService interface {
	ImportQuestions(ctx context.Context, r io.Reader) (*ImportSummary, error)
	ImportArticles(ctx context.Context, r io.Reader) (*ImportSummary, error)
}

// ExportService defines the interface for export operations
type ExportService interface {
	StreamQuestions(ctx context.Context, w http.ResponseWriter, format string) error
	StreamArticles(w http.ResponseWriter, format string) error
	StreamContests(w http.ResponseWriter) error
	GetCount(ctx context.Context, resource string) (int, error)
}

// Services holds all service interfaces
type Services struct {
	Quiz    QuizService
	Content ContentService
	Import  ImportService
	Export  ExportService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, articles *store.ArticleStore, contests *store.ContestStore, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Quiz:    newQuizService(repos.Question, cfg, log),
		Content: newContentService(articles, contests, log),
		Import:  newImportService(repos.Question, articles, log),
		Export:  newExportService(repos.Question, articles, contests, log),
	}
}
