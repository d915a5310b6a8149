package mocks

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/quiz-content-api/internal/models"
	"github.com/quiz-content-api/internal/service"
	"github.com/quiz-content-api/internal/validation"
)

// MockQuizService is a mock implementation of QuizService
type MockQuizService struct {
	Sets             []models.QuizSet
	Detail           *models.QuizSetDetail
	Questions        []*models.Question
	SavedQuestions   []*models.Question
	DeletedIDs       []string
	ValidationErrors []validation.ValidationError
	Err              error
}

func NewMockQuizService() *MockQuizService {
	return &MockQuizService{}
}

func (m *MockQuizService) ListSetsPage(ctx context.Context, page int) ([]models.QuizSet, error) {
	return m.Sets, m.Err
}

func (m *MockQuizService) GetSet(ctx context.Context, categorySlug string, setNum int) (*models.QuizSetDetail, error) {
	return m.Detail, m.Err
}

func (m *MockQuizService) ListQuestions(ctx context.Context) ([]*models.Question, error) {
	return m.Questions, m.Err
}

func (m *MockQuizService) SaveQuestion(ctx context.Context, q *models.Question) (*models.Question, []validation.ValidationError, error) {
	if m.Err != nil {
		return nil, nil, m.Err
	}
	if len(m.ValidationErrors) > 0 {
		return nil, m.ValidationErrors, nil
	}
	if q.ID == "" {
		q.ID = "generated"
	}
	m.SavedQuestions = append(m.SavedQuestions, q)
	return q, nil, nil
}

func (m *MockQuizService) DeleteQuestion(ctx context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	m.DeletedIDs = append(m.DeletedIDs, id)
	return nil
}

// MockContentService is a mock implementation of ContentService
type MockContentService struct {
	Articles         []*models.Article
	Live             []*models.Contest
	Expired          []*models.Contest
	SavedArticles    []*models.Article
	DeletedSlugs     []string
	ValidationErrors []validation.ValidationError
	Err              error
}

func NewMockContentService() *MockContentService {
	return &MockContentService{}
}

func (m *MockContentService) ListArticles() ([]*models.Article, error) {
	return m.Articles, m.Err
}

func (m *MockContentService) GetArticle(slug string) (*models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, a := range m.Articles {
		if a.Slug == slug {
			return a, nil
		}
	}
	return nil, nil
}

func (m *MockContentService) PublishArticle(a *models.Article, videoInput string) (*models.Article, []validation.ValidationError, error) {
	if m.Err != nil {
		return nil, nil, m.Err
	}
	if len(m.ValidationErrors) > 0 {
		return nil, m.ValidationErrors, nil
	}
	m.SavedArticles = append(m.SavedArticles, a)
	return a, nil, nil
}

func (m *MockContentService) DeleteArticle(slug string) error {
	if m.Err != nil {
		return m.Err
	}
	m.DeletedSlugs = append(m.DeletedSlugs, slug)
	return nil
}

func (m *MockContentService) ListContests(now time.Time) ([]*models.Contest, []*models.Contest, error) {
	return m.Live, m.Expired, m.Err
}

// MockImportService is a mock implementation of ImportService
type MockImportService struct {
	Summary *service.ImportSummary
	Err     error
	Calls   int
}

func NewMockImportService() *MockImportService {
	return &MockImportService{
		Summary: &service.ImportSummary{},
	}
}

func (m *MockImportService) ImportQuestions(ctx context.Context, r io.Reader) (*service.ImportSummary, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Summary, nil
}

func (m *MockImportService) ImportArticles(ctx context.Context, r io.Reader) (*service.ImportSummary, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Summary, nil
}

// MockExportService is a mock implementation of ExportService
type MockExportService struct {
	Counts map[string]int
	Err    error
}

func NewMockExportService() *MockExportService {
	return &MockExportService{
		Counts: make(map[string]int),
	}
}

func (m *MockExportService) StreamQuestions(ctx context.Context, w http.ResponseWriter, format string) error {
	if m.Err != nil {
		return m.Err
	}
	w.Header().Set("Content-Type", "application/x-ndjson")
	_, err := w.Write([]byte("{}\n"))
	return err
}

func (m *MockExportService) StreamArticles(w http.ResponseWriter, format string) error {
	if m.Err != nil {
		return m.Err
	}
	w.Header().Set("Content-Type", "application/json")
	_, err := w.Write([]byte("[]"))
	return err
}

func (m *MockExportService) StreamContests(w http.ResponseWriter) error {
	if m.Err != nil {
		return m.Err
	}
	w.Header().Set("Content-Type", "application/json")
	_, err := w.Write([]byte(`{"live":[],"expired":[]}`))
	return err
}

func (m *MockExportService) GetCount(ctx context.Context, resource string) (int, error) {
	return m.Counts[resource], m.Err
}
