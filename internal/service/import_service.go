package service

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/quiz-content-api/internal/models"
	"github.com/quiz-content-api/internal/repository"
	"github.com/quiz-content-api/internal/store"
	"github.com/quiz-content-api/internal/validation"
)

// maxReportedErrors bounds the per-import error list; failures beyond it are
// still counted
const maxReportedErrors = 100

// ImportError is one rejected record in an import summary
type ImportError struct {
	Line    int         `json:"line"`
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ImportSummary reports the outcome of one synchronous bulk import
type ImportSummary struct {
	Total      int           `json:"total"`
	Successful int           `json:"successful"`
	Failed     int           `json:"failed"`
	Errors     []ImportError `json:"errors,omitempty"`
}

// importService is the concrete implementation of ImportService. Imports run
// synchronously on the calling request: the authoring side is a single
// operator, so there is no job queue to coordinate.
type importService struct {
	questions repository.QuestionRepository
	articles  *store.ArticleStore
	log       zerolog.Logger
}

// newImportService creates a new ImportService
func newImportService(questions repository.QuestionRepository, articles *store.ArticleStore, log zerolog.Logger) *importService {
	return &importService{
		questions: questions,
		articles:  articles,
		log:       log.With().Str("service", "import").Logger(),
	}
}

// ImportQuestions reads question records from r — either a JSON array or
// NDJSON, detected from the first byte — validates each, and upserts the
// valid ones. Every upsert goes through the same propagation path as a
// single-question save, so set metadata stays coherent.
func (s *importService) ImportQuestions(ctx context.Context, r io.Reader) (*ImportSummary, error) {
	br := bufio.NewReader(r)
	isArray, err := startsArray(br)
	if err != nil {
		return nil, err
	}

	summary := &ImportSummary{}
	validator := validation.NewValidator()

	process := func(q *models.Question, line int) error {
		summary.Total++

		if errs := validator.ValidateQuestion(q); len(errs) > 0 {
			s.recordFailures(summary, line, errs)
			return nil
		}
		if q.ID == "" {
			q.ID = newQuestionID()
		}
		validator.AddQuestionID(q.ID)

		if err := s.questions.Upsert(ctx, q); err != nil {
			return err
		}
		summary.Successful++
		return nil
	}

	if isArray {
		var questions []*models.Question
		if err := json.NewDecoder(br).Decode(&questions); err != nil {
			return nil, fmt.Errorf("invalid JSON array: %w", err)
		}
		for i, q := range questions {
			if err := checkCancelled(ctx, i); err != nil {
				return nil, err
			}
			if err := process(q, i+1); err != nil {
				return nil, err
			}
		}
	} else {
		scanner := bufio.NewScanner(br)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		line := 0
		for scanner.Scan() {
			line++
			if err := checkCancelled(ctx, line); err != nil {
				return nil, err
			}
			text := scanner.Bytes()
			if len(text) == 0 {
				continue
			}

			var q models.Question
			if err := json.Unmarshal(text, &q); err != nil {
				summary.Total++
				s.recordFailures(summary, line, []validation.ValidationError{
					{Field: "", Message: "invalid JSON: " + err.Error()},
				})
				continue
			}
			if err := process(&q, line); err != nil {
				return nil, err
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}

	s.log.Info().
		Int("total", summary.Total).
		Int("successful", summary.Successful).
		Int("failed", summary.Failed).
		Msg("Question import completed")

	return summary, nil
}

// ImportArticles reads a JSON array of articles from r, validates each, and
// saves the valid ones through the article store
func (s *importService) ImportArticles(ctx context.Context, r io.Reader) (*ImportSummary, error) {
	var articles []*models.Article
	if err := json.NewDecoder(r).Decode(&articles); err != nil {
		return nil, fmt.Errorf("invalid JSON array: %w", err)
	}

	summary := &ImportSummary{}
	validator := validation.NewValidator()

	for i, a := range articles {
		if err := checkCancelled(ctx, i); err != nil {
			return nil, err
		}
		summary.Total++

		if errs := validator.ValidateArticle(a); len(errs) > 0 {
			s.recordFailures(summary, i+1, errs)
			continue
		}
		validator.AddArticleSlug(a.Slug)

		if err := s.articles.Save(a); err != nil {
			return nil, err
		}
		summary.Successful++
	}

	s.log.Info().
		Int("total", summary.Total).
		Int("successful", summary.Successful).
		Int("failed", summary.Failed).
		Msg("Article import completed")

	return summary, nil
}

func (s *importService) recordFailures(summary *ImportSummary, line int, errs []validation.ValidationError) {
	summary.Failed++
	for _, e := range errs {
		if len(summary.Errors) >= maxReportedErrors {
			return
		}
		summary.Errors = append(summary.Errors, ImportError{
			Line:    line,
			Field:   e.Field,
			Message: e.Message,
			Value:   e.Value,
		})
	}
}

// startsArray reports whether the stream begins a JSON array, skipping
// leading whitespace without consuming the payload
func startsArray(br *bufio.Reader) (bool, error) {
	for {
		b, err := br.Peek(1)
		if err == io.EOF {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		switch b[0] {
		case ' ', '\t', '\r', '\n':
			if _, err := br.ReadByte(); err != nil {
				return false, err
			}
		default:
			return b[0] == '[', nil
		}
	}
}

// checkCancelled respects context cancellation on long imports without
// paying the select on every record
func checkCancelled(ctx context.Context, i int) error {
	if i%1000 != 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
