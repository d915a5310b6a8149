package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/quiz-content-api/internal/models"
	"github.com/quiz-content-api/internal/repository"
	"github.com/quiz-content-api/internal/store"
)

// exportService is the concrete implementation of ExportService
type exportService struct {
	questions repository.QuestionRepository
	articles  *store.ArticleStore
	contests  *store.ContestStore
	log       zerolog.Logger
}

// newExportService creates a new ExportService
func newExportService(questions repository.QuestionRepository, articles *store.ArticleStore, contests *store.ContestStore, log zerolog.Logger) *exportService {
	return &exportService{
		questions: questions,
		articles:  articles,
		contests:  contests,
		log:       log.With().Str("service", "export").Logger(),
	}
}

// StreamQuestions streams all questions in the specified format
func (s *exportService) StreamQuestions(ctx context.Context, w http.ResponseWriter, format string) error {
	s.log.Info().Str("format", format).Msg("Starting questions export")

	switch format {
	case "ndjson":
		return s.streamQuestionsNDJSON(ctx, w)
	case "json":
		return s.streamQuestionsJSON(ctx, w)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// StreamArticles writes all articles in the specified format
func (s *exportService) StreamArticles(w http.ResponseWriter, format string) error {
	s.log.Info().Str("format", format).Msg("Starting articles export")

	articles, err := s.articles.List()
	if err != nil {
		return err
	}

	switch format {
	case "ndjson":
		w.Header().Set("Content-Type", "application/x-ndjson")
		w.Header().Set("Content-Disposition", "attachment; filename=articles.ndjson")
		enc := json.NewEncoder(w)
		for _, a := range articles {
			if err := enc.Encode(a); err != nil {
				return err
			}
		}
		return nil
	case "json":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", "attachment; filename=articles.json")
		return json.NewEncoder(w).Encode(articles)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// StreamContests writes the partitioned contest lists as JSON
func (s *exportService) StreamContests(w http.ResponseWriter) error {
	live, expired, err := s.contests.List(time.Now())
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=contests.json")
	return json.NewEncoder(w).Encode(map[string][]*models.Contest{
		"live":    live,
		"expired": expired,
	})
}

// GetCount returns the record count for a resource
func (s *exportService) GetCount(ctx context.Context, resource string) (int, error) {
	switch resource {
	case "questions":
		return s.questions.Count(ctx)
	case "articles":
		articles, err := s.articles.List()
		if err != nil {
			return 0, err
		}
		return len(articles), nil
	case "contests":
		live, expired, err := s.contests.List(time.Now())
		if err != nil {
			return 0, err
		}
		return len(live) + len(expired), nil
	default:
		return 0, fmt.Errorf("unknown resource: %s", resource)
	}
}

func (s *exportService) streamQuestionsNDJSON(ctx context.Context, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Content-Disposition", "attachment; filename=questions.ndjson")

	flusher, _ := w.(http.Flusher)
	count := 0
	enc := json.NewEncoder(w)

	err := s.questions.StreamAll(ctx, func(q *models.Question) error {
		if err := enc.Encode(q); err != nil {
			return err
		}
		count++

		// Flush every 100 records for streaming
		if count%100 == 0 && flusher != nil {
			flusher.Flush()
		}
		return nil
	})

	s.log.Info().Int("count", count).Msg("Questions export completed")
	return err
}

func (s *exportService) streamQuestionsJSON(ctx context.Context, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=questions.json")

	w.Write([]byte("["))
	first := true

	err := s.questions.StreamAll(ctx, func(q *models.Question) error {
		if !first {
			w.Write([]byte(","))
		}
		first = false

		data, err := json.Marshal(q)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	})

	w.Write([]byte("]"))
	return err
}
