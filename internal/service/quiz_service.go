package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/quiz-content-api/internal/config"
	"github.com/quiz-content-api/internal/models"
	"github.com/quiz-content-api/internal/repository"
	"github.com/quiz-content-api/internal/validation"
)

// quizService is the concrete implementation of QuizService
type quizService struct {
	questions repository.QuestionRepository
	cfg       *config.Config
	log       zerolog.Logger
}

// newQuizService creates a new QuizService
func newQuizService(questions repository.QuestionRepository, cfg *config.Config, log zerolog.Logger) *quizService {
	return &quizService{
		questions: questions,
		cfg:       cfg,
		log:       log.With().Str("service", "quiz").Logger(),
	}
}

// ListSetsPage returns one public listing page of set summaries. Page size is
// fixed by configuration; callers detect the last page by receiving fewer
// than a full page.
func (s *quizService) ListSetsPage(ctx context.Context, page int) ([]models.QuizSet, error) {
	return s.questions.ListSetsPage(ctx, page, s.cfg.Quiz.SetsPerPage)
}

// GetSet resolves a URL-facing category slug and set number into everything
// the set page needs. Returns nil when no questions match; callers must treat
// that as not found, not as an empty set.
func (s *quizService) GetSet(ctx context.Context, categorySlug string, setNum int) (*models.QuizSetDetail, error) {
	category := models.CategoryFromSlug(categorySlug)

	questions, err := s.questions.GetSetQuestions(ctx, category, setNum)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, nil
	}

	hasNext, err := s.questions.SetExists(ctx, category, setNum+1)
	if err != nil {
		return nil, err
	}

	siblingNums, err := s.questions.ListSidebarSets(ctx, category, s.cfg.Quiz.SidebarSets)
	if err != nil {
		return nil, err
	}

	sidebar := make([]models.SidebarSet, 0, len(siblingNums))
	for _, n := range siblingNums {
		sidebar = append(sidebar, models.SidebarSet{
			Category: category,
			SetNum:   n,
			URLSlug:  categorySlug,
		})
	}

	// The set's metadata is whatever the first row carries; propagation on
	// write keeps the siblings consistent with it.
	return &models.QuizSetDetail{
		Questions:   questions,
		Category:    category,
		Tag:         questions[0].Tag,
		Description: questions[0].Description,
		HasNext:     hasNext,
		SidebarSets: sidebar,
	}, nil
}

// ListQuestions returns every question for the authoring list view
func (s *quizService) ListQuestions(ctx context.Context) ([]*models.Question, error) {
	return s.questions.List(ctx)
}

// SaveQuestion validates and upserts one question, generating an id for new
// records. Validation failures are returned to the caller, not logged as
// server errors.
func (s *quizService) SaveQuestion(ctx context.Context, q *models.Question) (*models.Question, []validation.ValidationError, error) {
	if errs := validation.NewValidator().ValidateQuestion(q); len(errs) > 0 {
		return nil, errs, nil
	}

	if q.ID == "" {
		q.ID = newQuestionID()
	}

	if err := s.questions.Upsert(ctx, q); err != nil {
		return nil, nil, err
	}

	s.log.Info().
		Str("question_id", q.ID).
		Str("category", q.Category).
		Int("set_id", q.SetID).
		Msg("Question saved")

	return q, nil, nil
}

// DeleteQuestion removes one question by id
func (s *quizService) DeleteQuestion(ctx context.Context, id string) error {
	if err := s.questions.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("question_id", id).Msg("Question deleted")
	return nil
}

// newQuestionID returns a short stable id: the first 8 hex characters of a
// random UUID, matching the ids the authoring tool has always produced.
func newQuestionID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}
