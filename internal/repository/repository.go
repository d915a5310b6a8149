package repository

import (
	"context"

	"github.com/quiz-content-api/internal/database"
	"github.com/quiz-content-api/internal/models"
)

// QuestionRepository is the sole owner of question-table access
type QuestionRepository interface {
	// ListSetsPage returns one page of set summaries, grouped by
	// (category, set number), ordered category ascending then set number
	// descending. Callers infer end-of-list from a short page.
	ListSetsPage(ctx context.Context, page, perPage int) ([]models.QuizSet, error)
	// GetSetQuestions returns every question of one set in persisted row
	// order, or nil when the set does not exist. Category matching is
	// case-insensitive.
	GetSetQuestions(ctx context.Context, category string, setNum int) ([]*models.Question, error)
	// SetExists probes for a set without materializing its rows
	SetExists(ctx context.Context, category string, setNum int) (bool, error)
	// ListSidebarSets returns up to limit sibling set numbers of a
	// category, newest set first
	ListSidebarSets(ctx context.Context, category string, limit int) ([]int, error)
	// Upsert inserts or replaces the row with q.ID, then propagates tag and
	// description to every sibling row of the same set
	Upsert(ctx context.Context, q *models.Question) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Question, error)
	// List returns all questions ordered for the authoring list view
	// (category ascending, set number ascending)
	List(ctx context.Context) ([]*models.Question, error)
	Count(ctx context.Context) (int, error)
	StreamAll(ctx context.Context, callback func(*models.Question) error) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	Question QuestionRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Question: NewQuestionRepo(db),
	}
}
