package mocks

import (
	"context"
	"sort"
	"strings"

	"github.com/quiz-content-api/internal/models"
)

// MockQuestionRepository is an in-memory implementation of
// QuestionRepository. It mirrors the store's semantics closely enough for
// service tests: insertion order stands in for persisted row order, category
// matching is case-insensitive, and upserts propagate set metadata.
type MockQuestionRepository struct {
	Questions map[string]*models.Question
	order     []string

	UpsertError error
	ListError   error
	UpsertCalls int
}

// NewMockQuestionRepository creates an empty mock repository
func NewMockQuestionRepository() *MockQuestionRepository {
	return &MockQuestionRepository{
		Questions: make(map[string]*models.Question),
	}
}

// Seed inserts questions without the propagation step, preserving whatever
// metadata each row carries
func (m *MockQuestionRepository) Seed(questions ...*models.Question) {
	for _, q := range questions {
		if _, ok := m.Questions[q.ID]; !ok {
			m.order = append(m.order, q.ID)
		}
		m.Questions[q.ID] = q
	}
}

func (m *MockQuestionRepository) ListSetsPage(ctx context.Context, page, perPage int) ([]models.QuizSet, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}

	type setKey struct {
		category string
		setNum   int
	}
	seen := make(map[setKey]bool)
	var sets []models.QuizSet

	// First-encountered row defines the set's metadata.
	for _, id := range m.order {
		q := m.Questions[id]
		key := setKey{q.Category, q.SetID}
		if seen[key] {
			continue
		}
		seen[key] = true
		sets = append(sets, models.QuizSet{
			Category:    q.Category,
			SetNum:      q.SetID,
			Tag:         q.Tag,
			Description: q.Description,
			URLSlug:     models.CategorySlug(q.Category),
		})
	}

	sort.SliceStable(sets, func(i, j int) bool {
		if sets[i].Category != sets[j].Category {
			return sets[i].Category < sets[j].Category
		}
		return sets[i].SetNum > sets[j].SetNum
	})

	start := (page - 1) * perPage
	if start >= len(sets) {
		return []models.QuizSet{}, nil
	}
	end := start + perPage
	if end > len(sets) {
		end = len(sets)
	}
	return sets[start:end], nil
}

func (m *MockQuestionRepository) GetSetQuestions(ctx context.Context, category string, setNum int) ([]*models.Question, error) {
	var questions []*models.Question
	for _, id := range m.order {
		q := m.Questions[id]
		if q.SetID == setNum && strings.EqualFold(q.Category, category) {
			questions = append(questions, q)
		}
	}
	return questions, nil
}

func (m *MockQuestionRepository) SetExists(ctx context.Context, category string, setNum int) (bool, error) {
	for _, q := range m.Questions {
		if q.SetID == setNum && strings.EqualFold(q.Category, category) {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockQuestionRepository) ListSidebarSets(ctx context.Context, category string, limit int) ([]int, error) {
	distinct := make(map[int]bool)
	for _, q := range m.Questions {
		if strings.EqualFold(q.Category, category) {
			distinct[q.SetID] = true
		}
	}

	var nums []int
	for n := range distinct {
		nums = append(nums, n)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(nums)))
	if len(nums) > limit {
		nums = nums[:limit]
	}
	return nums, nil
}

func (m *MockQuestionRepository) Upsert(ctx context.Context, q *models.Question) error {
	m.UpsertCalls++
	if m.UpsertError != nil {
		return m.UpsertError
	}

	if _, ok := m.Questions[q.ID]; !ok {
		m.order = append(m.order, q.ID)
	}
	m.Questions[q.ID] = q

	for _, sibling := range m.Questions {
		if sibling.SetID == q.SetID && strings.EqualFold(sibling.Category, q.Category) {
			sibling.Tag = q.Tag
			sibling.Description = q.Description
		}
	}
	return nil
}

func (m *MockQuestionRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.Questions[id]; !ok {
		return nil
	}
	delete(m.Questions, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MockQuestionRepository) GetByID(ctx context.Context, id string) (*models.Question, error) {
	return m.Questions[id], nil
}

func (m *MockQuestionRepository) List(ctx context.Context) ([]*models.Question, error) {
	questions := make([]*models.Question, 0, len(m.Questions))
	for _, id := range m.order {
		questions = append(questions, m.Questions[id])
	}
	sort.SliceStable(questions, func(i, j int) bool {
		if questions[i].Category != questions[j].Category {
			return questions[i].Category < questions[j].Category
		}
		return questions[i].SetID < questions[j].SetID
	})
	return questions, nil
}

func (m *MockQuestionRepository) Count(ctx context.Context) (int, error) {
	return len(m.Questions), nil
}

func (m *MockQuestionRepository) StreamAll(ctx context.Context, callback func(*models.Question) error) error {
	questions, _ := m.List(ctx)
	for _, q := range questions {
		if err := callback(q); err != nil {
			return err
		}
	}
	return nil
}
