package repository

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/quiz-content-api/internal/config"
	"github.com/quiz-content-api/internal/database"
	"github.com/quiz-content-api/internal/models"
)

// newTestDB opens a fresh on-disk SQLite database in a temp dir and applies
// the migrations from the repository root.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	cfg := &config.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "quiz.db"),
	}
	db, err := database.New(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func seedQuestion(t *testing.T, repo QuestionRepository, q *models.Question) {
	t.Helper()
	if err := repo.Upsert(context.Background(), q); err != nil {
		t.Fatalf("failed to seed question %q: %v", q.ID, err)
	}
}

func testQuestion(id, category string, setNum int) *models.Question {
	return &models.Question{
		ID:       id,
		SetID:    setNum,
		Category: category,
		Question: "What does " + id + " test?",
		Options:  []string{"A", "B", "C"},
		Correct:  []string{"A"},
	}
}

func TestListSetsPageOrdering(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepo(db)
	ctx := context.Background()

	seedQuestion(t, repo, testQuestion("q1", "Java", 1))
	seedQuestion(t, repo, testQuestion("q2", "Python", 2))
	seedQuestion(t, repo, testQuestion("q3", "Python", 1))

	page1, err := repo.ListSetsPage(ctx, 1, 2)
	if err != nil {
		t.Fatalf("ListSetsPage page 1 failed: %v", err)
	}
	if len(page1) != 2 {
		t.Fatalf("expected 2 sets on page 1, got %d", len(page1))
	}
	if page1[0].Category != "Java" || page1[0].SetNum != 1 {
		t.Errorf("expected first set Java/1, got %s/%d", page1[0].Category, page1[0].SetNum)
	}
	if page1[1].Category != "Python" || page1[1].SetNum != 2 {
		t.Errorf("expected second set Python/2, got %s/%d", page1[1].Category, page1[1].SetNum)
	}

	page2, err := repo.ListSetsPage(ctx, 2, 2)
	if err != nil {
		t.Fatalf("ListSetsPage page 2 failed: %v", err)
	}
	if len(page2) != 1 {
		t.Fatalf("expected 1 set on page 2, got %d", len(page2))
	}
	if page2[0].Category != "Python" || page2[0].SetNum != 1 {
		t.Errorf("expected Python/1 on page 2, got %s/%d", page2[0].Category, page2[0].SetNum)
	}

	page3, err := repo.ListSetsPage(ctx, 3, 2)
	if err != nil {
		t.Fatalf("ListSetsPage page 3 failed: %v", err)
	}
	if len(page3) != 0 {
		t.Errorf("expected empty page past the end, got %d sets", len(page3))
	}
}

func TestListSetsPageClampsInputs(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepo(db)

	seedQuestion(t, repo, testQuestion("q1", "Java", 1))

	sets, err := repo.ListSetsPage(context.Background(), 0, -3)
	if err != nil {
		t.Fatalf("ListSetsPage with bad inputs failed: %v", err)
	}
	if len(sets) != 1 {
		t.Errorf("expected clamped page to return 1 set, got %d", len(sets))
	}
}

func TestListSetsPageSlug(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepo(db)

	seedQuestion(t, repo, testQuestion("q1", "Data Structures", 1))

	sets, err := repo.ListSetsPage(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("ListSetsPage failed: %v", err)
	}
	if len(sets) != 1 {
		t.Fatalf("expected 1 set, got %d", len(sets))
	}
	if sets[0].URLSlug != "data-structures" {
		t.Errorf("expected slug %q, got %q", "data-structures", sets[0].URLSlug)
	}
}

func TestGetSetQuestionsCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepo(db)
	ctx := context.Background()

	q := testQuestion("q1", "Python", 2)
	q.Options = []string{"List", "Tuple", "Dict"}
	q.Correct = []string{"Tuple"}
	seedQuestion(t, repo, q)

	got, err := repo.GetSetQuestions(ctx, "python", 2)
	if err != nil {
		t.Fatalf("GetSetQuestions failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 question for lowercase category, got %d", len(got))
	}
	if got[0].ID != "q1" {
		t.Errorf("expected question q1, got %s", got[0].ID)
	}
	if len(got[0].Options) != 3 || got[0].Options[1] != "Tuple" {
		t.Errorf("options did not round-trip in order: %v", got[0].Options)
	}
	if len(got[0].Correct) != 1 || got[0].Correct[0] != "Tuple" {
		t.Errorf("correct answers did not round-trip: %v", got[0].Correct)
	}
}

func TestGetSetQuestionsMissingSet(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepo(db)

	got, err := repo.GetSetQuestions(context.Background(), "Python", 99)
	if err != nil {
		t.Fatalf("GetSetQuestions failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing set, got %d questions", len(got))
	}
}

func TestSetExists(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepo(db)
	ctx := context.Background()

	seedQuestion(t, repo, testQuestion("q1", "Python", 2))

	tests := []struct {
		name     string
		category string
		setNum   int
		want     bool
	}{
		{"existing set", "Python", 2, true},
		{"case-insensitive match", "PYTHON", 2, true},
		{"missing set number", "Python", 3, false},
		{"missing category", "Rust", 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.SetExists(ctx, tt.category, tt.setNum)
			if err != nil {
				t.Fatalf("SetExists failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("SetExists(%q, %d) = %v, want %v", tt.category, tt.setNum, got, tt.want)
			}
		})
	}
}

func TestListSidebarSets(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepo(db)
	ctx := context.Background()

	for i := 1; i <= 7; i++ {
		seedQuestion(t, repo, testQuestion("java-"+strings.Repeat("x", i), "Java", i))
	}
	seedQuestion(t, repo, testQuestion("py1", "Python", 1))

	sets, err := repo.ListSidebarSets(ctx, "java", 5)
	if err != nil {
		t.Fatalf("ListSidebarSets failed: %v", err)
	}

	want := []int{7, 6, 5, 4, 3}
	if len(sets) != len(want) {
		t.Fatalf("expected %d sidebar sets, got %d", len(want), len(sets))
	}
	for i, n := range want {
		if sets[i] != n {
			t.Errorf("sidebar[%d] = %d, want %d", i, sets[i], n)
		}
	}
}

func TestUpsertPropagatesSetMetadata(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepo(db)
	ctx := context.Background()

	q1 := testQuestion("q1", "Java", 1)
	q1.Tag = "old-tag"
	q1.Description = "old description"
	seedQuestion(t, repo, q1)

	q2 := testQuestion("q2", "JAVA", 1)
	q2.Tag = "new-tag"
	q2.Description = "new description"
	seedQuestion(t, repo, q2)

	got, err := repo.GetByID(ctx, "q1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected q1 to exist")
	}
	if got.Tag != "new-tag" {
		t.Errorf("expected sibling tag %q, got %q", "new-tag", got.Tag)
	}
	if got.Description != "new description" {
		t.Errorf("expected sibling description %q, got %q", "new description", got.Description)
	}
}

func TestUpsertReplacesExistingRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepo(db)
	ctx := context.Background()

	seedQuestion(t, repo, testQuestion("q1", "Java", 1))

	updated := testQuestion("q1", "Java", 1)
	updated.Question = "Updated text?"
	updated.Options = []string{"X", "Y"}
	updated.Correct = []string{"Y"}
	seedQuestion(t, repo, updated)

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row after upsert of same id, got %d", count)
	}

	got, err := repo.GetByID(ctx, "q1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Question != "Updated text?" {
		t.Errorf("expected updated question text, got %q", got.Question)
	}
	if len(got.Options) != 2 || got.Options[0] != "X" {
		t.Errorf("expected updated options, got %v", got.Options)
	}
}

func TestDeleteQuestion(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepo(db)
	ctx := context.Background()

	seedQuestion(t, repo, testQuestion("q1", "Java", 1))

	if err := repo.Delete(ctx, "q1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	got, err := repo.GetByID(ctx, "q1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got != nil {
		t.Error("expected q1 gone after delete")
	}

	// Deleting an unknown id is a no-op
	if err := repo.Delete(ctx, "nope"); err != nil {
		t.Errorf("expected no error deleting unknown id, got %v", err)
	}
}

func TestCorruptOptionsColumn(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepo(db)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `
		INSERT INTO questions (id, set_id, category, tag, description, question, image_url, options, correct, explanation)
		VALUES ('bad1', 1, 'Java', '', '', 'Broken?', '', 'not-json', '["A"]', '')`)
	if err != nil {
		t.Fatalf("failed to insert corrupt row: %v", err)
	}

	_, err = repo.GetByID(ctx, "bad1")
	if !errors.Is(err, ErrCorruptQuestion) {
		t.Fatalf("expected ErrCorruptQuestion, got %v", err)
	}
	if !strings.Contains(err.Error(), "bad1") {
		t.Errorf("expected error to name the row id, got %q", err.Error())
	}
}

func TestListOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepo(db)
	ctx := context.Background()

	seedQuestion(t, repo, testQuestion("q1", "Python", 2))
	seedQuestion(t, repo, testQuestion("q2", "Java", 1))
	seedQuestion(t, repo, testQuestion("q3", "Python", 1))

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(all))
	}
	wantOrder := []string{"q2", "q3", "q1"}
	for i, id := range wantOrder {
		if all[i].ID != id {
			t.Errorf("List[%d] = %s, want %s", i, all[i].ID, id)
		}
	}
}

func TestStreamAllStopsOnCallbackError(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepo(db)
	ctx := context.Background()

	seedQuestion(t, repo, testQuestion("q1", "Java", 1))
	seedQuestion(t, repo, testQuestion("q2", "Java", 2))

	sentinel := errors.New("stop")
	calls := 0
	err := repo.StreamAll(ctx, func(q *models.Question) error {
		calls++
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected callback error to propagate, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected streaming to stop after first callback error, got %d calls", calls)
	}
}

func TestEmptyStoreReads(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepo(db)
	ctx := context.Background()

	sets, err := repo.ListSetsPage(ctx, 1, 6)
	if err != nil {
		t.Fatalf("ListSetsPage on empty store failed: %v", err)
	}
	if len(sets) != 0 {
		t.Errorf("expected no sets, got %d", len(sets))
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count on empty store failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected count 0, got %d", count)
	}
}
