package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/quiz-content-api/internal/database"
	"github.com/quiz-content-api/internal/models"
)

// ErrCorruptQuestion marks a row whose options/correct columns are not valid
// JSON arrays. Retrieval fails rather than silently coercing; the wrapping
// error names the offending row id.
var ErrCorruptQuestion = errors.New("corrupt question row")

const questionColumns = "id, set_id, category, tag, description, question, image_url, options, correct, explanation"

// questionRepo is the concrete implementation of QuestionRepository
type questionRepo struct {
	db *database.DB
}

// NewQuestionRepo creates a new question repository
func NewQuestionRepo(db *database.DB) QuestionRepository {
	return &questionRepo{db: db}
}

// ListSetsPage groups questions into sets and returns the requested page.
// Ordering is category ascending, set number descending (newest set of a
// category first). Non-positive page/perPage are clamped to 1. A missing
// questions table means an empty store, not a failure.
func (r *questionRepo) ListSetsPage(ctx context.Context, page, perPage int) ([]models.QuizSet, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}
	offset := (page - 1) * perPage

	// SQLite resolves the bare tag/description columns to an arbitrary row
	// of each group, which is exactly the "first-encountered row" contract
	// for set-level metadata.
	rows, err := r.db.QueryContext(ctx, `
		SELECT category, set_id, tag, description
		FROM questions
		GROUP BY category, set_id
		ORDER BY category ASC, set_id DESC
		LIMIT ? OFFSET ?`,
		perPage, offset,
	)
	if err != nil {
		if isMissingTable(err) {
			return []models.QuizSet{}, nil
		}
		return nil, err
	}
	defer rows.Close()

	sets := make([]models.QuizSet, 0, perPage)
	for rows.Next() {
		var set models.QuizSet
		if err := rows.Scan(&set.Category, &set.SetNum, &set.Tag, &set.Description); err != nil {
			return nil, err
		}
		set.URLSlug = models.CategorySlug(set.Category)
		sets = append(sets, set)
	}

	return sets, rows.Err()
}

// GetSetQuestions returns all questions of (category, setNum) in persisted
// row order, nil when none match
func (r *questionRepo) GetSetQuestions(ctx context.Context, category string, setNum int) ([]*models.Question, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+questionColumns+`
		FROM questions
		WHERE set_id = ? AND category = ? COLLATE NOCASE`,
		setNum, category,
	)
	if err != nil {
		if isMissingTable(err) {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	var questions []*models.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	return questions, rows.Err()
}

// SetExists checks for any row of (category, setNum) without loading the set
func (r *questionRepo) SetExists(ctx context.Context, category string, setNum int) (bool, error) {
	var found int
	err := r.db.QueryRowContext(ctx, `
		SELECT 1 FROM questions
		WHERE set_id = ? AND category = ? COLLATE NOCASE
		LIMIT 1`,
		setNum, category,
	).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isMissingTable(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ListSidebarSets returns up to limit distinct set numbers of a category,
// newest first
func (r *questionRepo) ListSidebarSets(ctx context.Context, category string, limit int) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT set_id
		FROM questions
		WHERE category = ? COLLATE NOCASE
		ORDER BY set_id DESC
		LIMIT ?`,
		category, limit,
	)
	if err != nil {
		if isMissingTable(err) {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	var setNums []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		setNums = append(setNums, n)
	}

	return setNums, rows.Err()
}

// Upsert writes the row for q.ID, then rewrites tag and description on every
// sibling row of the same (category, set number). The two statements are not
// atomic as a pair; a crash in between leaves sibling metadata stale until
// the next write, which is accepted for a single-operator authoring tool.
func (r *questionRepo) Upsert(ctx context.Context, q *models.Question) error {
	optionsJSON, err := json.Marshal(q.Options)
	if err != nil {
		return fmt.Errorf("question %q: failed to encode options: %w", q.ID, err)
	}
	correctJSON, err := json.Marshal(q.Correct)
	if err != nil {
		return fmt.Errorf("question %q: failed to encode correct: %w", q.ID, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO questions (`+questionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			set_id = excluded.set_id,
			category = excluded.category,
			tag = excluded.tag,
			description = excluded.description,
			question = excluded.question,
			image_url = excluded.image_url,
			options = excluded.options,
			correct = excluded.correct,
			explanation = excluded.explanation`,
		q.ID, q.SetID, q.Category, q.Tag, q.Description,
		q.Question, q.ImageURL, string(optionsJSON), string(correctJSON), q.Explanation,
	)
	if err != nil {
		return err
	}

	// Set-level metadata lives redundantly on every row; this propagation is
	// the only thing keeping it single-valued.
	_, err = r.db.ExecContext(ctx, `
		UPDATE questions
		SET tag = ?, description = ?
		WHERE set_id = ? AND category = ? COLLATE NOCASE`,
		q.Tag, q.Description, q.SetID, q.Category,
	)
	return err
}

// Delete removes the question with the given id; deleting an unknown id is
// not an error
func (r *questionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE id = ?`, id)
	return err
}

// GetByID retrieves one question, nil when absent
func (r *questionRepo) GetByID(ctx context.Context, id string) (*models.Question, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+questionColumns+`
		FROM questions WHERE id = ?`,
		id,
	)

	q, err := scanQuestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil && isMissingTable(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}

// List returns every question ordered for the authoring list view
func (r *questionRepo) List(ctx context.Context) ([]*models.Question, error) {
	questions := make([]*models.Question, 0)
	err := r.stream(ctx, `ORDER BY category ASC, set_id ASC`, func(q *models.Question) error {
		questions = append(questions, q)
		return nil
	})
	return questions, err
}

// Count returns the total number of questions
func (r *questionRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions`).Scan(&count)
	if err != nil && isMissingTable(err) {
		return 0, nil
	}
	return count, err
}

// StreamAll streams all questions for export, in a stable order
func (r *questionRepo) StreamAll(ctx context.Context, callback func(*models.Question) error) error {
	return r.stream(ctx, `ORDER BY category ASC, set_id ASC, id ASC`, callback)
}

func (r *questionRepo) stream(ctx context.Context, orderBy string, callback func(*models.Question) error) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+questionColumns+`
		FROM questions `+orderBy)
	if err != nil {
		if isMissingTable(err) {
			return nil
		}
		return err
	}
	defer rows.Close()

	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return err
		}
		if err := callback(q); err != nil {
			return err
		}
	}

	return rows.Err()
}

// rowScanner covers both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (*models.Question, error) {
	var q models.Question
	var optionsJSON, correctJSON string

	err := row.Scan(
		&q.ID, &q.SetID, &q.Category, &q.Tag, &q.Description,
		&q.Question, &q.ImageURL, &optionsJSON, &correctJSON, &q.Explanation,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(optionsJSON), &q.Options); err != nil {
		return nil, fmt.Errorf("question %q: malformed options column: %w", q.ID, ErrCorruptQuestion)
	}
	if err := json.Unmarshal([]byte(correctJSON), &q.Correct); err != nil {
		return nil, fmt.Errorf("question %q: malformed correct column: %w", q.ID, ErrCorruptQuestion)
	}

	return &q, nil
}

// isMissingTable reports whether err is SQLite's "no such table". A store
// that has never been written to is treated as empty on every read path.
func isMissingTable(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such table")
}
