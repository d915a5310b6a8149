package validation

import (
	"fmt"
	"regexp"

	"github.com/quiz-content-api/internal/models"
)

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Validator provides validation methods. The duplicate caches track ids and
// slugs already seen in the current batch, so bulk imports reject repeats
// within one file.
type Validator struct {
	questionIDCache  map[string]bool
	articleSlugCache map[string]bool
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		questionIDCache:  make(map[string]bool),
		articleSlugCache: make(map[string]bool),
	}
}

// AddQuestionID adds an id to the duplicate cache
func (v *Validator) AddQuestionID(id string) {
	v.questionIDCache[id] = true
}

// AddArticleSlug adds a slug to the duplicate cache
func (v *Validator) AddArticleSlug(slug string) {
	v.articleSlugCache[slug] = true
}

// ValidateQuestion validates a question record. An empty id is allowed: the
// service generates one for new questions.
func (v *Validator) ValidateQuestion(q *models.Question) []ValidationError {
	var errors []ValidationError

	if q.ID != "" && v.questionIDCache[q.ID] {
		errors = append(errors, ValidationError{Field: "id", Message: "duplicate id", Value: q.ID})
	}

	if q.SetID < 1 {
		errors = append(errors, ValidationError{Field: "set_id", Message: "set_id must be a positive integer", Value: q.SetID})
	}

	if q.Category == "" {
		errors = append(errors, ValidationError{Field: "category", Message: "category is required"})
	}

	if q.Question == "" {
		errors = append(errors, ValidationError{Field: "question", Message: "question text is required"})
	}

	optionSet := make(map[string]bool, len(q.Options))
	for _, opt := range q.Options {
		if opt == "" {
			errors = append(errors, ValidationError{Field: "options", Message: "options must not be empty strings"})
			continue
		}
		optionSet[opt] = true
	}
	if len(q.Options) < models.MinOptions || len(q.Options) > models.MaxOptions {
		errors = append(errors, ValidationError{
			Field:   "options",
			Message: fmt.Sprintf("between %d and %d options are required", models.MinOptions, models.MaxOptions),
			Value:   len(q.Options),
		})
	}

	if len(q.Correct) == 0 {
		errors = append(errors, ValidationError{Field: "correct", Message: "at least one correct answer is required"})
	}
	for _, c := range q.Correct {
		if !optionSet[c] {
			errors = append(errors, ValidationError{Field: "correct", Message: "correct answer must exactly match an option", Value: c})
		}
	}

	return errors
}

// ValidateArticle validates an article record
func (v *Validator) ValidateArticle(a *models.Article) []ValidationError {
	var errors []ValidationError

	if a.Slug == "" {
		errors = append(errors, ValidationError{Field: "slug", Message: "slug is required"})
	} else if !slugRegex.MatchString(a.Slug) {
		errors = append(errors, ValidationError{Field: "slug", Message: "slug must be kebab-case (lowercase letters, numbers, hyphens)", Value: a.Slug})
	} else if v.articleSlugCache[a.Slug] {
		errors = append(errors, ValidationError{Field: "slug", Message: "duplicate slug", Value: a.Slug})
	}

	if a.Title == "" {
		errors = append(errors, ValidationError{Field: "title", Message: "title is required"})
	}

	return errors
}
