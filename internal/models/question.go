package models

import "strings"

// Question is one quiz question. Every question belongs to exactly one
// (category, set_id) pair; all rows sharing that pair form a set. Tag and
// description are set-level values stored redundantly on each row, and the
// write path is responsible for keeping siblings in sync.
type Question struct {
	ID          string   `json:"id" db:"id"`
	SetID       int      `json:"set_id" db:"set_id"`
	Category    string   `json:"category" db:"category"`
	Tag         string   `json:"tag" db:"tag"`
	Description string   `json:"description" db:"description"`
	Question    string   `json:"question" db:"question"`
	ImageURL    string   `json:"image_url" db:"image_url"`
	Options     []string `json:"options" db:"-"` // stored as a JSON array string
	Correct     []string `json:"correct" db:"-"` // stored as a JSON array string
	Explanation string   `json:"explanation" db:"explanation"`
}

// MaxOptions bounds the number of options on a question; MinOptions is the
// least a question needs to be answerable.
const (
	MinOptions = 2
	MaxOptions = 5
)

// QuizSet is the listing summary for one (category, set number) group
type QuizSet struct {
	Category    string `json:"category"`
	SetNum      int    `json:"set_num"`
	Tag         string `json:"tag"`
	Description string `json:"description"`
	URLSlug     string `json:"url_slug"`
}

// SidebarSet is one sibling-set navigation entry on a quiz page
type SidebarSet struct {
	Category string `json:"category"`
	SetNum   int    `json:"set_num"`
	URLSlug  string `json:"url_slug"`
}

// QuizSetDetail is everything a single quiz-set page needs
type QuizSetDetail struct {
	Questions   []*Question  `json:"questions"`
	Category    string       `json:"category"`
	Tag         string       `json:"tag"`
	Description string       `json:"description"`
	HasNext     bool         `json:"has_next"`
	SidebarSets []SidebarSet `json:"sidebar_sets"`
}

// CategorySlug derives the URL-facing identifier from a display category:
// spaces become hyphens and everything is lowercased
// ("Salesforce Agentforce" -> "salesforce-agentforce").
func CategorySlug(category string) string {
	return strings.ToLower(strings.ReplaceAll(category, " ", "-"))
}

// CategoryFromSlug reverses CategorySlug far enough to query against stored
// category values: hyphens become spaces, case is left to the
// case-insensitive match. Hyphens that were part of the original category
// name are ambiguous here; that limitation is accepted.
func CategoryFromSlug(slug string) string {
	return strings.ReplaceAll(slug, "-", " ")
}
