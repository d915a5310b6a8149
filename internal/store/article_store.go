package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/quiz-content-api/internal/models"
)

// ArticleStore reads and writes the flat-file article list. The file holds a
// single JSON array, newest article first; the whole file is read on every
// call and rewritten on every save. This store is the only writer location.
type ArticleStore struct {
	path string
	log  zerolog.Logger
}

// NewArticleStore creates an article store backed by the given file path
func NewArticleStore(path string, log zerolog.Logger) *ArticleStore {
	return &ArticleStore{
		path: path,
		log:  log.With().Str("store", "articles").Logger(),
	}
}

// List returns the full article sequence as persisted. A missing file is an
// empty store, not a failure.
func (s *ArticleStore) List() ([]*models.Article, error) {
	return s.load()
}

// FindBySlug returns the article with the given slug, nil when absent
func (s *ArticleStore) FindBySlug(slug string) (*models.Article, error) {
	articles, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, a := range articles {
		if a.Slug == slug {
			return a, nil
		}
	}
	return nil, nil
}

// Save replaces the article with a matching slug in place, or prepends a new
// one so the persisted order stays newest-first
func (s *ArticleStore) Save(article *models.Article) error {
	articles, err := s.load()
	if err != nil {
		return err
	}

	replaced := false
	for i, a := range articles {
		if a.Slug == article.Slug {
			articles[i] = article
			replaced = true
			break
		}
	}
	if !replaced {
		articles = append([]*models.Article{article}, articles...)
	}

	if err := s.write(articles); err != nil {
		return err
	}

	s.log.Info().Str("slug", article.Slug).Bool("replaced", replaced).Msg("Article saved")
	return nil
}

// Delete removes the article with the given slug; deleting an unknown slug is
// not an error
func (s *ArticleStore) Delete(slug string) error {
	articles, err := s.load()
	if err != nil {
		return err
	}

	kept := articles[:0]
	for _, a := range articles {
		if a.Slug != slug {
			kept = append(kept, a)
		}
	}
	if len(kept) == len(articles) {
		return nil
	}

	if err := s.write(kept); err != nil {
		return err
	}

	s.log.Info().Str("slug", slug).Msg("Article deleted")
	return nil
}

func (s *ArticleStore) load() ([]*models.Article, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []*models.Article{}, nil
	}
	if err != nil {
		return nil, err
	}

	var articles []*models.Article
	if err := json.Unmarshal(data, &articles); err != nil {
		return nil, fmt.Errorf("article store %s: %w", s.path, err)
	}
	return articles, nil
}

func (s *ArticleStore) write(articles []*models.Article) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(articles, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
