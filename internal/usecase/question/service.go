// Package question serves the category catalog and question lookups.
package question

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/cribdex/internal/domain"
	domq "github.com/kailas-cloud/cribdex/internal/domain/question"
	"github.com/kailas-cloud/cribdex/internal/domain/search/mode"
	"github.com/kailas-cloud/cribdex/internal/domain/search/request"
	"github.com/kailas-cloud/cribdex/internal/domain/search/result"
)

// CategoryInfo is a catalog entry with its question count.
type CategoryInfo struct {
	Category  domq.Category
	Questions int
}

// Listing is the content of one category: either every question in corpus
// order, or a ranked subset when a query was given.
type Listing struct {
	Results     []result.Result
	Total       int
	Mode        mode.Mode
	Candidates  int
	Fingerprint uint64
}

// Service answers catalog queries against the current corpus snapshot.
type Service struct {
	corpus   CorpusReader
	searcher Searcher
}

// New creates a question service.
func New(corpus CorpusReader, searcher Searcher) *Service {
	return &Service{corpus: corpus, searcher: searcher}
}

// Categories lists the catalog in corpus order.
func (s *Service) Categories(_ context.Context) ([]CategoryInfo, error) {
	c, err := s.corpus.Current()
	if err != nil {
		return nil, fmt.Errorf("current corpus: %w", err)
	}

	cats := c.Categories()
	out := make([]CategoryInfo, 0, len(cats))
	for _, cat := range cats {
		out = append(out, CategoryInfo{Category: cat, Questions: len(c.InCategory(cat.ID()))})
	}
	return out, nil
}

// ByCategory lists a category. A blank query returns all of its questions in
// corpus order (limit 0 means no limit); otherwise the search is scoped to it.
func (s *Service) ByCategory(ctx context.Context, category, query string, limit int) (Listing, error) {
	if strings.TrimSpace(query) != "" {
		req, err := request.New(query, category, "", limit)
		if err != nil {
			return Listing{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
		}
		out, err := s.searcher.Search(ctx, &req)
		if err != nil {
			return Listing{}, fmt.Errorf("search category: %w", err)
		}
		return Listing{
			Results:     out.Results,
			Total:       out.Total,
			Mode:        out.Mode,
			Candidates:  out.Candidates,
			Fingerprint: out.Fingerprint,
		}, nil
	}

	if limit < 0 {
		return Listing{}, fmt.Errorf("%w: limit must not be negative", domain.ErrInvalidRequest)
	}

	c, err := s.corpus.Current()
	if err != nil {
		return Listing{}, fmt.Errorf("current corpus: %w", err)
	}

	qs := c.InCategory(category)
	if _, ok := c.Category(category); !ok && len(qs) == 0 {
		return Listing{}, fmt.Errorf("category %q: %w", category, domain.ErrCategoryNotFound)
	}

	total := len(qs)
	if limit > 0 && len(qs) > limit {
		qs = qs[:limit]
	}
	results := make([]result.Result, len(qs))
	for i := range qs {
		results[i] = result.New(qs[i], 0)
	}
	return Listing{Results: results, Total: total, Fingerprint: c.Fingerprint()}, nil
}

// Get returns a question by ID.
func (s *Service) Get(_ context.Context, id int) (domq.Question, error) {
	c, err := s.corpus.Current()
	if err != nil {
		return domq.Question{}, fmt.Errorf("current corpus: %w", err)
	}
	q, ok := c.Question(id)
	if !ok {
		return domq.Question{}, fmt.Errorf("question %d: %w", id, domain.ErrQuestionNotFound)
	}
	return q, nil
}

// Fingerprint identifies the current corpus snapshot.
func (s *Service) Fingerprint() (uint64, error) {
	c, err := s.corpus.Current()
	if err != nil {
		return 0, fmt.Errorf("current corpus: %w", err)
	}
	return c.Fingerprint(), nil
}
