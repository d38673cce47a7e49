package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/cribdex/internal/domain"
	"github.com/kailas-cloud/cribdex/internal/domain/search/request"
	"github.com/kailas-cloud/cribdex/internal/logger"
)

// Outcome is a limited page of a ranking.
type Outcome struct {
	Ranking
	// Total is the number of matches before the limit was applied.
	Total int
	// Fingerprint identifies the corpus snapshot the search ran against.
	Fingerprint uint64
}

// Service runs searches against the current corpus snapshot.
type Service struct {
	corpus   CorpusReader
	engine   *Engine
	recorder Recorder
}

// New creates a search service.
func New(corpus CorpusReader, engine *Engine) *Service {
	return &Service{corpus: corpus, engine: engine}
}

// WithRecorder attaches a metrics recorder.
func (s *Service) WithRecorder(r Recorder) *Service {
	s.recorder = r
	return s
}

// Search ranks the corpus (or one category of it) against the request query.
func (s *Service) Search(ctx context.Context, req *request.Request) (Outcome, error) {
	c, err := s.corpus.Current()
	if err != nil {
		return Outcome{}, fmt.Errorf("current corpus: %w", err)
	}

	questions := c.Questions()
	if cat := req.Category(); cat != "" {
		if _, ok := c.Category(cat); !ok && len(c.InCategory(cat)) == 0 {
			return Outcome{}, fmt.Errorf("category %q: %w", cat, domain.ErrCategoryNotFound)
		}
		questions = c.InCategory(cat)
	}

	strategy := s.engine.strategy
	if req.Mode() != "" {
		strategy = FixedStrategy(req.Mode())
	}

	start := time.Now()
	ranking := s.engine.RankWith(questions, req.Query(), strategy)
	elapsed := time.Since(start)

	if s.recorder != nil && ranking.Mode != "" {
		s.recorder.ObserveSearch(ranking.Mode, ranking.Candidates, len(ranking.Results), elapsed)
	}

	logger.FromContext(ctx).Debug("search",
		zap.Int("query_len", len(req.Query())),
		zap.String("category", req.Category()),
		zap.String("mode", string(ranking.Mode)),
		zap.Int("candidates", ranking.Candidates),
		zap.Int("results", len(ranking.Results)),
		zap.Duration("latency", elapsed),
	)

	out := Outcome{Ranking: ranking, Total: len(ranking.Results), Fingerprint: c.Fingerprint()}
	if len(out.Results) > req.Limit() {
		out.Results = out.Results[:req.Limit()]
	}
	return out, nil
}
