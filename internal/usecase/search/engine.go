// Package search ranks questions against a free-text query.
//
// The pipeline is normalize -> candidate filter -> score -> stable sort.
// The candidate filter keeps a question only if some query token occurs in it
// verbatim, so a query whose every token is misspelled returns nothing even
// though full mode could have matched it approximately.
package search

import (
	"fmt"
	"sort"

	"github.com/kailas-cloud/cribdex/internal/domain/question"
	"github.com/kailas-cloud/cribdex/internal/domain/search/mode"
	"github.com/kailas-cloud/cribdex/internal/domain/search/result"
)

// Engine is stateless after construction and safe for concurrent use.
type Engine struct {
	opts     Options
	strategy Strategy
	scorers  map[mode.Mode]scorer
}

// Ranking is the outcome of one ranking pass.
type Ranking struct {
	// Results are sorted by descending score; ties keep corpus order.
	Results []result.Result
	// Mode is the scoring mode used ("" for a blank query).
	Mode mode.Mode
	// Candidates is the number of questions that passed the filter.
	Candidates int
}

// NewEngine creates an engine with the given tuning. The mode is chosen by
// ThresholdStrategy on FullScoringMaxCandidates.
func NewEngine(opts Options) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("search options: %w", err)
	}
	return &Engine{
		opts:     opts,
		strategy: ThresholdStrategy{MaxFull: opts.FullScoringMaxCandidates},
		scorers:  newScorers(opts),
	}, nil
}

// DefaultEngine creates an engine with DefaultOptions.
func DefaultEngine() *Engine {
	opts := DefaultOptions()
	return &Engine{
		opts:     opts,
		strategy: ThresholdStrategy{MaxFull: opts.FullScoringMaxCandidates},
		scorers:  newScorers(opts),
	}
}

// WithStrategy replaces the mode selection strategy. Call before first use.
func (e *Engine) WithStrategy(s Strategy) *Engine {
	e.strategy = s
	return e
}

// Options returns the effective tuning.
func (e *Engine) Options() Options { return e.opts }

// Search returns the matching questions ordered by relevance.
// A blank query returns an empty slice. questions is not modified.
func (e *Engine) Search(questions []question.Question, query string) []question.Question {
	return result.Questions(e.Rank(questions, query).Results)
}

// Rank scores questions with the engine's strategy.
func (e *Engine) Rank(questions []question.Question, query string) Ranking {
	return e.RankWith(questions, query, e.strategy)
}

// RankWith scores questions, letting s pick the mode for this call only.
func (e *Engine) RankWith(questions []question.Question, raw string, s Strategy) Ranking {
	q := newQuery(raw)
	if q.blank() {
		return Ranking{Results: []result.Result{}}
	}

	candidates := filterCandidates(questions, q.tokens)
	m := s.Select(len(candidates))
	sc, ok := e.scorers[m]
	if !ok {
		sc = e.scorers[mode.Fast]
	}

	results := make([]result.Result, 0, len(candidates))
	for _, d := range candidates {
		if score := sc.score(d, &q); score > 0 {
			results = append(results, result.New(*d.question, score))
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score() > results[j].Score()
	})

	return Ranking{Results: results, Mode: sc.mode(), Candidates: len(candidates)}
}
