package search

import (
	"time"

	"github.com/kailas-cloud/cribdex/internal/domain/corpus"
	"github.com/kailas-cloud/cribdex/internal/domain/search/mode"
)

// CorpusReader returns the current corpus snapshot.
type CorpusReader interface {
	Current() (*corpus.Corpus, error)
}

// Recorder observes completed searches (metrics).
type Recorder interface {
	ObserveSearch(m mode.Mode, candidates, results int, elapsed time.Duration)
}
