package health

import (
	"context"

	"github.com/kailas-cloud/cribdex/internal/domain/corpus"
)

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CorpusReader exposes the current corpus snapshot.
type CorpusReader interface {
	Current() (*corpus.Corpus, error)
}
