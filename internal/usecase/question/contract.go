package question

import (
	"context"

	"github.com/kailas-cloud/cribdex/internal/domain/corpus"
	"github.com/kailas-cloud/cribdex/internal/domain/search/request"
	"github.com/kailas-cloud/cribdex/internal/usecase/search"
)

// CorpusReader returns the current corpus snapshot.
type CorpusReader interface {
	Current() (*corpus.Corpus, error)
}

// Searcher ranks questions for a request.
type Searcher interface {
	Search(ctx context.Context, req *request.Request) (search.Outcome, error)
}
