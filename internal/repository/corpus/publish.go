package corpus

import (
	"context"
	"fmt"

	domcorpus "github.com/kailas-cloud/cribdex/internal/domain/corpus"
)

// setter is the consumer interface for publishing (ISP).
type setter interface {
	Set(ctx context.Context, key string, value []byte) error
}

// Publish validates a corpus document and writes it to the store under key
// as canonical JSON. Nothing is written if the document is invalid.
func Publish(ctx context.Context, s setter, key string, data []byte, format Format) (*domcorpus.Corpus, error) {
	parsed, err := Decode(data, format)
	if err != nil {
		return nil, err
	}

	canonical, err := Encode(parsed)
	if err != nil {
		return nil, err
	}
	if err := s.Set(ctx, key, canonical); err != nil {
		return nil, fmt.Errorf("store corpus: %w", err)
	}

	// Fingerprint must match what a StoreSource will compute after reading it back.
	return Decode(canonical, FormatJSON)
}
