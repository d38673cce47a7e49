package corpus

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kailas-cloud/cribdex/internal/db"
	"github.com/kailas-cloud/cribdex/internal/domain"
)

// Source yields the raw bytes of a corpus document.
type Source interface {
	Read(ctx context.Context) ([]byte, Format, error)
}

// FileSource reads a corpus from a local file. The extension picks the format.
type FileSource struct {
	Path string
}

// Read implements Source.
func (s FileSource) Read(_ context.Context) ([]byte, Format, error) {
	format, err := FormatFromPath(s.Path)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(filepath.Clean(s.Path))
	if err != nil {
		return nil, "", fmt.Errorf("read corpus file: %w", err)
	}
	return data, format, nil
}

// FormatFromPath maps .json, .yaml and .yml to a Format.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: unknown corpus file extension %q", domain.ErrInvalidCorpus, filepath.Ext(path))
	}
}

// getter is the consumer interface for the store source (ISP).
type getter interface {
	Get(ctx context.Context, key string) ([]byte, error)
}

// StoreSource reads a corpus document kept under one key in Redis or Valkey.
type StoreSource struct {
	store  getter
	key    string
	format Format
}

// NewStoreSource creates a store-backed source.
func NewStoreSource(s getter, key string, format Format) *StoreSource {
	if format == "" {
		format = FormatJSON
	}
	return &StoreSource{store: s, key: key, format: format}
}

// Read implements Source. A missing key yields domain.ErrCorpusUnavailable.
func (s *StoreSource) Read(ctx context.Context) ([]byte, Format, error) {
	data, err := s.store.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, "", fmt.Errorf("corpus key %q: %w", s.key, domain.ErrCorpusUnavailable)
		}
		return nil, "", fmt.Errorf("get corpus: %w", err)
	}
	return data, s.format, nil
}
