package corpus

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/kailas-cloud/cribdex/internal/domain"
	domcorpus "github.com/kailas-cloud/cribdex/internal/domain/corpus"
)

// ReloadObserver receives the outcome of every load attempt.
type ReloadObserver interface {
	ObserveReload(err error, questions int)
}

type nopObserver struct{}

func (nopObserver) ObserveReload(error, int) {}

// Cache holds the current corpus snapshot. Readers never block; a reload
// replaces the whole snapshot or leaves the previous one in place.
type Cache struct {
	source   Source
	snapshot atomic.Pointer[domcorpus.Corpus]
	reloadMu sync.Mutex
	observer ReloadObserver
	logger   *zap.Logger
}

// NewCache creates an empty cache over source. Call Load before serving.
func NewCache(source Source) *Cache {
	return &Cache{source: source, observer: nopObserver{}, logger: zap.NewNop()}
}

// WithObserver sets the reload observer.
func (c *Cache) WithObserver(o ReloadObserver) *Cache {
	c.observer = o
	return c
}

// WithLogger sets the logger.
func (c *Cache) WithLogger(l *zap.Logger) *Cache {
	c.logger = l
	return c
}

// Load reads the corpus if no snapshot is held yet.
func (c *Cache) Load(ctx context.Context) error {
	if c.snapshot.Load() != nil {
		return nil
	}
	return c.Reload(ctx)
}

// Current returns the snapshot, or domain.ErrCorpusUnavailable before the first successful load.
func (c *Cache) Current() (*domcorpus.Corpus, error) {
	if s := c.snapshot.Load(); s != nil {
		return s, nil
	}
	return nil, domain.ErrCorpusUnavailable
}

// Reload reads and decodes the source and swaps the snapshot in.
// On failure the previous snapshot stays current.
func (c *Cache) Reload(ctx context.Context) error {
	c.reloadMu.Lock()
	defer c.reloadMu.Unlock()

	next, err := c.read(ctx)
	if err != nil {
		c.observer.ObserveReload(err, 0)
		c.logger.Warn("corpus load failed", zap.Error(err))
		return err
	}

	prev := c.snapshot.Load()
	if prev != nil && prev.Fingerprint() == next.Fingerprint() {
		c.observer.ObserveReload(nil, next.Len())
		c.logger.Debug("corpus unchanged", zap.Uint64("fingerprint", next.Fingerprint()))
		return nil
	}

	c.snapshot.Store(next)
	c.observer.ObserveReload(nil, next.Len())
	c.logger.Info("corpus loaded",
		zap.Int("questions", next.Len()),
		zap.Int("categories", len(next.Categories())),
		zap.Uint64("fingerprint", next.Fingerprint()),
	)
	return nil
}

func (c *Cache) read(ctx context.Context) (*domcorpus.Corpus, error) {
	data, format, err := c.source.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	next, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("decode corpus: %w", err)
	}
	return next, nil
}
