package cribdex

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	dbRedis "github.com/kailas-cloud/cribdex/internal/db/redis"
	"github.com/kailas-cloud/cribdex/internal/domain"
	domq "github.com/kailas-cloud/cribdex/internal/domain/question"
	"github.com/kailas-cloud/cribdex/internal/domain/search/mode"
	"github.com/kailas-cloud/cribdex/internal/domain/search/request"
	"github.com/kailas-cloud/cribdex/internal/domain/search/result"
	corpusrepo "github.com/kailas-cloud/cribdex/internal/repository/corpus"
	healthuc "github.com/kailas-cloud/cribdex/internal/usecase/health"
	questionuc "github.com/kailas-cloud/cribdex/internal/usecase/question"
	searchuc "github.com/kailas-cloud/cribdex/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultStoreKey         = "cribdex:corpus"
)

// Внутренние интерфейсы для подмены в тестах.
type searchUseCase interface {
	Search(ctx context.Context, req *request.Request) (searchuc.Outcome, error)
}

type questionUseCase interface {
	Categories(ctx context.Context) ([]questionuc.CategoryInfo, error)
	ByCategory(ctx context.Context, category, query string, limit int) (questionuc.Listing, error)
	Get(ctx context.Context, id int) (domq.Question, error)
}

type reloader interface {
	Reload(ctx context.Context) error
}

// Client is the cribdex SDK entry point.
type Client struct {
	store       *dbRedis.Store
	corpus      reloader
	searchSvc   searchUseCase
	questionSvc questionUseCase
	healthSvc   healthUseCase
	obs         *observer
}

// New creates a Client and loads the corpus.
// The provided context bounds the store readiness check and the first load.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{key: defaultStoreKey, tuning: searchuc.DefaultOptions()}
	for _, o := range opts {
		o.apply(cfg)
	}

	engine, err := searchuc.NewEngine(cfg.tuning)
	if err != nil {
		return nil, fmt.Errorf("cribdex: search tuning: %w", err)
	}

	switch {
	case cfg.corpusPath == "" && len(cfg.addrs) == 0:
		return nil, errors.New("cribdex: corpus source required (use WithCorpusFile, WithRedis or WithValkey)")
	case cfg.corpusPath != "" && len(cfg.addrs) > 0:
		return nil, errors.New("cribdex: WithCorpusFile cannot be combined with a store")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	var (
		source corpusrepo.Source
		store  *dbRedis.Store
	)
	if cfg.corpusPath != "" {
		source = corpusrepo.FileSource{Path: cfg.corpusPath}
	} else {
		store, err = createStore(cfg)
		if err != nil {
			return nil, err
		}
		if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			store.Close()
			return nil, fmt.Errorf("cribdex: database not ready: %w", err)
		}
		source = corpusrepo.NewStoreSource(store, cfg.key, corpusrepo.FormatJSON)
	}

	cache := corpusrepo.NewCache(source)
	if err := cache.Load(ctx); err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cribdex: load corpus: %w", err)
	}

	return wireClient(cache, store, engine, obs), nil
}

func createStore(cfg *clientConfig) (*dbRedis.Store, error) {
	switch cfg.driver {
	case "valkey", "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
			Valkey:   cfg.driver == "valkey",
		})
		if err != nil {
			return nil, fmt.Errorf("cribdex: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("cribdex: unknown driver %q", cfg.driver)
	}
}

func wireClient(cache *corpusrepo.Cache, store *dbRedis.Store, engine *searchuc.Engine, obs *observer) *Client {
	searchSvc := searchuc.New(cache, engine)

	// Pass a nil interface, not a typed nil pointer.
	var pinger healthuc.DBPinger
	if store != nil {
		pinger = store
	}

	return &Client{
		store:       store,
		corpus:      cache,
		searchSvc:   searchSvc,
		questionSvc: questionuc.New(cache, searchSvc),
		healthSvc:   healthuc.New(cache, pinger),
		obs:         obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Reload re-reads the corpus source. On failure the previous corpus stays in use.
func (c *Client) Reload(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("reload", start, err) }()

	if err = c.corpus.Reload(ctx); err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	return nil
}

// Search ranks the corpus against a query.
func (c *Client) Search(ctx context.Context, req SearchRequest) (resp SearchResponse, err error) {
	start := time.Now()
	defer func() {
		c.obs.observe("search", start, err, slog.Int("total", resp.Total), slog.String("mode", string(resp.Mode)))
	}()

	m, ok := mode.Parse(string(req.Mode))
	if !ok {
		return SearchResponse{}, fmt.Errorf("%w: unknown mode %q", domain.ErrInvalidRequest, req.Mode)
	}
	r, err := request.New(req.Query, req.Category, m, req.Limit)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}

	out, err := c.searchSvc.Search(ctx, &r)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("search: %w", err)
	}
	c.obs.observeHits(out.Total)

	return SearchResponse{
		Results:    resultsFromDomain(out.Results),
		Total:      out.Total,
		Mode:       Mode(out.Mode),
		Candidates: out.Candidates,
	}, nil
}

// Categories lists the catalog with question counts.
func (c *Client) Categories(ctx context.Context) (cats []Category, err error) {
	start := time.Now()
	defer func() { c.obs.observe("categories", start, err) }()

	infos, err := c.questionSvc.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}
	cats = make([]Category, len(infos))
	for i := range infos {
		cats[i] = Category{
			ID:        infos[i].Category.ID(),
			Name:      infos[i].Category.Name(),
			Questions: infos[i].Questions,
		}
	}
	return cats, nil
}

// Questions lists a category in corpus order, or ranks it when query is not blank.
// limit 0 lists the whole category.
func (c *Client) Questions(ctx context.Context, category, query string, limit int) (resp SearchResponse, err error) {
	start := time.Now()
	defer func() { c.obs.observe("questions", start, err, slog.String("category", category)) }()

	listing, err := c.questionSvc.ByCategory(ctx, category, query, limit)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("questions: %w", err)
	}
	return SearchResponse{
		Results:    resultsFromDomain(listing.Results),
		Total:      listing.Total,
		Mode:       Mode(listing.Mode),
		Candidates: listing.Candidates,
	}, nil
}

// Question returns a question by ID.
func (c *Client) Question(ctx context.Context, id int) (q Question, err error) {
	start := time.Now()
	defer func() { c.obs.observe("question", start, err) }()

	dq, err := c.questionSvc.Get(ctx, id)
	if err != nil {
		return Question{}, fmt.Errorf("question: %w", err)
	}
	return questionFromDomain(&dq), nil
}

func resultsFromDomain(results []result.Result) []SearchResult {
	out := make([]SearchResult, len(results))
	for i := range results {
		q := results[i].Question()
		out[i] = SearchResult{Question: questionFromDomain(&q), Score: results[i].Score()}
	}
	return out
}

func questionFromDomain(q *domq.Question) Question {
	return Question{
		ID:       q.ID(),
		Category: q.Category(),
		Text:     q.Text(),
		Images:   q.Images(),
		Answers:  q.Answers(),
		Keywords: q.Keywords(),
	}
}
