package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	dbRedis "github.com/kailas-cloud/cribdex/internal/db/redis"
	"github.com/kailas-cloud/cribdex/internal/domain/search/mode"
	"github.com/kailas-cloud/cribdex/internal/domain/search/request"
	logpkg "github.com/kailas-cloud/cribdex/internal/logger"
	corpusrepo "github.com/kailas-cloud/cribdex/internal/repository/corpus"
	questionuc "github.com/kailas-cloud/cribdex/internal/usecase/question"
	searchuc "github.com/kailas-cloud/cribdex/internal/usecase/search"
)

const storeTimeout = 5 * time.Second

// session holds the services built for one command run.
type session struct {
	search    *searchuc.Service
	questions *questionuc.Service
	logger    *zap.Logger
	closeFn   func()
}

func (s *session) close() {
	if s.closeFn != nil {
		s.closeFn()
	}
	_ = s.logger.Sync()
}

// openSession loads the corpus named by the global flags.
func openSession(c *cli.Context) (*session, error) {
	logger, err := logpkg.NewCLI(c.Bool("verbose"))
	if err != nil {
		return nil, err
	}
	ctx := logpkg.ContextWithLogger(c.Context, logger)

	opts := searchuc.DefaultOptions()
	opts.FuzzyThreshold = c.Float64("fuzzy-threshold")
	opts.FullScoringMaxCandidates = c.Int("full-max-candidates")
	engine, err := searchuc.NewEngine(opts)
	if err != nil {
		return nil, err
	}

	var (
		source  corpusrepo.Source
		closeFn func()
	)
	switch {
	case c.String("corpus") != "":
		source = corpusrepo.FileSource{Path: c.String("corpus")}
	case len(c.StringSlice("store-addr")) > 0:
		store, err := connectStore(ctx, c)
		if err != nil {
			return nil, err
		}
		source = corpusrepo.NewStoreSource(store, c.String("store-key"), corpusrepo.FormatJSON)
		closeFn = store.Close
	default:
		return nil, errors.New("either --corpus or --store-addr is required")
	}

	cache := corpusrepo.NewCache(source).WithLogger(logger)
	if err := cache.Load(ctx); err != nil {
		if closeFn != nil {
			closeFn()
		}
		return nil, err
	}

	searchSvc := searchuc.New(cache, engine)
	return &session{
		search:    searchSvc,
		questions: questionuc.New(cache, searchSvc),
		logger:    logger,
		closeFn:   closeFn,
	}, nil
}

func connectStore(ctx context.Context, c *cli.Context) (*dbRedis.Store, error) {
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    c.StringSlice("store-addr"),
		Password: c.String("store-password"),
		Valkey:   c.Bool("valkey"),
	})
	if err != nil {
		return nil, fmt.Errorf("connect store: %w", err)
	}
	if err := store.WaitForReady(ctx, storeTimeout); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("usage: cribq search QUERY")
	}
	m, ok := mode.Parse(c.String("mode"))
	if !ok {
		return fmt.Errorf("unknown mode %q (want auto, fast or full)", c.String("mode"))
	}
	req, err := request.New(strings.Join(c.Args().Slice(), " "), c.String("category"), m, c.Int("limit"))
	if err != nil {
		return err
	}

	s, err := openSession(c)
	if err != nil {
		return err
	}
	defer s.close()

	out, err := s.search.Search(logpkg.ContextWithLogger(c.Context, s.logger), &req)
	if err != nil {
		return err
	}
	return newPrinter(c).results(out.Results, out.Total, string(out.Mode), c.Bool("scores"))
}

func categoriesCommand(c *cli.Context) error {
	s, err := openSession(c)
	if err != nil {
		return err
	}
	defer s.close()

	cats, err := s.questions.Categories(c.Context)
	if err != nil {
		return err
	}
	return newPrinter(c).categories(cats)
}

func listCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("usage: cribq list CATEGORY")
	}

	s, err := openSession(c)
	if err != nil {
		return err
	}
	defer s.close()

	listing, err := s.questions.ByCategory(c.Context, c.Args().First(), c.String("query"), c.Int("limit"))
	if err != nil {
		return err
	}
	return newPrinter(c).results(listing.Results, listing.Total, string(listing.Mode), listing.Mode != "")
}

func showCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("usage: cribq show ID")
	}
	id, err := strconv.Atoi(c.Args().First())
	if err != nil {
		return fmt.Errorf("question id must be an integer: %q", c.Args().First())
	}

	s, err := openSession(c)
	if err != nil {
		return err
	}
	defer s.close()

	q, err := s.questions.Get(c.Context, id)
	if err != nil {
		return err
	}
	return newPrinter(c).question(&q)
}

func publishCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("usage: cribq publish FILE")
	}
	if len(c.StringSlice("store-addr")) == 0 {
		return errors.New("--store-addr is required for publish")
	}

	path := c.Args().First()
	format, err := corpusrepo.FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("read corpus: %w", err)
	}

	store, err := connectStore(c.Context, c)
	if err != nil {
		return err
	}
	defer store.Close()

	published, err := corpusrepo.Publish(c.Context, store, c.String("store-key"), data, format)
	if err != nil {
		return err
	}
	return newPrinter(c).published(c.String("store-key"), published.Len(), len(published.Categories()), published.Fingerprint())
}
