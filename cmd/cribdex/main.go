package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cribdex/internal/config"
	dbRedis "github.com/kailas-cloud/cribdex/internal/db/redis"
	logpkg "github.com/kailas-cloud/cribdex/internal/logger"
	"github.com/kailas-cloud/cribdex/internal/metrics"
	corpusrepo "github.com/kailas-cloud/cribdex/internal/repository/corpus"
	chiTransport "github.com/kailas-cloud/cribdex/internal/transport/chi"
	healthuc "github.com/kailas-cloud/cribdex/internal/usecase/health"
	questionuc "github.com/kailas-cloud/cribdex/internal/usecase/question"
	searchuc "github.com/kailas-cloud/cribdex/internal/usecase/search"
	"github.com/kailas-cloud/cribdex/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting cribdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("corpus_source", cfg.Corpus.Source),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logpkg.ContextWithLogger(ctx, logger)

	// Metrics are registered explicitly (no init())
	metrics.RegisterHTTPMetrics()
	metrics.RegisterSearchMetrics()
	recorder := metrics.NewSearchRecorder()

	// Corpus source; the store is only dialled for corpus.source=store
	var (
		source corpusrepo.Source
		pinger healthuc.DBPinger
	)
	switch cfg.Corpus.Source {
	case config.SourceStore:
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
			Valkey:   cfg.Database.Driver == "valkey",
		})
		if err != nil {
			logger.Fatal("Failed to create database store", zap.Error(err))
		}
		defer store.Close()

		if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Database not ready", zap.Error(err))
		}
		logger.Info("Connected to database",
			zap.String("db_driver", cfg.Database.Driver),
			zap.Strings("db_addrs", cfg.Database.Addrs),
		)
		source = corpusrepo.NewStoreSource(store, cfg.Corpus.Key, corpusrepo.Format(cfg.Corpus.Format))
		pinger = store
	default:
		source = corpusrepo.FileSource{Path: cfg.Corpus.Path}
	}

	cache := corpusrepo.NewCache(source).WithObserver(recorder).WithLogger(logger)
	if err := cache.Load(ctx); err != nil {
		logger.Fatal("Failed to load corpus", zap.Error(err))
	}

	if cfg.Corpus.Watch {
		go func() {
			if err := cache.Watch(ctx, cfg.Corpus.Path); err != nil {
				logger.Error("Corpus watcher stopped", zap.Error(err))
			}
		}()
	}

	engine, err := searchuc.NewEngine(engineOptions(cfg.Search))
	if err != nil {
		logger.Fatal("Invalid search tuning", zap.Error(err))
	}
	opts := engine.Options()
	logger.Info("Search engine ready",
		zap.Int("full_scoring_max_candidates", opts.FullScoringMaxCandidates),
		zap.Float64("fuzzy_threshold", opts.FuzzyThreshold),
	)

	searchSvc := searchuc.New(cache, engine).WithRecorder(recorder)
	questionSvc := questionuc.New(cache, searchSvc)
	healthSvc := healthuc.New(cache, pinger)

	server := chiTransport.NewServer(searchSvc, questionSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(chiTransport.JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.WideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// engineOptions overrides the engine defaults with the tunables set in config.
func engineOptions(sc config.SearchConfig) searchuc.Options {
	opts := searchuc.DefaultOptions()
	if sc.FullScoringMaxCandidates != nil {
		opts.FullScoringMaxCandidates = *sc.FullScoringMaxCandidates
	}
	if sc.FuzzyThreshold != nil {
		opts.FuzzyThreshold = *sc.FuzzyThreshold
	}
	if sc.MinFuzzyTokenLength != nil {
		opts.MinFuzzyTokenLength = *sc.MinFuzzyTokenLength
	}
	if sc.FuzzyLengthWindow != nil {
		opts.FuzzyLengthWindow = *sc.FuzzyLengthWindow
	}
	if sc.MaxFuzzyTextWords != nil {
		opts.MaxFuzzyTextWords = *sc.MaxFuzzyTextWords
	}
	return opts
}
