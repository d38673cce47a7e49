package cribdex

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	searchuc "github.com/kailas-cloud/cribdex/internal/usecase/search"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	corpusPath string

	driver   string // "valkey" or "redis"
	addrs    []string
	password string
	key      string

	tuning searchuc.Options

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithCorpusFile reads the corpus from a .json, .yaml or .yml file.
func WithCorpusFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.corpusPath = path
	})
}

// WithValkey reads the corpus from a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis reads the corpus from a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithStoreKey sets the key holding the corpus document.
// Default: cribdex:corpus.
func WithStoreKey(key string) Option {
	return optionFunc(func(c *clientConfig) {
		c.key = key
	})
}

// WithFullScoringMaxCandidates sets the largest candidate set scored with
// approximate matching. 0 always scores in fast mode; negative values
// make New fail. Default: 500.
func WithFullScoringMaxCandidates(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.tuning.FullScoringMaxCandidates = n
	})
}

// WithFuzzyThreshold sets the similarity a near-miss word must exceed.
// Must be in [0, 1); New fails otherwise. Default: 0.75.
func WithFuzzyThreshold(t float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.tuning.FuzzyThreshold = t
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
