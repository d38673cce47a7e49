package cribdex

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

const testCorpus = `{
  "categories": [
    {"id": "random_vars", "name": "Random variables"},
    {"id": "statistics", "name": "Statistics"}
  ],
  "questions": [
    {"id": 1, "category": "random_vars", "text": "Discrete random variable", "answers": ["Countable values."], "keywords": ["discrete"]},
    {"id": 2, "category": "random_vars", "text": "Continuous random variable", "answers": ["Has a density."], "keywords": ["density"]},
    {"id": 3, "category": "statistics", "text": "Sample variance", "answers": ["Divide by n-1."]}
  ]
}`

func writeCorpus(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write corpus: %v", err)
	}
	return path
}

func TestNew_NoSource(t *testing.T) {
	_, err := New(context.Background())
	if err == nil {
		t.Fatal("expected error when no corpus source provided")
	}
}

func TestNew_FileAndStore(t *testing.T) {
	_, err := New(context.Background(), WithCorpusFile("q.json"), WithRedis("localhost:6379", ""))
	if err == nil {
		t.Fatal("expected error when file and store are combined")
	}
}

func TestNew_UnknownDriver(t *testing.T) {
	cfg := &clientConfig{driver: "unknown", addrs: []string{"localhost:1234"}}
	_, err := createStore(cfg)
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestNew_InvalidCorpus(t *testing.T) {
	_, err := New(context.Background(), WithCorpusFile(writeCorpus(t, `{"questions": [`)))
	if !errors.Is(err, ErrInvalidCorpus) {
		t.Fatalf("expected ErrInvalidCorpus, got %v", err)
	}
}

func TestNew_MissingFile(t *testing.T) {
	_, err := New(context.Background(), WithCorpusFile(filepath.Join(t.TempDir(), "nope.json")))
	if err == nil {
		t.Fatal("expected error for missing corpus file")
	}
}

func TestNew_InvalidTuning(t *testing.T) {
	path := writeCorpus(t, testCorpus)
	tests := []struct {
		name string
		opt  Option
	}{
		{"threshold above one", WithFuzzyThreshold(1.5)},
		{"threshold of one", WithFuzzyThreshold(1)},
		{"negative threshold", WithFuzzyThreshold(-0.1)},
		{"negative cutoff", WithFullScoringMaxCandidates(-1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(context.Background(), WithCorpusFile(path), tt.opt)
			if err == nil {
				client.Close()
				t.Fatal("expected tuning error")
			}
			if !strings.Contains(err.Error(), "search tuning") {
				t.Errorf("error = %v", err)
			}
		})
	}
}

func TestNew_ZeroTuningHonored(t *testing.T) {
	const corpus = `{
  "categories": [{"id": "c", "name": "C"}],
  "questions": [{"id": 1, "category": "c", "text": "alpha discrete", "answers": ["a"]}]
}`
	path := writeCorpus(t, corpus)
	ctx := context.Background()

	tests := []struct {
		name string
		opts []Option
		want float64
	}{
		{"default threshold skips the near miss", nil, 70},
		{"zero threshold credits it", []Option{WithFuzzyThreshold(0)}, 92.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(ctx, append([]Option{WithCorpusFile(path)}, tt.opts...)...)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			defer client.Close()

			res, err := client.Search(ctx, SearchRequest{Query: "alpha dicsrete"})
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if len(res.Results) != 1 || math.Abs(res.Results[0].Score-tt.want) > 1e-9 {
				t.Errorf("results = %+v, want score %v", res.Results, tt.want)
			}
		})
	}

	client, err := New(ctx, WithCorpusFile(path), WithFullScoringMaxCandidates(0))
	if err != nil {
		t.Fatalf("New with zero cutoff: %v", err)
	}
	defer client.Close()
	res, err := client.Search(ctx, SearchRequest{Query: "alpha"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Mode != ModeFast {
		t.Errorf("Mode = %q, want fast with a zero cutoff", res.Mode)
	}
}

func TestClientOptions(t *testing.T) {
	cfg := &clientConfig{}
	reg := prometheus.NewRegistry()
	logger := slog.Default()

	opts := []Option{
		WithValkey("localhost:6379", "secret"),
		WithStoreKey("exam:corpus"),
		WithFullScoringMaxCandidates(50),
		WithFuzzyThreshold(0.8),
		WithLogger(logger),
		WithPrometheus(reg),
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.driver != "valkey" || cfg.password != "secret" || len(cfg.addrs) != 1 {
		t.Errorf("store config = %+v", cfg)
	}
	if cfg.key != "exam:corpus" {
		t.Errorf("key = %q", cfg.key)
	}
	if cfg.tuning.FullScoringMaxCandidates != 50 || cfg.tuning.FuzzyThreshold != 0.8 {
		t.Errorf("tuning = %+v", cfg.tuning)
	}
	if cfg.logger != logger || cfg.metricsReg != reg {
		t.Error("logger or registry not applied")
	}

	WithRedis("redis:6379", "").apply(cfg)
	if cfg.driver != "redis" || cfg.addrs[0] != "redis:6379" {
		t.Errorf("WithRedis: %+v", cfg)
	}
}

func TestClient_FileCorpus(t *testing.T) {
	ctx := context.Background()
	client, err := New(ctx, WithCorpusFile(writeCorpus(t, testCorpus)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer client.Close()

	res, err := client.Search(ctx, SearchRequest{Query: "random variable"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Total != 2 || len(res.Results) != 2 {
		t.Fatalf("Total = %d, len = %d, want 2", res.Total, len(res.Results))
	}
	if res.Mode != ModeFull {
		t.Errorf("Mode = %q, want full", res.Mode)
	}
	if res.Results[0].Question.ID != 1 || res.Results[0].Score <= 0 {
		t.Errorf("top hit = %+v", res.Results[0])
	}

	cats, err := client.Categories(ctx)
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	if len(cats) != 2 || cats[0].ID != "random_vars" || cats[0].Questions != 2 {
		t.Errorf("categories = %+v", cats)
	}

	listing, err := client.Questions(ctx, "statistics", "", 0)
	if err != nil {
		t.Fatalf("Questions: %v", err)
	}
	if len(listing.Results) != 1 || listing.Results[0].Question.ID != 3 || listing.Mode != ModeAuto {
		t.Errorf("listing = %+v", listing)
	}

	q, err := client.Question(ctx, 2)
	if err != nil {
		t.Fatalf("Question: %v", err)
	}
	if q.Text != "Continuous random variable" || len(q.Answers) != 1 {
		t.Errorf("question = %+v", q)
	}

	if _, err := client.Question(ctx, 42); !errors.Is(err, ErrQuestionNotFound) {
		t.Errorf("expected ErrQuestionNotFound, got %v", err)
	}

	h := client.Health(ctx)
	if h.Status != "ok" || h.Checks["corpus"] != "ok" || h.Questions != 3 {
		t.Errorf("health = %+v", h)
	}
	if _, ok := h.Checks["database"]; ok {
		t.Error("file-backed client must not report a database check")
	}
}

func TestClient_Reload(t *testing.T) {
	ctx := context.Background()
	path := writeCorpus(t, testCorpus)
	client, err := New(ctx, WithCorpusFile(path))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	updated := strings.Replace(testCorpus, "Sample variance", "Sample variance and mean", 1)
	if err := os.WriteFile(path, []byte(updated), 0o600); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if err := client.Reload(ctx); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	q, _ := client.Question(ctx, 3)
	if q.Text != "Sample variance and mean" {
		t.Errorf("text after reload = %q", q.Text)
	}

	if err := os.WriteFile(path, []byte("{"), 0o600); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if err := client.Reload(ctx); err == nil {
		t.Fatal("expected reload error")
	}
	if q, _ := client.Question(ctx, 3); q.Text != "Sample variance and mean" {
		t.Errorf("failed reload replaced the corpus: %q", q.Text)
	}
}

func TestObserver_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}

	obs.observe("search", time.Now(), nil)
	obs.observe("search", time.Now(), errors.New("boom"))
	obs.observeHits(3)

	if got := testutil.ToFloat64(obs.metrics.operations.WithLabelValues("search", "ok")); got != 1 {
		t.Errorf("ok count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(obs.metrics.operations.WithLabelValues("search", "error")); got != 1 {
		t.Errorf("error count = %v, want 1", got)
	}
	if n := testutil.CollectAndCount(obs.metrics.hits); n != 1 {
		t.Errorf("hits series = %d, want 1", n)
	}
}

func TestObserver_SharedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("second: %v", err)
	}

	second.observe("reload", time.Now(), nil)
	if got := testutil.ToFloat64(first.metrics.operations.WithLabelValues("reload", "ok")); got != 1 {
		t.Errorf("collectors not shared, count = %v", got)
	}
}

func TestObserver_Nil(_ *testing.T) {
	var obs *observer
	obs.observe("search", time.Now(), nil)
	obs.observeHits(1)
}
