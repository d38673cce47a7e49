package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/cribdex/internal/domain/search/mode"
)

// Search and corpus Prometheus metrics.
var (
	SearchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_total",
			Help:      "Total number of ranked searches",
		},
		[]string{"mode"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Ranking duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		},
		[]string{"mode"},
	)

	SearchCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_candidates",
			Help:      "Questions passing the candidate filter per search",
			Buckets:   []float64{0, 1, 10, 50, 100, 250, 500, 1000, 5000},
		},
	)

	SearchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results",
			Help:      "Questions with a positive score per search",
			Buckets:   []float64{0, 1, 5, 10, 20, 50, 100, 500},
		},
	)

	CorpusReloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "corpus_reloads_total",
			Help:      "Corpus load attempts",
		},
		[]string{"result"}, // "ok" / "error"
	)

	CorpusQuestions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "corpus_questions",
			Help:      "Questions in the current corpus snapshot",
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers search and corpus metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(
		SearchTotal,
		SearchDuration,
		SearchCandidates,
		SearchResults,
		CorpusReloadsTotal,
		CorpusQuestions,
	)
	searchMetricsRegistered = true
}

// SearchRecorder feeds search and corpus events into the package metrics.
type SearchRecorder struct{}

// NewSearchRecorder creates a recorder backed by the package collectors.
func NewSearchRecorder() *SearchRecorder { return &SearchRecorder{} }

// ObserveSearch records one ranking pass.
func (*SearchRecorder) ObserveSearch(m mode.Mode, candidates, results int, elapsed time.Duration) {
	label := string(m)
	SearchTotal.WithLabelValues(label).Inc()
	SearchDuration.WithLabelValues(label).Observe(elapsed.Seconds())
	SearchCandidates.Observe(float64(candidates))
	SearchResults.Observe(float64(results))
}

// ObserveReload records a corpus load attempt. questions is ignored on failure.
func (*SearchRecorder) ObserveReload(err error, questions int) {
	if err != nil {
		CorpusReloadsTotal.WithLabelValues("error").Inc()
		return
	}
	CorpusReloadsTotal.WithLabelValues("ok").Inc()
	CorpusQuestions.Set(float64(questions))
}
