package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded means searches are served but a dependency is failing.
	Degraded Status = "degraded"
	// Unhealthy means no corpus is loaded, so nothing can be served.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status    Status
	Checks    map[string]CheckResult
	Questions int
}

// Service coordinates health checks.
type Service struct {
	corpus CorpusReader
	db     DBPinger
}

// New creates a Service. db is nil when the corpus comes from a file.
func New(corpus CorpusReader, db DBPinger) *Service {
	return &Service{corpus: corpus, db: db}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	r := Report{Status: Healthy, Checks: make(map[string]CheckResult, 2)}

	if c, err := s.corpus.Current(); err != nil {
		r.Checks["corpus"] = CheckError
		r.Status = Unhealthy
	} else {
		r.Checks["corpus"] = CheckOK
		r.Questions = c.Len()
	}

	if s.db != nil {
		if err := s.db.Ping(ctx); err != nil {
			r.Checks["database"] = CheckError
			if r.Status == Healthy {
				r.Status = Degraded
			}
		} else {
			r.Checks["database"] = CheckOK
		}
	}

	return r
}
