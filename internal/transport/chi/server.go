package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cribdex/internal/domain"
	domq "github.com/kailas-cloud/cribdex/internal/domain/question"
	"github.com/kailas-cloud/cribdex/internal/domain/search/mode"
	"github.com/kailas-cloud/cribdex/internal/domain/search/request"
	"github.com/kailas-cloud/cribdex/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/cribdex/internal/usecase/health"
	questionuc "github.com/kailas-cloud/cribdex/internal/usecase/question"
	searchuc "github.com/kailas-cloud/cribdex/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the question API.
type Server struct {
	search        *searchuc.Service
	questions     *questionuc.Service
	health        *healthuc.Service
	metrics       http.Handler
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	questions *questionuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:    search,
		questions: questions,
		health:    health,
		metrics:   promhttp.Handler(),
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrQuestionNotFound, http.StatusNotFound, ErrorCodeQuestionNotFound),
		sentinelHandler(domain.ErrCategoryNotFound, http.StatusNotFound, ErrorCodeCategoryNotFound),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorCodeNotFound),
		sentinelHandler(domain.ErrCorpusUnavailable, http.StatusServiceUnavailable, ErrorCodeCorpusUnavailable),
	}
	return s
}

// Routes registers the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Get("/categories", s.ListCategories)
	r.Get("/categories/{category}/questions", s.ListCategoryQuestions)
	r.Get("/questions/{id}", s.GetQuestion)
	r.Get("/search", s.SearchQuestions)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, ErrorCodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrorCodeBadRequest, "method not allowed")
	})
}

// SearchQuestions handles GET /search?q=&category=&mode=&limit=.
func (s *Server) SearchQuestions(w http.ResponseWriter, r *http.Request) {
	var (
		q, category, modeParam string
		limit                  int
	)
	query := r.URL.Query()
	if !bindQuery(w, query, "q", &q) ||
		!bindQuery(w, query, "category", &category) ||
		!bindQuery(w, query, "mode", &modeParam) ||
		!bindQuery(w, query, "limit", &limit) {
		return
	}

	m, ok := mode.Parse(modeParam)
	if !ok {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "mode must be auto, fast or full")
		return
	}

	req, err := request.New(q, category, m, limit)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		return
	}

	out, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	if notModified(w, r, out.Fingerprint) {
		return
	}
	writeJSON(w, http.StatusOK, QuestionListResponse{
		Items:      resultsToItems(out.Results, true),
		Total:      out.Total,
		Mode:       string(out.Mode),
		Candidates: out.Candidates,
	})
}

// ListCategories handles GET /categories.
func (s *Server) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.questions.Categories(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]CategoryItem, len(cats))
	for i := range cats {
		items[i] = CategoryItem{
			ID:        cats[i].Category.ID(),
			Name:      cats[i].Category.Name(),
			Questions: cats[i].Questions,
		}
	}
	writeJSON(w, http.StatusOK, CategoryListResponse{Items: items})
}

// ListCategoryQuestions handles GET /categories/{category}/questions?q=&limit=.
// Without q the whole category is listed in corpus order.
func (s *Server) ListCategoryQuestions(w http.ResponseWriter, r *http.Request) {
	var category string
	if err := runtime.BindStyledParameterWithOptions("simple", "category", chi.URLParam(r, "category"), &category,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true}); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "invalid category")
		return
	}

	var (
		q     string
		limit int
	)
	query := r.URL.Query()
	if !bindQuery(w, query, "q", &q) || !bindQuery(w, query, "limit", &limit) {
		return
	}

	listing, err := s.questions.ByCategory(r.Context(), category, q, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	if notModified(w, r, listing.Fingerprint) {
		return
	}
	writeJSON(w, http.StatusOK, QuestionListResponse{
		Items:      resultsToItems(listing.Results, listing.Mode != ""),
		Total:      listing.Total,
		Mode:       string(listing.Mode),
		Candidates: listing.Candidates,
	})
}

// GetQuestion handles GET /questions/{id}.
func (s *Server) GetQuestion(w http.ResponseWriter, r *http.Request) {
	var id int
	if err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true}); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "question id must be an integer")
		return
	}

	q, err := s.questions.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, questionToItem(&q, nil))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:    string(report.Status),
		Checks:    checks,
		Questions: report.Questions,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	s.metrics.ServeHTTP(w, r)
}

// bindQuery binds an optional form-style query parameter, answering 400 on failure.
func bindQuery(w http.ResponseWriter, query url.Values, name string, dest any) bool {
	if err := runtime.BindQueryParameter("form", true, false, name, query, dest); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "invalid query parameter "+name)
		return false
	}
	return true
}

// notModified sets the ETag for a corpus snapshot and answers 304 when the
// client already holds it.
func notModified(w http.ResponseWriter, r *http.Request, fingerprint uint64) bool {
	etag := strconv.Quote(strconv.FormatUint(fingerprint, 16))
	w.Header().Set("ETag", etag)
	if etagMatches(r.Header.Values("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return true
	}
	return false
}

// etagMatches applies the weak comparison of If-None-Match: any listed tag
// equal to etag once its W/ prefix is dropped, or "*", matches.
func etagMatches(headers []string, etag string) bool {
	for _, h := range headers {
		for _, tag := range strings.Split(h, ",") {
			tag = strings.TrimSpace(tag)
			if tag == "*" || strings.TrimPrefix(tag, "W/") == etag {
				return true
			}
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidRequest,
		domain.ErrQuestionNotFound,
		domain.ErrCategoryNotFound,
		domain.ErrNotFound,
		domain.ErrCorpusUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}

func resultsToItems(results []result.Result, scored bool) []QuestionItem {
	items := make([]QuestionItem, len(results))
	for i := range results {
		q := results[i].Question()
		var score *float64
		if scored {
			v := results[i].Score()
			score = &v
		}
		items[i] = questionToItem(&q, score)
	}
	return items
}

func questionToItem(q *domq.Question, score *float64) QuestionItem {
	return QuestionItem{
		ID:       q.ID(),
		Category: q.Category(),
		Text:     q.Text(),
		Images:   q.Images(),
		Answers:  q.Answers(),
		Keywords: q.Keywords(),
		Score:    score,
	}
}
