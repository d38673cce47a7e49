package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kailas-cloud/cribdex/internal/domain"
	"github.com/kailas-cloud/cribdex/internal/domain/corpus"
	domq "github.com/kailas-cloud/cribdex/internal/domain/question"
	healthuc "github.com/kailas-cloud/cribdex/internal/usecase/health"
	questionuc "github.com/kailas-cloud/cribdex/internal/usecase/question"
	searchuc "github.com/kailas-cloud/cribdex/internal/usecase/search"
)

// --- Fixtures ---

type stubCorpus struct {
	c   *corpus.Corpus
	err error
}

func (s *stubCorpus) Current() (*corpus.Corpus, error) { return s.c, s.err }

func testCorpus(t *testing.T) *corpus.Corpus {
	t.Helper()
	prob, _ := domq.NewCategory("prob", "Probability")
	stats, _ := domq.NewCategory("stats", "Statistics")
	qs := []domq.Question{
		domq.Reconstruct(1, "prob", "Discrete random variables", []string{"pmf.png"}, []string{"Countable outcomes."}, []string{"pmf"}),
		domq.Reconstruct(2, "stats", "Random sampling", nil, nil, nil),
		domq.Reconstruct(3, "prob", "Bayes rule", nil, nil, []string{"posterior"}),
	}
	c, err := corpus.New([]domq.Category{prob, stats}, qs, 0xbeef)
	if err != nil {
		t.Fatalf("corpus.New: %v", err)
	}
	return c
}

func newTestRouter(t *testing.T, reader *stubCorpus) http.Handler {
	t.Helper()
	searchSvc := searchuc.New(reader, searchuc.DefaultEngine())
	server := NewServer(
		searchSvc,
		questionuc.New(reader, searchSvc),
		healthuc.New(reader, nil),
		zap.NewNop(),
	)
	r := chi.NewRouter()
	server.Routes(r)
	return r
}

func do(t *testing.T, h http.Handler, target string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", target, http.NoBody)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rr.Body.String())
	}
	return v
}

func itemIDs(items []QuestionItem) []int {
	ids := make([]int, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

// --- Search ---

func TestSearchQuestions(t *testing.T) {
	h := newTestRouter(t, &stubCorpus{c: testCorpus(t)})

	rr := do(t, h, "/search?q=random")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body)
	}
	if rr.Header().Get("ETag") != `"beef"` {
		t.Errorf("ETag = %q", rr.Header().Get("ETag"))
	}

	resp := decode[QuestionListResponse](t, rr)
	ids := itemIDs(resp.Items)
	// "Random sampling" starts with the query and earns the prefix bonus
	if len(ids) != 2 || ids[0] != 2 || ids[1] != 1 {
		t.Errorf("ids = %v, want [2 1]", ids)
	}
	if resp.Total != 2 || resp.Mode != "full" || resp.Candidates != 2 {
		t.Errorf("resp = %+v", resp)
	}
	if resp.Items[0].Score == nil || *resp.Items[0].Score != 170 {
		t.Errorf("score = %v, want 170", resp.Items[0].Score)
	}
}

func TestSearchQuestions_Params(t *testing.T) {
	h := newTestRouter(t, &stubCorpus{c: testCorpus(t)})

	tests := []struct {
		name   string
		target string
		status int
		code   ErrorCode
	}{
		{"bad mode", "/search?q=x&mode=turbo", http.StatusBadRequest, ErrorCodeValidationFailed},
		{"bad limit", "/search?q=x&limit=ten", http.StatusBadRequest, ErrorCodeBadRequest},
		{"negative limit", "/search?q=x&limit=-1", http.StatusBadRequest, ErrorCodeValidationFailed},
		{"unknown category", "/search?q=x&category=nope", http.StatusNotFound, ErrorCodeCategoryNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := do(t, h, tc.target)
			if rr.Code != tc.status {
				t.Fatalf("status = %d, want %d", rr.Code, tc.status)
			}
			if resp := decode[ErrorResponse](t, rr); resp.Code != tc.code {
				t.Errorf("code = %s, want %s", resp.Code, tc.code)
			}
		})
	}
}

func TestSearchQuestions_ForcedModeAndLimit(t *testing.T) {
	h := newTestRouter(t, &stubCorpus{c: testCorpus(t)})

	resp := decode[QuestionListResponse](t, do(t, h, "/search?q=random&mode=fast&limit=1"))
	if resp.Mode != "fast" || len(resp.Items) != 1 || resp.Total != 2 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestSearchQuestions_BlankQuery(t *testing.T) {
	h := newTestRouter(t, &stubCorpus{c: testCorpus(t)})

	rr := do(t, h, "/search?q=%20%20")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	resp := decode[QuestionListResponse](t, rr)
	if resp.Items == nil || len(resp.Items) != 0 || resp.Total != 0 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestSearchQuestions_NotModified(t *testing.T) {
	h := newTestRouter(t, &stubCorpus{c: testCorpus(t)})

	rr := do(t, h, "/search?q=bayes", "If-None-Match", `"beef"`)
	if rr.Code != http.StatusNotModified {
		t.Errorf("status = %d, want 304", rr.Code)
	}
	if rr.Body.Len() != 0 {
		t.Error("304 must not carry a body")
	}
}

func TestSearchQuestions_IfNoneMatchForms(t *testing.T) {
	h := newTestRouter(t, &stubCorpus{c: testCorpus(t)})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"list", `"aaa", "beef"`, http.StatusNotModified},
		{"list without spaces", `"aaa","beef"`, http.StatusNotModified},
		{"weak", `W/"beef"`, http.StatusNotModified},
		{"weak in list", `"aaa", W/"beef"`, http.StatusNotModified},
		{"wildcard", `*`, http.StatusNotModified},
		{"mismatch", `"aaa", W/"bee"`, http.StatusOK},
		{"unquoted", `beef`, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, "/search?q=bayes", "If-None-Match", tt.header)
			if rr.Code != tt.want {
				t.Errorf("status = %d, want %d", rr.Code, tt.want)
			}
			if rr.Header().Get("ETag") != `"beef"` {
				t.Errorf("ETag = %q", rr.Header().Get("ETag"))
			}
		})
	}
}

func TestSearchQuestions_CorpusUnavailable(t *testing.T) {
	h := newTestRouter(t, &stubCorpus{err: domain.ErrCorpusUnavailable})

	rr := do(t, h, "/search?q=bayes")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rr.Code)
	}
	if resp := decode[ErrorResponse](t, rr); resp.Code != ErrorCodeCorpusUnavailable {
		t.Errorf("code = %s", resp.Code)
	}
}

// --- Catalog ---

func TestListCategories(t *testing.T) {
	h := newTestRouter(t, &stubCorpus{c: testCorpus(t)})

	resp := decode[CategoryListResponse](t, do(t, h, "/categories"))
	if len(resp.Items) != 2 {
		t.Fatalf("items = %+v", resp.Items)
	}
	if resp.Items[0] != (CategoryItem{ID: "prob", Name: "Probability", Questions: 2}) {
		t.Errorf("items[0] = %+v", resp.Items[0])
	}
}

func TestListCategoryQuestions(t *testing.T) {
	h := newTestRouter(t, &stubCorpus{c: testCorpus(t)})

	rr := do(t, h, "/categories/prob/questions")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	resp := decode[QuestionListResponse](t, rr)
	ids := itemIDs(resp.Items)
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 3 {
		t.Errorf("ids = %v, want [1 3]", ids)
	}
	if resp.Items[0].Score != nil || resp.Mode != "" {
		t.Error("plain listing must not carry scores or a mode")
	}
	if resp.Items[0].Images[0] != "pmf.png" || resp.Items[0].Answers[0] != "Countable outcomes." {
		t.Errorf("item = %+v", resp.Items[0])
	}
}

func TestListCategoryQuestions_Query(t *testing.T) {
	h := newTestRouter(t, &stubCorpus{c: testCorpus(t)})

	resp := decode[QuestionListResponse](t, do(t, h, "/categories/prob/questions?q=posterior"))
	ids := itemIDs(resp.Items)
	if len(ids) != 1 || ids[0] != 3 {
		t.Errorf("ids = %v, want [3]", ids)
	}
	if resp.Items[0].Score == nil {
		t.Error("ranked listing must carry scores")
	}
}

func TestListCategoryQuestions_Unknown(t *testing.T) {
	h := newTestRouter(t, &stubCorpus{c: testCorpus(t)})

	rr := do(t, h, "/categories/nope/questions")
	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}

func TestGetQuestion(t *testing.T) {
	h := newTestRouter(t, &stubCorpus{c: testCorpus(t)})

	rr := do(t, h, "/questions/3")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	item := decode[QuestionItem](t, rr)
	if item.ID != 3 || item.Text != "Bayes rule" || item.Score != nil {
		t.Errorf("item = %+v", item)
	}

	if rr := do(t, h, "/questions/abc"); rr.Code != http.StatusBadRequest {
		t.Errorf("non-numeric id: status = %d", rr.Code)
	}

	rr = do(t, h, "/questions/404")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("missing id: status = %d", rr.Code)
	}
	if resp := decode[ErrorResponse](t, rr); resp.Code != ErrorCodeQuestionNotFound {
		t.Errorf("code = %s", resp.Code)
	}
}

// --- Ops ---

func TestHealthCheck(t *testing.T) {
	rr := do(t, newTestRouter(t, &stubCorpus{c: testCorpus(t)}), "/health")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	resp := decode[HealthResponse](t, rr)
	if resp.Status != "ok" || resp.Checks["corpus"] != "ok" || resp.Questions != 3 {
		t.Errorf("resp = %+v", resp)
	}

	rr = do(t, newTestRouter(t, &stubCorpus{err: domain.ErrCorpusUnavailable}), "/health")
	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("no corpus: status = %d, want 503", rr.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	rr := do(t, newTestRouter(t, &stubCorpus{c: testCorpus(t)}), "/metrics")
	if rr.Code != http.StatusOK {
		t.Errorf("status = %d", rr.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	rr := do(t, newTestRouter(t, &stubCorpus{c: testCorpus(t)}), "/collections")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rr.Code)
	}
	if resp := decode[ErrorResponse](t, rr); resp.Code != ErrorCodeNotFound {
		t.Errorf("code = %s", resp.Code)
	}
}

func TestSafeDomainMessage_HidesInternals(t *testing.T) {
	if got := safeDomainMessage(errString("dial tcp 10.0.0.1:6379: refused")); got != "internal error" {
		t.Errorf("got %q", got)
	}
}

type errString string

func (e errString) Error() string { return string(e) }

// --- Middleware ---

func TestJSONRecoverer(t *testing.T) {
	h := JSONRecoverer(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rr := do(t, h, "/search")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rr.Code)
	}
	if resp := decode[ErrorResponse](t, rr); resp.Code != ErrorCodeInternalError {
		t.Errorf("code = %s", resp.Code)
	}
}

func TestWideEventMiddleware(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(WideEventMiddleware(zap.New(core)))
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rr := do(t, r, "/ping?q=abc", "X-Request-Id", "req-42")
	if got := rr.Header().Get("X-Request-ID"); got != "req-42" {
		t.Errorf("X-Request-ID = %q", got)
	}

	entries := logs.FilterMessage("http_request").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log line, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["request_id"] != "req-42" || fields["status"] != int64(http.StatusTeapot) || fields["query_len"] != int64(5) {
		t.Errorf("fields = %v", fields)
	}
}
