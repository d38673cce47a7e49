package cribdex

import (
	"context"

	domq "github.com/kailas-cloud/cribdex/internal/domain/question"
	"github.com/kailas-cloud/cribdex/internal/domain/search/request"
	healthuc "github.com/kailas-cloud/cribdex/internal/usecase/health"
	questionuc "github.com/kailas-cloud/cribdex/internal/usecase/question"
	searchuc "github.com/kailas-cloud/cribdex/internal/usecase/search"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn func(ctx context.Context, req *request.Request) (searchuc.Outcome, error)
}

func (m *mockSearchUC) Search(ctx context.Context, req *request.Request) (searchuc.Outcome, error) {
	return m.searchFn(ctx, req)
}

// --- questionUseCase mock ---

type mockQuestionUC struct {
	categoriesFn func(ctx context.Context) ([]questionuc.CategoryInfo, error)
	byCategoryFn func(ctx context.Context, category, query string, limit int) (questionuc.Listing, error)
	getFn        func(ctx context.Context, id int) (domq.Question, error)
}

func (m *mockQuestionUC) Categories(ctx context.Context) ([]questionuc.CategoryInfo, error) {
	return m.categoriesFn(ctx)
}

func (m *mockQuestionUC) ByCategory(
	ctx context.Context, category, query string, limit int,
) (questionuc.Listing, error) {
	return m.byCategoryFn(ctx, category, query, limit)
}

func (m *mockQuestionUC) Get(ctx context.Context, id int) (domq.Question, error) {
	return m.getFn(ctx, id)
}

// --- reloader / health mocks ---

type mockReloader struct {
	calls int
	err   error
}

func (m *mockReloader) Reload(_ context.Context) error {
	m.calls++
	return m.err
}

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report { return m.report }

// --- helpers ---

func testClient(searchSvc searchUseCase, questionSvc questionUseCase) *Client {
	return &Client{
		searchSvc:   searchSvc,
		questionSvc: questionSvc,
	}
}
