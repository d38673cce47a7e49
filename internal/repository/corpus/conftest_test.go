package corpus

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

const sampleYAML = `
categories:
  - id: prob
    name: Probability
  - id: stats
    name: Statistics
questions:
  - id: 1
    category: prob
    text: Discrete random variables
    answers: ["A variable with countable outcomes."]
    keywords: [discrete, pmf]
  - id: 2
    category: stats
    text: Sample mean and variance
    images: [mean.png]
    answers: ["Sum divided by n."]
`

const sampleJSON = `{
  "categories": [{"id": "prob", "name": "Probability"}],
  "questions": [
    {"id": 1, "category": "prob", "text": "Bayes rule", "keywords": ["posterior"]},
    {"id": 2, "category": "prob", "text": "Markov chains"}
  ]
}`

// mockStore implements the consumer interfaces for tests.
type mockStore struct {
	mu    sync.Mutex
	data  map[string][]byte
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte) error
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *mockStore) Set(ctx context.Context, key string, value []byte) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = map[string][]byte{}
	}
	m.data[key] = value
	return nil
}

// mockObserver records reload outcomes.
type mockObserver struct {
	mu        sync.Mutex
	ok        int
	failed    int
	questions int
}

func (m *mockObserver) ObserveReload(err error, questions int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.failed++
		return
	}
	m.ok++
	m.questions = questions
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
