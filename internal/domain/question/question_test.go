package question

import (
	"strings"
	"testing"
)

func TestNew_Valid(t *testing.T) {
	q, err := New(7, "probability", "Discrete random variables",
		[]string{"img/7.png"}, []string{"A", "B"}, []string{"discrete"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.ID() != 7 {
		t.Errorf("ID() = %d", q.ID())
	}
	if q.Category() != "probability" {
		t.Errorf("Category() = %q", q.Category())
	}
	if q.Text() != "Discrete random variables" {
		t.Errorf("Text() = %q", q.Text())
	}
	if len(q.Images()) != 1 || len(q.Answers()) != 2 || len(q.Keywords()) != 1 {
		t.Errorf("slices = %v %v %v", q.Images(), q.Answers(), q.Keywords())
	}
}

func TestNew_ClonesSlices(t *testing.T) {
	keywords := []string{"discrete"}
	answers := []string{"A"}

	q, _ := New(1, "c", "text", nil, answers, keywords)

	keywords[0] = "mutated"
	answers[0] = "mutated"

	if q.Keywords()[0] != "discrete" {
		t.Error("keyword mutation leaked into question")
	}
	if q.Answers()[0] != "A" {
		t.Error("answer mutation leaked into question")
	}
}

func TestNew_NilSlices(t *testing.T) {
	q, err := New(1, "c", "text", nil, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Images() != nil || q.Answers() != nil || q.Keywords() != nil {
		t.Error("expected nil slices")
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		id       int
		category string
		text     string
		errPart  string
	}{
		{"zero id", 0, "c", "text", "positive"},
		{"negative id", -3, "c", "text", "positive"},
		{"empty category", 1, "", "text", "category"},
		{"empty text", 1, "c", "", "text is required"},
		{"text too large", 1, "c", strings.Repeat("x", MaxTextSize+1), "too large"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.id, tc.category, tc.text, nil, nil, nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.errPart) {
				t.Errorf("error = %q, want substring %q", err, tc.errPart)
			}
		})
	}
}

func TestReconstruct_NoValidation(t *testing.T) {
	q := Reconstruct(0, "", "", nil, nil, nil)
	if q.ID() != 0 || q.Text() != "" {
		t.Errorf("Reconstruct altered fields: %+v", q)
	}
}

func TestNewCategory(t *testing.T) {
	c, err := NewCategory("prob", "Probability")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ID() != "prob" || c.Name() != "Probability" {
		t.Errorf("category = %q/%q", c.ID(), c.Name())
	}

	c, err = NewCategory("stats", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Name() != "stats" {
		t.Errorf("Name() = %q, want fallback to ID", c.Name())
	}

	if _, err := NewCategory("", "x"); err == nil {
		t.Error("expected error for empty ID")
	}
}
