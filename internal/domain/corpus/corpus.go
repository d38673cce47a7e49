// Package corpus holds the immutable in-memory snapshot of all questions.
package corpus

import (
	"strconv"

	"github.com/kailas-cloud/cribdex/internal/domain"
	"github.com/kailas-cloud/cribdex/internal/domain/question"
)

// Corpus is one loaded snapshot. It is never mutated after New returns;
// a reload produces a new Corpus.
type Corpus struct {
	questions   []question.Question
	categories  []question.Category
	fingerprint uint64

	byID       map[int]int
	byCategory map[string][]int
	categoryIx map[string]int
}

// New builds a snapshot and its lookup tables.
// Duplicate question or category IDs are rejected with domain.ErrInvalidCorpus.
func New(categories []question.Category, questions []question.Question, fingerprint uint64) (*Corpus, error) {
	c := &Corpus{
		questions:   questions,
		categories:  categories,
		fingerprint: fingerprint,
		byID:        make(map[int]int, len(questions)),
		byCategory:  make(map[string][]int),
		categoryIx:  make(map[string]int, len(categories)),
	}

	for i := range categories {
		id := categories[i].ID()
		if _, dup := c.categoryIx[id]; dup {
			return nil, domain.NewDuplicateID("category", id)
		}
		c.categoryIx[id] = i
	}

	for i := range questions {
		id := questions[i].ID()
		if _, dup := c.byID[id]; dup {
			return nil, domain.NewDuplicateID("question", strconv.Itoa(id))
		}
		c.byID[id] = i
		cat := questions[i].Category()
		c.byCategory[cat] = append(c.byCategory[cat], i)
	}

	return c, nil
}

// Questions returns all questions in load order. Callers must not modify the slice.
func (c *Corpus) Questions() []question.Question { return c.questions }

// Categories returns all categories in load order.
func (c *Corpus) Categories() []question.Category { return c.categories }

// Fingerprint identifies the source bytes this snapshot was built from.
func (c *Corpus) Fingerprint() uint64 { return c.fingerprint }

// Len returns the number of questions.
func (c *Corpus) Len() int { return len(c.questions) }

// Question looks up a question by ID.
func (c *Corpus) Question(id int) (question.Question, bool) {
	i, ok := c.byID[id]
	if !ok {
		return question.Question{}, false
	}
	return c.questions[i], true
}

// Category looks up a category by ID.
func (c *Corpus) Category(id string) (question.Category, bool) {
	i, ok := c.categoryIx[id]
	if !ok {
		return question.Category{}, false
	}
	return c.categories[i], true
}

// InCategory returns the questions labelled with the category, in load order.
// The result is a fresh slice.
func (c *Corpus) InCategory(id string) []question.Question {
	idx := c.byCategory[id]
	out := make([]question.Question, len(idx))
	for i, j := range idx {
		out[i] = c.questions[j]
	}
	return out
}
