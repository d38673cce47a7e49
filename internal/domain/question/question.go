package question

import (
	"fmt"
	"slices"
)

// MaxTextSize is the maximum question text size in bytes.
const MaxTextSize = 16384

// Question is one searchable record (immutable value object).
type Question struct {
	id       int
	category string
	text     string
	images   []string
	answers  []string
	keywords []string
}

// New validates and creates a Question.
// ID must be positive, category and text non-empty. Slices are copied.
func New(id int, category, text string, images, answers, keywords []string) (Question, error) {
	if id <= 0 {
		return Question{}, fmt.Errorf("question ID must be positive, got %d", id)
	}
	if category == "" {
		return Question{}, fmt.Errorf("question %d: category is required", id)
	}
	if text == "" {
		return Question{}, fmt.Errorf("question %d: text is required", id)
	}
	if len(text) > MaxTextSize {
		return Question{}, fmt.Errorf("question %d: text too large (max %d bytes)", id, MaxTextSize)
	}

	return Question{
		id:       id,
		category: category,
		text:     text,
		images:   slices.Clone(images),
		answers:  slices.Clone(answers),
		keywords: slices.Clone(keywords),
	}, nil
}

// Reconstruct creates a Question without validation (storage hydration).
func Reconstruct(id int, category, text string, images, answers, keywords []string) Question {
	return Question{
		id: id, category: category, text: text,
		images: images, answers: answers, keywords: keywords,
	}
}

// ID returns the stable question identifier.
func (q *Question) ID() int { return q.id }

// Category returns the category label.
func (q *Question) Category() string { return q.category }

// Text returns the display text.
func (q *Question) Text() string { return q.text }

// Images returns the associated image references.
func (q *Question) Images() []string { return q.images }

// Answers returns the ordered answer strings.
func (q *Question) Answers() []string { return q.answers }

// Keywords returns the curated search keywords.
func (q *Question) Keywords() []string { return q.keywords }
