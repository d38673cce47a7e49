package result

import "github.com/kailas-cloud/cribdex/internal/domain/question"

// Result is a single ranked question.
type Result struct {
	question question.Question
	score    float64
}

// New creates a search result.
func New(q question.Question, score float64) Result {
	return Result{question: q, score: score}
}

// Question returns the matched question.
func (r *Result) Question() question.Question { return r.question }

// Score returns the relevance score (always > 0 for engine output).
func (r *Result) Score() float64 { return r.score }

// Questions strips scores, keeping order.
func Questions(results []Result) []question.Question {
	out := make([]question.Question, len(results))
	for i := range results {
		out[i] = results[i].question
	}
	return out
}
