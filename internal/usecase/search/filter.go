package search

import "github.com/kailas-cloud/cribdex/internal/domain/question"

// filterCandidates keeps, in corpus order, every question in which at least one
// token occurs as a substring of the text or of a keyword.
//
// Approximate-only matches never pass: a question that would only score through
// edit distance is dropped here even when the scorer would run in full mode.
func filterCandidates(questions []question.Question, tokens []string) []*document {
	var out []*document
	for i := range questions {
		d := newDocument(&questions[i])
		for _, tok := range tokens {
			if d.contains(tok) {
				out = append(out, d)
				break
			}
		}
	}
	return out
}
