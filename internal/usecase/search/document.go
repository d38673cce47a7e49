package search

import (
	"strings"

	"github.com/kailas-cloud/cribdex/internal/domain/question"
	"github.com/kailas-cloud/cribdex/internal/domain/text"
)

// document is a question normalized once for the duration of one search call.
type document struct {
	question *question.Question
	text     string
	keywords []string
	words    []string // split lazily, full mode only
}

func newDocument(q *question.Question) *document {
	kws := q.Keywords()
	normalized := make([]string, len(kws))
	for i, kw := range kws {
		normalized[i] = text.Normalize(kw)
	}
	return &document{
		question: q,
		text:     text.Normalize(q.Text()),
		keywords: normalized,
	}
}

func (d *document) textContains(token string) bool {
	return strings.Contains(d.text, token)
}

func (d *document) keywordContains(token string) bool {
	for _, kw := range d.keywords {
		if strings.Contains(kw, token) {
			return true
		}
	}
	return false
}

// contains is the predicate shared by the candidate filter and the all-tokens bonus.
func (d *document) contains(token string) bool {
	return d.textContains(token) || d.keywordContains(token)
}

func (d *document) textWords() []string {
	if d.words == nil {
		d.words = text.Tokens(d.text)
	}
	return d.words
}

type query struct {
	full   string
	tokens []string
}

func newQuery(raw string) query {
	full := text.Normalize(raw)
	return query{full: full, tokens: text.Tokens(full)}
}

func (q *query) blank() bool { return len(q.tokens) == 0 }
