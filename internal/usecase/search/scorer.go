package search

import (
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/cribdex/internal/domain/search/mode"
	"github.com/kailas-cloud/cribdex/internal/domain/similarity"
)

// scorer computes a non-negative relevance score for one candidate.
type scorer interface {
	mode() mode.Mode
	score(d *document, q *query) float64
}

// rubric is the additive scoring table. With approximate=false it is the fast
// path; with approximate=true unmatched long tokens are also compared by
// edit distance.
type rubric struct {
	opts        Options
	approximate bool
}

func newScorers(opts Options) map[mode.Mode]scorer {
	return map[mode.Mode]scorer{
		mode.Fast: &rubric{opts: opts},
		mode.Full: &rubric{opts: opts, approximate: true},
	}
}

func (r *rubric) mode() mode.Mode {
	if r.approximate {
		return mode.Full
	}
	return mode.Fast
}

func (r *rubric) score(d *document, q *query) float64 {
	var total float64

	if strings.Contains(d.text, q.full) {
		total += weightFullQuery
	}

	allFound := true
	for _, tok := range q.tokens {
		inText := d.textContains(tok)
		inKeywords := d.keywordContains(tok)

		if inText {
			total += weightTokenInText
		}
		if inKeywords {
			total += weightTokenInKeyword
		}
		if !inText && !inKeywords {
			allFound = false
			if r.approximate {
				total += r.approximateScore(d, tok)
			}
		}
	}

	if allFound && len(q.tokens) > 1 {
		total += weightAllTokens
	}

	if strings.HasPrefix(d.text, q.full) || strings.HasPrefix(d.text, q.tokens[0]) {
		total += weightPrefix
	}

	return total
}

// approximateScore rewards a token that has no exact match but is close to a
// text word or a keyword of similar length.
func (r *rubric) approximateScore(d *document, token string) float64 {
	n := utf8.RuneCountInString(token)
	if n < r.opts.MinFuzzyTokenLength {
		return 0
	}

	var total float64
	if best := r.bestSimilarity(d.textWords(), token, n, r.opts.MaxFuzzyTextWords); best > r.opts.FuzzyThreshold {
		total += best * weightFuzzyText
	}
	if best := r.bestSimilarity(d.keywords, token, n, 0); best > r.opts.FuzzyThreshold {
		total += best * weightFuzzyKeyword
	}
	return total
}

// bestSimilarity compares token against candidates whose rune length is within
// the configured window, stopping after limit eligible candidates (0 = no cap).
func (r *rubric) bestSimilarity(candidates []string, token string, n, limit int) float64 {
	lo, hi := n-r.opts.FuzzyLengthWindow, n+r.opts.FuzzyLengthWindow

	var best float64
	compared := 0
	for _, c := range candidates {
		l := utf8.RuneCountInString(c)
		if l < lo || l > hi {
			continue
		}
		if limit > 0 && compared == limit {
			break
		}
		compared++
		if s := similarity.Similarity(token, c); s > best {
			best = s
		}
	}
	return best
}
