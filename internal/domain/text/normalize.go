// Package text canonicalizes free text for matching.
//
// Normalized text is lower-cased, contains only Latin and Cyrillic letters,
// ASCII digits and single spaces, and has no leading or trailing space.
// Normalize is total and idempotent.
package text

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Casers and chains carry state between calls, so each goroutine borrows its own.
var pipelines = sync.Pool{
	New: func() any {
		return transform.Chain(
			cases.Lower(language.Und),
			runes.Remove(runes.Predicate(dropped)),
		)
	},
}

// Normalize lower-cases s, strips runes outside the alphabet and collapses whitespace.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	t := pipelines.Get().(transform.Transformer)
	out, _, err := transform.String(t, s)
	pipelines.Put(t)
	if err != nil {
		out = strings.Map(keepOrDrop, strings.ToLower(s))
	}

	return strings.Join(strings.Fields(out), " ")
}

// Tokens splits normalized text into its non-empty words.
func Tokens(normalized string) []string {
	return strings.Fields(normalized)
}

// dropped reports whether r is removed during normalization.
// Ill-formed input reaches here as utf8.RuneError and is dropped.
func dropped(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return false
	case unicode.IsSpace(r):
		return false
	case unicode.IsLetter(r):
		return !unicode.In(r, unicode.Latin, unicode.Cyrillic)
	}
	return true
}

func keepOrDrop(r rune) rune {
	if dropped(r) {
		return -1
	}
	return r
}
