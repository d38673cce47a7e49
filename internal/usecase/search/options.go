package search

import (
	"fmt"

	"github.com/kailas-cloud/cribdex/internal/domain/search/mode"
)

// Default tuning values. They are empirical and kept as-is.
const (
	DefaultFullScoringMaxCandidates = 500
	DefaultFuzzyThreshold           = 0.75
	DefaultMinFuzzyTokenLength      = 4
	DefaultFuzzyLengthWindow        = 2
	DefaultMaxFuzzyTextWords        = 50
)

// Rubric weights.
const (
	weightFullQuery      = 100.0
	weightTokenInText    = 50.0
	weightTokenInKeyword = 40.0
	weightFuzzyText      = 30.0
	weightFuzzyKeyword   = 25.0
	weightAllTokens      = 30.0
	weightPrefix         = 20.0
)

// Options tunes the engine. Start from DefaultOptions and override fields;
// every field is taken literally, zero included.
type Options struct {
	// FullScoringMaxCandidates is the largest candidate set scored in full mode.
	FullScoringMaxCandidates int
	// FuzzyThreshold is the exclusive lower bound a similarity must exceed to count.
	FuzzyThreshold float64
	// MinFuzzyTokenLength is the shortest token (in runes) eligible for approximate matching.
	MinFuzzyTokenLength int
	// FuzzyLengthWindow bounds |len(word)-len(token)| for compared words; 0 compares equal lengths only.
	FuzzyLengthWindow int
	// MaxFuzzyTextWords caps how many length-eligible text words are compared per token.
	MaxFuzzyTextWords int
}

// DefaultOptions returns the stock tuning.
func DefaultOptions() Options {
	return Options{
		FullScoringMaxCandidates: DefaultFullScoringMaxCandidates,
		FuzzyThreshold:           DefaultFuzzyThreshold,
		MinFuzzyTokenLength:      DefaultMinFuzzyTokenLength,
		FuzzyLengthWindow:        DefaultFuzzyLengthWindow,
		MaxFuzzyTextWords:        DefaultMaxFuzzyTextWords,
	}
}

// Validate checks that every field is in range.
func (o Options) Validate() error {
	switch {
	case o.FullScoringMaxCandidates < 0:
		return fmt.Errorf("full scoring max candidates must not be negative, got %d", o.FullScoringMaxCandidates)
	case o.FuzzyThreshold < 0 || o.FuzzyThreshold >= 1:
		return fmt.Errorf("fuzzy threshold must be in [0, 1), got %v", o.FuzzyThreshold)
	case o.MinFuzzyTokenLength < 1:
		return fmt.Errorf("min fuzzy token length must be at least 1, got %d", o.MinFuzzyTokenLength)
	case o.FuzzyLengthWindow < 0:
		return fmt.Errorf("fuzzy length window must not be negative, got %d", o.FuzzyLengthWindow)
	case o.MaxFuzzyTextWords < 1:
		return fmt.Errorf("max fuzzy text words must be at least 1, got %d", o.MaxFuzzyTextWords)
	}
	return nil
}

// Strategy picks the scoring mode for a candidate set of the given size.
type Strategy interface {
	Select(candidates int) mode.Mode
}

// ThresholdStrategy uses full scoring up to MaxFull candidates and fast scoring above.
type ThresholdStrategy struct {
	MaxFull int
}

// Select implements Strategy.
func (s ThresholdStrategy) Select(candidates int) mode.Mode {
	if candidates <= s.MaxFull {
		return mode.Full
	}
	return mode.Fast
}

// FixedStrategy always returns the same mode.
type FixedStrategy mode.Mode

// Select implements Strategy.
func (s FixedStrategy) Select(int) mode.Mode { return mode.Mode(s) }
