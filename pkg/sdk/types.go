package cribdex

// Mode controls how candidates are scored.
type Mode string

// Mode constants. ModeAuto lets the engine pick by candidate-set size.
const (
	ModeAuto Mode = ""
	ModeFast Mode = "fast"
	ModeFull Mode = "full"
)

// Category is a catalog entry.
type Category struct {
	ID        string
	Name      string
	Questions int
}

// Question is one exam question with its answers.
type Question struct {
	ID       int
	Category string
	Text     string
	Images   []string
	Answers  []string
	Keywords []string
}

// SearchRequest is a ranked query. Category and Mode are optional.
// Limit defaults to 20 and is capped at 200.
type SearchRequest struct {
	Query    string
	Category string
	Mode     Mode
	Limit    int
}

// SearchResult is a single ranked hit. Score is 0 for unranked listings.
type SearchResult struct {
	Question Question
	Score    float64
}

// SearchResponse is a page of hits.
type SearchResponse struct {
	Results []SearchResult
	// Total counts matches before Limit was applied.
	Total int
	// Mode is the scoring mode the engine used; empty for unranked listings.
	Mode       Mode
	Candidates int
}
