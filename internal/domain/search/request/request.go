package request

import (
	"fmt"

	"github.com/kailas-cloud/cribdex/internal/domain/search/mode"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length in bytes.
	MaxQueryLength = 1024
	DefaultLimit   = 20
	MaxLimit       = 200
)

// Request is a validated search query.
type Request struct {
	query      string
	category   string
	searchMode mode.Mode
	limit      int
}

// New validates and normalizes search parameters.
// A blank query is valid and yields no results. An empty mode lets the engine
// choose by candidate-set size. Limit defaults to 20 and is clamped to 200.
func New(query, category string, m mode.Mode, limit int) (Request, error) {
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d bytes)", MaxQueryLength)
	}
	if m != "" && !m.IsValid() {
		return Request{}, fmt.Errorf("invalid search mode: %q", m)
	}
	if limit < 0 {
		return Request{}, fmt.Errorf("limit must not be negative")
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Request{
		query:      query,
		category:   category,
		searchMode: m,
		limit:      limit,
	}, nil
}

// Query returns the raw search query text.
func (r *Request) Query() string { return r.query }

// Category returns the category scope ("" searches the whole corpus).
func (r *Request) Category() string { return r.category }

// Mode returns the forced scoring mode ("" means automatic).
func (r *Request) Mode() mode.Mode { return r.searchMode }

// Limit returns the maximum results to return.
func (r *Request) Limit() int { return r.limit }
