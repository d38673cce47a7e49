package cribdex

import "github.com/kailas-cloud/cribdex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidRequest    = domain.ErrInvalidRequest
	ErrQuestionNotFound  = domain.ErrQuestionNotFound
	ErrCategoryNotFound  = domain.ErrCategoryNotFound
	ErrCorpusUnavailable = domain.ErrCorpusUnavailable
	ErrInvalidCorpus     = domain.ErrInvalidCorpus
)
