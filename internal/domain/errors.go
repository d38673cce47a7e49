package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrQuestionNotFound signals a missing question.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrCategoryNotFound signals a missing category.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrInvalidRequest signals a malformed search or lookup request.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrCorpusUnavailable signals that no corpus snapshot has been loaded yet.
	ErrCorpusUnavailable = errors.New("corpus unavailable")
	// ErrInvalidCorpus signals a corpus that cannot be decoded or is inconsistent.
	ErrInvalidCorpus = errors.New("invalid corpus")
)

// DuplicateIDError wraps ErrInvalidCorpus with the offending identifier.
type DuplicateIDError struct {
	Kind string
	ID   string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("%s: duplicate %s id %q", ErrInvalidCorpus.Error(), e.Kind, e.ID)
}

func (e *DuplicateIDError) Unwrap() error { return ErrInvalidCorpus }

// NewDuplicateID creates a duplicate identifier error.
func NewDuplicateID(kind, id string) error {
	return &DuplicateIDError{Kind: kind, ID: id}
}
