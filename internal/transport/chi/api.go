package chi

// ErrorCode is a machine-readable error kind.
type ErrorCode string

// Error codes returned in ErrorResponse.
const (
	ErrorCodeBadRequest        ErrorCode = "bad_request"
	ErrorCodeUnauthorized      ErrorCode = "unauthorized"
	ErrorCodeValidationFailed  ErrorCode = "validation_failed"
	ErrorCodeNotFound          ErrorCode = "not_found"
	ErrorCodeQuestionNotFound  ErrorCode = "question_not_found"
	ErrorCodeCategoryNotFound  ErrorCode = "category_not_found"
	ErrorCodeCorpusUnavailable ErrorCode = "corpus_unavailable"
	ErrorCodeInternalError     ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks"`
	Questions int               `json:"questions"`
}

// CategoryItem is one catalog entry.
type CategoryItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Questions int    `json:"questions"`
}

// CategoryListResponse is the body of GET /categories.
type CategoryListResponse struct {
	Items []CategoryItem `json:"items"`
}

// QuestionItem is a question, with its score when it came from a ranking.
type QuestionItem struct {
	ID       int      `json:"id"`
	Category string   `json:"category"`
	Text     string   `json:"text"`
	Images   []string `json:"images,omitempty"`
	Answers  []string `json:"answers,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
	Score    *float64 `json:"score,omitempty"`
}

// QuestionListResponse is the body of search and category listings.
type QuestionListResponse struct {
	Items      []QuestionItem `json:"items"`
	Total      int            `json:"total"`
	Mode       string         `json:"mode,omitempty"`
	Candidates int            `json:"candidates,omitempty"`
}
