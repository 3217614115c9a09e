package model

// OverviewCellIndex is the synthetic cell index used for the notebook-level
// overview request. Real cells are zero-based, so a negative index can never
// collide with one.
const OverviewCellIndex = -1

// ExplanationRequest is one unit of work for the explanation client.
// The selector creates exactly one request per selected cell; the client
// consumes each request exactly once.
type ExplanationRequest struct {
	// CellIndex references the originating cell by its notebook position.
	// OverviewCellIndex marks the notebook-level overview request.
	CellIndex int `json:"cell_index"`

	// Prompt is the full prompt text derived from the cell content.
	Prompt string `json:"prompt"`

	// Model is the target model identifier sent to the service.
	Model string `json:"model"`
}

// IsOverview reports whether the request is the notebook-level overview
// rather than a per-cell explanation.
func (r ExplanationRequest) IsOverview() bool {
	return r.CellIndex == OverviewCellIndex
}

// ExplanationStatus is the terminal status of an explanation request.
type ExplanationStatus string

// Terminal statuses. A request always ends in exactly one of these;
// there is no in-between state visible outside the client.
const (
	// StatusSuccess means the service returned explanation text.
	StatusSuccess ExplanationStatus = "success"

	// StatusFailed means the request failed permanently: either a
	// non-retryable error or the retry ceiling was exhausted.
	StatusFailed ExplanationStatus = "failed"
)

// ExplanationResult is the terminal outcome of one ExplanationRequest.
// Its lifetime ends once the assembler merges it into a Page.
type ExplanationResult struct {
	// CellIndex references the originating request's cell.
	CellIndex int `json:"cell_index"`

	// Status records whether the request succeeded.
	Status ExplanationStatus `json:"status"`

	// Text is the explanation returned by the service, verbatim.
	// Empty when Status is StatusFailed.
	Text string `json:"text,omitempty"`

	// Attempts is the number of calls made before reaching a terminal state.
	Attempts int `json:"attempts"`

	// ErrorMessage describes the failure when Status is StatusFailed.
	ErrorMessage string `json:"error_message,omitempty"`
}

// Succeeded reports whether the explanation was generated.
func (r ExplanationResult) Succeeded() bool {
	return r.Status == StatusSuccess
}
