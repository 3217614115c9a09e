package selector

import (
	"strings"

	"github.com/praykar/autonotebook/internal/model"
)

// DefaultMinContentLength is the minimum trimmed cell-source length for a
// cell to be worth explaining. Shorter cells are almost always imports,
// placeholders, or single headings where an explanation adds nothing.
const DefaultMinContentLength = 24

// Selector chooses the subset of cells eligible for explanation and builds
// one ExplanationRequest per chosen cell.
type Selector struct {
	// modelID is the target model identifier stamped on each request.
	modelID string

	// minContentLength is the trimmed-length threshold below which a cell
	// is considered trivial.
	minContentLength int
}

// New creates a Selector for the given model identifier.
// A non-positive minContentLength falls back to the default threshold.
func New(modelID string, minContentLength int) *Selector {
	if minContentLength <= 0 {
		minContentLength = DefaultMinContentLength
	}
	return &Selector{
		modelID:          modelID,
		minContentLength: minContentLength,
	}
}

// Select returns the explanation requests for the notebook's cells,
// in cell order. Cells are selected when they are code or markdown with
// trimmed content at least the threshold length; code cells additionally
// need at least one non-comment line. Raw cells and binary outputs are
// never selected.
func (s *Selector) Select(nb *model.Notebook) []model.ExplanationRequest {
	var requests []model.ExplanationRequest
	for _, cell := range nb.Cells {
		if !s.eligible(cell) {
			continue
		}
		requests = append(requests, model.ExplanationRequest{
			CellIndex: cell.Index,
			Prompt:    cellPrompt(cell),
			Model:     s.modelID,
		})
	}
	return requests
}

// Overview builds the notebook-level overview request from the detected
// ML technique and the leading code cells.
func (s *Selector) Overview(nb *model.Notebook) model.ExplanationRequest {
	return model.ExplanationRequest{
		CellIndex: model.OverviewCellIndex,
		Prompt:    overviewPrompt(nb),
		Model:     s.modelID,
	}
}

// eligible applies the selection policy to a single cell.
func (s *Selector) eligible(cell model.Cell) bool {
	switch cell.Type {
	case model.CellTypeCode, model.CellTypeMarkdown:
		// Fall through to the content checks.
	default:
		return false
	}

	if len(cell.TrimmedSource()) < s.minContentLength {
		return false
	}

	if cell.Type == model.CellTypeCode && !hasExecutableLine(cell.Source) {
		return false
	}

	return true
}

// hasExecutableLine reports whether a code source contains at least one
// line that is neither blank nor a comment. Comment-only cells are already
// documented by their author and skipped.
func hasExecutableLine(source string) bool {
	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		return true
	}
	return false
}
