package model

// Section is the per-cell unit of an assembled page: the original cell,
// at most one explanation result, and any binary assets the cell's outputs
// carried. Sections appear in the page in original cell order.
type Section struct {
	// Cell is the original notebook cell, unchanged.
	Cell Cell `json:"cell"`

	// Explanation is the result for this cell, if it was selected.
	// Nil when the cell was never sent for explanation.
	Explanation *ExplanationResult `json:"explanation,omitempty"`

	// Assets are the binary payloads preserved from the cell's outputs.
	Assets []Asset `json:"assets,omitempty"`
}

// Page is the assembled document for one notebook: an ordered sequence of
// Sections, one per input cell. The assembler owns the Page exclusively
// until it is handed to the renderer; it is never mutated after creation.
type Page struct {
	// NotebookPath is the source notebook the page was built from.
	NotebookPath string `json:"notebook_path"`

	// Title is the display title derived from the notebook filename.
	Title string `json:"title"`

	// MLType is the detected machine-learning technique, shown on the page
	// and the site index.
	MLType MLType `json:"ml_type"`

	// Overview is the notebook-level overview explanation, if one was
	// requested. Nil when overview generation is disabled.
	Overview *ExplanationResult `json:"overview,omitempty"`

	// Sections are the per-cell sections in original cell order.
	Sections []Section `json:"sections"`
}

// SectionCount returns the number of sections in the page.
// It always equals the cell count of the source notebook.
func (p *Page) SectionCount() int {
	return len(p.Sections)
}

// ExplainedCount returns the number of sections carrying a successful
// explanation.
func (p *Page) ExplainedCount() int {
	n := 0
	for _, s := range p.Sections {
		if s.Explanation != nil && s.Explanation.Succeeded() {
			n++
		}
	}
	return n
}

// FailedCount returns the number of sections whose explanation permanently
// failed. These render as "explanation unavailable" placeholders.
func (p *Page) FailedCount() int {
	n := 0
	for _, s := range p.Sections {
		if s.Explanation != nil && !s.Explanation.Succeeded() {
			n++
		}
	}
	return n
}

// AssetCount returns the total number of binary assets across all sections.
func (p *Page) AssetCount() int {
	n := 0
	for _, s := range p.Sections {
		n += len(s.Assets)
	}
	return n
}
