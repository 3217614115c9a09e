package model

import "testing"

// buildTestPage creates a page with a mix of explained, failed, and
// unexplained sections.
func buildTestPage() *Page {
	return &Page{
		NotebookPath: "notebooks/iris.ipynb",
		Title:        "Iris",
		MLType:       MLTypeClassification,
		Sections: []Section{
			{
				Cell:        Cell{Index: 0, Type: CellTypeMarkdown, Source: "# Iris"},
				Explanation: &ExplanationResult{CellIndex: 0, Status: StatusSuccess, Text: "An intro."},
			},
			{
				Cell:        Cell{Index: 1, Type: CellTypeCode, Source: "model.fit(X, y)"},
				Explanation: &ExplanationResult{CellIndex: 1, Status: StatusFailed, ErrorMessage: "retries exhausted"},
			},
			{
				Cell:   Cell{Index: 2, Type: CellTypeCode, Source: "plt.plot(x)"},
				Assets: []Asset{{MIME: "image/png", Data: []byte{0x89, 0x50}}},
			},
		},
	}
}

// TestPageCounts tests the page's derived counters.
func TestPageCounts(t *testing.T) {
	t.Parallel()

	page := buildTestPage()

	if got := page.SectionCount(); got != 3 {
		t.Errorf("SectionCount() = %d, want 3", got)
	}
	if got := page.ExplainedCount(); got != 1 {
		t.Errorf("ExplainedCount() = %d, want 1", got)
	}
	if got := page.FailedCount(); got != 1 {
		t.Errorf("FailedCount() = %d, want 1", got)
	}
	if got := page.AssetCount(); got != 1 {
		t.Errorf("AssetCount() = %d, want 1", got)
	}
}

// TestExplanationResultSucceeded tests terminal status reporting.
func TestExplanationResultSucceeded(t *testing.T) {
	t.Parallel()

	ok := ExplanationResult{Status: StatusSuccess, Text: "fits a model"}
	if !ok.Succeeded() {
		t.Error("expected success result to report Succeeded")
	}

	failed := ExplanationResult{Status: StatusFailed}
	if failed.Succeeded() {
		t.Error("expected failed result to not report Succeeded")
	}
}

// TestExplanationRequestIsOverview tests the synthetic overview index.
func TestExplanationRequestIsOverview(t *testing.T) {
	t.Parallel()

	if (ExplanationRequest{CellIndex: 0}).IsOverview() {
		t.Error("cell 0 must not be treated as overview")
	}
	if !(ExplanationRequest{CellIndex: OverviewCellIndex}).IsOverview() {
		t.Error("OverviewCellIndex must be treated as overview")
	}
}
