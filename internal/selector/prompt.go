package selector

import (
	"fmt"
	"strings"

	"github.com/praykar/autonotebook/internal/model"
)

// maxPromptSourceLength bounds how much cell source is embedded in a
// prompt. Hosted inference endpoints reject oversized inputs, and the
// tail of a very long cell rarely changes the explanation.
const maxPromptSourceLength = 4000

// maxOverviewCells is how many leading code cells feed the overview
// prompt. The opening cells of a notebook set up the experiment and are
// the most descriptive of its intent.
const maxOverviewCells = 3

// cellPrompt derives the prompt text for a single cell.
func cellPrompt(cell model.Cell) string {
	source := truncate(cell.TrimmedSource(), maxPromptSourceLength)

	switch cell.Type {
	case model.CellTypeCode:
		return fmt.Sprintf(
			"Explain the following machine learning code in a clear, accessible manner. "+
				"Break down what it does and why.\n\nCode:\n%s%s",
			source, outputContext(cell),
		)
	case model.CellTypeMarkdown:
		return fmt.Sprintf(
			"Provide a concise, beginner-friendly summary of the following notes "+
				"from a machine learning notebook.\n\nNotes:\n%s",
			source,
		)
	default:
		return source
	}
}

// outputContext appends the cell's textual output to a code prompt when
// one exists. Seeing the printed result helps the model explain what the
// code actually produced.
func outputContext(cell model.Cell) string {
	for _, out := range cell.Outputs {
		text := strings.TrimSpace(out.Text)
		if out.Kind == model.OutputError || text == "" {
			continue
		}
		return "\n\nOutput:\n" + truncate(text, 500)
	}
	return ""
}

// overviewPrompt derives the notebook-level overview prompt from the
// detected technique and the leading code cells.
func overviewPrompt(nb *model.Notebook) string {
	var snippets []string
	for _, cell := range nb.Cells {
		if cell.Type != model.CellTypeCode {
			continue
		}
		snippets = append(snippets, truncate(cell.TrimmedSource(), 600))
		if len(snippets) == maxOverviewCells {
			break
		}
	}

	return fmt.Sprintf(
		"Provide a concise, beginner-friendly overview of this machine learning project. "+
			"Detected technique: %s.\n\nCode snippets:\n%s",
		nb.MLType, strings.Join(snippets, "\n---\n"),
	)
}

// truncate shortens s to at most maxLen bytes with an ellipsis marker.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "\n[truncated]"
}
