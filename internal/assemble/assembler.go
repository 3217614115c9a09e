package assemble

import (
	"path/filepath"
	"strings"

	"github.com/praykar/autonotebook/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleCaser converts notebook file names into display titles.
// Shared package-level state is fine here: cases.Caser values for a fixed
// language are safe for concurrent use.
var titleCaser = cases.Title(language.English)

// Assemble builds the page for a notebook from its cells and the joined
// explanation results.
//
// Every cell becomes exactly one section in original order; a result is
// attached when one exists for the cell's index, and the cell's binary
// outputs are carried over as section assets verbatim. Results carrying
// the overview index attach to the page itself, not to any section.
func Assemble(nb *model.Notebook, results map[int]model.ExplanationResult) *model.Page {
	page := &model.Page{
		NotebookPath: nb.Path,
		Title:        TitleFromPath(nb.Path),
		MLType:       nb.MLType,
		Sections:     make([]model.Section, 0, len(nb.Cells)),
	}

	if overview, ok := results[model.OverviewCellIndex]; ok {
		page.Overview = &overview
	}

	for _, cell := range nb.Cells {
		section := model.Section{
			Cell:   cell,
			Assets: cell.Images(),
		}
		if res, ok := results[cell.Index]; ok {
			section.Explanation = &res
		}
		page.Sections = append(page.Sections, section)
	}

	return page
}

// TitleFromPath derives a display title from a notebook path:
// "docs/iris_classification.ipynb" becomes "Iris Classification".
func TitleFromPath(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), ".ipynb")
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)
	return titleCaser.String(name)
}
