package render

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/praykar/autonotebook/internal/model"
)

// IndexEntry is one processed notebook on the site index.
type IndexEntry struct {
	// Title is the notebook's display title.
	Title string

	// Link is the artifact path relative to the output directory.
	Link string

	// MLType is the detected machine-learning technique.
	MLType model.MLType

	// CellCount is the number of cells on the page.
	CellCount int

	// ExplainedCount is the number of successfully explained cells.
	ExplainedCount int
}

// NewIndexEntry builds the index entry for a rendered page.
func NewIndexEntry(page *model.Page, link string) IndexEntry {
	return IndexEntry{
		Title:          page.Title,
		Link:           link,
		MLType:         page.MLType,
		CellCount:      page.SectionCount(),
		ExplainedCount: page.ExplainedCount(),
	}
}

// WriteIndex renders "index.md" listing every processed notebook.
// Entries are sorted by title so the index is stable across runs
// regardless of processing order.
func WriteIndex(outputDir string, entries []IndexEntry) (string, error) {
	sorted := make([]IndexEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Title < sorted[j].Title })

	var buf bytes.Buffer
	md := markdown.NewMarkdown(&buf)

	md.H1("Notebook Explanations")
	md.PlainText("")

	if len(sorted) == 0 {
		md.PlainText("No notebooks processed.")
		md.PlainText("")
	} else {
		rows := make([][]string, len(sorted))
		for i, e := range sorted {
			rows[i] = []string{
				fmt.Sprintf("[%s](%s)", e.Title, e.Link),
				displayMLType(e.MLType),
				strconv.Itoa(e.CellCount),
				strconv.Itoa(e.ExplainedCount),
			}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Notebook", "ML Technique", "Cells", "Explained"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Generated by [autonotebook](https://github.com/praykar/autonotebook)*")

	if err := md.Build(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	return newBaseWriter(outputDir).writeArtifact("index.md", buf.Bytes())
}
