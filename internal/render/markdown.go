package render

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/nao1215/markdown"
	"github.com/praykar/autonotebook/internal/model"
)

// placeholderText is rendered in place of an explanation that permanently
// failed, so the reader can tell a skipped cell from a failed one.
const placeholderText = "*Explanation unavailable: the language model could not be reached for this cell.*"

// maxOutputPreview caps the amount of plain-text output embedded per cell.
// Training logs can run to megabytes; the page only needs a glimpse.
const maxOutputPreview = 1500

// MarkdownWriter outputs pages in Markdown format.
// This is the default format, designed for publishing on GitHub or any
// static-site generator.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
	conv *converter.Converter
}

// NewMarkdownWriter creates a MarkdownWriter rooted at the output directory.
func NewMarkdownWriter(outputDir string) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(outputDir),
		conv:       newHTMLConverter(),
	}
}

// Write renders the page as "<notebook>.md" plus copied assets.
func (w *MarkdownWriter) Write(page *model.Page) (string, error) {
	if page == nil {
		return "", ErrNilPage
	}

	assetLinks, err := w.writeAssets(page)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	md := markdown.NewMarkdown(&buf)

	w.writeHeader(md, page)
	w.writeOverview(md, page)
	for _, section := range page.Sections {
		w.writeSection(md, section, assetLinks[section.Cell.Index])
	}
	w.writeFooter(md)

	if err := md.Build(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	return w.writeArtifact(w.slug(page)+".md", buf.Bytes())
}

// writeHeader writes the page title and the notebook summary table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, page *model.Page) {
	md.H1(page.Title)
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Notebook", "`" + page.NotebookPath + "`"},
			{"ML Technique", displayMLType(page.MLType)},
			{"Cells", strconv.Itoa(page.SectionCount())},
			{"Explained", strconv.Itoa(page.ExplainedCount())},
		},
	})
	md.PlainText("")

	if failed := page.FailedCount(); failed > 0 {
		md.Warningf("%d cell explanation(s) could not be generated. The affected cells are marked below.", failed)
		md.PlainText("")
	}
}

// writeOverview writes the notebook-level overview, when one was generated.
func (w *MarkdownWriter) writeOverview(md *markdown.Markdown, page *model.Page) {
	if page.Overview == nil {
		return
	}
	md.H2("Overview")
	md.PlainText("")
	if page.Overview.Succeeded() {
		md.PlainText(page.Overview.Text)
	} else {
		md.PlainText(placeholderText)
	}
	md.PlainText("")
}

// writeSection writes one cell: its source, its explanation, and its outputs.
func (w *MarkdownWriter) writeSection(md *markdown.Markdown, section model.Section, assetLinks []string) {
	cell := section.Cell
	md.H2(fmt.Sprintf("Cell %d", cell.Index+1))
	md.PlainText("")

	switch cell.Type {
	case model.CellTypeCode:
		md.CodeBlocks(markdown.SyntaxHighlightPython, cell.TrimmedSource())
	default:
		// Markdown and raw cells are already prose; embed them as-is.
		md.PlainText(cell.TrimmedSource())
	}
	md.PlainText("")

	if section.Explanation != nil {
		if section.Explanation.Succeeded() {
			md.PlainText(section.Explanation.Text)
		} else {
			md.PlainText(placeholderText)
		}
		md.PlainText("")
	}

	w.writeOutputs(md, cell, assetLinks)
}

// writeOutputs writes the cell's execution outputs: text as a fenced block,
// HTML converted to Markdown, and images as links to the copied assets.
func (w *MarkdownWriter) writeOutputs(md *markdown.Markdown, cell model.Cell, assetLinks []string) {
	var text strings.Builder
	var html []string
	for _, out := range cell.Outputs {
		if out.HTML != "" {
			html = append(html, out.HTML)
			continue
		}
		if out.Text != "" {
			text.WriteString(out.Text)
			if !strings.HasSuffix(out.Text, "\n") {
				text.WriteString("\n")
			}
		}
	}

	if s := strings.TrimSpace(text.String()); s != "" {
		md.Details("Output", "\n```text\n"+truncateOutput(s, maxOutputPreview)+"\n```\n")
		md.PlainText("")
	}

	for _, h := range html {
		if converted := htmlOutputToMarkdown(w.conv, h); converted != "" {
			md.PlainText(converted)
			md.PlainText("")
		}
	}

	for n, link := range assetLinks {
		md.PlainTextf("![Cell %d output %d](%s)", cell.Index+1, n+1, link)
		md.PlainText("")
	}
}

// writeFooter writes the page footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Generated by [autonotebook](https://github.com/praykar/autonotebook)*")
}

// displayMLType formats the detected technique for the page.
func displayMLType(t model.MLType) string {
	switch t {
	case model.MLTypeNeuralNetwork:
		return "Neural Network"
	case model.MLTypeUnknown, "":
		return "Unknown"
	default:
		return strings.ToUpper(string(t)[:1]) + string(t)[1:]
	}
}

// truncateOutput truncates output text to maxLen bytes with a marker.
func truncateOutput(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "\n[output truncated]"
}
