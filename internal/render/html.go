package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/praykar/autonotebook/internal/model"
)

// HTMLWriter outputs pages as standalone HTML documents.
//
// Design decision: We use html/template rather than string concatenation
// so cell sources and explanation text are contextually escaped. HTML cell
// outputs are the one deliberate exception: they are sanitized with
// bluemonday and then embedded unescaped, because escaping them would
// destroy pandas tables and similar rich outputs.
type HTMLWriter struct {
	baseWriter
	tmpl *template.Template
}

// NewHTMLWriter creates an HTMLWriter rooted at the output directory.
func NewHTMLWriter(outputDir string) *HTMLWriter {
	return &HTMLWriter{
		baseWriter: newBaseWriter(outputDir),
		tmpl:       template.Must(template.New("page").Parse(pageTemplate)),
	}
}

// Write renders the page as "<notebook>.html" plus copied assets.
func (w *HTMLWriter) Write(page *model.Page) (string, error) {
	if page == nil {
		return "", ErrNilPage
	}

	assetLinks, err := w.writeAssets(page)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := w.tmpl.Execute(&buf, newPageView(page, assetLinks)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	return w.writeArtifact(w.slug(page)+".html", buf.Bytes())
}

// pageView is the template data for one page.
type pageView struct {
	Title          string
	NotebookPath   string
	MLType         string
	CellCount      int
	ExplainedCount int
	FailedCount    int
	HasOverview    bool
	Overview       string
	OverviewFailed bool
	Sections       []sectionView
}

// sectionView is the template data for one cell section.
type sectionView struct {
	Number         int
	IsCode         bool
	Source         string
	HasExplanation bool
	Explanation    string
	Failed         bool
	TextOutput     string
	HTMLOutputs    []template.HTML
	AssetLinks     []string
}

func newPageView(page *model.Page, assetLinks map[int][]string) pageView {
	view := pageView{
		Title:          page.Title,
		NotebookPath:   page.NotebookPath,
		MLType:         displayMLType(page.MLType),
		CellCount:      page.SectionCount(),
		ExplainedCount: page.ExplainedCount(),
		FailedCount:    page.FailedCount(),
	}
	if page.Overview != nil {
		view.HasOverview = true
		view.Overview = page.Overview.Text
		view.OverviewFailed = !page.Overview.Succeeded()
	}
	for _, section := range page.Sections {
		view.Sections = append(view.Sections, newSectionView(section, assetLinks[section.Cell.Index]))
	}
	return view
}

func newSectionView(section model.Section, assetLinks []string) sectionView {
	cell := section.Cell
	sv := sectionView{
		Number:     cell.Index + 1,
		IsCode:     cell.Type == model.CellTypeCode,
		Source:     cell.TrimmedSource(),
		AssetLinks: assetLinks,
	}
	if section.Explanation != nil {
		sv.HasExplanation = true
		sv.Explanation = section.Explanation.Text
		sv.Failed = !section.Explanation.Succeeded()
	}

	var text strings.Builder
	for _, out := range cell.Outputs {
		if out.HTML != "" {
			if clean := sanitizeHTML(out.HTML); clean != "" {
				sv.HTMLOutputs = append(sv.HTMLOutputs, template.HTML(clean)) //nolint:gosec // sanitized above
			}
			continue
		}
		if out.Text != "" {
			text.WriteString(out.Text)
			if !strings.HasSuffix(out.Text, "\n") {
				text.WriteString("\n")
			}
		}
	}
	sv.TextOutput = truncateOutput(strings.TrimSpace(text.String()), maxOutputPreview)
	return sv
}

// pageTemplate is the standalone HTML page. Styling is kept inline so the
// output directory has no extra files to serve.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 56rem; margin: 2rem auto; padding: 0 1rem; color: #1f2328; }
pre { background: #f6f8fa; padding: 1rem; overflow-x: auto; border-radius: 6px; }
table { border-collapse: collapse; }
td, th { border: 1px solid #d1d9e0; padding: 0.3rem 0.6rem; }
.meta { color: #59636e; }
.explanation { border-left: 4px solid #0969da; padding-left: 1rem; }
.unavailable { border-left: 4px solid #d1242f; padding-left: 1rem; color: #59636e; font-style: italic; }
img { max-width: 100%; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="meta">Notebook: <code>{{.NotebookPath}}</code> · Technique: {{.MLType}} · Cells: {{.CellCount}} · Explained: {{.ExplainedCount}}{{if .FailedCount}} · Failed: {{.FailedCount}}{{end}}</p>
{{if .HasOverview}}
<h2>Overview</h2>
{{if .OverviewFailed}}<p class="unavailable">Explanation unavailable: the language model could not be reached.</p>{{else}}<p class="explanation">{{.Overview}}</p>{{end}}
{{end}}
{{range .Sections}}
<h2>Cell {{.Number}}</h2>
{{if .IsCode}}<pre><code>{{.Source}}</code></pre>{{else}}<p>{{.Source}}</p>{{end}}
{{if .HasExplanation}}
{{if .Failed}}<p class="unavailable">Explanation unavailable: the language model could not be reached for this cell.</p>{{else}}<p class="explanation">{{.Explanation}}</p>{{end}}
{{end}}
{{if .TextOutput}}<details><summary>Output</summary><pre>{{.TextOutput}}</pre></details>{{end}}
{{range .HTMLOutputs}}{{.}}
{{end}}
{{range .AssetLinks}}<p><img src="{{.}}" alt="cell output"></p>
{{end}}
{{end}}
<hr>
<p class="meta">Generated by autonotebook</p>
</body>
</html>
`
