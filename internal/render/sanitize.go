package render

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/microcosm-cc/bluemonday"
)

// htmlPolicy strips scripts, event handlers, and other active content from
// HTML cell outputs before they are embedded anywhere. Notebook outputs are
// untrusted input: they were produced by arbitrary code.
var htmlPolicy = bluemonday.UGCPolicy()

// sanitizeHTML returns the HTML output with active content removed.
func sanitizeHTML(s string) string {
	return strings.TrimSpace(htmlPolicy.Sanitize(s))
}

// newHTMLConverter builds the converter used to turn sanitized HTML cell
// outputs (pandas tables, mostly) into Markdown.
func newHTMLConverter() *converter.Converter {
	return converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
}

// htmlOutputToMarkdown sanitizes an HTML cell output and converts it to
// Markdown. Conversion failures fall back to the sanitized HTML, which
// Markdown renderers pass through.
func htmlOutputToMarkdown(conv *converter.Converter, s string) string {
	clean := sanitizeHTML(s)
	if clean == "" {
		return ""
	}
	md, err := conv.ConvertString(clean)
	if err != nil {
		return clean
	}
	return strings.TrimSpace(md)
}
