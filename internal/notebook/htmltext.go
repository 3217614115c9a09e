package notebook

import (
	"strings"

	"golang.org/x/net/html"
)

// HTMLText extracts the visible text of an HTML fragment.
//
// Design decision: We use golang.org/x/net/html for parsing rather than
// regex because it correctly handles the malformed markup that notebook
// libraries occasionally emit, and a proper tree walk is more maintainable
// than stripping tags with patterns.
//
// Script and style contents are skipped; consecutive whitespace collapses
// to single spaces. If the fragment cannot be parsed at all, the raw input
// is returned so the caller never loses content.
func HTMLText(fragment string) string {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(sb.String()), " ")
}
