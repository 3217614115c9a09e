// Package render writes assembled pages to the output directory.
//
// This package contains writers for different markup formats:
//   - MarkdownWriter: Markdown pages built with the nao1215/markdown library
//   - HTMLWriter: standalone HTML pages built with html/template
//
// Design decision: We separate rendering from page data structures (which
// are in the model package) so new formats can be added without touching
// the pipeline. Writers implement the Writer interface and share the asset
// copying logic, so a page renders the same set of image files regardless
// of format.
//
// Rendering is idempotent: the same page always produces byte-identical
// artifacts and stable asset filenames, so re-running the tool over an
// unchanged notebook never dirties the output directory.
package render
