package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/praykar/autonotebook/internal/model"
)

// Writer defines the interface for page output.
// Implementations render an assembled page into one markup file plus
// its copied binary assets.
//
// Design decision: We use an interface so the pipeline's render step can
// drive Markdown and HTML output with the same API, and so tests can
// substitute an in-memory writer.
type Writer interface {
	// Write renders the page into the output directory.
	// Returns the path of the artifact written.
	Write(page *model.Page) (string, error)
}

// MultiWriter renders a page in multiple formats simultaneously.
// This is useful for emitting Markdown and HTML from the same run.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes via all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write renders the page with all configured Writers.
// Returns the path of the first artifact written. Stops on first error.
func (m *MultiWriter) Write(page *model.Page) (string, error) {
	var first string
	for _, w := range m.writers {
		path, err := w.Write(page)
		if first == "" {
			first = path
		}
		if err != nil {
			return first, err
		}
	}
	return first, nil
}

// baseWriter provides the output-directory handling shared by all writers.
type baseWriter struct {
	outputDir string
}

// newBaseWriter creates a baseWriter rooted at the given output directory.
func newBaseWriter(outputDir string) baseWriter {
	return baseWriter{outputDir: outputDir}
}

// slug returns the filesystem-safe base name for the page's artifacts,
// derived from the source notebook filename.
func (b baseWriter) slug(page *model.Page) string {
	return strings.TrimSuffix(filepath.Base(page.NotebookPath), ".ipynb")
}

// writeArtifact writes the rendered markup under the output directory,
// creating it if needed. All write failures are reported as ErrRender so
// callers can treat an unwritable output location uniformly.
func (b baseWriter) writeArtifact(name string, data []byte) (string, error) {
	if err := os.MkdirAll(b.outputDir, 0750); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRender, b.outputDir, err)
	}
	path := filepath.Join(b.outputDir, name)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRender, path, err)
	}
	return path, nil
}
