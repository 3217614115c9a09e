package model

import "strings"

// CellType identifies the kind of a notebook cell.
type CellType string

// Cell types defined by the Jupyter notebook format (nbformat v4).
// Raw cells are accepted by the parser but never explained.
const (
	// CellTypeCode is an executable code cell.
	CellTypeCode CellType = "code"

	// CellTypeMarkdown is a prose cell written in Markdown.
	CellTypeMarkdown CellType = "markdown"

	// CellTypeRaw is an unrendered raw cell. Rare in practice; preserved
	// as-is so no cell is ever dropped from the page.
	CellTypeRaw CellType = "raw"
)

// OutputKind identifies the kind of a code cell output.
type OutputKind string

// Output kinds defined by nbformat v4.
const (
	// OutputStream is stdout/stderr text produced during execution.
	OutputStream OutputKind = "stream"

	// OutputDisplayData is rich output emitted via display calls
	// (e.g., matplotlib figures).
	OutputDisplayData OutputKind = "display_data"

	// OutputExecuteResult is the value of the last expression in a cell.
	OutputExecuteResult OutputKind = "execute_result"

	// OutputError is an execution error with a traceback.
	OutputError OutputKind = "error"
)

// Asset is a binary payload embedded in a notebook output, typically a
// rendered figure. Data holds the decoded bytes exactly as they appeared
// in the source notebook; the renderer copies them to disk verbatim.
type Asset struct {
	// MIME is the media type of the payload (e.g., "image/png").
	MIME string `json:"mime"`

	// Data is the decoded binary payload. Never re-encoded or transformed.
	Data []byte `json:"-"`
}

// Ext returns the file extension for the asset's media type.
// Unknown types fall back to ".bin" so the asset is still preserved.
func (a Asset) Ext() string {
	switch a.MIME {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/svg+xml":
		return ".svg"
	default:
		return ".bin"
	}
}

// Output is a single execution output attached to a code cell.
//
// Design decision: We flatten the nbformat mime-bundle into the few fields
// the pipeline actually consumes (plain text, HTML, and a binary image)
// rather than carrying the raw bundle around. The parser is responsible for
// the flattening; everything downstream treats Output as immutable.
type Output struct {
	// Kind is the nbformat output type.
	Kind OutputKind `json:"kind"`

	// Text is the plain-text representation: stream text, the text/plain
	// entry of a mime bundle, or a joined error traceback.
	Text string `json:"text,omitempty"`

	// HTML is the text/html entry of a mime bundle, if present.
	// Stored unsanitized; the renderer sanitizes before embedding.
	HTML string `json:"html,omitempty"`

	// Image is the binary image payload of a mime bundle, if present.
	Image *Asset `json:"image,omitempty"`
}

// HasImage reports whether the output carries a binary image payload.
func (o Output) HasImage() bool {
	return o.Image != nil && len(o.Image.Data) > 0
}

// Cell is a single unit of a notebook document.
// Index records the cell's position in the source notebook and defines
// document order; nothing downstream may reorder cells.
type Cell struct {
	// Index is the zero-based position of the cell in the source notebook.
	Index int `json:"index"`

	// Type is the cell kind (code, markdown, raw).
	Type CellType `json:"type"`

	// Source is the raw cell content exactly as stored in the notebook.
	Source string `json:"source"`

	// ExecutionCount is the execution counter for code cells, if recorded.
	// Zero when absent or for non-code cells.
	ExecutionCount int `json:"execution_count,omitempty"`

	// Outputs are the execution outputs attached to a code cell,
	// in their original order.
	Outputs []Output `json:"outputs,omitempty"`
}

// TrimmedSource returns the cell source with surrounding whitespace removed.
// Used by the selector's content-length policy.
func (c Cell) TrimmedSource() string {
	return strings.TrimSpace(c.Source)
}

// Images returns the binary image assets attached to the cell's outputs,
// in output order.
func (c Cell) Images() []Asset {
	var assets []Asset
	for _, out := range c.Outputs {
		if out.HasImage() {
			assets = append(assets, *out.Image)
		}
	}
	return assets
}

// MLType is a coarse classification of the machine-learning technique a
// notebook demonstrates, detected from keyword scans of its code cells.
type MLType string

// Detected machine-learning types.
const (
	MLTypeClassification MLType = "classification"
	MLTypeRegression     MLType = "regression"
	MLTypeNeuralNetwork  MLType = "neural_network"
	MLTypeClustering     MLType = "clustering"
	MLTypeUnknown        MLType = "unknown"
)

// Notebook is a parsed notebook document: an ordered sequence of cells
// identified by its source path. Immutable once loaded.
type Notebook struct {
	// Path is the filesystem path the notebook was loaded from.
	Path string `json:"path"`

	// Cells are the notebook cells in source order.
	Cells []Cell `json:"cells"`

	// MLType is the detected machine-learning technique.
	MLType MLType `json:"ml_type"`
}

// CellCount returns the number of cells in the notebook.
func (n *Notebook) CellCount() int {
	return len(n.Cells)
}
