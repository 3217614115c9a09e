package notebook

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/praykar/autonotebook/internal/model"
)

// rawNotebook mirrors the top level of an nbformat document.
type rawNotebook struct {
	NBFormat int       `json:"nbformat"`
	Cells    []rawCell `json:"cells"`
}

// rawCell mirrors one nbformat cell. Source is either a string or an
// array of line strings; multilineText handles both.
type rawCell struct {
	CellType       string          `json:"cell_type"`
	Source         multilineText   `json:"source"`
	ExecutionCount *int            `json:"execution_count"`
	Outputs        []rawOutput     `json:"outputs"`
	Metadata       json.RawMessage `json:"metadata"`
}

// rawOutput mirrors one nbformat output entry. The fields used depend on
// OutputType: stream outputs carry Text, rich outputs carry a mime bundle
// in Data, and error outputs carry the ename/evalue/traceback triple.
type rawOutput struct {
	OutputType string                     `json:"output_type"`
	Name       string                     `json:"name"`
	Text       multilineText              `json:"text"`
	Data       map[string]json.RawMessage `json:"data"`
	EName      string                     `json:"ename"`
	EValue     string                     `json:"evalue"`
	Traceback  []string                   `json:"traceback"`
}

// multilineText decodes the nbformat convention of storing text either as
// a single string or as an array of line strings (each retaining its own
// trailing newline). Both decode to the joined text.
type multilineText string

// UnmarshalJSON implements json.Unmarshaler.
func (m *multilineText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = multilineText(s)
		return nil
	}

	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return fmt.Errorf("text is neither string nor string array: %w", err)
	}
	*m = multilineText(strings.Join(lines, ""))
	return nil
}

// Parse loads and decodes the notebook at the given path.
//
// It fails with an error wrapping ErrInvalidNotebook or ErrUnsupportedFormat
// when the document is not valid nbformat v4. On success, cell order, cell
// types, and all output payloads (including embedded images, which are
// base64-decoded back to their original bytes) are preserved exactly.
// The only side effect is reading the file.
func Parse(path string) (*model.Notebook, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided notebook path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read notebook %s: %w", path, err)
	}
	return parseBytes(path, data)
}

// parseBytes decodes a notebook document from memory. Split out from Parse
// so tests can exercise the decoder without touching the filesystem.
func parseBytes(path string, data []byte) (*model.Notebook, error) {
	var raw rawNotebook
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidNotebook, path, err)
	}

	if raw.NBFormat != 4 {
		return nil, fmt.Errorf("%w: %s has nbformat %d", ErrUnsupportedFormat, path, raw.NBFormat)
	}

	if raw.Cells == nil {
		return nil, fmt.Errorf("%w: %s has no cell list", ErrInvalidNotebook, path)
	}

	cells := make([]model.Cell, 0, len(raw.Cells))
	for i, rc := range raw.Cells {
		cell, err := convertCell(i, rc)
		if err != nil {
			return nil, fmt.Errorf("%w: %s cell %d: %v", ErrInvalidNotebook, path, i, err)
		}
		cells = append(cells, cell)
	}

	nb := &model.Notebook{
		Path:   path,
		Cells:  cells,
		MLType: detectMLType(cells),
	}
	return nb, nil
}

// convertCell maps one raw nbformat cell onto the model type.
func convertCell(index int, rc rawCell) (model.Cell, error) {
	var cellType model.CellType
	switch rc.CellType {
	case "code":
		cellType = model.CellTypeCode
	case "markdown":
		cellType = model.CellTypeMarkdown
	case "raw":
		cellType = model.CellTypeRaw
	default:
		return model.Cell{}, fmt.Errorf("unknown cell type %q", rc.CellType)
	}

	cell := model.Cell{
		Index:  index,
		Type:   cellType,
		Source: string(rc.Source),
	}
	if rc.ExecutionCount != nil {
		cell.ExecutionCount = *rc.ExecutionCount
	}

	for j, ro := range rc.Outputs {
		out, err := convertOutput(ro)
		if err != nil {
			return model.Cell{}, fmt.Errorf("output %d: %w", j, err)
		}
		cell.Outputs = append(cell.Outputs, out)
	}

	return cell, nil
}

// convertOutput maps one raw nbformat output onto the model type,
// flattening rich mime bundles to the payloads the pipeline consumes.
func convertOutput(ro rawOutput) (model.Output, error) {
	switch ro.OutputType {
	case "stream":
		return model.Output{Kind: model.OutputStream, Text: string(ro.Text)}, nil

	case "display_data", "execute_result":
		kind := model.OutputDisplayData
		if ro.OutputType == "execute_result" {
			kind = model.OutputExecuteResult
		}
		return convertMimeBundle(kind, ro.Data)

	case "error":
		text := strings.Join(ro.Traceback, "\n")
		if text == "" {
			text = ro.EName + ": " + ro.EValue
		}
		return model.Output{Kind: model.OutputError, Text: text}, nil

	default:
		return model.Output{}, fmt.Errorf("unknown output type %q", ro.OutputType)
	}
}

// imageMIMEs lists the binary media types preserved as page assets,
// in preference order when an output carries several renderings.
var imageMIMEs = []string{"image/png", "image/jpeg", "image/gif", "image/svg+xml"}

// convertMimeBundle flattens an nbformat mime bundle into an Output.
// text/plain becomes Text, text/html becomes HTML, and the first image
// entry becomes the binary asset. Base64 payloads are decoded so the
// stored bytes match what the notebook originally embedded.
func convertMimeBundle(kind model.OutputKind, data map[string]json.RawMessage) (model.Output, error) {
	out := model.Output{Kind: kind}

	if raw, ok := data["text/plain"]; ok {
		var text multilineText
		if err := json.Unmarshal(raw, &text); err != nil {
			return model.Output{}, fmt.Errorf("text/plain: %w", err)
		}
		out.Text = string(text)
	}

	if raw, ok := data["text/html"]; ok {
		var htmlText multilineText
		if err := json.Unmarshal(raw, &htmlText); err != nil {
			return model.Output{}, fmt.Errorf("text/html: %w", err)
		}
		out.HTML = string(htmlText)

		// Rich outputs often carry only an HTML rendering (e.g., DataFrame
		// tables). Derive a plain-text form so selection and prompts still
		// have something to work with.
		if out.Text == "" {
			out.Text = HTMLText(out.HTML)
		}
	}

	for _, mime := range imageMIMEs {
		raw, ok := data[mime]
		if !ok {
			continue
		}

		var encoded multilineText
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return model.Output{}, fmt.Errorf("%s: %w", mime, err)
		}

		payload, err := decodeImagePayload(mime, string(encoded))
		if err != nil {
			return model.Output{}, fmt.Errorf("%s: %w", mime, err)
		}
		out.Image = &model.Asset{MIME: mime, Data: payload}
		break
	}

	return out, nil
}

// decodeImagePayload turns an nbformat image entry back into raw bytes.
// SVG is stored as literal XML text; raster formats are base64 with the
// trailing newline nbformat appends.
func decodeImagePayload(mime, encoded string) ([]byte, error) {
	if mime == "image/svg+xml" {
		return []byte(encoded), nil
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, fmt.Errorf("invalid base64 image data: %w", err)
	}
	return decoded, nil
}
