package notebook

import "errors"

// Parse errors. A parse failure is fatal for the affected notebook but
// never for the batch: the caller logs it and moves to the next file.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances at each failure site. This allows callers
// to use errors.Is() for programmatic error handling while still getting
// human-readable messages with file context from the wrapping.
var (
	// ErrInvalidNotebook is returned when the document is not valid
	// notebook structure: not JSON, no cell list, or malformed cells.
	ErrInvalidNotebook = errors.New("invalid notebook document")

	// ErrUnsupportedFormat is returned when the notebook's nbformat major
	// version is not 4. Older formats store cells in "worksheets" and are
	// not handled.
	ErrUnsupportedFormat = errors.New("unsupported notebook format version (only nbformat 4 is supported)")
)
