package render

import "errors"

var (
	// ErrRender is returned when a page artifact or its assets cannot be
	// written to the output directory.
	ErrRender = errors.New("render: cannot write output")

	// ErrNilPage is returned when a writer receives a nil page.
	ErrNilPage = errors.New("render: nil page")
)
