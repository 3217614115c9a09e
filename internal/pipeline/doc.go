// Package pipeline orchestrates notebook processing.
//
// Processing a notebook is an ordered sequence of steps — parse, select,
// explain, assemble, render — each implementing the Step interface and
// recording its output on a shared model.Run. The Pipeline executes the
// steps in order; the BatchProcessor runs one pipeline per notebook,
// concurrently and isolated, so a notebook that fails to parse never
// affects its siblings.
//
// Design decision: Steps return an error only for failures that make the
// rest of the run meaningless (unreadable notebook, unwritable output).
// Per-cell explanation failures are recorded in the run's results and do
// not stop the pipeline, because a page with placeholders is still useful.
package pipeline
