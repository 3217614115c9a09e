package model

import "time"

// Run is the per-notebook processing state threaded through the pipeline.
// Each step reads what earlier steps produced and records its own output
// on the Run: the parser fills Notebook, the selector fills Requests, the
// explanation step fills Results, the assembler fills Page, and the
// renderer fills ArtifactPath.
//
// Design decision: A single accumulating struct (rather than passing
// step-specific values between functions) mirrors how the steps are wired:
// the pipeline executes an ordered list of steps that all share one unit of
// state, which keeps step signatures uniform and lets the orchestrator log
// and recover uniformly.
type Run struct {
	// NotebookPath is the source notebook this run processes.
	NotebookPath string `json:"notebook_path"`

	// StartedAt is when the run was created.
	StartedAt time.Time `json:"started_at"`

	// Notebook is the parsed document. Nil until the parse step completes.
	Notebook *Notebook `json:"notebook,omitempty"`

	// Requests are the explanation requests chosen by the selector.
	Requests []ExplanationRequest `json:"requests,omitempty"`

	// Results maps cell index to the terminal explanation result.
	// Populated by the explanation step after all calls have joined.
	Results map[int]ExplanationResult `json:"results,omitempty"`

	// Page is the assembled document. Nil until the assemble step completes.
	Page *Page `json:"page,omitempty"`

	// ArtifactPath is the rendered markup file written by the renderer.
	ArtifactPath string `json:"artifact_path,omitempty"`

	// PerformedSteps records the names of steps that executed, in order.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// Error is the fatal error that stopped this run, if any.
	// Per-cell explanation failures are not fatal and live in Results.
	Error error `json:"-"`

	// ErrorMessage is the string form of Error for serialization.
	ErrorMessage string `json:"error_message,omitempty"`
}

// NewRun creates a Run for the given notebook path.
func NewRun(notebookPath string) *Run {
	return &Run{
		NotebookPath: notebookPath,
		StartedAt:    time.Now(),
		Results:      make(map[int]ExplanationResult),
	}
}

// Failed reports whether the run stopped with a fatal error.
func (r *Run) Failed() bool {
	return r.Error != nil
}
