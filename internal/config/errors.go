package config

import "errors"

// Configuration validation errors.
// These are returned by Config.Validate() and name the specific problem.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrMissingToken is returned when no inference API credential is set.
	// The credential comes from the HF_API_TOKEN environment variable
	// (optionally via a .env file).
	ErrMissingToken = errors.New("missing API token: set HF_API_TOKEN")

	// ErrNoNotebooksDir is returned when the input directory is empty.
	ErrNoNotebooksDir = errors.New("no notebooks directory specified")

	// ErrNoOutputDir is returned when the output directory is empty.
	ErrNoOutputDir = errors.New("no output directory specified")

	// ErrInvalidTimeout is returned when the request timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidMaxAttempts is returned when the retry ceiling is not
	// positive. At least one attempt is needed per request.
	ErrInvalidMaxAttempts = errors.New("invalid max attempts: must be positive")

	// ErrInvalidConcurrency is returned when a concurrency limit is not
	// positive. Zero would mean no work could ever be issued.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")
)
