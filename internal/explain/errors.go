package explain

import "errors"

// Explanation client errors.
var (
	// ErrEmptyResponse is returned when the service answers 200 OK but
	// carries no generated text. Treated as permanent: retrying an empty
	// generation tends to produce another one.
	ErrEmptyResponse = errors.New("service returned no generated text")
)
