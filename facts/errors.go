package facts

import "errors"

var (
	// ErrNoJSONObject indicates no brace-delimited span was found in the
	// model output.
	ErrNoJSONObject = errors.New("no JSON object found in response")

	// ErrDocumentNotFound indicates extraction was requested for an unknown
	// document.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrInvalidMaxAttempts indicates retry was configured with a
	// non-positive attempt count.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
)
