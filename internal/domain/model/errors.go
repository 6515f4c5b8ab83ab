package model

import "errors"

// Run-aborting error kinds. Every stage wraps its failure in exactly one of
// these so the caller can classify the run with errors.Is.
var (
	// ErrFetchFailure covers transport errors and non-success responses.
	ErrFetchFailure = errors.New("fetch failure")
	// ErrMalformedData covers missing or unparseable fields and broken references.
	ErrMalformedData = errors.New("malformed data")
	// ErrPersistenceFailure covers directory creation and file write errors.
	ErrPersistenceFailure = errors.New("persistence failure")
)

// ErrorKind returns a short label for err's kind, for logs and metrics.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrFetchFailure):
		return "fetch_failure"
	case errors.Is(err, ErrMalformedData):
		return "malformed_data"
	case errors.Is(err, ErrPersistenceFailure):
		return "persistence_failure"
	default:
		return "other"
	}
}
