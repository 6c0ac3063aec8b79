package documents

import "errors"

var (
	ErrNotFound     = errors.New("document not found")
	ErrInvalidInput = errors.New("invalid input")

	// ErrStatusConflict is returned by conditional status updates when the
	// document is not in any of the expected source states, e.g. a second
	// concurrent generate call observing the in-flight processing state.
	ErrStatusConflict = errors.New("document status conflict")
)
