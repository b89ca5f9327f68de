package notes

import "errors"

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("note not found")
	// ErrStorage wraps any persistence failure. The pending change has been
	// rolled back when it is returned.
	ErrStorage = errors.New("storage error")
)
