package jobs

import "errors"

var (
	// ErrNotFound indicates the requested job does not exist.
	ErrNotFound = errors.New("job not found")
	// ErrInvalidInput indicates a rejected payload.
	ErrInvalidInput = errors.New("invalid input")
)
