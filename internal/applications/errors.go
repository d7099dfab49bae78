package applications

import "errors"

var (
	// ErrNotFound indicates the requested application does not exist.
	ErrNotFound = errors.New("application not found")
	// ErrInvalidInput indicates a rejected payload.
	ErrInvalidInput = errors.New("invalid input")
	// ErrJobNotFound indicates the referenced job does not exist.
	ErrJobNotFound = errors.New("referenced job not found")
)
