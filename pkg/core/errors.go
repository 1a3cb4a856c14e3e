package core

import "errors"

// Common errors.
var (
	// ErrInvalidArgument is returned when a generator or loader is configured with values
	// outside their accepted range.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrKeySpaceExhausted is returned when the requested number of distinct values cannot
	// be drawn from the configured alphabet and length.
	ErrKeySpaceExhausted = errors.New("key space exhausted")

	// ErrMalformedInput is returned when a dataset or benchmark file does not match its format.
	ErrMalformedInput = errors.New("malformed input")
)
