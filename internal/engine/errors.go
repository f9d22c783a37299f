package engine

import "errors"

// Errors returned by session operations.
var (
	// ErrNoPath indicates a load or save was requested without a file path.
	ErrNoPath = errors.New("no file path")
)
