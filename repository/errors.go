package repository

import "errors"

var (
	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict means an optimistic version check failed; the caller should
	// re-read and retry.
	ErrConflict = errors.New("concurrent modification conflict")
	// ErrStore wraps any underlying storage failure, including timeouts.
	ErrStore = errors.New("store unavailable")
)
