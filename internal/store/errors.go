package store

import "errors"

// Common document-store errors.
var (
	// ErrNotFound is returned when a document or collection does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is returned when authentication fails.
	ErrUnauthorized = errors.New("unauthorized — check your store token")
	// ErrForbidden is returned when the token lacks write access.
	ErrForbidden = errors.New("forbidden — token may lack write access")
	// ErrConflict is returned when a document already exists.
	ErrConflict = errors.New("conflict — document already exists")
)
