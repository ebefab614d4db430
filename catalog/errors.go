package catalog

import "errors"

// Common errors returned by catalog operations.
var (
	// ErrUnknownResource is returned for names that are not an API collection.
	ErrUnknownResource = errors.New("unknown resource")

	// ErrNotFound is returned when a lookup by id yields no document.
	ErrNotFound = errors.New("document not found")

	// ErrNoRelation is returned when a resource has no nested collection.
	ErrNoRelation = errors.New("resource has no related collection")
)
