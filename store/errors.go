// Package store implements the catalog, account, and order stores on top of
// MongoDB collections. Each method is a single-document (or single-statement
// multi-document) operation; the store exposes no cross-collection
// transactions, and callers compose operations in an explicit order.
package store

import "errors"

var (
	// ErrNotFound is returned when the referenced document (or, for history
	// updates, the matching embedded entry) does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidID is returned when an identifier is not a valid object id.
	ErrInvalidID = errors.New("invalid object id")
)
