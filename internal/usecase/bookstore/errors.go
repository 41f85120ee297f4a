// Package bookstore provides use cases for managing user-registered bookstore
// entries. It implements business logic for creating, updating, deleting, and
// listing entries, including validation and sparse-write cleaning before
// persistence.
package bookstore

import "errors"

// Sentinel errors for bookstore use case operations.
var (
	// ErrBookstoreNotFound indicates that the requested entry was not found.
	// This error is typically returned when attempting to update an entry
	// that does not exist in the repository.
	ErrBookstoreNotFound = errors.New("bookstore not found")

	// ErrNotUserEntry indicates that the target is not a user-registered
	// entry. Records sourced from the public directory are read-only and
	// cannot be modified or deleted.
	ErrNotUserEntry = errors.New("not a user-registered bookstore")
)
