package repository

import (
	"context"

	"bookmap/internal/domain/entity"
)

// BookstoreChanges is a partial update against a stored user-submitted entry.
// Nil pointers mean "leave the column untouched". The gateway layer additionally
// drops empty-string values before they reach the repository, so an update can
// never clear a column to empty (sparse-write policy).
type BookstoreChanges struct {
	Name        *string
	Address     *string
	Latitude    *float64
	Longitude   *float64
	Category    *string
	Phone       *string
	OpenTime    *string
	CloseTime   *string
	ClosedDays  *string
	Description *string
}

// BookstoreRepository manages user-submitted bookstore entries.
// Externally-sourced entries never pass through this interface; they are
// ephemeral and rebuilt from the public directory on every fetch.
type BookstoreRepository interface {
	// Create inserts a new entry and returns the store-assigned identifier.
	// The caller is responsible for sparse-write cleaning; the repository
	// writes exactly the fields it is given.
	Create(ctx context.Context, b *entity.Bookstore) (string, error)

	// ListAll returns every user-submitted entry ordered by creation time,
	// most recent first.
	ListAll(ctx context.Context) ([]*entity.Bookstore, error)

	// ListByOwner returns entries whose owner matches userID, ordered by
	// creation time descending. Entries without a creation timestamp sort
	// as equal (stable order preserved).
	ListByOwner(ctx context.Context, userID string) ([]*entity.Bookstore, error)

	// Update applies a partial change set to the entry with the given ID.
	// An empty change set is a no-op. Returns entity.ErrNotFound if no row
	// matches.
	Update(ctx context.Context, id string, changes BookstoreChanges) error

	// Delete removes the entry with the given ID. Deleting a nonexistent ID
	// is not an error.
	Delete(ctx context.Context, id string) error
}
