package bookstore

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"bookmap/internal/domain/entity"
	"bookmap/internal/repository"
)

// CreateInput represents the input parameters for registering a new bookstore.
// Optional string fields left empty are treated as absent and never persisted.
// Nil coordinates fall back to the city-center defaults.
type CreateInput struct {
	Name        string
	Address     string
	Latitude    *float64
	Longitude   *float64
	Category    string
	Phone       string
	OpenTime    string
	CloseTime   string
	ClosedDays  string
	Description string
}

// UpdateInput represents the input parameters for updating an existing entry.
// Fields with nil values will not be updated. Pointers to empty strings are
// dropped as well: an update can reshape a field but never clear it.
type UpdateInput struct {
	ID          string
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

// Service provides use cases for user-registered bookstore entries.
// It handles business logic and delegates persistence to the repository.
type Service struct {
	Repo repository.BookstoreRepository
}

// Create registers a new bookstore entry owned by userID and returns the
// namespaced identifier assigned by the store.
// Returns a ValidationError if any input field is invalid.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (string, error) {
	if userID == "" {
		return "", &entity.ValidationError{Field: "createdBy", Message: "is required"}
	}

	b := &entity.Bookstore{
		Name:        strings.TrimSpace(in.Name),
		Address:     strings.TrimSpace(in.Address),
		Latitude:    entity.FallbackLatitude,
		Longitude:   entity.FallbackLongitude,
		Category:    in.Category,
		Phone:       in.Phone,
		OpenTime:    in.OpenTime,
		CloseTime:   in.CloseTime,
		ClosedDays:  in.ClosedDays,
		Description: in.Description,
		UserAdded:   true,
		CreatedBy:   userID,
	}
	if in.Latitude != nil {
		b.Latitude = *in.Latitude
	}
	if in.Longitude != nil {
		b.Longitude = *in.Longitude
	}
	if b.Category == "" {
		b.Category = entity.DefaultCategory
	}

	if err := b.Validate(); err != nil {
		return "", err
	}

	id, err := s.Repo.Create(ctx, b)
	if err != nil {
		return "", fmt.Errorf("create bookstore: %w", err)
	}
	return id, nil
}

// Update modifies an existing user-registered entry with the provided input.
// Only non-nil, non-empty fields in the input will be written; everything else
// keeps its stored value.
// Returns ErrNotUserEntry if the ID does not name a user-registered entry.
// Returns ErrBookstoreNotFound if the entry does not exist.
// Returns a ValidationError if any updated field is invalid.
func (s *Service) Update(ctx context.Context, in UpdateInput) error {
	if !strings.HasPrefix(in.ID, entity.UserIDPrefix) {
		return ErrNotUserEntry
	}

	var changes repository.BookstoreChanges

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return &entity.ValidationError{Field: "name", Message: "cannot be empty"}
		}
		changes.Name = &name
	}
	if in.Address != nil {
		addr := strings.TrimSpace(*in.Address)
		if addr == "" {
			return &entity.ValidationError{Field: "address", Message: "cannot be empty"}
		}
		changes.Address = &addr
	}
	if in.Latitude != nil {
		if !validCoordinate(*in.Latitude, 90) {
			return &entity.ValidationError{Field: "latitude", Message: "must be between -90 and 90"}
		}
		changes.Latitude = in.Latitude
	}
	if in.Longitude != nil {
		if !validCoordinate(*in.Longitude, 180) {
			return &entity.ValidationError{Field: "longitude", Message: "must be between -180 and 180"}
		}
		changes.Longitude = in.Longitude
	}
	changes.Category = nonEmpty(in.Category)
	changes.Phone = nonEmpty(in.Phone)
	changes.OpenTime = nonEmpty(in.OpenTime)
	changes.CloseTime = nonEmpty(in.CloseTime)
	changes.ClosedDays = nonEmpty(in.ClosedDays)
	changes.Description = nonEmpty(in.Description)

	if err := s.Repo.Update(ctx, in.ID, changes); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return ErrBookstoreNotFound
		}
		return fmt.Errorf("update bookstore: %w", err)
	}
	return nil
}

// Delete removes a user-registered entry by its ID.
// Deleting an entry that does not exist is not an error.
// Returns ErrNotUserEntry if the ID does not name a user-registered entry.
func (s *Service) Delete(ctx context.Context, id string) error {
	if !strings.HasPrefix(id, entity.UserIDPrefix) {
		return ErrNotUserEntry
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete bookstore: %w", err)
	}
	return nil
}

// ListMine retrieves all entries registered by userID, most recent first.
func (s *Service) ListMine(ctx context.Context, userID string) ([]*entity.Bookstore, error) {
	if userID == "" {
		return nil, &entity.ValidationError{Field: "createdBy", Message: "is required"}
	}

	stores, err := s.Repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookstores by owner: %w", err)
	}
	return stores, nil
}

// nonEmpty returns the pointer when it carries a non-empty value, nil otherwise.
// This implements the sparse-write policy at the gateway boundary.
func nonEmpty(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	return p
}

func validCoordinate(v, bound float64) bool {
	return !math.IsNaN(v) && v >= -bound && v <= bound
}
