package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no bookstore matches the requested ID.
	ErrNotFound = errors.New("bookstore not found")

	// ErrInvalidInput marks a request that failed domain validation.
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError reports which field of a submission was rejected and why.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}
