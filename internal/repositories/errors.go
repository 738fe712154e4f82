package repositories

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when an insert violates a unique constraint
	// outside the designated upsert paths.
	ErrDuplicate = errors.New("duplicate record")
)

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// NotFound wraps ErrNotFound with the entity name for log context.
func NotFound(entity string) error {
	return fmt.Errorf("%s: %w", entity, ErrNotFound)
}

// Duplicate wraps ErrDuplicate with the violated field for log context.
func Duplicate(field string) error {
	return fmt.Errorf("%s: %w", field, ErrDuplicate)
}
