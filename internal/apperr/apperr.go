// Package apperr holds the error kinds shared by the ledger and catalog services.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an id does not match any stored document.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument is returned for malformed input such as an empty patch or month 13.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrPersistence is returned when the underlying store fails.
	ErrPersistence = errors.New("persistence error")
)

// NotFound wraps ErrNotFound with the kind of thing that was missing.
func NotFound(what string) error {
	return fmt.Errorf("%s %w", what, ErrNotFound)
}

// Invalid wraps ErrInvalidArgument with a formatted message.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// Persistence wraps a store failure for op. NotFound errors pass through untouched
// so callers can still tell an unknown id from a broken store.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrPersistence) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}
