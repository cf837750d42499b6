// Package storage defines the persistence contract for the food court
// backend together with the error taxonomy every implementation follows.
package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a lookup or update targets a record
	// that does not exist. Callers test with errors.Is.
	ErrNotFound = errors.New("storage: not found")

	// ErrConflict is returned when a write violates a uniqueness or
	// foreign key constraint.
	ErrConflict = errors.New("storage: constraint violation")

	// ErrEmptyCart is returned by Checkout when the user's cart holds no
	// rows. No order is created in that case.
	ErrEmptyCart = errors.New("storage: cart is empty")
)

// Error wraps a backend failure with the operation and entity it hit.
// It unwraps to the underlying error so sentinel checks keep working.
type Error struct {
	Op     string
	Entity string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Entity, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// WrapError annotates err with op and entity. Sentinels pass through
// untouched so errors.Is(err, ErrNotFound) stays cheap for callers.
func WrapError(op, entity string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) || errors.Is(err, ErrEmptyCart) {
		return err
	}
	return &Error{Op: op, Entity: entity, Err: err}
}
