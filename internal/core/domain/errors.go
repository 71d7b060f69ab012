package domain

import (
	"errors"
	"fmt"
)

var (
	ErrFutureDate       = errors.New("cannot complete a tracker on a future date")
	ErrTrackerNotFound  = errors.New("tracker not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrDuplicateTitle   = errors.New("category title already exists")
)

// PersistenceError wraps any failure reported by the Persistent Store.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// WrapPersistence returns err unchanged when it is nil or already a domain
// error the caller can act on, and a *PersistenceError otherwise.
func WrapPersistence(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrTrackerNotFound) ||
		errors.Is(err, ErrCategoryNotFound) ||
		errors.Is(err, ErrDuplicateTitle) {
		return err
	}
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}
