package services

import (
	"errors"
	"fmt"
)

// PersistenceError reports a failed call to the persistence backend. The
// store's cache is left in its last known good state when one is returned.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsPersistence reports whether err is (or wraps) a *PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}

func persistenceError(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}
