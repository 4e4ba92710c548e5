package profile

import (
	"errors"
	"fmt"
)

// ErrImmutableProfile is returned on any attempt to overwrite or delete a
// preset profile by name.
var ErrImmutableProfile = errors.New("preset profiles are immutable")

// ErrNotFound is returned when a referenced profile does not exist.
// GetActiveProfile never returns it; it self-heals to the balanced preset.
var ErrNotFound = errors.New("profile not found")

// PersistenceError wraps a repository failure. Unlike collaborator failures
// in the scoring path, these are fatal to the enclosing operation.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
