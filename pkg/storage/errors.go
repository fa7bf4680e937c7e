package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyInTx is returned by Begin and Ping on a transactional handle.
	ErrAlreadyInTx = errors.New("already in tx")
	// ErrNotInTx is returned by Commit and Rollback outside a transaction.
	ErrNotInTx = errors.New("not in tx")
	// ErrConflict matches every *ConflictError.
	ErrConflict = errors.New("conflict")
)

// ConflictError is returned when a write hits a unique constraint, such as a
// phone number, e-mail or portfolio code that is already taken.
type ConflictError struct {
	// Constraint is the violated constraint, e.g. "users_email_key". It may
	// be empty when the backend does not report it.
	Constraint string
}

func (e *ConflictError) Error() string {
	if e.Constraint == "" {
		return ErrConflict.Error()
	}

	return fmt.Sprintf("conflict on %s", e.Constraint)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }
