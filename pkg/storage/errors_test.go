package storage_test

import (
	"artisan/pkg/storage"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConflictError(t *testing.T) {
	err := fmt.Errorf("could not store user: %w", &storage.ConflictError{Constraint: "users_email_key"})

	require.ErrorIs(t, err, storage.ErrConflict)
	require.NotErrorIs(t, err, storage.ErrNotInTx)
	require.EqualError(t, err, "could not store user: conflict on users_email_key")

	var conflict *storage.ConflictError
	require.True(t, errors.As(err, &conflict))
	require.Equal(t, "users_email_key", conflict.Constraint)

	require.EqualError(t, &storage.ConflictError{}, "conflict")
}
