package postgres_test

import (
	"artisan/pkg/domain"
	"artisan/pkg/storage"
	"artisan/pkg/storage/postgres"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func phoneExists(t *testing.T, pg *postgres.PgSQL, phone string) bool {
	t.Helper()
	u, err := pg.UserByPhone(context.Background(), phone)
	require.NoError(t, err)

	return u != nil
}

func TestPgSQL_Begin(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	tx, err := pg.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	_, err = tx.(*postgres.PgSQL).Begin(ctx)
	require.ErrorIs(t, err, storage.ErrAlreadyInTx)
	require.ErrorIs(t, tx.(*postgres.PgSQL).Ping(ctx), storage.ErrAlreadyInTx)
}

func TestPgSQL_CommitAndRollbackOutsideTx(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)

	require.ErrorIs(t, pg.Commit(), storage.ErrNotInTx)
	require.ErrorIs(t, pg.Rollback(), storage.ErrNotInTx)
}

func TestPgSQL_Commit(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	tx, err := pg.Begin(ctx)
	require.NoError(t, err)
	_, err = tx.StoreUser(ctx, domain.User{PhoneNumber: "08011111111", PasswordHash: "hash"})
	require.NoError(t, err)

	// invisible to other connections until commit
	require.False(t, phoneExists(t, pg, "08011111111"))
	require.NoError(t, tx.Commit())
	require.True(t, phoneExists(t, pg, "08011111111"))
}

func TestPgSQL_Rollback(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	tx, err := pg.Begin(ctx)
	require.NoError(t, err)
	_, err = tx.StoreUser(ctx, domain.User{PhoneNumber: "08022222222", PasswordHash: "hash"})
	require.NoError(t, err)

	require.NoError(t, tx.Rollback())
	require.False(t, phoneExists(t, pg, "08022222222"))
}

func TestPgSQL_WithTx(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	err := pg.WithTx(ctx, func(tx storage.AllStorage) error {
		_, err := tx.StoreUser(ctx, domain.User{PhoneNumber: "08033333333", PasswordHash: "hash"})

		return err
	})
	require.NoError(t, err)
	require.True(t, phoneExists(t, pg, "08033333333"))

	boom := errors.New("boom")
	err = pg.WithTx(ctx, func(tx storage.AllStorage) error {
		_, err := tx.StoreUser(ctx, domain.User{PhoneNumber: "08044444444", PasswordHash: "hash"})
		require.NoError(t, err)

		return boom
	})
	require.ErrorIs(t, err, boom)
	require.False(t, phoneExists(t, pg, "08044444444"))
}

func TestPgSQL_WithTx_RollsBackOnPanic(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	require.Panics(t, func() {
		_ = pg.WithTx(ctx, func(tx storage.AllStorage) error {
			_, err := tx.StoreUser(ctx, domain.User{PhoneNumber: "08055555555", PasswordHash: "hash"})
			require.NoError(t, err)

			panic("boom")
		})
	})
	require.False(t, phoneExists(t, pg, "08055555555"))
}

func TestPgSQL_WithTx_Conflict(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	storeUser(t, pg, domain.User{PhoneNumber: "08066666666", Email: "taken@example.com"})

	err := pg.WithTx(ctx, func(tx storage.AllStorage) error {
		_, err := tx.StoreUser(ctx, domain.User{PhoneNumber: "08077777777", Email: "taken@example.com", PasswordHash: "hash"})

		return err
	})
	require.ErrorIs(t, err, storage.ErrConflict)
	require.False(t, phoneExists(t, pg, "08077777777"))
}
