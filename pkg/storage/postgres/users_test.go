package postgres_test

import (
	"artisan/pkg/domain"
	"artisan/pkg/storage"
	"artisan/pkg/storage/postgres"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func storeUser(t *testing.T, pg *postgres.PgSQL, u domain.User) domain.User {
	t.Helper()

	if u.PasswordHash == "" {
		u.PasswordHash = "hash"
	}
	if u.PhoneNumber == "" {
		u.PhoneNumber = "080" + uuid.NewString()[:8]
	}
	stored, err := pg.StoreUser(context.Background(), u)
	require.NoError(t, err)
	require.NotNil(t, stored)

	return *stored
}

func TestPgSQL_StoreUser(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	u := storeUser(t, pg, domain.User{
		Username:           "tunde",
		Fullname:           "tunde bakare",
		Email:              "tunde@example.com",
		PhoneNumber:        "08012345678",
		AccountType:        domain.AccountTypeArtisan,
		PasswordHash:       "secret",
		PushNotifications:  true,
		EmailNotifications: true,
	})
	require.NotEqual(t, uuid.Nil, uuid.UUID(u.ID))
	require.Equal(t, domain.StatusOffline, u.Status)
	require.Equal(t, 1, u.Tier)
	require.False(t, u.CreatedAt.IsZero())

	t.Run("duplicate phone is a conflict", func(t *testing.T) {
		_, err := pg.StoreUser(ctx, domain.User{PhoneNumber: "08012345678", PasswordHash: "x"})
		require.ErrorIs(t, err, storage.ErrConflict)

		var conflict *storage.ConflictError
		require.ErrorAs(t, err, &conflict)
		require.Equal(t, "users_phone_number_key", conflict.Constraint)
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		_, err := pg.StoreUser(ctx, domain.User{
			PhoneNumber:  "08099999999",
			Email:        "tunde@example.com",
			PasswordHash: "x",
		})
		require.ErrorIs(t, err, storage.ErrConflict)

		var conflict *storage.ConflictError
		require.ErrorAs(t, err, &conflict)
		require.Equal(t, "users_email_key", conflict.Constraint)
	})

	t.Run("lookups", func(t *testing.T) {
		byID, err := pg.UserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, "tunde bakare", byID.Fullname)
		require.Equal(t, "secret", byID.PasswordHash)

		byPhone, err := pg.UserByPhone(ctx, "08012345678")
		require.NoError(t, err)
		require.Equal(t, u.ID, byPhone.ID)

		missing, err := pg.UserByID(ctx, domain.UserID(uuid.New()))
		require.NoError(t, err)
		require.Nil(t, missing)

		many, err := pg.UsersByIDs(ctx, u.ID, domain.UserID(uuid.New()))
		require.NoError(t, err)
		require.Len(t, many, 1)
		require.Equal(t, "tunde", many[u.ID].Username)
	})
}

func TestPgSQL_UpdateUser(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	u := storeUser(t, pg, domain.User{Username: "ade"})

	bio := "I fix things"
	status := domain.StatusAvailable
	otp := "otp-hash"
	now := time.Now().UTC().Truncate(time.Second)
	updated, err := pg.UpdateUser(ctx, u.ID, storage.UserUpdates{
		Bio:          &bio,
		Status:       &status,
		OTPHash:      &otp,
		OTPCreatedAt: &now,
	})
	require.NoError(t, err)
	require.Equal(t, bio, updated.Bio)
	require.Equal(t, domain.StatusAvailable, updated.Status)
	require.Equal(t, otp, updated.OTPHash)
	require.WithinDuration(t, now, updated.OTPCreatedAt, time.Second)
	require.False(t, updated.UpdatedAt.IsZero())
	require.Equal(t, "ade", updated.Username)

	t.Run("empty otp clears it", func(t *testing.T) {
		empty := ""
		cleared, err := pg.UpdateUser(ctx, u.ID, storage.UserUpdates{OTPHash: &empty})
		require.NoError(t, err)
		require.Empty(t, cleared.OTPHash)
		require.True(t, cleared.OTPCreatedAt.IsZero())
	})

	t.Run("unknown user", func(t *testing.T) {
		missing, err := pg.UpdateUser(ctx, domain.UserID(uuid.New()), storage.UserUpdates{Bio: &bio})
		require.NoError(t, err)
		require.Nil(t, missing)
	})
}

func TestPgSQL_Providers(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	plumber := storeUser(t, pg, domain.User{
		Username: "plumb", Fullname: "ada obi", AccountType: domain.AccountTypeArtisan,
		Service: "plumber", State: "Lagos", LGA: "Ikeja", BVNVerified: true, EmailVerified: true,
	})
	painter := storeUser(t, pg, domain.User{
		Username: "paint", Fullname: "musa bello", AccountType: domain.AccountTypeArtisan,
		Service: "Painter", State: "Kano", LGA: "Nassarawa", BVNVerified: true,
	})
	storeUser(t, pg, domain.User{Username: "client", AccountType: domain.AccountTypeClient, Service: "plumber"})

	_, err := pg.StorePortfolio(ctx, domain.Portfolio{
		Code: "p1", UserID: plumber.ID, Title: "Sink", Role: "Lead", Description: "d",
		Images: []string{"portfolio/a.jpg", "portfolio/b.jpg"},
	})
	require.NoError(t, err)

	t.Run("all artisans only", func(t *testing.T) {
		got, err := pg.Providers(ctx, storage.ProviderFilter{})
		require.NoError(t, err)
		require.Len(t, got, 2)
	})

	t.Run("portfolio attached", func(t *testing.T) {
		got, err := pg.Providers(ctx, storage.ProviderFilter{ID: &plumber.ID})
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Len(t, got[0].Portfolio, 1)
		require.Equal(t, []string{"portfolio/a.jpg", "portfolio/b.jpg"}, got[0].Portfolio[0].Images)
	})

	t.Run("category is case-insensitive", func(t *testing.T) {
		got, err := pg.Providers(ctx, storage.ProviderFilter{Category: "painter"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, painter.ID, got[0].ID)
		require.NotNil(t, got[0].Portfolio)
	})

	t.Run("verified only", func(t *testing.T) {
		got, err := pg.Providers(ctx, storage.ProviderFilter{VerifiedOnly: true})
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, plumber.ID, got[0].ID)
	})

	t.Run("search term", func(t *testing.T) {
		got, err := pg.Providers(ctx, storage.ProviderFilter{Term: "KANO"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, painter.ID, got[0].ID)

		got, err = pg.Providers(ctx, storage.ProviderFilter{Term: "%"})
		require.NoError(t, err)
		require.Empty(t, got)
	})

	t.Run("exclude requester", func(t *testing.T) {
		got, err := pg.Providers(ctx, storage.ProviderFilter{ExcludeID: &plumber.ID})
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, painter.ID, got[0].ID)
	})
}
