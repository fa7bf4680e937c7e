package postgres_test

import (
	"artisan/pkg/domain"
	"artisan/pkg/storage"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestPgSQL_PortfolioLifecycle(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	owner := storeUser(t, pg, domain.User{AccountType: domain.AccountTypeArtisan})

	stored, err := pg.StorePortfolio(ctx, domain.Portfolio{
		Code: "pabc", UserID: owner.ID, Title: "Kitchen", Role: "Tiler", Description: "Floor tiles",
	})
	require.NoError(t, err)
	require.Equal(t, "pabc", stored.Code)
	require.NotNil(t, stored.Images)
	require.Empty(t, stored.Images)

	_, err = pg.StorePortfolio(ctx, domain.Portfolio{Code: "pabc", UserID: owner.ID, Title: "t", Role: "r", Description: "d"})
	require.ErrorIs(t, err, storage.ErrConflict)

	got, err := pg.PortfolioByCode(ctx, "pabc")
	require.NoError(t, err)
	require.Equal(t, stored.ID, got.ID)

	title := "Kitchen floor"
	updated, err := pg.UpdatePortfolio(ctx, stored.ID, storage.PortfolioUpdates{
		Title:  &title,
		Images: []string{"portfolio/1.jpg"},
	})
	require.NoError(t, err)
	require.Equal(t, title, updated.Title)
	require.Equal(t, "Tiler", updated.Role)
	require.Equal(t, []string{"portfolio/1.jpg"}, updated.Images)

	// nil images keep what is stored
	role := "Lead tiler"
	updated, err = pg.UpdatePortfolio(ctx, stored.ID, storage.PortfolioUpdates{Role: &role})
	require.NoError(t, err)
	require.Equal(t, []string{"portfolio/1.jpg"}, updated.Images)

	list, err := pg.UserPortfolios(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	deleted, err := pg.DeletePortfolio(ctx, stored.ID)
	require.NoError(t, err)
	require.Equal(t, stored.ID, deleted.ID)

	missing, err := pg.PortfolioByCode(ctx, "pabc")
	require.NoError(t, err)
	require.Nil(t, missing)

	deleted, err = pg.DeletePortfolio(ctx, domain.PortfolioID(uuid.New()))
	require.NoError(t, err)
	require.Nil(t, deleted)

	list, err = pg.UserPortfolios(ctx, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)
}
