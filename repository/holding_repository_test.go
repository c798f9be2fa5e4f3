package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playbook/ledger-service/domain"
	"playbook/ledger-service/domain/entities"
	"playbook/ledger-service/repository/testutil"
)

func TestHoldingRepository_Increase(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	users := NewUserRepository(testDB.DB)
	repo := NewHoldingRepository(testDB.DB)
	ctx := context.Background()

	user, err := users.Create(ctx, "collector", decimal.NewFromInt(300))
	require.NoError(t, err)

	asset := testutil.PlayerAsset("Jalen Hurts")

	t.Run("creates the position", func(t *testing.T) {
		qty, err := repo.Increase(ctx, user.ID, asset, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(3), qty)

		stored, err := repo.Quantity(ctx, user.ID, asset)
		require.NoError(t, err)
		assert.Equal(t, int64(3), stored)
	})

	t.Run("accumulates onto an existing position", func(t *testing.T) {
		qty, err := repo.Increase(ctx, user.ID, asset, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(5), qty)
	})
}

func TestHoldingRepository_Decrease(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	users := NewUserRepository(testDB.DB)
	repo := NewHoldingRepository(testDB.DB)
	ctx := context.Background()

	user, err := users.Create(ctx, "seller", decimal.NewFromInt(300))
	require.NoError(t, err)

	asset := testutil.PlayerAsset("AJ Brown")

	t.Run("partial decrease", func(t *testing.T) {
		_, err := repo.Increase(ctx, user.ID, asset, 5)
		require.NoError(t, err)

		qty, err := repo.Decrease(ctx, user.ID, asset, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(3), qty)
	})

	t.Run("insufficient holdings", func(t *testing.T) {
		_, err := repo.Decrease(ctx, user.ID, asset, 10)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInsufficientHoldings)

		// The position is untouched after a refused decrease
		qty, err := repo.Quantity(ctx, user.ID, asset)
		require.NoError(t, err)
		assert.Equal(t, int64(3), qty)
	})

	t.Run("decrease to zero prunes the row", func(t *testing.T) {
		qty, err := repo.Decrease(ctx, user.ID, asset, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(0), qty)

		holdings, err := repo.GetByUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, holdings)
	})

	t.Run("no position at all", func(t *testing.T) {
		_, err := repo.Decrease(ctx, user.ID, testutil.PlayerAsset("Nobody"), 1)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInsufficientHoldings)
	})
}

func TestHoldingRepository_Quantity(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	users := NewUserRepository(testDB.DB)
	repo := NewHoldingRepository(testDB.DB)
	ctx := context.Background()

	user, err := users.Create(ctx, "watcher", decimal.NewFromInt(300))
	require.NoError(t, err)

	t.Run("zero when the user never held the asset", func(t *testing.T) {
		qty, err := repo.Quantity(ctx, user.ID, testutil.PlayerAsset("Unheld"))
		require.NoError(t, err)
		assert.Equal(t, int64(0), qty)
	})
}

func TestHoldingRepository_GetByUser(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	users := NewUserRepository(testDB.DB)
	repo := NewHoldingRepository(testDB.DB)
	ctx := context.Background()

	user, err := users.Create(ctx, "portfolio_user", decimal.NewFromInt(300))
	require.NoError(t, err)

	t.Run("no holdings", func(t *testing.T) {
		holdings, err := repo.GetByUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, holdings)
	})

	t.Run("ordered by asset type then name", func(t *testing.T) {
		_, err := repo.Increase(ctx, user.ID, testutil.TeamFundAsset("Eagles"), 1)
		require.NoError(t, err)
		_, err = repo.Increase(ctx, user.ID, testutil.PlayerAsset("CeeDee Lamb"), 4)
		require.NoError(t, err)
		_, err = repo.Increase(ctx, user.ID, testutil.PlayerAsset("AJ Brown"), 2)
		require.NoError(t, err)

		holdings, err := repo.GetByUser(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, holdings, 3)

		assert.Equal(t, entities.AssetTypePlayer, holdings[0].AssetType)
		assert.Equal(t, "AJ Brown", holdings[0].AssetName)
		assert.Equal(t, int64(2), holdings[0].Quantity)

		assert.Equal(t, entities.AssetTypePlayer, holdings[1].AssetType)
		assert.Equal(t, "CeeDee Lamb", holdings[1].AssetName)

		assert.Equal(t, entities.AssetTypeTeamFund, holdings[2].AssetType)
		assert.Equal(t, "Eagles", holdings[2].AssetName)
	})

	t.Run("only the requested user's holdings", func(t *testing.T) {
		other, err := users.Create(ctx, "other_user", decimal.NewFromInt(300))
		require.NoError(t, err)
		_, err = repo.Increase(ctx, other.ID, testutil.PlayerAsset("Saquon Barkley"), 7)
		require.NoError(t, err)

		holdings, err := repo.GetByUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Len(t, holdings, 3)
	})
}
