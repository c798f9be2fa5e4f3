package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playbook/ledger-service/domain/entities"
	"playbook/ledger-service/repository/testutil"
)

func TestGameRepository_Create(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewGameRepository(testDB.DB)
	ctx := context.Background()

	game := testutil.CreateTestGame("Eagles", "Cowboys")
	err := repo.Create(ctx, game)
	require.NoError(t, err)

	assert.Positive(t, game.ID)
	assert.Equal(t, entities.GameStatusScheduled, game.Status)
	assert.False(t, game.CreatedAt.IsZero())
	assert.False(t, game.UpdatedAt.IsZero())
}

func TestGameRepository_GetByID(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewGameRepository(testDB.DB)
	ctx := context.Background()

	t.Run("game not found", func(t *testing.T) {
		game, err := repo.GetByID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, game)
	})

	t.Run("lines survive the round trip", func(t *testing.T) {
		created := testutil.CreateTestGame("Chiefs", "Bills")
		require.NoError(t, repo.Create(ctx, created))

		game, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, game)

		assert.Equal(t, "Chiefs", game.HomeTeam)
		assert.Equal(t, "Bills", game.AwayTeam)
		assert.True(t, game.ScheduledAt.Equal(created.ScheduledAt), "scheduled_at = %s", game.ScheduledAt)
		assert.True(t, game.HomeOdds.Equal(created.HomeOdds), "home odds = %s", game.HomeOdds)
		assert.True(t, game.AwayOdds.Equal(created.AwayOdds), "away odds = %s", game.AwayOdds)
		assert.True(t, game.Spread.Equal(created.Spread), "spread = %s", game.Spread)
		assert.True(t, game.TotalLine.Equal(created.TotalLine), "total line = %s", game.TotalLine)
		assert.Equal(t, entities.GameStatusScheduled, game.Status)
	})
}

func TestGameRepository_ListByStatus(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewGameRepository(testDB.DB)
	ctx := context.Background()

	kickoff := time.Now().Add(24 * time.Hour).Truncate(time.Second)

	early := testutil.CreateTestGameStartingAt("Eagles", "Cowboys", kickoff)
	late := testutil.CreateTestGameStartingAt("Chiefs", "Bills", kickoff.Add(3*time.Hour))
	done := testutil.CreateTestGameStartingAt("Ravens", "Bengals", kickoff.Add(6*time.Hour))

	require.NoError(t, repo.Create(ctx, late))
	require.NoError(t, repo.Create(ctx, early))
	require.NoError(t, repo.Create(ctx, done))

	settled, err := repo.MarkCompleted(ctx, done.ID, 31, 17)
	require.NoError(t, err)
	require.True(t, settled)

	t.Run("scheduled games in kickoff order", func(t *testing.T) {
		games, err := repo.ListByStatus(ctx, entities.GameStatusScheduled)
		require.NoError(t, err)
		require.Len(t, games, 2)

		assert.Equal(t, early.ID, games[0].ID)
		assert.Equal(t, late.ID, games[1].ID)
	})

	t.Run("completed games", func(t *testing.T) {
		games, err := repo.ListByStatus(ctx, entities.GameStatusCompleted)
		require.NoError(t, err)
		require.Len(t, games, 1)

		assert.Equal(t, done.ID, games[0].ID)
	})
}

func TestGameRepository_MarkCompleted(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewGameRepository(testDB.DB)
	ctx := context.Background()

	t.Run("first settlement wins", func(t *testing.T) {
		game := testutil.CreateTestGame("Eagles", "Giants")
		require.NoError(t, repo.Create(ctx, game))

		ok, err := repo.MarkCompleted(ctx, game.ID, 27, 24)
		require.NoError(t, err)
		assert.True(t, ok)

		stored, err := repo.GetByID(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.GameStatusCompleted, stored.Status)
		assert.Equal(t, 27, stored.HomeScore)
		assert.Equal(t, 24, stored.AwayScore)
	})

	t.Run("second attempt is a no-op", func(t *testing.T) {
		game := testutil.CreateTestGame("Jets", "Patriots")
		require.NoError(t, repo.Create(ctx, game))

		ok, err := repo.MarkCompleted(ctx, game.ID, 14, 10)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = repo.MarkCompleted(ctx, game.ID, 99, 0)
		require.NoError(t, err)
		assert.False(t, ok)

		// The first result stands
		stored, err := repo.GetByID(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, 14, stored.HomeScore)
		assert.Equal(t, 10, stored.AwayScore)
	})

	t.Run("unknown game", func(t *testing.T) {
		ok, err := repo.MarkCompleted(ctx, 999999, 7, 3)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
