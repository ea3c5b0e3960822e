package repository

import (
	"context"
	"testing"

	"github.com/rocketscienceinc/reversi-backend/internal/apperror"
	"github.com/rocketscienceinc/reversi-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGameRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create then GetByID returns the game", func(t *testing.T) {
		// Given: an empty repository
		gameRepo := NewMemoryGameRepository()
		game := entity.NewGame("g1")

		// When: a game is created
		require.NoError(t, gameRepo.Create(ctx, game))

		// Then: it is returned by id
		stored, err := gameRepo.GetByID(ctx, "g1")
		require.NoError(t, err)
		assert.Equal(t, game, stored)
	})

	t.Run("Create rejects a duplicate id", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository()
		require.NoError(t, gameRepo.Create(ctx, entity.NewGame("g1")))

		err := gameRepo.Create(ctx, entity.NewGame("g1"))

		require.ErrorIs(t, err, ErrGameExists)
	})

	t.Run("Unknown id is not found", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository()

		game, err := gameRepo.GetByID(ctx, "missing")

		require.ErrorIs(t, err, apperror.ErrNotFound)
		assert.Nil(t, game)
	})

	t.Run("Stored games are not aliased by callers", func(t *testing.T) {
		// Given: a stored game
		gameRepo := NewMemoryGameRepository()
		game := entity.NewGame("g1")
		require.NoError(t, gameRepo.Create(ctx, game))

		// When: both the original and a loaded copy are mutated without saving
		game.Board[0][0] = entity.ColorA
		loaded, err := gameRepo.GetByID(ctx, "g1")
		require.NoError(t, err)
		loaded.Moves = 9

		// Then: the stored game is unchanged
		again, err := gameRepo.GetByID(ctx, "g1")
		require.NoError(t, err)
		assert.Equal(t, entity.NewGame("g1"), again)
	})

	t.Run("CreateOrUpdate overwrites", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository()
		game := entity.NewGame("g1")
		require.NoError(t, gameRepo.Create(ctx, game))

		game.Moves = 3
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		stored, err := gameRepo.GetByID(ctx, "g1")
		require.NoError(t, err)
		assert.Equal(t, 3, stored.Moves)
	})
}
