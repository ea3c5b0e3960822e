package entity

import (
	"encoding/json"
	"testing"

	"github.com/rocketscienceinc/reversi-backend/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_GetSet(t *testing.T) {
	t.Run("Set then Get returns the stored color", func(t *testing.T) {
		// Given: an empty board
		var board Board

		// When: placing a disc
		require.NoError(t, board.Set(7, 0, ColorB))

		// Then: the cell reads back the same color
		color, err := board.Get(7, 0)
		require.NoError(t, err)
		assert.Equal(t, ColorB, color)
	})

	t.Run("Out of range coordinates are rejected", func(t *testing.T) {
		var board Board

		for _, pos := range [][2]int{{-1, 0}, {0, -1}, {8, 0}, {0, 8}, {100, 100}} {
			// When: reading and writing outside the grid
			_, getErr := board.Get(pos[0], pos[1])
			setErr := board.Set(pos[0], pos[1], ColorA)

			// Then: both fail with ErrOutOfRange
			assert.ErrorIs(t, getErr, apperror.ErrOutOfRange)
			assert.ErrorIs(t, setErr, apperror.ErrOutOfRange)
		}

		assert.Equal(t, Size*Size, board.CountOf(Empty))
	})
}

func TestBoard_CountOfAndIsFull(t *testing.T) {
	t.Run("Counts discs and empties", func(t *testing.T) {
		// Given: the starting board
		board := NewBoard()

		// Then: two of each color and 60 empties
		assert.Equal(t, 2, board.CountOf(ColorA))
		assert.Equal(t, 2, board.CountOf(ColorB))
		assert.Equal(t, 60, board.CountOf(Empty))
		assert.False(t, board.IsFull())
	})

	t.Run("A board without empties is full", func(t *testing.T) {
		// Given: a board filled with A
		var board Board
		for r := range Size {
			for c := range Size {
				board[r][c] = ColorA
			}
		}

		// Then: it is full
		assert.True(t, board.IsFull())
		assert.Equal(t, 64, board.CountOf(ColorA))
	})
}

func TestColor(t *testing.T) {
	t.Run("Opponent swaps players", func(t *testing.T) {
		assert.Equal(t, ColorB, ColorA.Opponent())
		assert.Equal(t, ColorA, ColorB.Opponent())
		assert.Equal(t, Empty, Empty.Opponent())
	})

	t.Run("ParseColor accepts only A and B", func(t *testing.T) {
		color, err := ParseColor("B")
		require.NoError(t, err)
		assert.Equal(t, ColorB, color)

		for _, raw := range []string{"", "a", "C", "black"} {
			_, err := ParseColor(raw)
			assert.ErrorIs(t, err, apperror.ErrInvalidColor, raw)
		}
	})

	t.Run("Empty is encoded as null", func(t *testing.T) {
		// Given: a row with an empty cell
		row := []Color{ColorA, Empty, ColorB}

		// When: encoding it
		data, err := json.Marshal(row)

		// Then: the empty cell is null
		require.NoError(t, err)
		assert.JSONEq(t, `["A", null, "B"]`, string(data))
	})

	t.Run("Decoding restores null as Empty and rejects unknown colors", func(t *testing.T) {
		var row []Color
		require.NoError(t, json.Unmarshal([]byte(`["B", null, "A"]`), &row))
		assert.Equal(t, []Color{ColorB, Empty, ColorA}, row)

		err := json.Unmarshal([]byte(`["X"]`), &row)
		assert.ErrorIs(t, err, apperror.ErrInvalidColor)
	})
}

func TestPosition_JSON(t *testing.T) {
	t.Run("Position is encoded as a pair", func(t *testing.T) {
		data, err := json.Marshal([]Position{{Row: 2, Col: 3}})
		require.NoError(t, err)
		assert.JSONEq(t, `[[2, 3]]`, string(data))

		var decoded []Position
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, []Position{{Row: 2, Col: 3}}, decoded)
	})
}

func TestGame_JSONRoundTrip(t *testing.T) {
	t.Run("A stored game decodes to the same value", func(t *testing.T) {
		// Given: a game in progress
		game := NewGame("g1")
		game.Board[2][3] = ColorA
		game.Board[3][3] = ColorA
		game.CurrentPlayer = ColorB
		game.Moves = 1

		// When: encoding and decoding it
		data, err := json.Marshal(game)
		require.NoError(t, err)

		var decoded Game
		require.NoError(t, json.Unmarshal(data, &decoded))

		// Then: nothing is lost
		assert.Equal(t, *game, decoded)
	})
}
