package reversi

import (
	"encoding/json"
	"testing"

	"github.com/rocketscienceinc/reversi-backend/internal/apperror"
	"github.com/rocketscienceinc/reversi-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nearlyFullGame - returns a game with only (7,0) empty where A playing (7,0) flips exactly (7,1).
// aFill of the 59 free-form cells are A, the rest B.
func nearlyFullGame(aFill int) *entity.Game {
	game := entity.NewGame("full")

	fixed := map[entity.Position]entity.Color{
		{Row: 7, Col: 0}: entity.Empty,
		{Row: 7, Col: 1}: entity.ColorB,
		{Row: 7, Col: 2}: entity.ColorA,
		{Row: 6, Col: 0}: entity.ColorA,
		{Row: 6, Col: 1}: entity.ColorA,
	}

	filled := 0
	for r := range entity.Size {
		for c := range entity.Size {
			if color, ok := fixed[entity.Position{Row: r, Col: c}]; ok {
				game.Board[r][c] = color
				continue
			}

			if filled < aFill {
				game.Board[r][c] = entity.ColorA
			} else {
				game.Board[r][c] = entity.ColorB
			}
			filled++
		}
	}

	return game
}

func TestGame_MakeTurn(t *testing.T) {
	t.Run("MakeTurn", func(t *testing.T) {
		// Given: a new game
		game := entity.NewGame("123")

		// When: player A opens at (2,3)
		err := MakeTurn(game, entity.ColorA, 2, 3)
		require.NoError(t, err)

		// Then: the bracketed disc is flipped and the turn passes to B
		expected := entity.NewGame("123")
		expected.Board[2][3] = entity.ColorA
		expected.Board[3][3] = entity.ColorA
		expected.CurrentPlayer = entity.ColorB
		expected.Moves = 1

		require.Equal(t, expected, game)
		assert.Equal(t, entity.Score{A: 4, B: 1}, game.Score())
	})

	t.Run("Error on wrong player", func(t *testing.T) {
		// Given: a new game where A is to move
		game := entity.NewGame("123")
		before := game.Clone()

		// When: B tries to move
		err := MakeTurn(game, entity.ColorB, 2, 4)

		// Then: ErrNotYourTurn is returned and the game is unchanged
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		require.Equal(t, before, game)
	})

	t.Run("Error on unknown color", func(t *testing.T) {
		game := entity.NewGame("123")
		before := game.Clone()

		err := MakeTurn(game, entity.Color("C"), 2, 3)

		require.ErrorIs(t, err, apperror.ErrInvalidColor)
		require.Equal(t, before, game)
	})

	t.Run("Error on out of range cell", func(t *testing.T) {
		game := entity.NewGame("123")
		before := game.Clone()

		err := MakeTurn(game, entity.ColorA, 8, 0)

		require.ErrorIs(t, err, apperror.ErrOutOfRange)
		require.Equal(t, before, game)
	})

	t.Run("Error on move that flips nothing", func(t *testing.T) {
		// Given: a new game
		game := entity.NewGame("123")
		before := game.Clone()

		// When: A plays a cell with no bracketed run and then an occupied cell
		errEmpty := MakeTurn(game, entity.ColorA, 0, 0)
		errOccupied := MakeTurn(game, entity.ColorA, 3, 3)

		// Then: both are illegal and nothing changes
		require.ErrorIs(t, errEmpty, apperror.ErrIllegalMove)
		require.ErrorIs(t, errOccupied, apperror.ErrIllegalMove)
		require.Equal(t, before, game)
	})

	t.Run("Game over is reported before turn checks", func(t *testing.T) {
		// Given: a terminated game
		game := entity.NewGame("123")
		require.NoError(t, Terminate(game, entity.ColorB))
		before := game.Clone()

		// When: either player tries to move
		errA := MakeTurn(game, entity.ColorA, 2, 3)
		errB := MakeTurn(game, entity.ColorB, 2, 4)

		// Then: both get ErrGameAlreadyOver
		require.ErrorIs(t, errA, apperror.ErrGameAlreadyOver)
		require.ErrorIs(t, errB, apperror.ErrGameAlreadyOver)
		require.Equal(t, before, game)
	})

	t.Run("Mover keeps the turn when the opponent must pass", func(t *testing.T) {
		// Given: A can capture on row 0, after which B has nothing but A still has (7,2)
		game := entity.NewGame("pass")
		game.Board = entity.Board{}
		game.Board[0][0] = entity.ColorA
		game.Board[0][1] = entity.ColorB
		game.Board[7][0] = entity.ColorA
		game.Board[7][1] = entity.ColorB

		// When: A plays (0,2)
		require.NoError(t, MakeTurn(game, entity.ColorA, 0, 2))

		// Then: B is skipped and the game goes on
		assert.Equal(t, entity.ColorA, game.CurrentPlayer)
		assert.True(t, game.IsOngoing())
		assert.Empty(t, LegalMoves(&game.Board, entity.ColorB))
		assert.Equal(t, []entity.Position{{Row: 7, Col: 2}}, LegalMoves(&game.Board, entity.ColorA))

		// When: A plays again
		require.NoError(t, MakeTurn(game, entity.ColorA, 7, 2))

		// Then: neither side can move and A wins on count
		assert.True(t, game.IsFinished())
		assert.Equal(t, entity.ColorA, game.Winner)
		assert.Equal(t, 2, game.Moves)
	})

	t.Run("Game ends when neither side can move on a partial board", func(t *testing.T) {
		game := entity.NewGame("wipe")
		game.Board = entity.Board{}
		game.Board[0][0] = entity.ColorA
		game.Board[0][1] = entity.ColorB

		require.NoError(t, MakeTurn(game, entity.ColorA, 0, 2))

		assert.True(t, game.IsFinished())
		assert.Equal(t, entity.ColorA, game.Winner)
		assert.Equal(t, entity.Score{A: 3, B: 0}, game.Score())
		assert.False(t, game.Board.IsFull())
	})

	t.Run("Full board 33 to 31 finishes with A as winner", func(t *testing.T) {
		// Given: A to move into the last empty cell with A=31, B=32
		game := nearlyFullGame(28)
		require.Equal(t, entity.Score{A: 31, B: 32}, game.Score())

		// When: A fills the board
		require.NoError(t, MakeTurn(game, entity.ColorA, 7, 0))

		// Then: the game is finished with A ahead
		assert.True(t, game.Board.IsFull())
		assert.Equal(t, entity.Score{A: 33, B: 31}, game.Score())
		assert.True(t, game.IsFinished())
		assert.Equal(t, entity.ColorA, game.Winner)
		assert.Equal(t, entity.Empty, game.EndedBy)
	})

	t.Run("Full board tie finishes without a winner", func(t *testing.T) {
		game := nearlyFullGame(27)

		require.NoError(t, MakeTurn(game, entity.ColorA, 7, 0))

		assert.Equal(t, entity.Score{A: 32, B: 32}, game.Score())
		assert.True(t, game.IsFinished())
		assert.Equal(t, entity.Empty, game.Winner)
	})
}

func TestTerminate(t *testing.T) {
	t.Run("Any player may end an ongoing game", func(t *testing.T) {
		// Given: a game where A is to move
		game := entity.NewGame("123")

		// When: B ends it
		err := Terminate(game, entity.ColorB)

		// Then: the game is terminated by B without a winner
		require.NoError(t, err)
		assert.True(t, game.IsTerminated())
		assert.Equal(t, entity.ColorB, game.EndedBy)
		assert.Equal(t, entity.Empty, game.Winner)
	})

	t.Run("Ending twice fails", func(t *testing.T) {
		game := entity.NewGame("123")
		require.NoError(t, Terminate(game, entity.ColorA))

		err := Terminate(game, entity.ColorB)

		require.ErrorIs(t, err, apperror.ErrGameAlreadyOver)
		assert.Equal(t, entity.ColorA, game.EndedBy)
	})

	t.Run("Unknown color is rejected", func(t *testing.T) {
		game := entity.NewGame("123")

		err := Terminate(game, entity.Color("C"))

		require.ErrorIs(t, err, apperror.ErrInvalidColor)
		assert.True(t, game.IsOngoing())
	})
}

func TestSnapshot(t *testing.T) {
	t.Run("New game snapshot", func(t *testing.T) {
		// Given: a new game
		game := entity.NewGame("g1")

		// When: projecting it
		data, err := json.Marshal(Snapshot(game))
		require.NoError(t, err)

		// Then: the wire shape carries nulls for empties and pairs for moves
		var decoded map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))

		assert.Equal(t, "g1", decoded["id"])
		assert.Equal(t, "A", decoded["current_player"])
		assert.Equal(t, map[string]any{"A": float64(2), "B": float64(2)}, decoded["score"])
		assert.Equal(t, false, decoded["game_over"])
		assert.Nil(t, decoded["winner"])
		assert.Nil(t, decoded["ended_by"])
		assert.Equal(t, []any{
			[]any{float64(2), float64(3)},
			[]any{float64(3), float64(2)},
			[]any{float64(4), float64(5)},
			[]any{float64(5), float64(4)},
		}, decoded["valid_moves"])

		board, ok := decoded["board"].([]any)
		require.True(t, ok)
		require.Len(t, board, entity.Size)
		assert.Equal(t, []any{nil, nil, nil, "B", "A", nil, nil, nil}, board[3])
	})

	t.Run("Finished game has no valid moves", func(t *testing.T) {
		game := entity.NewGame("g1")
		require.NoError(t, Terminate(game, entity.ColorB))

		state := Snapshot(game)

		assert.True(t, state.GameOver)
		assert.NotNil(t, state.ValidMoves)
		assert.Empty(t, state.ValidMoves)
		assert.Equal(t, entity.ColorB, state.EndedBy)
	})
}
