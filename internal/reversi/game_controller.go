package reversi

import (
	"fmt"

	"github.com/rocketscienceinc/reversi-backend/internal/apperror"
	"github.com/rocketscienceinc/reversi-backend/internal/entity"
)

// MakeTurn - validates and applies a move of player at (row, col). The game is left untouched on error.
func MakeTurn(gameInstance *entity.Game, player entity.Color, row, col int) error {
	flips, err := validateMove(gameInstance, player, row, col)
	if err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	gameInstance.Board[row][col] = player
	for _, pos := range flips {
		gameInstance.Board[pos.Row][pos.Col] = player
	}

	gameInstance.Moves++
	updateGameStatus(gameInstance, player)

	return nil
}

// Terminate - ends an ongoing game on behalf of by, whoever's turn it is.
func Terminate(gameInstance *entity.Game, by entity.Color) error {
	if !by.IsPlayer() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidColor, by)
	}

	if err := gameInstance.ConfirmOngoingState(); err != nil {
		return err
	}

	gameInstance.Status = entity.StatusTerminated
	gameInstance.EndedBy = by
	gameInstance.Winner = entity.Empty

	return nil
}

// validateMove - checks the move and returns the discs it flips.
func validateMove(gameInstance *entity.Game, player entity.Color, row, col int) ([]entity.Position, error) {
	if err := gameInstance.ConfirmOngoingState(); err != nil {
		return nil, err
	}

	if !player.IsPlayer() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidColor, player)
	}

	if gameInstance.CurrentPlayer != player {
		return nil, apperror.ErrNotYourTurn
	}

	if _, err := gameInstance.Board.Get(row, col); err != nil {
		return nil, err
	}

	flips := FlipsFor(&gameInstance.Board, player, row, col)
	if len(flips) == 0 {
		return nil, fmt.Errorf("%w: (%d, %d)", apperror.ErrIllegalMove, row, col)
	}

	return flips, nil
}

// updateGameStatus - passes the turn or finishes the game after a move by player.
func updateGameStatus(gameInstance *entity.Game, player entity.Color) {
	board := &gameInstance.Board
	opponent := player.Opponent()

	switch {
	case board.IsFull():
	case HasLegalMove(board, opponent):
		gameInstance.CurrentPlayer = opponent
		return
	case HasLegalMove(board, player):
		gameInstance.CurrentPlayer = player
		return
	}

	gameInstance.Status = entity.StatusFinished
	gameInstance.Winner = gameInstance.LeadingColor()
}

// Snapshot - builds the client view of a game.
func Snapshot(gameInstance *entity.Game) *entity.State {
	state := &entity.State{
		ID:            gameInstance.ID,
		Board:         gameInstance.Board,
		CurrentPlayer: gameInstance.CurrentPlayer,
		Score:         gameInstance.Score(),
		ValidMoves:    []entity.Position{},
		GameOver:      gameInstance.IsOver(),
		Winner:        gameInstance.Winner,
		EndedBy:       gameInstance.EndedBy,
		Moves:         gameInstance.Moves,
	}

	if gameInstance.IsOngoing() {
		state.ValidMoves = LegalMoves(&gameInstance.Board, gameInstance.CurrentPlayer)
	}

	return state
}
