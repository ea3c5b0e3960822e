package reversi

import "github.com/rocketscienceinc/reversi-backend/internal/entity"

// Directions are the eight compass steps walked from a target cell.
var Directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// FlipsFor - returns the opponent discs that placing color at (row, col) would flip.
// The result is empty when the move is illegal, including an occupied or off-board target.
func FlipsFor(board *entity.Board, color entity.Color, row, col int) []entity.Position {
	if !color.IsPlayer() || !entity.InBounds(row, col) || board[row][col] != entity.Empty {
		return nil
	}

	var flips []entity.Position

	for _, dir := range Directions {
		flips = append(flips, flipsInDirection(board, color, row, col, dir)...)
	}

	return flips
}

// flipsInDirection - walks one direction collecting opponent discs, keeping them only if the run ends on color.
func flipsInDirection(board *entity.Board, color entity.Color, row, col int, dir [2]int) []entity.Position {
	opponent := color.Opponent()

	var run []entity.Position

	r, c := row+dir[0], col+dir[1]
	for entity.InBounds(r, c) && board[r][c] == opponent {
		run = append(run, entity.Position{Row: r, Col: c})
		r, c = r+dir[0], c+dir[1]
	}

	if len(run) == 0 || !entity.InBounds(r, c) || board[r][c] != color {
		return nil
	}

	return run
}

// LegalMoves - returns every cell color may play, in row-major order.
func LegalMoves(board *entity.Board, color entity.Color) []entity.Position {
	moves := make([]entity.Position, 0)

	for r := range entity.Size {
		for c := range entity.Size {
			if isLegal(board, color, r, c) {
				moves = append(moves, entity.Position{Row: r, Col: c})
			}
		}
	}

	return moves
}

func HasLegalMove(board *entity.Board, color entity.Color) bool {
	for r := range entity.Size {
		for c := range entity.Size {
			if isLegal(board, color, r, c) {
				return true
			}
		}
	}

	return false
}

func isLegal(board *entity.Board, color entity.Color, row, col int) bool {
	if !color.IsPlayer() || board[row][col] != entity.Empty {
		return false
	}

	for _, dir := range Directions {
		if len(flipsInDirection(board, color, row, col, dir)) > 0 {
			return true
		}
	}

	return false
}
