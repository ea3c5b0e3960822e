package entity

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/reversi-backend/internal/apperror"
)

// Size is the number of rows and columns of the board.
const Size = 8

const (
	Empty  Color = ""
	ColorA Color = "A"
	ColorB Color = "B"
)

// Color is the content of a cell: a disc of one of the two players or Empty.
// Empty doubles as "none" for the winner and ended_by fields and is encoded as JSON null.
type Color string

func ParseColor(raw string) (Color, error) {
	switch color := Color(raw); color {
	case ColorA, ColorB:
		return color, nil
	default:
		return Empty, fmt.Errorf("%w: %q", apperror.ErrInvalidColor, raw)
	}
}

func (that Color) IsPlayer() bool {
	return that == ColorA || that == ColorB
}

// Opponent - returns the other player's color. Empty has no opponent.
func (that Color) Opponent() Color {
	switch that {
	case ColorA:
		return ColorB
	case ColorB:
		return ColorA
	default:
		return Empty
	}
}

func (that Color) MarshalJSON() ([]byte, error) {
	if that == Empty {
		return []byte("null"), nil
	}

	return json.Marshal(string(that))
}

func (that *Color) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*that = Empty
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal color: %w", err)
	}

	if raw == "" {
		*that = Empty
		return nil
	}

	color, err := ParseColor(raw)
	if err != nil {
		return err
	}

	*that = color

	return nil
}

// Position is a board coordinate. It is encoded as a [row, col] pair.
type Position struct {
	Row int
	Col int
}

func (that Position) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{that.Row, that.Col})
}

func (that *Position) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("failed to unmarshal position: %w", err)
	}

	that.Row, that.Col = pair[0], pair[1]

	return nil
}

// Board is the 8x8 grid, indexed [row][col].
type Board [Size][Size]Color

// NewBoard - returns the standard starting position.
func NewBoard() Board {
	var board Board

	board[3][3] = ColorB
	board[3][4] = ColorA
	board[4][3] = ColorA
	board[4][4] = ColorB

	return board
}

func InBounds(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

func (that *Board) Get(row, col int) (Color, error) {
	if !InBounds(row, col) {
		return Empty, fmt.Errorf("%w: (%d, %d)", apperror.ErrOutOfRange, row, col)
	}

	return that[row][col], nil
}

func (that *Board) Set(row, col int, color Color) error {
	if !InBounds(row, col) {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrOutOfRange, row, col)
	}

	that[row][col] = color

	return nil
}

func (that *Board) CountOf(color Color) int {
	count := 0
	for _, row := range that {
		for _, cell := range row {
			if cell == color {
				count++
			}
		}
	}

	return count
}

func (that *Board) IsFull() bool {
	return that.CountOf(Empty) == 0
}
