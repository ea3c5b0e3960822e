package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/reversi-backend/internal/apperror"
)

const (
	StatusOngoing    = "ongoing"
	StatusFinished   = "finished"
	StatusTerminated = "terminated"

	// FirstPlayer moves first in every new game.
	FirstPlayer = ColorA
)

var ErrUnknownGameStatus = errors.New("unknown game status")

// Game is the authoritative state of one match. Score is not stored: it is always counted from Board.
type Game struct {
	ID            string `json:"id"`
	Board         Board  `json:"board"`
	CurrentPlayer Color  `json:"current_player"`
	Moves         int    `json:"moves"`
	Status        string `json:"status"`
	EndedBy       Color  `json:"ended_by"`
	Winner        Color  `json:"winner"`
}

type Score struct {
	A int `json:"A"`
	B int `json:"B"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:            id,
		Board:         NewBoard(),
		CurrentPlayer: FirstPlayer,
		Status:        StatusOngoing,
	}
}

func (that *Game) Score() Score {
	return Score{
		A: that.Board.CountOf(ColorA),
		B: that.Board.CountOf(ColorB),
	}
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsTerminated() bool {
	return that.Status == StatusTerminated
}

func (that *Game) IsOver() bool {
	return that.IsFinished() || that.IsTerminated()
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsOngoing():
		return nil
	case that.IsOver():
		return apperror.ErrGameAlreadyOver
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

// LeadingColor - returns the color with more discs on the board, Empty on a tie.
func (that *Game) LeadingColor() Color {
	score := that.Score()

	switch {
	case score.A > score.B:
		return ColorA
	case score.B > score.A:
		return ColorB
	default:
		return Empty
	}
}

// Clone - returns an independent copy. Game holds no references, so a value copy is deep.
func (that *Game) Clone() *Game {
	clone := *that
	return &clone
}
