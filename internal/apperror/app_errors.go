package apperror

import "errors"

var (
	ErrOutOfRange      = errors.New("cell is out of range")
	ErrNotYourTurn     = errors.New("it's not your turn")
	ErrIllegalMove     = errors.New("move does not flip any disc")
	ErrGameAlreadyOver = errors.New("game is already over")
	ErrNotFound        = errors.New("game not found")
	ErrInvalidColor    = errors.New("invalid color")
	ErrBadRequest      = errors.New("malformed request")
)

const (
	CodeOutOfRange      = "OutOfRange"
	CodeNotYourTurn     = "NotYourTurn"
	CodeIllegalMove     = "IllegalMove"
	CodeGameAlreadyOver = "GameAlreadyOver"
	CodeNotFound        = "NotFound"
	CodeInvalidColor    = "InvalidColor"
	CodeBadRequest      = "BadRequest"
	CodeInternal        = "Internal"
)

var codes = []struct {
	err  error
	code string
}{
	{ErrOutOfRange, CodeOutOfRange},
	{ErrNotYourTurn, CodeNotYourTurn},
	{ErrIllegalMove, CodeIllegalMove},
	{ErrGameAlreadyOver, CodeGameAlreadyOver},
	{ErrNotFound, CodeNotFound},
	{ErrInvalidColor, CodeInvalidColor},
	{ErrBadRequest, CodeBadRequest},
}

// Code - returns the caller-visible code of err, or CodeInternal when err is not a game error.
func Code(err error) string {
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}

	return CodeInternal
}
