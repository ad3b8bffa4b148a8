package game

import (
	"errors"
	"fmt"
)

// ErrInvalidMove is the INVALID signal: every rejection by Play wraps it.
var ErrInvalidMove = errors.New("invalid move")

var (
	ErrMalformedMove   = fmt.Errorf("%w: malformed", ErrInvalidMove)
	ErrUnknownPosition = errors.New("unknown position")
	ErrGameOver        = errors.New("game is over")
)
