package engine

import "errors"

var (
	ErrGameOver            = errors.New("game is over")
	ErrWrongPhase          = errors.New("command not valid in this phase")
	ErrNotCurrentPlayer    = errors.New("not the player on turn")
	ErrUnknownMarble       = errors.New("unknown marble")
	ErrIllegalMove         = errors.New("illegal move")
	ErrNoPowerUp           = errors.New("no power-up in slot")
	ErrUnexpectedAnimation = errors.New("unexpected animation")
)
