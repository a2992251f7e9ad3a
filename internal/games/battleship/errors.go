package battleship

import "errors"

// Errors returned by Board and Session. Callers match them with errors.Is;
// the returned error usually wraps one of these with details.
var (
	ErrInvalidPlacement = errors.New("battleship: invalid placement")
	ErrAlreadyFired     = errors.New("battleship: cell already fired at")
	ErrOutOfRange       = errors.New("battleship: index out of range")
	ErrWrongPhase       = errors.New("battleship: wrong phase")
	ErrWrongTurn        = errors.New("battleship: wrong turn")
	ErrSessionEnded     = errors.New("battleship: session ended")
)
