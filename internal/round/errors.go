package round

import "errors"

var (
	ErrGameOver      = errors.New("game is over")
	ErrRevealing     = errors.New("a guess is already being revealed")
	ErrNoCard        = errors.New("no current card")
	ErrNotOver       = errors.New("game is not over")
	ErrSessionClosed = errors.New("session closed")
	ErrNotStarted    = errors.New("session not started")
	ErrStarted       = errors.New("session already started")
	ErrBadGuess      = errors.New("guess must be higher or lower")
)

type InvalidConfigError string

func (e InvalidConfigError) Error() string { return "invalid config: " + string(e) }

func ErrInvalidConfig(msg string) error { return InvalidConfigError(msg) }
