package game

import (
	"errors"
	"fmt"
)

// ErrRejected is matched by every error returned for an action the table
// refused. A rejected action never mutates table state.
var ErrRejected = errors.New("action rejected")

var (
	ErrHandNotActive     = fmt.Errorf("%w: hand is not active", ErrRejected)
	ErrNotYourTurn       = fmt.Errorf("%w: not your turn", ErrRejected)
	ErrSeatNotActionable = fmt.Errorf("%w: seat cannot act", ErrRejected)
	ErrUnknownSeat       = fmt.Errorf("%w: unknown seat", ErrRejected)
	ErrUnknownAction     = fmt.Errorf("%w: unknown action", ErrRejected)
)

var (
	ErrHandInProgress   = errors.New("hand in progress")
	ErrNotEnoughPlayers = errors.New("at least two seats with chips are required")
	ErrRoundOpen        = errors.New("betting round is still open")
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrTooManySeats     = fmt.Errorf("a table holds at most %d seats", MaxSeats)
)
