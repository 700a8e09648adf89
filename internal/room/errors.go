package room

import (
	"errors"
	"fmt"

	"github.com/lox/pokerrooms/internal/game"
	"github.com/lox/pokerrooms/internal/protocol"
)

var (
	ErrMissingFields   = errors.New("room, name and password are required")
	ErrWrongPassword   = errors.New("wrong password")
	ErrAlreadyJoined   = errors.New("already in this room")
	ErrRoomClosed      = errors.New("room closed")
	ErrNotMember       = errors.New("not a member of this room")
	ErrNotHost         = errors.New("only the host can do that")
	ErrNotSeated       = errors.New("you do not have a seat at this table")
	ErrNotStarted      = errors.New("game has not started")
	ErrNotEnoughSeats  = errors.New("at least two seats are needed to start")
	ErrTooManySeats    = fmt.Errorf("at most %d seats, humans and bots together, can play", game.MaxSeats)
	ErrRoomFull        = fmt.Errorf("room is full (%d members)", game.MaxSeats)
	ErrUnknownMessage  = errors.New("unknown message type")
	ErrMalformedFields = errors.New("malformed message")
)

// ErrorCode maps an error to the code sent to clients
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrNotHost), errors.Is(err, ErrWrongPassword), errors.Is(err, ErrNotMember):
		return protocol.CodeForbidden
	case errors.Is(err, game.ErrRejected):
		return protocol.CodeRejected
	case errors.Is(err, ErrMissingFields), errors.Is(err, ErrUnknownMessage),
		errors.Is(err, ErrMalformedFields), errors.Is(err, game.ErrInvalidAmount):
		return protocol.CodeBadRequest
	default:
		return protocol.CodeConflict
	}
}
