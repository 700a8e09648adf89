package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/pokerrooms/internal/protocol"
)

var ErrQuit = errors.New("quit")

// Command is a parsed line of user input ready to send
type Command struct {
	Type protocol.MessageType
	Data any
}

// ParseCommand turns a line of input into a message for the server. Lines
// that are not a known command are sent as chat. Empty input yields a nil
// command; "quit" and "exit" yield ErrQuit.
func ParseCommand(input string) (*Command, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}
	fields := strings.Fields(input)
	verb := strings.ToLower(fields[0])
	args := fields[1:]

	switch verb {
	case "quit", "exit":
		return nil, ErrQuit
	case "fold", "check", "call":
		return &Command{Type: protocol.TypeAction, Data: protocol.Action{Action: verb}}, nil
	case "raise", "bet":
		args = dropWord(args, "to")
		amount, err := intArg(verb, args, 0)
		if err != nil {
			return nil, err
		}
		return &Command{Type: protocol.TypeAction, Data: protocol.Action{Action: "raise", Amount: amount}}, nil
	case "ready":
		return &Command{Type: protocol.TypeReady}, nil
	case "unready":
		return &Command{Type: protocol.TypeUnready}, nil
	case "start":
		return &Command{Type: protocol.TypeStart}, nil
	case "lobby":
		return &Command{Type: protocol.TypeGetLobby}, nil
	case "host":
		return &Command{Type: protocol.TypePingHost}, nil
	case "bots":
		n, err := intArg(verb, args, 0)
		if err != nil {
			return nil, err
		}
		return &Command{Type: protocol.TypeHostConfig, Data: protocol.HostConfig{Bots: &n}}, nil
	case "stack":
		n, err := intArg(verb, args, 0)
		if err != nil {
			return nil, err
		}
		return &Command{Type: protocol.TypeHostConfig, Data: protocol.HostConfig{Stack: &n}}, nil
	case "blinds":
		if len(args) != 1 {
			return nil, fmt.Errorf("usage: blinds SB,BB")
		}
		blinds := args[0]
		return &Command{Type: protocol.TypeHostConfig, Data: protocol.HostConfig{Blinds: &blinds}}, nil
	case "topup":
		seat, err := intArg(verb, args, 0)
		if err != nil {
			return nil, err
		}
		amount, err := intArg(verb, args, 1)
		if err != nil {
			return nil, err
		}
		return &Command{Type: protocol.TypeTopUp, Data: protocol.TopUp{Seat: seat, Amount: amount}}, nil
	case "say":
		input = strings.TrimSpace(input[len(fields[0]):])
		if input == "" {
			return nil, nil
		}
	}
	return &Command{Type: protocol.TypeChat, Data: protocol.Chat{Text: input}}, nil
}

func intArg(verb string, args []string, i int) (int, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("%s: missing number", verb)
	}
	n, err := strconv.Atoi(strings.TrimPrefix(args[i], "$"))
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", verb, args[i])
	}
	return n, nil
}

func dropWord(args []string, word string) []string {
	if len(args) > 0 && strings.EqualFold(args[0], word) {
		return args[1:]
	}
	return args
}

// HelpText lists the commands understood by ParseCommand
const HelpText = "fold · check · call · raise N · ready · unready · start · bots N · stack N · blinds SB,BB · topup SEAT N · say TEXT · quit"
