package game

import (
	"fmt"
	"strings"
)

// ActionType tags the variant held by an Action
type ActionType int

const (
	ActionFold ActionType = iota
	ActionCallOrCheck
	ActionRaiseTo
)

func (a ActionType) String() string {
	switch a {
	case ActionFold:
		return "fold"
	case ActionCallOrCheck:
		return "call"
	case ActionRaiseTo:
		return "raise"
	default:
		return "unknown"
	}
}

// Action is a seat's decision. Amount is only meaningful for ActionRaiseTo,
// where it is the total bet level the seat wants to reach this street.
type Action struct {
	Type   ActionType
	Amount int
}

func (a Action) String() string {
	if a.Type == ActionRaiseTo {
		return fmt.Sprintf("raise to %d", a.Amount)
	}
	return a.Type.String()
}

// Fold returns a fold action
func Fold() Action { return Action{Type: ActionFold} }

// Call returns a call-or-check action
func Call() Action { return Action{Type: ActionCallOrCheck} }

// RaiseTo returns a raise to the given bet level
func RaiseTo(amount int) Action { return Action{Type: ActionRaiseTo, Amount: amount} }

// ParseAction validates an action received from outside the engine.
// "check" and "call" both map to ActionCallOrCheck; "bet" is accepted as a
// synonym for "raise".
func ParseAction(kind string, amount int) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "fold":
		return Fold(), nil
	case "call", "check", "callorcheck":
		return Call(), nil
	case "raise", "raiseto", "bet":
		if amount <= 0 {
			return Action{}, fmt.Errorf("raise to %d: %w", amount, ErrInvalidAmount)
		}
		return RaiseTo(amount), nil
	default:
		return Action{}, fmt.Errorf("%w %q", ErrUnknownAction, kind)
	}
}
