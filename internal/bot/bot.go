// Package bot provides the policies that decide for bot seats.
package bot

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/pokerrooms/internal/deck"
	"github.com/lox/pokerrooms/internal/game"
)

// Situation is everything a policy is shown when a bot seat must act
type Situation struct {
	Seat       game.Seat
	Street     game.Street
	Board      []deck.Card
	Pot        int
	CurrentBet int
	BigBlind   int
}

// ToCall returns the chips the seat must add to match the current bet
func (s Situation) ToCall() int {
	return max(0, s.CurrentBet-s.Seat.Bet)
}

// Decision is a policy's chosen action with a short explanation for logs
type Decision struct {
	Action    game.Action
	Reasoning string
}

// Policy decides for a bot seat. Implementations must be pure functions of
// the situation and the random source so a fixed seed replays a game.
type Policy interface {
	Decide(s Situation, rng *rand.Rand) Decision
}

// SituationFor builds the situation for a seat at a table
func SituationFor(t *game.Table, seatID int) (Situation, error) {
	seat, ok := t.Seat(seatID)
	if !ok {
		return Situation{}, fmt.Errorf("seat %d: %w", seatID, game.ErrUnknownSeat)
	}
	return Situation{
		Seat:       seat,
		Street:     t.Street(),
		Board:      t.Board(),
		Pot:        t.Pot(),
		CurrentBet: t.CurrentBet(),
		BigBlind:   t.Config().BigBlind,
	}, nil
}

// Policy names accepted by NewPolicy
const (
	PolicyHeuristic      = "heuristic"
	PolicyRandom         = "random"
	PolicyCallingStation = "calling"
)

// DefaultRandomRaiseBlinds caps raises made by the random policy
const DefaultRandomRaiseBlinds = 5

// NewPolicy returns the policy with the given name
func NewPolicy(name string, logger *log.Logger) (Policy, error) {
	switch name {
	case PolicyHeuristic, "":
		return NewHeuristic(logger), nil
	case PolicyRandom:
		return Random{MaxRaiseBlinds: DefaultRandomRaiseBlinds}, nil
	case PolicyCallingStation:
		return CallingStation{}, nil
	default:
		return nil, fmt.Errorf("unknown bot policy %q", name)
	}
}

// Heuristic folds under pressure, raises occasionally and otherwise
// calls or checks.
type Heuristic struct {
	// PressureThreshold is the fraction of the effective stack a call
	// must cost before the bot considers folding.
	PressureThreshold float64
	FoldProbability   float64
	RaiseProbability  float64

	logger *log.Logger
}

// NewHeuristic creates the default heuristic policy
func NewHeuristic(logger *log.Logger) *Heuristic {
	return &Heuristic{
		PressureThreshold: 0.35,
		FoldProbability:   0.65,
		RaiseProbability:  0.12,
		logger:            logger.WithPrefix("bot"),
	}
}

func (h *Heuristic) Decide(s Situation, rng *rand.Rand) Decision {
	call := s.ToCall()
	pressure := float64(call) / float64(max(1, s.Seat.Stack+call))

	decision := h.decide(s, call, pressure, rng)
	h.logger.Debug("bot decision",
		"seat", s.Seat.ID,
		"name", s.Seat.Name,
		"street", s.Street,
		"call", call,
		"pressure", fmt.Sprintf("%.2f", pressure),
		"action", decision.Action,
		"reasoning", decision.Reasoning)
	return decision
}

func (h *Heuristic) decide(s Situation, call int, pressure float64, rng *rand.Rand) Decision {
	if call > 0 && pressure > h.PressureThreshold && rng.Float64() < h.FoldProbability {
		return Decision{Action: game.Fold(), Reasoning: "too expensive to continue"}
	}

	target := s.CurrentBet + s.BigBlind
	if target-s.Seat.Bet <= s.Seat.Stack && rng.Float64() < h.RaiseProbability {
		return Decision{Action: game.RaiseTo(target), Reasoning: "raising one big blind"}
	}

	if call == 0 {
		return Decision{Action: game.Call(), Reasoning: "free check"}
	}
	return Decision{Action: game.Call(), Reasoning: "calling"}
}
