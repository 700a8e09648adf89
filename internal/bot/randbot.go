package bot

import (
	rand "math/rand/v2"

	"github.com/lox/pokerrooms/internal/game"
)

// Random picks fold, call or a raise uniformly. Raises go to a random level
// between one and MaxRaiseBlinds big blinds over the current bet. It is used
// to stress the engine with arbitrary action sequences.
type Random struct {
	MaxRaiseBlinds int
}

func (r Random) Decide(s Situation, rng *rand.Rand) Decision {
	switch rng.IntN(3) {
	case 0:
		if s.ToCall() == 0 {
			return Decision{Action: game.Call(), Reasoning: "random check instead of free fold"}
		}
		return Decision{Action: game.Fold(), Reasoning: "random fold"}
	case 1:
		return Decision{Action: game.Call(), Reasoning: "random call"}
	default:
		blinds := 1 + rng.IntN(max(1, r.MaxRaiseBlinds))
		return Decision{
			Action:    game.RaiseTo(s.CurrentBet + blinds*max(1, s.BigBlind)),
			Reasoning: "random raise",
		}
	}
}
