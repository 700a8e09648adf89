package bot

import (
	rand "math/rand/v2"

	"github.com/lox/pokerrooms/internal/game"
)

// CallingStation always calls or checks. It makes bot behaviour fully
// deterministic in tests.
type CallingStation struct{}

func (CallingStation) Decide(s Situation, _ *rand.Rand) Decision {
	return Decision{Action: game.Call(), Reasoning: "calling station"}
}
