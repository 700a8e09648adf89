package bot

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerrooms/internal/game"
	"github.com/lox/pokerrooms/internal/randutil"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func situation(stack, bet, currentBet int) Situation {
	return Situation{
		Seat:       game.Seat{ID: 1, Name: "Bot 1", IsBot: true, Stack: stack, Bet: bet, InHand: true},
		Street:     game.Flop,
		CurrentBet: currentBet,
		BigBlind:   20,
	}
}

func tally(p Policy, s Situation, n int) map[game.ActionType]int {
	rng := randutil.New(5)
	counts := make(map[game.ActionType]int)
	for i := 0; i < n; i++ {
		counts[p.Decide(s, rng).Action.Type]++
	}
	return counts
}

func TestHeuristicFoldsUnderPressure(t *testing.T) {
	t.Parallel()

	h := NewHeuristic(quietLogger())
	// call of 300 against a 200 stack: pressure 0.6
	counts := tally(h, situation(200, 0, 300), 10000)

	folds := float64(counts[game.ActionFold]) / 10000
	assert.InDelta(t, 0.65, folds, 0.03)
	assert.Zero(t, counts[game.ActionRaiseTo], "cannot cover a raise")
	assert.Equal(t, 10000, counts[game.ActionFold]+counts[game.ActionCallOrCheck])
}

func TestHeuristicNeverFoldsCheapCalls(t *testing.T) {
	t.Parallel()

	h := NewHeuristic(quietLogger())
	// call of 20 against 1000: pressure ~0.02
	counts := tally(h, situation(1000, 0, 20), 10000)
	assert.Zero(t, counts[game.ActionFold])

	raises := float64(counts[game.ActionRaiseTo]) / 10000
	assert.InDelta(t, 0.12, raises, 0.02)
}

func TestHeuristicNeverFoldsForFree(t *testing.T) {
	t.Parallel()

	h := NewHeuristic(quietLogger())
	h.RaiseProbability = 0
	counts := tally(h, situation(10, 0, 0), 1000)
	assert.Equal(t, map[game.ActionType]int{game.ActionCallOrCheck: 1000}, counts)
}

func TestHeuristicRaisesOneBigBlind(t *testing.T) {
	t.Parallel()

	h := NewHeuristic(quietLogger())
	h.RaiseProbability = 1
	h.FoldProbability = 0
	d := h.Decide(situation(1000, 20, 60), randutil.New(1))
	assert.Equal(t, game.RaiseTo(80), d.Action)

	// 60 more needed but only 50 behind
	d = h.Decide(situation(50, 20, 60), randutil.New(1))
	assert.Equal(t, game.ActionCallOrCheck, d.Action.Type)
}

func TestCallingStation(t *testing.T) {
	t.Parallel()

	counts := tally(CallingStation{}, situation(10, 0, 500), 100)
	assert.Equal(t, map[game.ActionType]int{game.ActionCallOrCheck: 100}, counts)
}

func TestRandomRaisesAboveCurrentBet(t *testing.T) {
	t.Parallel()

	rng := randutil.New(9)
	p := Random{MaxRaiseBlinds: 3}
	s := situation(1000, 0, 40)
	for i := 0; i < 500; i++ {
		d := p.Decide(s, rng)
		if d.Action.Type == game.ActionRaiseTo {
			assert.Greater(t, d.Action.Amount, 40)
			assert.LessOrEqual(t, d.Action.Amount, 40+3*20)
		}
	}
}

func TestNewPolicy(t *testing.T) {
	t.Parallel()
	logger := quietLogger()

	p, err := NewPolicy("", logger)
	require.NoError(t, err)
	assert.IsType(t, &Heuristic{}, p)

	p, err = NewPolicy(PolicyRandom, logger)
	require.NoError(t, err)
	assert.Equal(t, Random{MaxRaiseBlinds: DefaultRandomRaiseBlinds}, p)

	p, err = NewPolicy(PolicyCallingStation, logger)
	require.NoError(t, err)
	assert.Equal(t, CallingStation{}, p)

	_, err = NewPolicy("gto", logger)
	assert.Error(t, err)
}

func TestSituationFor(t *testing.T) {
	t.Parallel()

	tbl := game.RebuildTable(game.DefaultRoomConfig(), []game.SeatSpec{
		{Name: "Alice"},
		{Name: "Bot 1", IsBot: true},
	}, game.WithRNG(randutil.New(3)))
	require.NoError(t, tbl.StartHand())

	s, err := SituationFor(tbl, 1)
	require.NoError(t, err)
	assert.Equal(t, "Bot 1", s.Seat.Name)
	assert.Equal(t, 20, s.Seat.Bet)
	assert.Equal(t, 20, s.CurrentBet)
	assert.Equal(t, 20, s.BigBlind)
	assert.Equal(t, 30, s.Pot)
	assert.Zero(t, s.ToCall())
	assert.Len(t, s.Seat.HoleCards, 2)

	_, err = SituationFor(tbl, 7)
	require.ErrorIs(t, err, game.ErrUnknownSeat)
}
