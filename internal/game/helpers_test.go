package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerrooms/internal/deck"
	"github.com/lox/pokerrooms/internal/randutil"
)

var testNames = []string{"Alice", "Bob", "Carol", "Dave", "Erin", "Frank", "Grace", "Heidi"}

func testConfig() RoomConfig {
	return RoomConfig{SmallBlind: 10, BigBlind: 20, StartingStack: 1000}
}

func testSpecs(n int) []SeatSpec {
	specs := make([]SeatSpec, n)
	for i := range specs {
		specs[i] = SeatSpec{Name: testNames[i]}
	}
	return specs
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func newTestTable(t *testing.T, seats int, opts ...TableOption) *Table {
	t.Helper()
	base := []TableOption{WithRNG(randutil.New(42)), WithLogger(quietLogger())}
	return RebuildTable(testConfig(), testSpecs(seats), append(base, opts...)...)
}

func stackedDeck(cards string) TableOption {
	parsed := deck.MustParseCards(cards)
	return WithDeck(func() *deck.Deck { return deck.NewStackedDeck(parsed...) })
}

// showdownSeat describes a seat for a table arranged directly at the river
type showdownSeat struct {
	hole     string
	invested int
	stack    int
	folded   bool
}

// riverTable builds a table positioned at the end of the river with the
// given investments, ready for settleShowdown.
func riverTable(t *testing.T, board string, seats ...showdownSeat) *Table {
	t.Helper()
	tbl := newTestTable(t, len(seats))
	tbl.board = deck.MustParseCards(board)
	tbl.street = River
	tbl.handActive = true
	tbl.handNumber = 1
	for i, spec := range seats {
		s := tbl.seats[i]
		s.HoleCards = deck.MustParseCards(spec.hole)
		s.InHand = true
		s.Folded = spec.folded
		s.Stack = spec.stack
		s.AllIn = spec.stack == 0
		s.TotalInvested = spec.invested
		tbl.pot += spec.invested
	}
	return tbl
}

func totalStacks(tbl *Table) int {
	total := 0
	for _, s := range tbl.seats {
		total += s.Stack
	}
	return total
}

func totalInvested(tbl *Table) int {
	total := 0
	for _, s := range tbl.seats {
		total += s.TotalInvested
	}
	return total
}

func requireInvariants(t *testing.T, tbl *Table) {
	t.Helper()
	require.Equal(t, totalInvested(tbl), tbl.pot, "pot must equal total invested")

	maxBet := 0
	for _, s := range tbl.seats {
		if s.InHand {
			maxBet = max(maxBet, s.Bet)
		}
		require.GreaterOrEqual(t, s.Stack, 0)
		if s.InHand && s.Stack == 0 {
			require.True(t, s.AllIn, "%s has no chips but is not all-in", s.Name)
		}
	}
	require.Equal(t, maxBet, tbl.currentBet, "current bet must equal the largest bet")

	if tbl.toAct >= 0 {
		require.True(t, tbl.seats[tbl.toAct].Actionable(), "seat to act must be actionable")
	}
}
