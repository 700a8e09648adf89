package game

import (
	"strings"

	"github.com/lox/pokerrooms/internal/deck"
)

// StartHand deals a new hand: it rotates the dealer, deals two hole cards
// to every funded seat, posts the blinds and sets the first actor.
func (t *Table) StartHand() error {
	if t.handActive {
		return ErrHandInProgress
	}
	if t.FundedSeats() < 2 {
		return ErrNotEnoughPlayers
	}
	if len(t.seats) > MaxSeats {
		return ErrTooManySeats
	}

	t.handNumber++
	t.history.Reset()
	t.deck = t.newDeck()
	t.board = nil
	t.pot = 0
	t.currentBet = 0
	clear(t.acted)
	t.street = Preflop
	t.showdown = nil
	t.revealAll = false
	t.payouts = nil
	t.evaluations = nil

	for _, s := range t.seats {
		s.HoleCards = nil
		s.Bet = 0
		s.TotalInvested = 0
		s.Folded = false
		s.AllIn = false
		s.InHand = s.Stack > 0 && !s.Away
	}

	inHand := func(s *Seat) bool { return s.InHand }
	t.dealerSeat = t.nextSeat(t.dealerSeat+1, inHand)
	t.handActive = true
	t.logf("Hand #%d, dealer %s", t.handNumber, t.seats[t.dealerSeat].Name)

	n := len(t.seats)
	for pass := 0; pass < 2; pass++ {
		for i := 1; i <= n; i++ {
			s := t.seats[(t.dealerSeat+i)%n]
			if s.InHand {
				s.HoleCards = append(s.HoleCards, t.deck.Deal(1)...)
			}
		}
	}

	if len(t.contenders()) == 2 {
		t.smallBlindSeat = t.dealerSeat
	} else {
		t.smallBlindSeat = t.nextSeat(t.dealerSeat+1, inHand)
	}
	t.bigBlindSeat = t.nextSeat(t.smallBlindSeat+1, inHand)

	t.PostBlind(t.smallBlindSeat, t.cfg.SmallBlind, "small blind")
	t.PostBlind(t.bigBlindSeat, t.cfg.BigBlind, "big blind")
	t.currentBet = max(t.seats[t.smallBlindSeat].Bet, t.seats[t.bigBlindSeat].Bet)
	clear(t.acted)
	t.toAct = t.NextActor(t.bigBlindSeat + 1)

	t.logger.Info("hand started",
		"hand", t.handNumber,
		"dealer", t.dealerSeat,
		"players", len(t.contenders()))
	return nil
}

// AdvanceStreet moves a hand whose betting round has closed to its next
// street, or settles it. It is only legal when the round is closed.
func (t *Table) AdvanceStreet() error {
	if !t.handActive {
		return ErrHandNotActive
	}
	if !t.IsRoundClosed() {
		return ErrRoundOpen
	}
	if len(t.contenders()) <= 1 {
		t.awardToSole()
		return nil
	}

	for _, s := range t.seats {
		s.Bet = 0
	}
	t.currentBet = 0
	clear(t.acted)

	switch t.street {
	case Preflop:
		t.street = Flop
		t.reveal(3)
	case Flop:
		t.street = Turn
		t.reveal(1)
	case Turn:
		t.street = River
		t.reveal(1)
	case River:
		t.street = Showdown
		t.toAct = -1
		t.settleShowdown()
		return nil
	}

	t.toAct = t.NextActor(t.dealerSeat + 1)
	return nil
}

func (t *Table) reveal(n int) {
	t.deck.Burn()
	t.board = append(t.board, t.deck.Deal(n)...)
	t.logf("*** %s *** [%s]", strings.ToUpper(t.street.String()), formatCards(t.board))
}

func formatCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
