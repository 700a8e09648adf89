package game

import (
	"github.com/lox/pokerrooms/internal/deck"
	"github.com/lox/pokerrooms/internal/evaluator"
)

// SeatView is a seat as one viewer is allowed to see it
type SeatView struct {
	ID            int                       `json:"id"`
	Name          string                    `json:"name"`
	IsBot         bool                      `json:"isBot"`
	Stack         int                       `json:"stack"`
	Bet           int                       `json:"bet"`
	TotalInvested int                       `json:"totalInvested"`
	InHand        bool                      `json:"inHand"`
	Folded        bool                      `json:"folded"`
	AllIn         bool                      `json:"allIn"`
	Away          bool                      `json:"away"`
	HoleCards     []deck.Card               `json:"holeCards"`
	Evaluation    *evaluator.HandEvaluation `json:"evaluation,omitempty"`
	HandLabel     string                    `json:"handLabel,omitempty"`
}

// PublicTableView is a read-only, per-viewer snapshot of a table
type PublicTableView struct {
	Viewer         int           `json:"viewer"`
	HandNumber     int           `json:"handNumber"`
	HandActive     bool          `json:"handActive"`
	Street         Street        `json:"street"`
	Board          []deck.Card   `json:"board"`
	Pot            int           `json:"pot"`
	CurrentBet     int           `json:"currentBet"`
	ToAct          int           `json:"toAct"`
	DealerSeat     int           `json:"dealerSeat"`
	SmallBlindSeat int           `json:"smallBlindSeat"`
	BigBlindSeat   int           `json:"bigBlindSeat"`
	SmallBlind     int           `json:"smallBlind"`
	BigBlind       int           `json:"bigBlind"`
	Seats          []SeatView    `json:"seats"`
	Showdown       *ShowdownInfo `json:"showdown,omitempty"`
	RevealAll      bool          `json:"revealAll"`
	Payouts        []Payout      `json:"payouts,omitempty"`
	History        []string      `json:"history"`
}

// Snapshot returns the table as seen by viewer. Every hole card except the
// viewer's own is redacted, unless the hand reached a showdown, in which
// case every contender's cards and evaluation are included. Pass -1 for a
// spectator view.
func (t *Table) Snapshot(viewer int) PublicTableView {
	view := PublicTableView{
		Viewer:         viewer,
		HandNumber:     t.handNumber,
		HandActive:     t.handActive,
		Street:         t.street,
		Board:          t.Board(),
		Pot:            t.pot,
		CurrentBet:     t.currentBet,
		ToAct:          t.toAct,
		DealerSeat:     t.dealerSeat,
		SmallBlindSeat: t.smallBlindSeat,
		BigBlindSeat:   t.bigBlindSeat,
		SmallBlind:     t.cfg.SmallBlind,
		BigBlind:       t.cfg.BigBlind,
		RevealAll:      t.revealAll,
		Payouts:        t.Payouts(),
		History:        t.history.Lines(),
		Seats:          make([]SeatView, len(t.seats)),
	}
	if t.showdown != nil {
		info := *t.showdown
		info.WinnerNames = append([]string(nil), info.WinnerNames...)
		view.Showdown = &info
	}

	reveal := t.revealAll && t.street == Showdown
	for i, s := range t.seats {
		sv := SeatView{
			ID:            s.ID,
			Name:          s.Name,
			IsBot:         s.IsBot,
			Stack:         s.Stack,
			Bet:           s.Bet,
			TotalInvested: s.TotalInvested,
			InHand:        s.InHand,
			Folded:        s.Folded,
			AllIn:         s.AllIn,
			Away:          s.Away,
			HoleCards:     []deck.Card{},
		}
		eval, evaluated := t.evaluations[s.ID]
		switch {
		case reveal && evaluated:
			sv.HoleCards = append(sv.HoleCards, s.HoleCards...)
			sv.Evaluation = &eval
			sv.HandLabel = eval.Label()
		case s.ID == viewer:
			sv.HoleCards = append(sv.HoleCards, s.HoleCards...)
		}
		view.Seats[i] = sv
	}
	return view
}
