// Package game implements the server-authoritative Texas Hold'em table.
//
// The main type is Table, which owns the seats, the deck, the board, the
// pot and the per-street betting state of one table. A table is rebuilt
// whenever a game starts and then plays any number of hands.
//
// # Basic Usage
//
//	t := game.RebuildTable(cfg, []game.SeatSpec{{Name: "Alice"}, {Name: "Bot 1", IsBot: true}},
//	    game.WithRNG(randutil.New(42)))
//	if err := t.StartHand(); err != nil {
//	    return err
//	}
//	if err := t.ApplyAction(t.ToAct(), game.RaiseTo(60)); errors.Is(err, game.ErrRejected) {
//	    // tell the actor; the table is unchanged
//	}
//	for t.HandActive() && t.IsRoundClosed() {
//	    t.AdvanceStreet()
//	}
//
// The advance loop is normally driven by the dealer package, which also
// schedules bot decisions.
//
// # Deterministic Testing
//
// Shuffles come from the *rand.Rand passed with WithRNG. WithDeck replaces
// deck creation entirely, for example with deck.NewStackedDeck to arrange
// exact hole cards and boards.
//
// # Architecture
//
//   - betting.go: blinds, fold, call/check, raise-to, round closure, turn order
//   - hand.go: dealing and street transitions
//   - pot.go: uncontested awards and tiered side-pot showdowns
//   - snapshot.go: per-viewer redacted views of the table
//   - events.go: EventBus carrying history, settlement and table-changed events
//
// A Table has no locks. Every call for one table must come from a single
// goroutine at a time; different tables share nothing.
package game
