package game

// pay moves up to amount from a seat's stack into the pot and returns what
// was actually paid. A seat left with no chips is all-in.
func (t *Table) pay(s *Seat, amount int) int {
	paid := max(0, min(amount, s.Stack))
	s.Stack -= paid
	s.Bet += paid
	s.TotalInvested += paid
	t.pot += paid
	if s.Stack == 0 {
		s.AllIn = true
	}
	return paid
}

// PostBlind forces a seat to put chips in, capped by its stack
func (t *Table) PostBlind(seatID, amount int, label string) {
	s := t.seats[seatID]
	paid := t.pay(s, amount)
	if s.AllIn {
		t.logf("%s posts %s %d and is all-in", s.Name, label, paid)
		return
	}
	t.logf("%s posts %s %d", s.Name, label, paid)
}

// Fold folds a seat. When only one contender remains the pot is awarded
// immediately and the hand ends.
func (t *Table) Fold(seatID int) {
	s := t.seats[seatID]
	s.Folded = true
	t.acted[seatID] = true
	t.logf("%s folds", s.Name)

	if len(t.contenders()) <= 1 {
		t.awardToSole()
	}
}

// CallOrCheck matches the current bet, or checks when nothing is owed
func (t *Table) CallOrCheck(seatID int) {
	s := t.seats[seatID]
	owed := t.currentBet - s.Bet
	t.acted[seatID] = true

	if owed <= 0 {
		t.logf("%s checks", s.Name)
		return
	}
	paid := t.pay(s, owed)
	if s.AllIn {
		t.logf("%s calls %d and is all-in", s.Name, paid)
		return
	}
	t.logf("%s calls %d", s.Name, paid)
}

// RaiseTo raises the seat's bet for this street to target. A target at or
// below the current bet is treated as CallOrCheck. A raise reopens action:
// every other live seat must act again.
func (t *Table) RaiseTo(seatID, target int) {
	if target <= t.currentBet {
		t.CallOrCheck(seatID)
		return
	}

	s := t.seats[seatID]
	paid := t.pay(s, target-s.Bet)
	if s.Bet <= t.currentBet {
		// short all-in that does not exceed the bet is a call
		t.acted[seatID] = true
		t.logf("%s calls %d and is all-in", s.Name, paid)
		return
	}

	t.currentBet = s.Bet
	clear(t.acted)
	t.acted[seatID] = true
	if s.AllIn {
		t.logf("%s raises to %d and is all-in", s.Name, s.Bet)
		return
	}
	t.logf("%s raises to %d", s.Name, s.Bet)
}

// IsRoundClosed reports whether the current betting round is complete.
// It is closed when at most one contender remains or when every actionable
// seat has acted and matched the current bet. A lone actionable seat facing
// only all-in opponents still has to act on every street.
func (t *Table) IsRoundClosed() bool {
	if len(t.contenders()) <= 1 {
		return true
	}
	for _, s := range t.seats {
		if s.Actionable() && (s.Bet != t.currentBet || !t.acted[s.ID]) {
			return false
		}
	}
	return true
}

// NextActor scans clockwise from seat from, inclusive, and returns the
// first seat that can act, or -1 if none can.
func (t *Table) NextActor(from int) int {
	return t.nextSeat(from, (*Seat).Actionable)
}

// ApplyAction applies a seat's action. A non-nil error means the action was
// rejected and the table is unchanged; such errors match ErrRejected.
func (t *Table) ApplyAction(seatID int, action Action) error {
	if !t.handActive {
		return ErrHandNotActive
	}
	if seatID < 0 || seatID >= len(t.seats) {
		return ErrUnknownSeat
	}
	if !t.seats[seatID].Actionable() {
		return ErrSeatNotActionable
	}
	if seatID != t.toAct {
		return ErrNotYourTurn
	}

	switch action.Type {
	case ActionFold:
		t.Fold(seatID)
	case ActionCallOrCheck:
		t.CallOrCheck(seatID)
	case ActionRaiseTo:
		t.RaiseTo(seatID, action.Amount)
	default:
		return ErrUnknownAction
	}

	if t.handActive {
		t.toAct = t.NextActor(seatID + 1)
	}
	return nil
}
