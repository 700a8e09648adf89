package game

import (
	"slices"
	"time"

	"github.com/lox/pokerrooms/internal/evaluator"
)

// UncontestedLabel is the showdown label used when every other seat folded
const UncontestedLabel = "uncontested"

// awardToSole gives the whole pot to the last contender without revealing
// any hand.
func (t *Table) awardToSole() {
	contenders := t.contenders()
	if len(contenders) == 0 {
		// every seat folded; nothing can win
		t.finishHand(true)
		return
	}
	winner := contenders[0]
	winner.Stack += t.pot
	t.payouts = []Payout{{Seat: winner.ID, Amount: t.pot, Tier: 0}}
	t.showdown = &ShowdownInfo{WinnerNames: []string{winner.Name}, Label: UncontestedLabel}
	t.revealAll = false
	t.logf("%s wins %d uncontested", winner.Name, t.pot)
	t.finishHand(true)
}

// settleShowdown evaluates every contender and distributes the pot tier by
// tier. Tiers are the distinct positive investment levels; each tier is won
// by the best hand among contenders who invested at least that level.
func (t *Table) settleShowdown() {
	contenders := t.contenders()
	t.evaluations = make(map[int]evaluator.HandEvaluation, len(contenders))
	ids := make([]int, 0, len(contenders))
	for _, s := range contenders {
		cards := append(append(s.HoleCards[:0:0], s.HoleCards...), t.board...)
		t.evaluations[s.ID] = evaluator.Evaluate(cards)
		ids = append(ids, s.ID)
	}

	overall := t.bestSeats(ids)

	var levels []int
	for _, s := range t.seats {
		if s.TotalInvested > 0 && !slices.Contains(levels, s.TotalInvested) {
			levels = append(levels, s.TotalInvested)
		}
	}
	slices.Sort(levels)

	t.payouts = nil
	prev := 0
	for tier, level := range levels {
		contributors := 0
		var eligible []int
		for _, s := range t.seats {
			if s.TotalInvested >= level {
				contributors++
				if s.Contender() {
					eligible = append(eligible, s.ID)
				}
			}
		}
		amount := (level - prev) * contributors
		prev = level

		winners := t.bestSeats(eligible)
		if len(winners) == 0 {
			// every contributor to this tier folded
			winners = overall
		}
		t.split(amount, winners, tier)
	}

	names := make([]string, len(overall))
	for i, id := range overall {
		names[i] = t.seats[id].Name
	}
	label := ""
	if len(overall) > 0 {
		label = t.evaluations[overall[0]].Category.String()
	}
	t.showdown = &ShowdownInfo{WinnerNames: names, Label: label}
	t.revealAll = true

	for _, p := range t.payouts {
		t.logf("%s wins %d with %s", t.seats[p.Seat].Name, p.Amount, t.evaluations[p.Seat].Label())
	}
	t.finishHand(false)
}

// bestSeats returns the ids, in ascending order, holding the best
// evaluation among ids.
func (t *Table) bestSeats(ids []int) []int {
	var best []int
	for _, id := range ids {
		if len(best) == 0 {
			best = []int{id}
			continue
		}
		switch evaluator.Compare(t.evaluations[id], t.evaluations[best[0]]) {
		case 1:
			best = []int{id}
		case 0:
			best = append(best, id)
		}
	}
	slices.Sort(best)
	return best
}

// split divides amount between winners. Each gets an equal share and the
// remainder goes out one chip at a time by ascending seat id.
func (t *Table) split(amount int, winners []int, tier int) {
	if amount <= 0 || len(winners) == 0 {
		return
	}
	winners = slices.Sorted(slices.Values(winners))
	share := amount / len(winners)
	remainder := amount % len(winners)
	for i, id := range winners {
		won := share
		if i < remainder {
			won++
		}
		if won == 0 {
			continue
		}
		t.seats[id].Stack += won
		t.payouts = append(t.payouts, Payout{Seat: id, Amount: won, Tier: tier})
	}
}

func (t *Table) finishHand(uncontested bool) {
	t.handActive = false
	t.toAct = -1
	for _, s := range t.seats {
		if s.Stack == 0 {
			s.InHand = false
		}
	}

	event := HandSettledEvent{
		HandNumber:  t.handNumber,
		Payouts:     t.Payouts(),
		Board:       t.Board(),
		Uncontested: uncontested,
		timestamp:   time.Now(),
	}
	if t.showdown != nil {
		event.Showdown = *t.showdown
	}
	t.logger.Info("hand settled",
		"hand", t.handNumber,
		"pot", t.pot,
		"winners", event.Showdown.WinnerNames,
		"label", event.Showdown.Label)
	t.eventBus.Publish(event)
}

// PayoutTotal sums the payouts of the last settlement
func PayoutTotal(payouts []Payout) int {
	total := 0
	for _, p := range payouts {
		total += p.Amount
	}
	return total
}
