// Package evaluator ranks poker hands of five to seven cards.
//
// Evaluate picks the best five-card hand and describes it as a Category plus
// a tiebreak sequence of rank values in descending significance. Compare
// orders two evaluations totally: category first, then tiebreak
// lexicographically.
package evaluator

import (
	"sort"

	"github.com/lox/pokerrooms/internal/deck"
)

// Category enumerates hand categories ordered from weakest to strongest.
type Category int

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns a human-readable category label
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// HandEvaluation is the rank of a hand: its category and the rank values
// needed to break ties within that category.
type HandEvaluation struct {
	Category Category `json:"category"`
	Tiebreak []int    `json:"tiebreak"`
}

// Label returns the category label of the evaluation
func (h HandEvaluation) Label() string {
	return h.Category.String()
}

type rankGroup struct {
	rank  int
	count int
}

// Evaluate returns the best five-card evaluation of the given cards.
// It is intended for 5 to 7 cards; fewer cards produce a partial high-card
// or pair evaluation.
func Evaluate(cards []deck.Card) HandEvaluation {
	if len(cards) == 0 {
		return HandEvaluation{Category: HighCard}
	}

	var rankCounts [15]int
	var suitRanks [4][]int
	for _, c := range cards {
		rankCounts[c.Rank]++
		suitRanks[c.Suit] = append(suitRanks[c.Suit], int(c.Rank))
	}

	groups := make([]rankGroup, 0, 7)
	distinct := make([]int, 0, 7)
	for r := int(deck.Ace); r >= int(deck.Two); r-- {
		if rankCounts[r] > 0 {
			groups = append(groups, rankGroup{rank: r, count: rankCounts[r]})
			distinct = append(distinct, r)
		}
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})

	var flushRanks []int
	for _, ranks := range suitRanks {
		if len(ranks) >= 5 {
			flushRanks = descending(ranks)
			break
		}
	}

	if flushRanks != nil {
		if high := straightHigh(flushRanks); high > 0 {
			return HandEvaluation{Category: StraightFlush, Tiebreak: []int{high}}
		}
	}

	if groups[0].count == 4 {
		return HandEvaluation{
			Category: FourOfAKind,
			Tiebreak: []int{groups[0].rank, highestExcept(distinct, groups[0].rank)},
		}
	}

	if groups[0].count == 3 && len(groups) > 1 && groups[1].count >= 2 {
		return HandEvaluation{
			Category: FullHouse,
			Tiebreak: []int{groups[0].rank, groups[1].rank},
		}
	}

	if flushRanks != nil {
		return HandEvaluation{Category: Flush, Tiebreak: flushRanks[:5]}
	}

	if high := straightHigh(distinct); high > 0 {
		return HandEvaluation{Category: Straight, Tiebreak: []int{high}}
	}

	if groups[0].count == 3 {
		return HandEvaluation{
			Category: ThreeOfAKind,
			Tiebreak: append([]int{groups[0].rank}, kickers(distinct, 2, groups[0].rank)...),
		}
	}

	if groups[0].count == 2 && len(groups) > 1 && groups[1].count == 2 {
		high, low := groups[0].rank, groups[1].rank
		return HandEvaluation{
			Category: TwoPair,
			Tiebreak: append([]int{high, low}, kickers(distinct, 1, high, low)...),
		}
	}

	if groups[0].count == 2 {
		return HandEvaluation{
			Category: Pair,
			Tiebreak: append([]int{groups[0].rank}, kickers(distinct, 3, groups[0].rank)...),
		}
	}

	return HandEvaluation{Category: HighCard, Tiebreak: kickers(distinct, 5)}
}

// Compare orders two evaluations. It returns 1 if a beats b, -1 if b beats a
// and 0 for a tie. Missing tiebreak positions count as zero.
func Compare(a, b HandEvaluation) int {
	if a.Category != b.Category {
		if a.Category > b.Category {
			return 1
		}
		return -1
	}
	n := max(len(a.Tiebreak), len(b.Tiebreak))
	for i := 0; i < n; i++ {
		av, bv := at(a.Tiebreak, i), at(b.Tiebreak, i)
		if av > bv {
			return 1
		}
		if av < bv {
			return -1
		}
	}
	return 0
}

func at(s []int, i int) int {
	if i < len(s) {
		return s[i]
	}
	return 0
}

// straightHigh returns the high card of the best five-rank run in ranks,
// which must be distinct and sorted descending. The wheel reports 5.
func straightHigh(ranks []int) int {
	var present [15]bool
	for _, r := range ranks {
		present[r] = true
	}
	present[1] = present[deck.Ace]

	for high := int(deck.Ace); high >= int(deck.Five); high-- {
		run := true
		for r := high; r > high-5; r-- {
			if !present[r] {
				run = false
				break
			}
		}
		if run {
			return high
		}
	}
	return 0
}

// kickers returns the n highest ranks of distinct that are not excluded
func kickers(distinct []int, n int, exclude ...int) []int {
	out := make([]int, 0, n)
	for _, r := range distinct {
		if len(out) == n {
			break
		}
		if contains(exclude, r) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func highestExcept(distinct []int, rank int) int {
	if k := kickers(distinct, 1, rank); len(k) == 1 {
		return k[0]
	}
	return 0
}

func descending(ranks []int) []int {
	out := make([]int, len(ranks))
	copy(out, ranks)
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

func contains(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
