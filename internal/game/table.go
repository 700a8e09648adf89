package game

import (
	"fmt"
	"io"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/pokerrooms/internal/deck"
	"github.com/lox/pokerrooms/internal/evaluator"
	"github.com/lox/pokerrooms/internal/randutil"
)

// Street represents the phase of a hand
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
)

func (s Street) String() string {
	switch s {
	case Preflop:
		return "preflop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	case Showdown:
		return "showdown"
	default:
		return "unknown"
	}
}

func (s Street) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Street) UnmarshalText(text []byte) error {
	for candidate := Preflop; candidate <= Showdown; candidate++ {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown street %q", text)
}

// Seat is a participant slot at the table. Seat ids are stable for the
// lifetime of a table and equal the seat's index.
type Seat struct {
	ID            int
	Name          string
	IsBot         bool
	Stack         int
	HoleCards     []deck.Card
	InHand        bool
	Folded        bool
	AllIn         bool
	Bet           int // this street
	TotalInvested int // this hand
	Away          bool
}

// Contender reports whether the seat can still win the pot
func (s *Seat) Contender() bool {
	return s.InHand && !s.Folded
}

// Actionable reports whether the seat can still be asked to act
func (s *Seat) Actionable() bool {
	return s.InHand && !s.Folded && !s.AllIn
}

// SeatSpec describes a seat when a table is rebuilt
type SeatSpec struct {
	Name  string
	IsBot bool
}

// ShowdownInfo is the banner shown after a hand settles
type ShowdownInfo struct {
	WinnerNames []string `json:"winnerNames"`
	Label       string   `json:"label"`
}

// Payout records chips moved to a seat from one pot tier
type Payout struct {
	Seat   int `json:"seat"`
	Amount int `json:"amount"`
	Tier   int `json:"tier"`
}

// Table is the complete state of one poker table. It has no internal
// locking: callers must serialize every method call per table.
type Table struct {
	cfg   RoomConfig
	seats []*Seat

	board      []deck.Card
	pot        int
	street     Street
	currentBet int
	acted      map[int]bool
	toAct      int

	dealerSeat     int
	smallBlindSeat int
	bigBlindSeat   int

	handNumber  int
	handActive  bool
	history     *History
	showdown    *ShowdownInfo
	revealAll   bool
	payouts     []Payout
	evaluations map[int]evaluator.HandEvaluation

	deck     *deck.Deck
	newDeck  func() *deck.Deck
	rng      *rand.Rand
	eventBus EventBus
	logger   *log.Logger
}

// TableOption configures a Table during RebuildTable
type TableOption func(*Table)

// WithRNG sets the generator used to shuffle every hand's deck
func WithRNG(rng *rand.Rand) TableOption {
	return func(t *Table) { t.rng = rng }
}

// WithDeck overrides deck creation. Tests use it with deck.NewStackedDeck
// to arrange specific cards.
func WithDeck(fn func() *deck.Deck) TableOption {
	return func(t *Table) { t.newDeck = fn }
}

// WithEventBus sets the bus the table publishes history and settlement events on
func WithEventBus(bus EventBus) TableOption {
	return func(t *Table) { t.eventBus = bus }
}

func WithLogger(logger *log.Logger) TableOption {
	return func(t *Table) { t.logger = logger }
}

func WithHistoryLimit(limit int) TableOption {
	return func(t *Table) { t.history = NewHistory(limit) }
}

// RebuildTable creates a table with every seat's stack reset to the
// configured starting stack. No hand is active until StartHand is called.
func RebuildTable(cfg RoomConfig, specs []SeatSpec, opts ...TableOption) *Table {
	cfg = cfg.Clamp()
	t := &Table{
		cfg:            cfg,
		acted:          make(map[int]bool),
		toAct:          -1,
		dealerSeat:     -1,
		smallBlindSeat: -1,
		bigBlindSeat:   -1,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.rng == nil {
		t.rng = randutil.New(randutil.Seed(0))
	}
	if t.newDeck == nil {
		t.newDeck = func() *deck.Deck { return deck.NewDeck(t.rng) }
	}
	if t.eventBus == nil {
		t.eventBus = NewEventBus()
	}
	if t.logger == nil {
		t.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if t.history == nil {
		t.history = NewHistory(DefaultHistoryLimit)
	}

	t.seats = make([]*Seat, len(specs))
	for i, spec := range specs {
		t.seats[i] = &Seat{
			ID:    i,
			Name:  spec.Name,
			IsBot: spec.IsBot,
			Stack: cfg.StartingStack,
		}
	}
	return t
}

// Config returns the (clamped) configuration the table was built with
func (t *Table) Config() RoomConfig { return t.cfg }

func (t *Table) EventBus() EventBus { return t.eventBus }

func (t *Table) HandNumber() int  { return t.handNumber }
func (t *Table) HandActive() bool { return t.handActive }
func (t *Table) Street() Street   { return t.street }
func (t *Table) Pot() int         { return t.pot }
func (t *Table) CurrentBet() int  { return t.currentBet }
func (t *Table) DealerSeat() int  { return t.dealerSeat }
func (t *Table) NumSeats() int    { return len(t.seats) }

// ToAct returns the seat expected to act next, or -1
func (t *Table) ToAct() int { return t.toAct }

// Board returns a copy of the community cards
func (t *Table) Board() []deck.Card {
	return append([]deck.Card(nil), t.board...)
}

// Seat returns a copy of a seat, including its hole cards. It is meant for
// engine collaborators (bot policies, the scheduler), never for clients.
func (t *Table) Seat(id int) (Seat, bool) {
	if id < 0 || id >= len(t.seats) {
		return Seat{}, false
	}
	s := *t.seats[id]
	s.HoleCards = append([]deck.Card(nil), s.HoleCards...)
	return s, true
}

// Payouts returns the payouts of the most recent settlement
func (t *Table) Payouts() []Payout {
	return append([]Payout(nil), t.payouts...)
}

// ShowdownInfo returns the banner of the most recent settlement, if any
func (t *Table) ShowdownInfo() (ShowdownInfo, bool) {
	if t.showdown == nil {
		return ShowdownInfo{}, false
	}
	return *t.showdown, true
}

// History returns the current hand's history lines
func (t *Table) History() []string {
	return t.history.Lines()
}

// FundedSeats counts seats that would be dealt into the next hand
func (t *Table) FundedSeats() int {
	n := 0
	for _, s := range t.seats {
		if s.Stack > 0 && !s.Away {
			n++
		}
	}
	return n
}

// TopUp adds chips to a seat. It is only legal between hands.
func (t *Table) TopUp(seatID, amount int) error {
	if t.handActive {
		return ErrHandInProgress
	}
	if seatID < 0 || seatID >= len(t.seats) {
		return ErrUnknownSeat
	}
	if amount <= 0 {
		return fmt.Errorf("top up %d: %w", amount, ErrInvalidAmount)
	}
	s := t.seats[seatID]
	s.Stack += amount
	if s.Stack > MaxStack {
		s.Stack = MaxStack
	}
	t.logf("%s tops up to %d", s.Name, s.Stack)
	return nil
}

// Vacate marks a seat whose player has left. The seat keeps its place so
// seat ids stay stable; it is folded when its turn comes and is not dealt
// into later hands.
func (t *Table) Vacate(seatID int) error {
	if seatID < 0 || seatID >= len(t.seats) {
		return ErrUnknownSeat
	}
	s := t.seats[seatID]
	if s.Away {
		return nil
	}
	s.Away = true
	t.logf("%s left the table", s.Name)
	return nil
}

func (t *Table) logf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	t.history.Append(line)
	t.logger.Debug(line, "hand", t.handNumber)
	t.eventBus.Publish(HistoryAppendedEvent{
		HandNumber: t.handNumber,
		Line:       line,
		timestamp:  time.Now(),
	})
}

func (t *Table) contenders() []*Seat {
	var out []*Seat
	for _, s := range t.seats {
		if s.Contender() {
			out = append(out, s)
		}
	}
	return out
}

// nextSeat scans clockwise from from (inclusive) for a seat matching ok
func (t *Table) nextSeat(from int, ok func(*Seat) bool) int {
	n := len(t.seats)
	if n == 0 {
		return -1
	}
	for i := 0; i < n; i++ {
		idx := ((from+i)%n + n) % n
		if ok(t.seats[idx]) {
			return idx
		}
	}
	return -1
}
