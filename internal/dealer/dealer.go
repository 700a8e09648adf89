// Package dealer drives a table between decisions: it advances streets
// after every accepted action and plays bot seats on a delay.
package dealer

import (
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pokerrooms/internal/bot"
	"github.com/lox/pokerrooms/internal/game"
	"github.com/lox/pokerrooms/internal/randutil"
)

const (
	// MaxAdvanceIterations bounds the street-advance loop run after each action
	MaxAdvanceIterations = 50

	DefaultBotDelay = 900 * time.Millisecond
)

var (
	// ErrAdvanceLimit means the table kept reporting a closed round after
	// MaxAdvanceIterations street advances. It indicates a broken table.
	ErrAdvanceLimit = errors.New("street advance limit reached")
	ErrStopped      = errors.New("dealer stopped")
)

// Executor runs fn on the goroutine that owns the table. Timer callbacks
// are always delivered through it.
type Executor func(fn func())

// Dealer owns the turn flow of one table. Like the table, it is not safe
// for concurrent use: every method and every timer callback must run on the
// owner's goroutine, which the Executor guarantees for callbacks.
type Dealer struct {
	table  *game.Table
	policy bot.Policy
	rng    *rand.Rand
	clock  quartz.Clock
	exec   Executor
	logger *log.Logger

	botDelay      time.Duration
	nextHandDelay time.Duration

	botTimer      *quartz.Timer
	nextHandTimer *quartz.Timer
	generation    uint64
	stopped       bool
}

// Option configures a Dealer
type Option func(*Dealer)

func WithClock(clock quartz.Clock) Option {
	return func(d *Dealer) { d.clock = clock }
}

func WithPolicy(policy bot.Policy) Option {
	return func(d *Dealer) { d.policy = policy }
}

// WithRNG sets the random source handed to the bot policy
func WithRNG(rng *rand.Rand) Option {
	return func(d *Dealer) { d.rng = rng }
}

func WithExecutor(exec Executor) Option {
	return func(d *Dealer) { d.exec = exec }
}

func WithLogger(logger *log.Logger) Option {
	return func(d *Dealer) { d.logger = logger }
}

func WithBotDelay(delay time.Duration) Option {
	return func(d *Dealer) { d.botDelay = delay }
}

// WithNextHandDelay makes the dealer deal the next hand automatically this
// long after a hand settles. Zero disables automatic dealing.
func WithNextHandDelay(delay time.Duration) Option {
	return func(d *Dealer) { d.nextHandDelay = delay }
}

// New creates a dealer for table. Without WithExecutor, timer callbacks run
// directly on the clock's goroutine, which is only safe when nothing else
// touches the table concurrently.
func New(table *game.Table, opts ...Option) *Dealer {
	d := &Dealer{
		table:    table,
		clock:    quartz.NewReal(),
		botDelay: DefaultBotDelay,
		exec:     func(fn func()) { fn() },
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	d.logger = d.logger.WithPrefix("dealer")
	if d.policy == nil {
		d.policy = bot.NewHeuristic(d.logger)
	}
	if d.rng == nil {
		d.rng = randutil.New(randutil.Seed(0))
	}
	return d
}

// Table returns the table driven by the dealer
func (d *Dealer) Table() *game.Table {
	return d.table
}

// StartHand deals a new hand and runs it until a human must act
func (d *Dealer) StartHand() error {
	if d.stopped {
		return ErrStopped
	}
	d.cancelTimers()
	if err := d.table.StartHand(); err != nil {
		return err
	}
	return d.afterChange()
}

// Act applies a seat's action. Rejected actions return an error matching
// game.ErrRejected and leave the table and any pending bot timer alone.
func (d *Dealer) Act(seatID int, action game.Action) error {
	if d.stopped {
		return ErrStopped
	}
	if err := d.table.ApplyAction(seatID, action); err != nil {
		return err
	}
	d.cancelTimers()
	return d.afterChange()
}

// Vacate marks a seat as abandoned. If it is the seat's turn it is folded
// at once; otherwise it is folded when its turn comes.
func (d *Dealer) Vacate(seatID int) error {
	if err := d.table.Vacate(seatID); err != nil {
		return err
	}
	if d.stopped || !d.table.HandActive() || d.table.ToAct() != seatID {
		return nil
	}
	return d.Act(seatID, game.Fold())
}

// ScheduleNextHand arms the next-hand timer if automatic dealing is
// enabled, no hand is running and at least two seats can play.
func (d *Dealer) ScheduleNextHand() {
	if d.stopped || d.nextHandDelay <= 0 || d.table.HandActive() || d.table.FundedSeats() < 2 {
		return
	}
	d.cancelTimers()
	gen := d.generation
	d.nextHandTimer = d.clock.AfterFunc(d.nextHandDelay, func() {
		d.exec(func() { d.nextHandTurn(gen) })
	}, "dealer", "nextHand")
}

// Stop cancels every pending timer. A stopped dealer rejects all calls.
func (d *Dealer) Stop() {
	d.stopped = true
	d.cancelTimers()
}

// afterChange runs the advance loop, tells subscribers the table changed
// and decides what happens next.
func (d *Dealer) afterChange() error {
	err := advanceUntilOpen(d.table, MaxAdvanceIterations)
	d.table.EventBus().Publish(game.NewTableChangedEvent(d.table))
	if err != nil {
		d.logger.Error("advance loop stopped", "hand", d.table.HandNumber(), "error", err)
		return err
	}

	if !d.table.HandActive() {
		d.ScheduleNextHand()
		return nil
	}

	seatID := d.table.ToAct()
	seat, ok := d.table.Seat(seatID)
	switch {
	case !ok:
		return nil
	case seat.Away:
		d.logger.Info("folding for absent player", "seat", seatID, "name", seat.Name)
		return d.Act(seatID, game.Fold())
	case seat.IsBot:
		d.scheduleBot(seatID)
	}
	return nil
}

func (d *Dealer) scheduleBot(seatID int) {
	d.cancelTimers()
	gen := d.generation
	d.botTimer = d.clock.AfterFunc(d.botDelay, func() {
		d.exec(func() { d.botTurn(gen, seatID) })
	}, "dealer", "bot")
}

func (d *Dealer) botTurn(gen uint64, seatID int) {
	if d.stopped || gen != d.generation {
		d.logger.Debug("ignoring stale bot timer", "seat", seatID)
		return
	}
	d.botTimer = nil
	if !d.table.HandActive() || d.table.ToAct() != seatID {
		return
	}

	situation, err := bot.SituationFor(d.table, seatID)
	if err != nil {
		d.logger.Error("bot situation", "seat", seatID, "error", err)
		return
	}
	decision := d.policy.Decide(situation, d.rng)
	d.logger.Debug("bot acts",
		"seat", seatID,
		"action", decision.Action,
		"reasoning", decision.Reasoning)

	err = d.Act(seatID, decision.Action)
	if errors.Is(err, game.ErrRejected) {
		d.logger.Warn("bot action rejected, checking instead", "seat", seatID, "error", err)
		err = d.Act(seatID, game.Call())
	}
	if err != nil {
		d.logger.Error("bot action failed", "seat", seatID, "error", err)
	}
}

func (d *Dealer) nextHandTurn(gen uint64) {
	if d.stopped || gen != d.generation {
		return
	}
	d.nextHandTimer = nil
	if err := d.StartHand(); err != nil {
		d.logger.Info("next hand not dealt", "error", err)
	}
}

// cancelTimers stops pending timers and invalidates callbacks that have
// already fired but not yet run.
func (d *Dealer) cancelTimers() {
	d.generation++
	if d.botTimer != nil {
		d.botTimer.Stop()
		d.botTimer = nil
	}
	if d.nextHandTimer != nil {
		d.nextHandTimer.Stop()
		d.nextHandTimer = nil
	}
}

type advancer interface {
	HandActive() bool
	IsRoundClosed() bool
	AdvanceStreet() error
}

// advanceUntilOpen advances streets while the round is closed and the hand
// is still running.
func advanceUntilOpen(t advancer, limit int) error {
	for i := 0; t.HandActive() && t.IsRoundClosed(); i++ {
		if i >= limit {
			return ErrAdvanceLimit
		}
		if err := t.AdvanceStreet(); err != nil {
			return fmt.Errorf("advance street: %w", err)
		}
	}
	return nil
}
