// Package room hosts password-protected poker rooms: a lobby of human
// members, host-controlled configuration and, once started, a table driven
// by a dealer.
//
// Every room owns one goroutine. Client messages, disconnects and dealer
// timer callbacks are all queued onto it, so the table and lobby state are
// never touched concurrently and rooms never share state.
package room

import (
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/pokerrooms/internal/dealer"
	"github.com/lox/pokerrooms/internal/game"
	"github.com/lox/pokerrooms/internal/protocol"
	"github.com/lox/pokerrooms/internal/randutil"
)

const actionQueueSize = 256

// Conn is a client connection as seen by a room
type Conn interface {
	ID() string
	Send(msg *protocol.Message)
}

type member struct {
	conn  Conn
	name  string
	ready bool
	seat  int // table seat, -1 until a game starts with this member
}

// Room is one lobby and, once started, its table
type Room struct {
	code     string
	password string
	opts     Options
	logger   *log.Logger
	rng      *rand.Rand

	members []*member
	hostID  string
	config  protocol.LobbyConfig
	started bool
	table   *game.Table
	dealer  *dealer.Dealer

	onEmpty func(*Room)
	closed  bool
	actions chan func()
	done    chan struct{}
}

func newRoom(code, password string, rng *rand.Rand, opts Options, onEmpty func(*Room)) *Room {
	cfg := opts.DefaultConfig
	if cfg == (protocol.LobbyConfig{}) {
		cfg = DefaultLobbyConfig()
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	r := &Room{
		code:     code,
		password: password,
		opts:     opts,
		logger:   opts.Logger.WithPrefix("room").With("room", code),
		rng:      rng,
		config:   ClampConfig(cfg),
		onEmpty:  onEmpty,
		actions:  make(chan func(), actionQueueSize),
		done:     make(chan struct{}),
	}
	go r.run()
	return r
}

// Code returns the room code
func (r *Room) Code() string {
	return r.code
}

// Done is closed once the room has shut down
func (r *Room) Done() <-chan struct{} {
	return r.done
}

func (r *Room) run() {
	defer close(r.done)
	for fn := range r.actions {
		fn()
		if r.closed {
			return
		}
	}
}

// exec queues fn onto the room goroutine. It reports false when the room
// has already shut down.
func (r *Room) exec(fn func()) bool {
	select {
	case <-r.done:
		return false
	default:
	}
	select {
	case r.actions <- fn:
		return true
	case <-r.done:
		return false
	}
}

// call runs fn on the room goroutine and waits for its result
func (r *Room) call(fn func() error) error {
	errc := make(chan error, 1)
	if !r.exec(func() { errc <- fn() }) {
		return ErrRoomClosed
	}
	select {
	case err := <-errc:
		return err
	case <-r.done:
		select {
		case err := <-errc:
			return err
		default:
			return ErrRoomClosed
		}
	}
}

// Handle processes a message from a member. Failures are reported to the
// sender as error messages.
func (r *Room) Handle(clientID string, msg *protocol.Message) {
	r.exec(func() {
		if err := r.handle(clientID, msg); err != nil {
			r.logger.Debug("message failed", "client", clientID, "type", msg.Type, "error", err)
			r.sendTo(clientID, protocol.ErrorMessage(ErrorCode(err), err.Error()))
		}
	})
}

// Leave removes a member. Unknown ids are ignored.
func (r *Room) Leave(clientID string) {
	r.exec(func() { r.leave(clientID) })
}

// Close shuts the room down and waits for its goroutine to exit
func (r *Room) Close() {
	r.exec(r.teardown)
	<-r.done
}

func (r *Room) join(conn Conn, name, password string) error {
	return r.call(func() error {
		if r.closed {
			return ErrRoomClosed
		}
		if password != r.password {
			return ErrWrongPassword
		}
		if r.find(conn.ID()) >= 0 {
			return ErrAlreadyJoined
		}
		if len(r.members) >= game.MaxSeats {
			return ErrRoomFull
		}

		m := &member{conn: conn, name: name, seat: -1}
		r.members = append(r.members, m)
		if r.hostID == "" {
			r.hostID = conn.ID()
		}
		r.logger.Info("member joined", "client", conn.ID(), "name", name, "members", len(r.members))

		conn.Send(protocol.MustMessage(protocol.TypeWelcome, protocol.Welcome{
			ClientID: conn.ID(),
			Room:     r.code,
			Name:     name,
			HostID:   r.hostID,
			IsHost:   r.hostID == conn.ID(),
			Seat:     len(r.members) - 1,
		}))
		r.broadcastLobby()
		if r.started {
			r.sendState(m)
		}
		return nil
	})
}

func (r *Room) leave(clientID string) {
	idx := r.find(clientID)
	if idx < 0 {
		return
	}
	m := r.members[idx]
	r.members = append(r.members[:idx], r.members[idx+1:]...)
	r.logger.Info("member left", "client", clientID, "name", m.name, "members", len(r.members))

	if r.dealer != nil && m.seat >= 0 {
		if err := r.dealer.Vacate(m.seat); err != nil {
			r.logger.Warn("vacating seat", "seat", m.seat, "error", err)
		}
	}

	if len(r.members) == 0 {
		r.teardown()
		return
	}

	if r.hostID == clientID {
		r.hostID = r.members[0].conn.ID()
		r.logger.Info("host changed", "host", r.hostID)
		r.broadcast(protocol.MustMessage(protocol.TypeHostChanged, protocol.HostChanged{HostID: r.hostID}))
	}
	r.broadcastLobby()
}

func (r *Room) teardown() {
	if r.closed {
		return
	}
	r.closed = true
	if r.dealer != nil {
		r.dealer.Stop()
	}
	if r.onEmpty != nil {
		r.onEmpty(r)
	}
	r.logger.Info("room closed")
}

func (r *Room) handle(clientID string, msg *protocol.Message) error {
	idx := r.find(clientID)
	if idx < 0 {
		return ErrNotMember
	}
	m := r.members[idx]

	switch msg.Type {
	case protocol.TypeGetLobby:
		m.conn.Send(r.lobbyMessage())
		if r.started {
			r.sendState(m)
		}
		return nil

	case protocol.TypePingHost:
		m.conn.Send(protocol.MustMessage(protocol.TypeHostChanged, protocol.HostChanged{HostID: r.hostID}))
		return nil

	case protocol.TypeReady, protocol.TypeUnready:
		m.ready = msg.Type == protocol.TypeReady
		r.broadcastLobby()
		return nil

	case protocol.TypeChat:
		var chat protocol.Chat
		if err := msg.Decode(&chat); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedFields, err)
		}
		text := truncate(strings.TrimSpace(chat.Text), MaxChatLength)
		if text == "" {
			return nil
		}
		r.broadcast(protocol.MustMessage(protocol.TypeChat, protocol.Chat{Name: m.name, Text: text}))
		return nil

	case protocol.TypeHostConfig:
		if clientID != r.hostID {
			return ErrNotHost
		}
		var update protocol.HostConfig
		if err := msg.Decode(&update); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedFields, err)
		}
		r.config = applyHostConfig(r.config, update)
		r.broadcastLobby()
		return nil

	case protocol.TypeStart:
		if clientID != r.hostID {
			return ErrNotHost
		}
		return r.start()

	case protocol.TypeAction:
		var req protocol.Action
		if err := msg.Decode(&req); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedFields, err)
		}
		if r.dealer == nil {
			return ErrNotStarted
		}
		if m.seat < 0 {
			return ErrNotSeated
		}
		action, err := game.ParseAction(req.Action, req.Amount)
		if err != nil {
			return err
		}
		return r.dealer.Act(m.seat, action)

	case protocol.TypeTopUp:
		if clientID != r.hostID {
			return ErrNotHost
		}
		if r.dealer == nil {
			return ErrNotStarted
		}
		var req protocol.TopUp
		if err := msg.Decode(&req); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedFields, err)
		}
		if err := r.table.TopUp(req.Seat, req.Amount); err != nil {
			return err
		}
		r.broadcastState()
		r.dealer.ScheduleNextHand()
		return nil

	default:
		return fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
	}
}

// start rebuilds the table from the current members and config and deals
// the first hand. Starting again replaces the running game.
func (r *Room) start() error {
	cfg := RoomConfig(r.config)
	if len(r.members)+cfg.BotCount < 2 {
		return ErrNotEnoughSeats
	}
	if len(r.members)+cfg.BotCount > game.MaxSeats {
		return ErrTooManySeats
	}

	if r.dealer != nil {
		r.dealer.Stop()
	}

	specs := make([]game.SeatSpec, 0, len(r.members)+cfg.BotCount)
	for i, m := range r.members {
		m.seat = i
		specs = append(specs, game.SeatSpec{Name: m.name})
	}
	for i := 1; i <= cfg.BotCount; i++ {
		specs = append(specs, game.SeatSpec{Name: fmt.Sprintf("Bot %d", i), IsBot: true})
	}

	bus := game.NewEventBus()
	bus.Subscribe(r)
	r.table = game.RebuildTable(cfg, specs,
		game.WithRNG(randutil.Child(r.rng)),
		game.WithEventBus(bus),
		game.WithLogger(r.logger),
		game.WithHistoryLimit(r.opts.HistoryLimit))

	dealerOpts := []dealer.Option{
		dealer.WithRNG(randutil.Child(r.rng)),
		dealer.WithExecutor(func(fn func()) { r.exec(fn) }),
		dealer.WithLogger(r.logger),
		dealer.WithNextHandDelay(r.opts.NextHandDelay),
	}
	if r.opts.Clock != nil {
		dealerOpts = append(dealerOpts, dealer.WithClock(r.opts.Clock))
	}
	if r.opts.Policy != nil {
		dealerOpts = append(dealerOpts, dealer.WithPolicy(r.opts.Policy))
	}
	if r.opts.BotDelay > 0 {
		dealerOpts = append(dealerOpts, dealer.WithBotDelay(r.opts.BotDelay))
	}
	r.dealer = dealer.New(r.table, dealerOpts...)
	r.started = true

	r.logger.Info("game started",
		"humans", len(r.members),
		"bots", cfg.BotCount,
		"stack", cfg.StartingStack,
		"blinds", game.FormatBlinds(cfg.SmallBlind, cfg.BigBlind))

	r.broadcastLobby()
	if err := r.dealer.StartHand(); err != nil {
		if errors.Is(err, game.ErrNotEnoughPlayers) {
			return ErrNotEnoughSeats
		}
		return err
	}
	return nil
}

// OnEvent relays table events to the members. Events are published from
// within table calls, which only happen on the room goroutine.
func (r *Room) OnEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.TableChangedEvent:
		r.broadcastState()
	case game.HandSettledEvent:
		r.broadcast(protocol.MustMessage(protocol.TypeHandSettled, protocol.HandSettled{
			HandNumber:  e.HandNumber,
			Showdown:    e.Showdown,
			Payouts:     e.Payouts,
			Uncontested: e.Uncontested,
		}))
	case game.HistoryAppendedEvent:
		r.broadcast(protocol.MustMessage(protocol.TypeHistory, protocol.History{
			HandNumber: e.HandNumber,
			Line:       e.Line,
		}))
	}
}

func (r *Room) find(clientID string) int {
	for i, m := range r.members {
		if m.conn.ID() == clientID {
			return i
		}
	}
	return -1
}

func (r *Room) sendTo(clientID string, msg *protocol.Message) {
	if idx := r.find(clientID); idx >= 0 {
		r.members[idx].conn.Send(msg)
	}
}

func (r *Room) broadcast(msg *protocol.Message) {
	for _, m := range r.members {
		m.conn.Send(msg)
	}
}

func (r *Room) lobbyMessage() *protocol.Message {
	members := make([]protocol.Member, len(r.members))
	for i, m := range r.members {
		members[i] = protocol.Member{
			ID:    m.conn.ID(),
			Name:  m.name,
			Seat:  i,
			Ready: m.ready,
		}
	}
	return protocol.MustMessage(protocol.TypeLobby, protocol.Lobby{
		Room:    r.code,
		HostID:  r.hostID,
		Members: members,
		Config:  r.config,
		Started: r.started,
	})
}

func (r *Room) broadcastLobby() {
	r.broadcast(r.lobbyMessage())
}

func (r *Room) sendState(m *member) {
	if r.table == nil {
		return
	}
	m.conn.Send(protocol.MustMessage(protocol.TypeState, protocol.State{
		Seat:  m.seat,
		Table: r.table.Snapshot(m.seat),
	}))
}

func (r *Room) broadcastState() {
	for _, m := range r.members {
		r.sendState(m)
	}
}
