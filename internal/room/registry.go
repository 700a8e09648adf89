package room

import (
	"errors"
	"io"
	rand "math/rand/v2"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lox/pokerrooms/internal/protocol"
	"github.com/lox/pokerrooms/internal/randutil"
)

const joinAttempts = 3

// Registry maps room codes to live rooms. Rooms are created by their first
// join and removed when their last member leaves. Each room draws its own
// generator from the registry's, so a fixed seed replays every room without
// two rooms dealing the same cards.
type Registry struct {
	mu     sync.Mutex
	rooms  map[string]*Room
	rng    *rand.Rand
	opts   Options
	logger *log.Logger
}

// NewRegistry creates an empty registry whose rooms share opts
func NewRegistry(opts Options) *Registry {
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Registry{
		rooms:  make(map[string]*Room),
		rng:    randutil.New(randutil.Seed(opts.Seed)),
		opts:   opts,
		logger: opts.Logger.WithPrefix("registry"),
	}
}

// NormalizeJoin trims and truncates the fields of a join request. It fails
// when any field is empty.
func NormalizeJoin(req protocol.Join) (protocol.Join, error) {
	req = protocol.Join{
		Room:     truncate(strings.TrimSpace(req.Room), MaxCodeLength),
		Name:     truncate(strings.TrimSpace(req.Name), MaxNameLength),
		Password: truncate(strings.TrimSpace(req.Password), MaxPasswordLength),
	}
	if req.Room == "" || req.Name == "" || req.Password == "" {
		return req, ErrMissingFields
	}
	return req, nil
}

// Join adds conn to the room named in req, creating the room with req's
// password if it does not exist.
func (g *Registry) Join(conn Conn, req protocol.Join) (*Room, error) {
	req, err := NormalizeJoin(req)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < joinAttempts; attempt++ {
		r := g.getOrCreate(req.Room, req.Password)
		err := r.join(conn, req.Name, req.Password)
		switch {
		case errors.Is(err, ErrRoomClosed):
			// lost a race with the last member leaving
			g.remove(r)
			continue
		case err != nil:
			return nil, err
		}
		return r, nil
	}
	return nil, ErrRoomClosed
}

// Room returns the live room with the given code
func (g *Registry) Room(code string) (*Room, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.rooms[code]
	return r, ok
}

// Codes returns the codes of all live rooms, sorted
func (g *Registry) Codes() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	codes := make([]string, 0, len(g.rooms))
	for code := range g.rooms {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Len returns the number of live rooms
func (g *Registry) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.rooms)
}

// Close shuts down every room
func (g *Registry) Close() {
	g.mu.Lock()
	rooms := make([]*Room, 0, len(g.rooms))
	for _, r := range g.rooms {
		rooms = append(rooms, r)
	}
	g.mu.Unlock()

	for _, r := range rooms {
		r.Close()
	}
}

func (g *Registry) getOrCreate(code, password string) *Room {
	g.mu.Lock()
	defer g.mu.Unlock()
	if r, ok := g.rooms[code]; ok {
		return r
	}
	r := newRoom(code, password, randutil.Child(g.rng), g.opts, g.remove)
	g.rooms[code] = r
	g.logger.Info("room created", "room", code, "rooms", len(g.rooms))
	return r
}

func (g *Registry) remove(r *Room) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if current, ok := g.rooms[r.code]; ok && current == r {
		delete(g.rooms, r.code)
		g.logger.Info("room removed", "room", r.code, "rooms", len(g.rooms))
	}
}
