package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/pokerrooms/internal/protocol"
	"github.com/lox/pokerrooms/internal/room"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192

	sendBufferSize = 256
)

var ErrAlreadyInRoom = errors.New("already in a room")

// Connection is one WebSocket client. It belongs to at most one room.
type Connection struct {
	id       string
	conn     *websocket.Conn
	send     chan *protocol.Message
	registry *room.Registry
	logger   *log.Logger
	ctx      context.Context
	cancel   context.CancelFunc

	closeOnce sync.Once
	room      *room.Room // owned by readPump
}

// NewConnection creates a new connection wrapper
func NewConnection(id string, conn *websocket.Conn, registry *room.Registry, logger *log.Logger) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	return &Connection{
		id:       id,
		conn:     conn,
		send:     make(chan *protocol.Message, sendBufferSize),
		registry: registry,
		logger:   logger.WithPrefix("conn").With("client", id),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// ID returns the client id
func (c *Connection) ID() string {
	return c.id
}

// Done is closed when the connection has been closed
func (c *Connection) Done() <-chan struct{} {
	return c.ctx.Done()
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		err = c.conn.Close()
	})
	return err
}

// Send queues a message for the client without blocking. A client that
// cannot keep up is disconnected.
func (c *Connection) Send(msg *protocol.Message) {
	select {
	case <-c.ctx.Done():
		return
	default:
	}

	select {
	case c.send <- msg:
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close()
	}
}

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() {
		if c.room != nil {
			c.room.Leave(c.id)
		}
		_ = c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}

		msg, err := protocol.Parse(frame)
		if err != nil {
			c.sendError(protocol.CodeBadRequest, err.Error())
			continue
		}
		c.handleMessage(msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Debug("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}

// handleMessage processes incoming messages from the client
func (c *Connection) handleMessage(msg *protocol.Message) {
	c.logger.Debug("Received message", "type", msg.Type)

	if msg.Type == protocol.TypeJoin {
		c.handleJoin(msg)
		return
	}
	if c.room == nil {
		c.sendError(protocol.CodeForbidden, "join a room first")
		return
	}
	c.room.Handle(c.id, msg)
}

func (c *Connection) handleJoin(msg *protocol.Message) {
	if c.room != nil {
		c.sendError(protocol.CodeConflict, ErrAlreadyInRoom.Error())
		return
	}

	var req protocol.Join
	if err := msg.Decode(&req); err != nil {
		c.sendError(protocol.CodeBadRequest, err.Error())
		return
	}

	r, err := c.registry.Join(c, req)
	if err != nil {
		c.logger.Info("Join refused", "room", req.Room, "error", err)
		c.sendError(room.ErrorCode(err), err.Error())
		return
	}
	c.room = r
}

// sendError sends an error message to the client
func (c *Connection) sendError(code, message string) {
	c.Send(protocol.ErrorMessage(code, message))
}
