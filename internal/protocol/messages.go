// Package protocol defines the JSON messages exchanged between room clients
// and the server.
package protocol

import (
	"github.com/lox/pokerrooms/internal/game"
)

// MessageType identifies the type of message
type MessageType string

const (
	// Client -> Server
	TypeJoin       MessageType = "join"
	TypeGetLobby   MessageType = "getLobby"
	TypePingHost   MessageType = "pingHost"
	TypeReady      MessageType = "ready"
	TypeUnready    MessageType = "unready"
	TypeChat       MessageType = "chat"
	TypeHostConfig MessageType = "hostConfig"
	TypeStart      MessageType = "start"
	TypeAction     MessageType = "action"
	TypeTopUp      MessageType = "topUp"

	// Server -> Client
	TypeWelcome     MessageType = "welcome"
	TypeLobby       MessageType = "lobby"
	TypeHostChanged MessageType = "hostChanged"
	TypeState       MessageType = "state"
	TypeHandSettled MessageType = "handSettled"
	TypeHistory     MessageType = "history"
	TypeError       MessageType = "error"
)

// Client -> Server payloads

// Join asks to enter a room. The first joiner of a room sets its password.
type Join struct {
	Room     string `json:"room"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Chat is sent by a client and relayed to the room with the sender's name
type Chat struct {
	Name string `json:"name,omitempty"`
	Text string `json:"text"`
}

// LobbyConfig is the host-editable game configuration
type LobbyConfig struct {
	Bots   int    `json:"bots"`
	Stack  int    `json:"stack"`
	Blinds string `json:"blinds"` // "sb,bb"
}

// HostConfig carries a partial config update; nil fields keep their value
type HostConfig struct {
	Bots   *int    `json:"bots,omitempty"`
	Stack  *int    `json:"stack,omitempty"`
	Blinds *string `json:"blinds,omitempty"`
}

// Action is a betting decision for the sender's seat
type Action struct {
	Action string `json:"action"` // fold, check, call, raise
	Amount int    `json:"amount,omitempty"`
}

// TopUp adds chips to a seat between hands (host only)
type TopUp struct {
	Seat   int `json:"seat"`
	Amount int `json:"amount"`
}

// Server -> Client payloads

type Welcome struct {
	ClientID string `json:"clientId"`
	Room     string `json:"room"`
	Name     string `json:"name"`
	HostID   string `json:"hostId"`
	IsHost   bool   `json:"isHost"`
	Seat     int    `json:"seat"`
}

// Member is one human in a lobby
type Member struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Seat  int    `json:"seat"`
	Ready bool   `json:"ready"`
}

type Lobby struct {
	Room    string      `json:"room"`
	HostID  string      `json:"hostId"`
	Members []Member    `json:"members"`
	Config  LobbyConfig `json:"config"`
	Started bool        `json:"started"`
}

type HostChanged struct {
	HostID string `json:"hostId"`
}

// State is the table as the receiving client may see it
type State struct {
	Seat  int                  `json:"seat"` // -1 when spectating
	Table game.PublicTableView `json:"table"`
}

type HandSettled struct {
	HandNumber  int               `json:"handNumber"`
	Showdown    game.ShowdownInfo `json:"showdown"`
	Payouts     []game.Payout     `json:"payouts"`
	Uncontested bool              `json:"uncontested"`
}

type History struct {
	HandNumber int    `json:"handNumber"`
	Line       string `json:"line"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes
const (
	CodeBadRequest = "bad_request"
	CodeForbidden  = "forbidden"
	CodeRejected   = "rejected"
	CodeConflict   = "conflict"
	CodeInternal   = "internal"
)
