package protocol

import (
	"encoding/json"
	"fmt"
	"time"
)

// Message is the envelope of every frame on the wire
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data any) (*Message, error) {
	msg := &Message{Type: messageType, Timestamp: time.Now()}
	if data == nil {
		return msg, nil
	}
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", messageType, err)
	}
	msg.Data = dataBytes
	return msg, nil
}

// MustMessage is NewMessage for payloads that cannot fail to marshal
func MustMessage(messageType MessageType, data any) *Message {
	msg, err := NewMessage(messageType, data)
	if err != nil {
		panic(err)
	}
	return msg
}

// Decode unmarshals the message data into v. Empty data leaves v untouched.
func (m *Message) Decode(v any) error {
	if len(m.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(m.Data, v); err != nil {
		return fmt.Errorf("decode %s: %w", m.Type, err)
	}
	return nil
}

// Encode returns the JSON encoding of the whole envelope
func (m *Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// Parse decodes an envelope from a frame
func Parse(frame []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(frame, &msg); err != nil {
		return nil, fmt.Errorf("parse message: %w", err)
	}
	if msg.Type == "" {
		return nil, fmt.Errorf("parse message: missing type")
	}
	return &msg, nil
}

// ErrorMessage builds an error message for a client
func ErrorMessage(code, message string) *Message {
	return MustMessage(TypeError, Error{Code: code, Message: message})
}
