package game

import (
	"time"

	"github.com/lox/pokerrooms/internal/deck"
)

// EventType identifies a table event
type EventType string

const (
	EventTypeTableChanged    EventType = "table_changed"
	EventTypeHandSettled     EventType = "hand_settled"
	EventTypeHistoryAppended EventType = "history_appended"
)

func (et EventType) String() string {
	return string(et)
}

// GameEvent represents anything a table publishes to its collaborators
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// TableChangedEvent signals that subscribers should send every viewer a
// fresh snapshot. It is published once per accepted action after all
// street advancement has finished.
type TableChangedEvent struct {
	HandNumber int
	Street     Street
	ToAct      int
	timestamp  time.Time
}

func (e TableChangedEvent) EventType() EventType { return EventTypeTableChanged }
func (e TableChangedEvent) Timestamp() time.Time { return e.timestamp }

// NewTableChangedEvent creates a table changed event for the table's current state
func NewTableChangedEvent(t *Table) TableChangedEvent {
	return TableChangedEvent{
		HandNumber: t.handNumber,
		Street:     t.street,
		ToAct:      t.toAct,
		timestamp:  time.Now(),
	}
}

// HandSettledEvent is published when a hand's pot has been distributed
type HandSettledEvent struct {
	HandNumber  int
	Showdown    ShowdownInfo
	Payouts     []Payout
	Board       []deck.Card
	Uncontested bool
	timestamp   time.Time
}

func (e HandSettledEvent) EventType() EventType { return EventTypeHandSettled }
func (e HandSettledEvent) Timestamp() time.Time { return e.timestamp }

// HistoryAppendedEvent carries a single new history line
type HistoryAppendedEvent struct {
	HandNumber int
	Line       string
	timestamp  time.Time
}

func (e HistoryAppendedEvent) EventType() EventType { return EventTypeHistoryAppended }
func (e HistoryAppendedEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber receives published events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventSubscriberFunc adapts a function to EventSubscriber
type EventSubscriberFunc func(event GameEvent)

func (f EventSubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a synchronous in-memory event bus. Like the table it
// serves, it must only be used from one goroutine at a time.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber. Function subscribers are not
// comparable and can only be removed when wrapped in a pointer type.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers in subscription order
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
