package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSubscriber struct {
	events []GameEvent
}

func (r *recordingSubscriber) OnEvent(event GameEvent) {
	r.events = append(r.events, event)
}

func (r *recordingSubscriber) ofType(et EventType) []GameEvent {
	var out []GameEvent
	for _, e := range r.events {
		if e.EventType() == et {
			out = append(out, e)
		}
	}
	return out
}

func TestTablePublishesHistoryAndSettlement(t *testing.T) {
	t.Parallel()

	bus := NewEventBus()
	rec := &recordingSubscriber{}
	bus.Subscribe(rec)

	tbl := newTestTable(t, 2, WithEventBus(bus))
	require.NoError(t, tbl.StartHand())
	require.NoError(t, tbl.ApplyAction(0, Fold()))

	history := rec.ofType(EventTypeHistoryAppended)
	require.Len(t, history, len(tbl.History()))
	for i, e := range history {
		appended := e.(HistoryAppendedEvent)
		assert.Equal(t, tbl.History()[i], appended.Line)
		assert.Equal(t, 1, appended.HandNumber)
		assert.False(t, appended.Timestamp().IsZero())
	}

	settled := rec.ofType(EventTypeHandSettled)
	require.Len(t, settled, 1)
	event := settled[0].(HandSettledEvent)
	assert.True(t, event.Uncontested)
	assert.Equal(t, []string{"Bob"}, event.Showdown.WinnerNames)
	assert.Equal(t, []Payout{{Seat: 1, Amount: 30}}, event.Payouts)
}

func TestEventBusUnsubscribe(t *testing.T) {
	t.Parallel()

	bus := NewEventBus()
	first, second := &recordingSubscriber{}, &recordingSubscriber{}
	bus.Subscribe(first)
	bus.Subscribe(second)
	bus.Unsubscribe(first)

	bus.Publish(TableChangedEvent{HandNumber: 3})
	assert.Empty(t, first.events)
	require.Len(t, second.events, 1)
	assert.Equal(t, EventTypeTableChanged, second.events[0].EventType())
}

func TestHistoryIsBounded(t *testing.T) {
	t.Parallel()

	h := NewHistory(2)
	h.Append("one")
	h.Append("two")
	h.Append("three")
	assert.Equal(t, []string{"two", "three"}, h.Lines())
	assert.Equal(t, 2, h.Len())

	h.Reset()
	assert.Empty(t, h.Lines())
	assert.Equal(t, DefaultHistoryLimit, NewHistory(0).limit)
}
