package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequenceTickets(t *testing.T) {
	var seq sequence

	first := seq.next()
	assert.True(t, seq.current(first))

	second := seq.next()
	assert.False(t, seq.current(first), "older ticket must be invalidated")
	assert.True(t, seq.current(second))
}

func TestEventBus(t *testing.T) {
	bus := newEventBus()

	var fired []string
	bus.subscribe(EventOrderPlaced, func(event string) {
		fired = append(fired, event)
	})
	bus.subscribe(EventOrderPlaced, func(event string) {
		fired = append(fired, event+"/second")
	})

	bus.publish(EventOrderPlaced)
	assert.Equal(t, []string{EventOrderPlaced, EventOrderPlaced + "/second"}, fired)

	// Unknown events have no handlers and publish is a no-op
	bus.publish("order.refunded")
	assert.Len(t, fired, 2)
}
