package store

import "sync"

// Event names published on the store's internal bus
const (
	// EventOrderPlaced fires after a successful order creation, authenticated
	// or guest. The composed store subscribes the cart's Clear to it so the
	// order slice never mutates cart state directly.
	EventOrderPlaced = "order.placed"
)

// EventHandler reacts to a published event
type EventHandler func(event string)

// eventBus is a minimal synchronous in-process event bus used for
// cross-slice side effects. Handlers run on the publisher's goroutine.
type eventBus struct {
	mu       sync.RWMutex
	handlers map[string][]EventHandler
}

func newEventBus() *eventBus {
	return &eventBus{
		handlers: make(map[string][]EventHandler),
	}
}

// subscribe registers a handler for an event name
func (b *eventBus) subscribe(event string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[event] = append(b.handlers[event], handler)
}

// publish invokes every handler registered for the event name
func (b *eventBus) publish(event string) {
	b.mu.RLock()
	handlers := b.handlers[event]
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}
