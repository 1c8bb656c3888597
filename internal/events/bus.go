package events

import (
	"github.com/kelindar/event"
)

// Bus wraps kelindar/event dispatcher for event broadcasting
type Bus struct {
	dispatcher *event.Dispatcher
}

// New creates a new event bus
func New() *Bus {
	return &Bus{
		dispatcher: event.NewDispatcher(),
	}
}

// Publish publishes an event to all subscribers
// Usage: bus.Publish(FrameRenderedEvent{...})
func (b *Bus) Publish(ev Event) {
	if b == nil {
		return
	}
	switch e := ev.(type) {
	case FrameRenderedEvent:
		event.Publish(b.dispatcher, e)
	case FrameRejectedEvent:
		event.Publish(b.dispatcher, e)
	case ConfigChangedEvent:
		event.Publish(b.dispatcher, e)
	case PortEvent:
		event.Publish(b.dispatcher, e)
	}
}

// Subscribe subscribes to events with a handler function.
// The handler type determines which events it receives.
// Returns an unsubscribe function.
// Usage: unsub := bus.Subscribe(func(e FrameRejectedEvent) { ... })
func (b *Bus) Subscribe(handler any) func() {
	switch h := handler.(type) {
	case func(FrameRenderedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(FrameRejectedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(ConfigChangedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(PortEvent):
		return event.Subscribe(b.dispatcher, h)
	default:
		// Unknown handler types get a no-op unsubscribe
		return func() {}
	}
}

