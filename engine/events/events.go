// Package events is a plain observer bus for session state-change
// notifications. Events published while handlers run are queued and
// delivered after the current event, so handlers never recurse.
package events

import "github.com/nathoo/ashaether/types"

// Handler receives a published event.
type Handler func(types.Event)

// Bus delivers events to handlers subscribed by type or to all events.
type Bus struct {
	byType      map[string][]Handler
	all         []Handler
	dispatching bool
	queue       []types.Event
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{byType: make(map[string][]Handler)}
}

// Subscribe registers h for events of the given type.
func (b *Bus) Subscribe(eventType string, h Handler) {
	b.byType[eventType] = append(b.byType[eventType], h)
}

// SubscribeAll registers h for every event.
func (b *Bus) SubscribeAll(h Handler) {
	b.all = append(b.all, h)
}

// Publish delivers e to its handlers. Called from inside a handler, the event
// is queued until the outer delivery finishes.
func (b *Bus) Publish(e types.Event) {
	b.queue = append(b.queue, e)
	if b.dispatching {
		return
	}

	b.dispatching = true
	defer func() { b.dispatching = false }()

	for len(b.queue) > 0 {
		next := b.queue[0]
		b.queue = b.queue[1:]
		for _, h := range b.byType[next.Type] {
			h(next)
		}
		for _, h := range b.all {
			h(next)
		}
	}
}
