package events

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/wrenfall/rpg-core/internal/errors"
)

// Listener processes events of the types it subscribed to
type Listener interface {
	HandleEvent(event Event) error
	Priority() int
	ID() string
}

// Bus distributes events to listeners synchronously, in priority order
// (lower value runs first).
type Bus struct {
	mu        sync.RWMutex
	listeners map[EventType][]Listener
}

// NewBus creates an empty event bus
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[EventType][]Listener),
	}
}

// Subscribe adds a listener for one event type
func (b *Bus) Subscribe(eventType EventType, listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners[eventType] = append(b.listeners[eventType], listener)
	sort.SliceStable(b.listeners[eventType], func(i, j int) bool {
		return b.listeners[eventType][i].Priority() < b.listeners[eventType][j].Priority()
	})

	slog.Debug("event listener subscribed",
		"listener_id", listener.ID(),
		"event_type", eventType,
		"priority", listener.Priority(),
	)
}

// Unsubscribe removes a listener by id
func (b *Bus) Unsubscribe(eventType EventType, listenerID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	listeners := b.listeners[eventType]
	for i, l := range listeners {
		if l.ID() == listenerID {
			b.listeners[eventType] = append(listeners[:i], listeners[i+1:]...)
			return
		}
	}
}

// Emit delivers the event to every listener in priority order. The
// first listener error stops propagation and is returned.
func (b *Bus) Emit(event Event) error {
	b.mu.RLock()
	listeners := make([]Listener, len(b.listeners[event.Type()]))
	copy(listeners, b.listeners[event.Type()])
	b.mu.RUnlock()

	for _, listener := range listeners {
		if err := listener.HandleEvent(event); err != nil {
			return errors.Wrapf(err, "listener %s failed on %s", listener.ID(), event.Type())
		}
	}
	return nil
}

// Clear removes all listeners
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = make(map[EventType][]Listener)
}
