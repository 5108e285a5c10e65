package event

import (
	"reflect"
	"sync"
)

type pending struct {
	t  reflect.Type
	ev any
}

// Bus is a double-buffered event bus. Events emitted during a tick are
// queued and delivered, in emit order, when the output phase calls Flush.
// Events emitted by handlers during a flush are delivered on the next flush.
type Bus struct {
	mu       sync.Mutex // only protects handler registration
	front    []pending
	back     []pending
	handlers map[reflect.Type][]any
}

func NewBus() *Bus {
	return &Bus{
		front:    make([]pending, 0, 16),
		back:     make([]pending, 0, 16),
		handlers: make(map[reflect.Type][]any),
	}
}

// Emit queues an event into the back buffer.
func Emit[T any](b *Bus, event T) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.back = append(b.back, pending{t: t, ev: event})
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.handlers[t] = append(b.handlers[t], fn)
}

// Pending returns the number of queued events.
func (b *Bus) Pending() int { return len(b.back) }

// SwapBuffers rotates back→front and clears the new back buffer.
func (b *Bus) SwapBuffers() {
	b.front, b.back = b.back, b.front[:0]
}

// DispatchAll delivers all front-buffer events to their subscribed handlers.
func (b *Bus) DispatchAll() {
	b.mu.Lock()
	snapshot := make(map[reflect.Type][]any, len(b.handlers))
	for t, hs := range b.handlers {
		snapshot[t] = hs
	}
	b.mu.Unlock()

	for _, p := range b.front {
		for _, h := range snapshot[p.t] {
			// Safe because Subscribe and Emit use the same type key.
			callHandler(h, p.ev)
		}
	}
	clear(b.front)
	b.front = b.front[:0]
}

// Flush swaps and dispatches in one step.
func (b *Bus) Flush() {
	b.SwapBuffers()
	b.DispatchAll()
}

// Discard drops every queued event.
func (b *Bus) Discard() {
	clear(b.back)
	b.back = b.back[:0]
}

func callHandler(handler any, event any) {
	reflect.ValueOf(handler).Call([]reflect.Value{reflect.ValueOf(event)})
}
