package unit

import (
	"sync"

	"github.com/ytget/unit-player/internal/element"
)

// Handler receives published notifications
type Handler func(n element.Notification)

// Bus delivers notifications to subscribers synchronously, in subscription order
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	all      []Handler
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]Handler)}
}

// Subscribe registers h for notifications named name
func (b *Bus) Subscribe(name string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = append(b.handlers[name], h)
}

// SubscribeAll registers h for every notification
func (b *Bus) SubscribeAll(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.all = append(b.all, h)
}

// Publish delivers n; it never waits for a response
func (b *Bus) Publish(n element.Notification) {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[n.Name]...)
	handlers = append(handlers, b.all...)
	b.mu.RUnlock()

	for _, h := range handlers {
		h(n)
	}
}
