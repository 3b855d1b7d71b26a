package events

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Handler reacts to a single event. Handlers must not assume any delivery
// guarantee beyond at-most-once within this process.
type Handler func(event Event)

// Bus is an in-process publish/subscribe registry keyed by event name.
//
// Publish is fire-and-forget: async subscribers run in their own goroutine,
// so the write path returns before cache invalidation completes. Readers may
// therefore see a stale cache entry for a short window after a write; the
// cache TTLs bound that staleness. There is no persistence and no retry, so
// events are lost on crash.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]subscriber
}

type subscriber struct {
	handler Handler
	sync    bool
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]subscriber)}
}

// Subscribe registers a handler invoked asynchronously on each matching event.
func (b *Bus) Subscribe(eventName string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], subscriber{handler: h})
}

// SubscribeSync registers a handler invoked inline on the publisher's
// goroutine. Used by tests that need deterministic ordering.
func (b *Bus) SubscribeSync(eventName string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], subscriber{handler: h, sync: true})
}

func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := b.handlers[event.EventName()]
	b.mu.RUnlock()

	for _, s := range subs {
		if s.sync {
			b.invoke(s.handler, event)
			continue
		}
		go b.invoke(s.handler, event)
	}
}

// PublishAll publishes events preserving their order. With async subscribers
// interleaving across events is still possible; only publication order is
// guaranteed.
func (b *Bus) PublishAll(evts []Event) {
	for _, e := range evts {
		b.Publish(e)
	}
}

func (b *Bus) invoke(h Handler, event Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("event", event.EventName()).
				Interface("panic", r).
				Msg("Event handler panicked")
		}
	}()
	h(event)
}
