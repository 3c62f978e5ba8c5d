// Package events provides the typed broadcast bus that decouples the asset
// loader, navigation and front ends from direct references to each other.
package events

import "sync"

// Kind identifies an event type.
type Kind int

const (
	KindNone Kind = iota
	LoadStarted
	LoadProgress
	LoadError
	LoadComplete
	SectionChanged
	Resized
	Fault
)

var kindNames = map[Kind]string{
	KindNone:       "none",
	LoadStarted:    "load-start",
	LoadProgress:   "load-progress",
	LoadError:      "load-error",
	LoadComplete:   "load-complete",
	SectionChanged: "section-change",
	Resized:        "resize",
	Fault:          "fault",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Event is a broadcast notification. Only the fields relevant to Kind are set.
type Event struct {
	Kind Kind

	// Loading
	Asset     string
	Completed int
	Total     int
	Percent   float64
	TimedOut  bool
	Err       error

	// Navigation
	Section    string
	From       string
	Origin     string
	Generation uint64

	// Viewport
	Width  int
	Height int
}

// Handler receives events.
type Handler func(Event)

type subscription struct {
	id   uint64
	kind Kind // KindNone subscribes to everything
	fn   Handler
}

// Bus dispatches events synchronously to subscribers in subscription order.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   []subscription
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn for events of kind. Passing KindNone receives every
// event. The returned function removes the subscription.
func (b *Bus) Subscribe(kind Kind, fn Handler) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, kind: kind, fn: fn})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers ev to every matching subscriber. Handlers may publish or
// subscribe re-entrantly; they see a snapshot taken before dispatch.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	snapshot := make([]subscription, len(b.subs))
	copy(snapshot, b.subs)
	b.mu.RUnlock()

	for _, s := range snapshot {
		if s.kind == KindNone || s.kind == ev.Kind {
			s.fn(ev)
		}
	}
}
