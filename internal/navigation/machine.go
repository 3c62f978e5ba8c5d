package navigation

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/castle-showcase/internal/engine/timer"
	"github.com/Faultbox/castle-showcase/internal/logger"
)

// Outcome describes what Navigate did with a request.
type Outcome int

const (
	// Ignored: not started, already there, or already heading there.
	Ignored Outcome = iota
	// Committed: the section changed and subscribers were notified.
	Committed
	// Parked: a transition is in flight; the request runs when it lands.
	Parked
)

func (o Outcome) String() string {
	switch o {
	case Committed:
		return "committed"
	case Parked:
		return "parked"
	}
	return "ignored"
}

// Transition is delivered to subscribers on every committed section change.
type Transition struct {
	From       Section
	To         Section
	Origin     Origin
	Generation uint64
}

// Options tune overlay sequencing.
type Options struct {
	// ContentDelay is the wait before an overlay's content mounts.
	ContentDelay time.Duration
	// ButtonDelay is the wait before an overlay's action buttons appear.
	ButtonDelay time.Duration
	// FlightTimeout lands a transition nobody reported as arrived.
	// Zero waits for Arrived forever.
	FlightTimeout time.Duration
}

type request struct {
	target Section
	origin Origin
}

type subscriber struct {
	id uint64
	fn func(Transition)
}

// Machine is the single source of truth for the current section. It is
// driven from the main loop and is not safe for concurrent use.
type Machine struct {
	timers  *timer.Queue
	reveals *timer.Group
	opts    Options
	log     *zap.Logger

	current  Section
	started  bool
	gen      uint64
	inFlight bool
	landing  timer.Handle
	parked   *request

	sources  map[Overlay]Source
	overlays map[Overlay]*OverlayState

	subs   []subscriber
	nextID uint64
}

// NewMachine creates a machine at the nav section, not yet started.
func NewMachine(timers *timer.Queue, opts Options) *Machine {
	m := &Machine{
		timers:   timers,
		reveals:  timer.NewGroup(timers),
		opts:     opts,
		log:      logger.Named("nav"),
		current:  SectionNav,
		sources:  make(map[Overlay]Source, len(Overlays)),
		overlays: make(map[Overlay]*OverlayState, len(Overlays)),
	}
	for _, o := range Overlays {
		m.overlays[o] = &OverlayState{Overlay: o}
	}
	return m
}

// Start opens navigation. Requests before Start are ignored; this covers the
// intro while assets are still loading.
func (m *Machine) Start() {
	if m.started {
		return
	}
	m.started = true
	m.log.Info("navigation started", zap.String("section", m.current.String()))
}

// Started reports whether Start was called.
func (m *Machine) Started() bool {
	return m.started
}

// Current returns the current section.
func (m *Machine) Current() Section {
	return m.current
}

// Generation returns the number of committed transitions. Deferred work
// captures it and discards itself when it no longer matches.
func (m *Machine) Generation() uint64 {
	return m.gen
}

// InFlight reports whether the latest transition has not landed yet.
func (m *Machine) InFlight() bool {
	return m.inFlight
}

// Pending returns the parked request target, if any.
func (m *Machine) Pending() (Section, bool) {
	if m.parked == nil {
		return "", false
	}
	return m.parked.target, true
}

// Subscribe registers fn for committed transitions. The returned function
// removes the subscription.
func (m *Machine) Subscribe(fn func(Transition)) (unsubscribe func()) {
	m.nextID++
	id := m.nextID
	m.subs = append(m.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range m.subs {
			if s.id == id {
				m.subs = append(m.subs[:i:i], m.subs[i+1:]...)
				return
			}
		}
	}
}

// Navigate requests a move to target. Transitions are serialized: while one
// is in flight, the latest different request is parked and committed when
// the flight lands. Requests for the section being shown or flown to are
// ignored, so rapid repeated clicks never stack overlays.
func (m *Machine) Navigate(target Section, origin Origin) (Outcome, error) {
	if !target.Valid() {
		return Ignored, fmt.Errorf("navigate: %w: %q", ErrUnknownSection, target)
	}
	if !m.started {
		m.log.Debug("navigation ignored before start", zap.String("target", target.String()))
		return Ignored, nil
	}

	if m.inFlight {
		if target == m.current {
			// Heading there already; a parked detour is dropped.
			m.parked = nil
			return Ignored, nil
		}
		m.parked = &request{target: target, origin: origin}
		m.log.Debug("navigation parked",
			zap.String("target", target.String()),
			zap.String("flying_to", m.current.String()))
		return Parked, nil
	}

	if !Allowed(m.current, target) {
		return Ignored, nil
	}
	m.commit(target, origin)
	return Committed, nil
}

// Back returns to the nav section.
func (m *Machine) Back() (Outcome, error) {
	return m.Navigate(SectionNav, OriginBack)
}

// Arrived marks the transition with the given generation as landed and
// commits any parked request. Stale generations are ignored.
func (m *Machine) Arrived(gen uint64) {
	if gen != m.gen || !m.inFlight {
		return
	}
	m.inFlight = false
	m.timers.Cancel(m.landing)
	m.log.Debug("transition landed",
		zap.String("section", m.current.String()),
		zap.Uint64("generation", gen))

	if next := m.parked; next != nil {
		m.parked = nil
		if Allowed(m.current, next.target) {
			m.commit(next.target, next.origin)
		}
	}
}

func (m *Machine) commit(target Section, origin Origin) {
	from := m.current
	m.current = target
	m.gen++
	gen := m.gen
	m.inFlight = true

	m.timers.Cancel(m.landing)
	if m.opts.FlightTimeout > 0 {
		m.landing = m.timers.After(m.opts.FlightTimeout, func() { m.Arrived(gen) })
	}

	if o, ok := OverlayFor(target); ok {
		m.sources[o] = sourceFor(origin)
	}
	m.resetOverlays(gen)

	m.log.Info("section changed",
		zap.String("from", from.String()),
		zap.String("to", target.String()),
		zap.String("origin", string(origin)),
		zap.Uint64("generation", gen))

	tr := Transition{From: from, To: target, Origin: origin, Generation: gen}
	subs := append([]subscriber(nil), m.subs...)
	for _, s := range subs {
		s.fn(tr)
	}
}

// resetOverlays derives visibility from the current section and schedules
// the staged reveal. Reveals of superseded transitions are cancelled.
func (m *Machine) resetOverlays(gen uint64) {
	m.reveals.CancelAll()

	for o, st := range m.overlays {
		st.Visible = o.Section() == m.current
		st.ContentMounted = false
		st.ButtonsVisible = false
		st.Source = m.sources[o]
	}

	o, ok := OverlayFor(m.current)
	if !ok {
		return
	}
	st := m.overlays[o]
	m.reveals.After(m.opts.ContentDelay, func() {
		if gen == m.gen {
			st.ContentMounted = true
		}
	})
	m.reveals.After(m.opts.ButtonDelay, func() {
		if gen == m.gen {
			st.ButtonsVisible = true
		}
	})
}

// Overlay returns the derived state of an overlay.
func (m *Machine) Overlay(o Overlay) OverlayState {
	if st, ok := m.overlays[o]; ok {
		return *st
	}
	return OverlayState{Overlay: o}
}

// VisibleOverlays returns the overlays currently visible. At most one
// overlay is ever visible.
func (m *Machine) VisibleOverlays() []OverlayState {
	var out []OverlayState
	for _, o := range Overlays {
		if st := m.overlays[o]; st.Visible {
			out = append(out, *st)
		}
	}
	return out
}

// Source returns how an overlay was most recently entered.
func (m *Machine) Source(o Overlay) Source {
	return m.sources[o]
}
