package audio

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/castle-showcase/internal/engine/timer"
	"github.com/Faultbox/castle-showcase/internal/logger"
	"github.com/Faultbox/castle-showcase/internal/navigation"
)

// Orchestrator keeps at most one section track playing. It runs on the main
// loop and schedules the delayed start on the shared timer queue.
type Orchestrator struct {
	backend  Backend
	switches *timer.Group
	tracks   map[navigation.Section]string
	delay    time.Duration
	log      *zap.Logger

	gen     uint64
	section navigation.Section
	current string // looped track the backend accepted
	pending string // track waiting for the switch delay
	muted   bool
}

// NewOrchestrator creates an orchestrator. tracks maps sections to clip names;
// sections without an entry are silent.
func NewOrchestrator(backend Backend, timers *timer.Queue, tracks map[navigation.Section]string, delay time.Duration) *Orchestrator {
	t := make(map[navigation.Section]string, len(tracks))
	for s, name := range tracks {
		t[s] = name
	}
	return &Orchestrator{
		backend:  backend,
		switches: timer.NewGroup(timers),
		tracks:   t,
		delay:    delay,
		log:      logger.Named("audio"),
	}
}

// Track returns the clip name mapped to section.
func (o *Orchestrator) Track(section navigation.Section) (string, bool) {
	name, ok := o.tracks[section]
	return name, ok
}

// PlaySection stops the current track, rewinding it, and starts the track of
// section looped after the switch delay. A later call supersedes a start that
// has not happened yet.
func (o *Orchestrator) PlaySection(section navigation.Section) {
	name, ok := o.tracks[section]
	if ok && o.current == name && o.pending == "" {
		o.section = section
		return
	}

	o.gen++
	gen := o.gen
	o.switches.CancelAll()
	o.stopCurrent()
	o.section = section
	o.pending = ""

	if !ok {
		o.log.Debug("no track for section", zap.String("section", section.String()))
		return
	}
	o.pending = name
	o.switches.After(o.delay, func() {
		if gen != o.gen {
			return
		}
		o.pending = ""
		o.start(name)
	})
}

func (o *Orchestrator) start(name string) {
	if err := o.backend.Play(name, true); err != nil {
		o.log.Warn("track start rejected",
			zap.String("track", name),
			zap.Error(err))
		return
	}
	o.current = name
	o.log.Debug("track started", zap.String("track", name))
}

func (o *Orchestrator) stopCurrent() {
	if o.current == "" {
		return
	}
	o.backend.Stop(o.current)
	o.current = ""
}

// Stop halts the section track and any pending start.
func (o *Orchestrator) Stop() {
	o.gen++
	o.switches.CancelAll()
	o.pending = ""
	o.stopCurrent()
}

// SetMuted silences or restores output. Which track is current is unchanged.
func (o *Orchestrator) SetMuted(muted bool) {
	o.muted = muted
	o.backend.SetMuted(muted)
}

// Muted reports the last SetMuted value.
func (o *Orchestrator) Muted() bool {
	return o.muted
}

// PlayOneShot restarts name from the beginning without looping. Failures are
// logged.
func (o *Orchestrator) PlayOneShot(name string) {
	if name == "" {
		return
	}
	if err := o.backend.Play(name, false); err != nil {
		o.log.Debug("one-shot rejected", zap.String("name", name), zap.Error(err))
	}
}

// Playing reports whether a section track is playing.
func (o *Orchestrator) Playing() bool {
	return o.current != ""
}

// Current returns the playing section track, or "".
func (o *Orchestrator) Current() string {
	return o.current
}

// Pending returns the track waiting on the switch delay, or "".
func (o *Orchestrator) Pending() string {
	return o.pending
}

// Section returns the section last passed to PlaySection.
func (o *Orchestrator) Section() navigation.Section {
	return o.section
}
