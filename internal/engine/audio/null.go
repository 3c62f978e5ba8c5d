package audio

import (
	"fmt"
	"sort"
	"sync"
)

// Null is a silent Backend that records what would be playing. It is used
// when no output device is available and in tests.
type Null struct {
	mu      sync.Mutex
	clips   map[string]bool
	playing map[string]bool // name -> looped
	starts  map[string]int
	muted   bool
	blocked error
	closed  bool
}

// NewNull creates a silent backend.
func NewNull() *Null {
	return &Null{
		clips:   make(map[string]bool),
		playing: make(map[string]bool),
		starts:  make(map[string]int),
	}
}

// Block makes every Play fail with err until Block(nil) is called.
func (n *Null) Block(err error) {
	n.mu.Lock()
	n.blocked = err
	n.mu.Unlock()
}

// Load implements Backend. Data is not decoded.
func (n *Null) Load(name string, _ []byte) error {
	n.mu.Lock()
	n.clips[name] = true
	n.mu.Unlock()
	return nil
}

// Loaded reports whether name was loaded.
func (n *Null) Loaded(name string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.clips[name]
}

// Play implements Backend.
func (n *Null) Play(name string, loop bool) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return ErrNotInitialized
	}
	if n.blocked != nil {
		return n.blocked
	}
	if !n.clips[name] {
		return fmt.Errorf("%w: %s", ErrUnknownTrack, name)
	}
	n.playing[name] = loop
	n.starts[name]++
	return nil
}

// Stop implements Backend.
func (n *Null) Stop(name string) {
	n.mu.Lock()
	delete(n.playing, name)
	n.mu.Unlock()
}

// SetMuted implements Backend.
func (n *Null) SetMuted(muted bool) {
	n.mu.Lock()
	n.muted = muted
	n.mu.Unlock()
}

// Close implements Backend.
func (n *Null) Close() error {
	n.mu.Lock()
	n.closed = true
	n.playing = make(map[string]bool)
	n.mu.Unlock()
	return nil
}

// Playing returns the names of active voices, sorted.
func (n *Null) Playing() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	names := make([]string, 0, len(n.playing))
	for name := range n.playing {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Looping returns the names of active looped voices, sorted.
func (n *Null) Looping() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var names []string
	for name, loop := range n.playing {
		if loop {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Starts returns how many times name was started.
func (n *Null) Starts(name string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.starts[name]
}

// Muted reports the last SetMuted value.
func (n *Null) Muted() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.muted
}
