// Package audio plays the castle's ambient tracks and interface sounds.
//
// A Backend owns the actual voices. The Orchestrator decides which section
// track should be playing and drives the backend from the main loop.
package audio

import "errors"

var (
	// ErrNotInitialized is returned by Play before the output device is open.
	ErrNotInitialized = errors.New("audio not initialized")
	// ErrAutoplayBlocked is returned when playback is refused until a user gesture.
	ErrAutoplayBlocked = errors.New("autoplay blocked")
	// ErrUnknownTrack is returned for a name that was never loaded.
	ErrUnknownTrack = errors.New("unknown track")
)

// Backend plays named clips.
type Backend interface {
	// Load registers WAV data under name, replacing a previous clip.
	Load(name string, data []byte) error
	// Play starts name from the beginning. A voice already playing under
	// the same name is restarted.
	Play(name string, loop bool) error
	// Stop halts name; the next Play starts from zero.
	Stop(name string)
	// SetMuted silences output without touching voice state.
	SetMuted(muted bool)
	Close() error
}
