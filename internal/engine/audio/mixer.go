package audio

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"go.uber.org/zap"

	"github.com/Faultbox/castle-showcase/internal/logger"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

type clip struct {
	data   []byte
	format beep.Format
}

type voice struct {
	ctrl   *beep.Ctrl
	volume *effects.Volume
	stream beep.StreamSeekCloser
	music  bool
	done   atomic.Bool
}

// Mixer is the speaker-backed Backend. Looped voices use the music volume,
// one-shots the sfx volume.
type Mixer struct {
	mu sync.Mutex

	initialized bool
	sampleRate  beep.SampleRate
	muted       bool

	clips  map[string]clip
	voices map[string]*voice

	// Volume settings (0.0 to 1.0)
	masterVolume float64
	musicVolume  float64
	sfxVolume    float64

	log *zap.Logger
}

// NewMixer creates a mixer. Init must be called before Play.
func NewMixer(master, music, sfx float64) *Mixer {
	return &Mixer{
		sampleRate:   DefaultSampleRate,
		clips:        make(map[string]clip),
		voices:       make(map[string]*voice),
		masterVolume: clamp(master, 0, 1),
		musicVolume:  clamp(music, 0, 1),
		sfxVolume:    clamp(sfx, 0, 1),
		log:          logger.Named("audio"),
	}
}

// Init opens the output device.
func (m *Mixer) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	m.initialized = true
	return nil
}

// Initialized reports whether the output device is open.
func (m *Mixer) Initialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

// Load implements Backend. The data is decoded once to validate it.
func (m *Mixer) Load(name string, data []byte) error {
	s, format, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	s.Close()

	m.mu.Lock()
	m.clips[name] = clip{data: data, format: format}
	m.mu.Unlock()
	return nil
}

// Loaded reports whether a clip is registered under name.
func (m *Mixer) Loaded(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.clips[name]
	return ok
}

// Play implements Backend.
func (m *Mixer) Play(name string, loop bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return ErrNotInitialized
	}
	c, ok := m.clips[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTrack, name)
	}
	m.stopLocked(name)

	streamer, format, err := wav.Decode(io.NopCloser(bytes.NewReader(c.data)))
	if err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}

	var resampled beep.Streamer = streamer
	if format.SampleRate != m.sampleRate {
		resampled = beep.Resample(4, format.SampleRate, m.sampleRate, streamer)
	}

	var final beep.Streamer = resampled
	if loop {
		final = &loopStreamer{streamer: streamer, resampled: resampled}
	}

	v := &voice{
		ctrl:   &beep.Ctrl{Streamer: final},
		stream: streamer,
		music:  loop,
	}
	v.volume = &effects.Volume{Streamer: v.ctrl, Base: 2}
	m.applyVolume(v)
	m.voices[name] = v

	speaker.Play(beep.Seq(v.volume, beep.Callback(func() {
		v.done.Store(true)
	})))

	m.log.Debug("voice started", zap.String("name", name), zap.Bool("loop", loop))
	return nil
}

// Stop implements Backend.
func (m *Mixer) Stop(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked(name)
}

func (m *Mixer) stopLocked(name string) {
	v, ok := m.voices[name]
	if !ok {
		return
	}
	delete(m.voices, name)

	// A nil streamer drains the voice out of the speaker mix.
	speaker.Lock()
	v.ctrl.Streamer = nil
	speaker.Unlock()
	v.stream.Close()
}

// Active reports whether name has a voice that has not finished.
func (m *Mixer) Active(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.voices[name]
	return ok && !v.done.Load()
}

// SetMuted implements Backend.
func (m *Mixer) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
	m.updateVolumes()
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Mixer) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
	m.updateVolumes()
}

// SetMusicVolume sets the looped-track volume (0.0 to 1.0).
func (m *Mixer) SetMusicVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.musicVolume = clamp(vol, 0, 1)
	m.updateVolumes()
}

// SetSFXVolume sets the one-shot volume (0.0 to 1.0).
func (m *Mixer) SetSFXVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sfxVolume = clamp(vol, 0, 1)
	m.updateVolumes()
}

// Volumes returns master, music and sfx levels.
func (m *Mixer) Volumes() (master, music, sfx float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.masterVolume, m.musicVolume, m.sfxVolume
}

func (m *Mixer) updateVolumes() {
	if len(m.voices) == 0 {
		return
	}
	speaker.Lock()
	for _, v := range m.voices {
		m.applyVolume(v)
	}
	speaker.Unlock()
}

func (m *Mixer) applyVolume(v *voice) {
	level := m.masterVolume * m.sfxVolume
	if v.music {
		level = m.masterVolume * m.musicVolume
	}
	v.volume.Silent = m.muted || level <= 0
	v.volume.Volume = volumeToGain(level)
}

// Close implements Backend.
func (m *Mixer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for name := range m.voices {
		m.stopLocked(name)
	}
	if m.initialized {
		speaker.Clear()
	}
	m.initialized = false
	return nil
}

// volumeToGain converts a 0-1 level to the base-2 exponent effects.Volume
// expects: 1 -> 0, 0.5 -> -1, 0.25 -> -2.
func volumeToGain(vol float64) float64 {
	if vol <= 0 {
		return -10
	}
	return math.Log2(vol)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// loopStreamer rewinds the source when it runs out.
type loopStreamer struct {
	streamer  beep.StreamSeekCloser
	resampled beep.Streamer
}

func (l *loopStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	filled := 0
	for filled < len(samples) {
		n, ok := l.resampled.Stream(samples[filled:])
		filled += n
		if !ok {
			if err := l.streamer.Seek(0); err != nil {
				return filled, false
			}
			if n == 0 && l.streamer.Len() == 0 {
				return filled, false
			}
			continue
		}
	}
	return filled, true
}

func (l *loopStreamer) Err() error {
	return l.streamer.Err()
}
