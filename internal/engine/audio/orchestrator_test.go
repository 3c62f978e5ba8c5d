package audio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/castle-showcase/internal/engine/timer"
	"github.com/Faultbox/castle-showcase/internal/navigation"
)

const switchDelay = 500 * time.Millisecond

func newOrchestrator(t *testing.T) (*Orchestrator, *Null, *timer.Queue) {
	t.Helper()
	backend := NewNull()
	for _, name := range []string{"ambient_courtyard", "ambient_atm", "ambient_tower", "sfx_click", "sfx_woosh"} {
		require.NoError(t, backend.Load(name, nil))
	}
	q := timer.New()
	o := NewOrchestrator(backend, q, map[navigation.Section]string{
		navigation.SectionNav:     "ambient_courtyard",
		navigation.SectionToken:   "ambient_atm",
		navigation.SectionRoadmap: "ambient_tower",
	}, switchDelay)
	return o, backend, q
}

func TestPlaySectionStartsAfterDelay(t *testing.T) {
	o, backend, q := newOrchestrator(t)

	o.PlaySection(navigation.SectionToken)
	assert.Equal(t, "ambient_atm", o.Pending())
	assert.False(t, o.Playing())

	q.Advance(switchDelay - time.Millisecond)
	assert.Empty(t, backend.Playing())

	q.Advance(time.Millisecond)
	assert.True(t, o.Playing())
	assert.Equal(t, "ambient_atm", o.Current())
	assert.Equal(t, []string{"ambient_atm"}, backend.Looping())
}

func TestSwitchStopsPreviousTrack(t *testing.T) {
	o, backend, q := newOrchestrator(t)

	o.PlaySection(navigation.SectionToken)
	q.Advance(switchDelay)
	o.PlaySection(navigation.SectionRoadmap)

	assert.Empty(t, backend.Playing(), "previous track stops immediately")
	q.Advance(switchDelay)
	assert.Equal(t, []string{"ambient_tower"}, backend.Looping())
	assert.Equal(t, "ambient_tower", o.Current())
}

func TestRapidSwitchLeavesOneTrack(t *testing.T) {
	o, backend, q := newOrchestrator(t)

	o.PlaySection(navigation.SectionToken)
	q.Advance(100 * time.Millisecond)
	o.PlaySection(navigation.SectionRoadmap)
	q.Advance(time.Second)

	assert.Equal(t, []string{"ambient_tower"}, backend.Looping())
	assert.Equal(t, 0, backend.Starts("ambient_atm"), "superseded start never runs")
}

func TestSameSectionDoesNotRestart(t *testing.T) {
	o, backend, q := newOrchestrator(t)

	o.PlaySection(navigation.SectionNav)
	q.Advance(switchDelay)
	o.PlaySection(navigation.SectionNav)
	q.Advance(switchDelay)

	assert.Equal(t, 1, backend.Starts("ambient_courtyard"))
	assert.True(t, o.Playing())
}

func TestSectionWithoutTrackIsSilent(t *testing.T) {
	o, backend, q := newOrchestrator(t)

	o.PlaySection(navigation.SectionNav)
	q.Advance(switchDelay)
	o.PlaySection(navigation.SectionAbout)
	q.Advance(time.Second)

	assert.Empty(t, backend.Playing())
	assert.False(t, o.Playing())
	assert.Equal(t, navigation.SectionAbout, o.Section())
}

func TestRejectedStartIsRetried(t *testing.T) {
	o, backend, q := newOrchestrator(t)

	backend.Block(ErrAutoplayBlocked)
	o.PlaySection(navigation.SectionNav)
	q.Advance(switchDelay)
	assert.False(t, o.Playing())
	assert.Empty(t, backend.Playing())

	backend.Block(nil)
	o.PlaySection(navigation.SectionNav)
	q.Advance(switchDelay)
	assert.True(t, o.Playing())
	assert.Equal(t, []string{"ambient_courtyard"}, backend.Looping())
}

func TestStopCancelsPendingStart(t *testing.T) {
	o, backend, q := newOrchestrator(t)

	o.PlaySection(navigation.SectionToken)
	o.Stop()
	q.Advance(time.Second)
	assert.Empty(t, backend.Playing())
	assert.Equal(t, "", o.Pending())

	o.PlaySection(navigation.SectionToken)
	q.Advance(switchDelay)
	o.Stop()
	assert.Empty(t, backend.Playing())
	assert.False(t, o.Playing())
}

func TestMuteKeepsBookkeeping(t *testing.T) {
	o, backend, q := newOrchestrator(t)

	o.SetMuted(true)
	o.PlaySection(navigation.SectionToken)
	q.Advance(switchDelay)

	assert.True(t, backend.Muted())
	assert.True(t, o.Muted())
	assert.True(t, o.Playing(), "muted tracks still advance")

	o.SetMuted(false)
	assert.False(t, backend.Muted())
	assert.Equal(t, "ambient_atm", o.Current())
}

func TestPlayOneShot(t *testing.T) {
	o, backend, _ := newOrchestrator(t)

	o.PlayOneShot("sfx_click")
	o.PlayOneShot("sfx_click")
	o.PlayOneShot("missing")
	o.PlayOneShot("")

	assert.Equal(t, 2, backend.Starts("sfx_click"))
	assert.Empty(t, backend.Looping())
	assert.False(t, o.Playing(), "one-shots are not section tracks")
}
