package ui

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/castle-showcase/internal/assets"
	"github.com/Faultbox/castle-showcase/internal/navigation"
	"github.com/Faultbox/castle-showcase/internal/showcase"
)

// recorder is a Painter that logs every widget and clicks the buttons named
// in press, keyed by "window/button".
type recorder struct {
	w, h   float32
	window string
	calls  []string
	press  map[string]bool
}

func newRecorder(press ...string) *recorder {
	r := &recorder{w: 1280, h: 720, press: map[string]bool{}}
	for _, id := range press {
		r.press[id] = true
	}
	return r
}

func (r *recorder) GetScreenSize() (float32, float32) { return r.w, r.h }

func (r *recorder) BeginWindow(id string, x, y, w, h float32, title string) bool {
	r.window = id
	r.calls = append(r.calls, fmt.Sprintf("window %s %q", id, title))
	return true
}

func (r *recorder) EndWindow()         { r.window = "" }
func (r *recorder) Row(height float32) {}

func (r *recorder) Label(text string) {
	r.calls = append(r.calls, "label "+text)
}

func (r *recorder) TextWrapped(text string) {
	r.calls = append(r.calls, "text "+text)
}

func (r *recorder) ProgressBar(fraction float32, width, height float32, label string) {
	r.calls = append(r.calls, fmt.Sprintf("progress %.2f %s", fraction, label))
}

func (r *recorder) Button(id string, width float32, label string) bool {
	r.calls = append(r.calls, "button "+label)
	return r.press[r.window+"/"+id]
}

func (r *recorder) ButtonDisabled(id string, width float32, label string) {
	r.calls = append(r.calls, "disabled "+label)
}

func TestScreenLoadingPanel(t *testing.T) {
	snap := showcase.Snapshot{
		Phase:      showcase.PhaseLoading,
		FirstVisit: true,
		Loading:    assets.LoadState{Total: 4, Completed: 2, Percent: 50},
	}
	r := newRecorder("loading/start")
	action := NewScreen(Localizer{}).Draw(r, snap)

	assert.Equal(t, ActionNone, action, "start is disabled while loading")
	assert.Equal(t, []string{
		`window loading "The Castle"`,
		"progress 0.50 50%",
		"label Loading the castle (2/4)",
		"disabled Start",
		"text Drag to look around. Click an object to step closer.",
	}, r.calls)
}

func TestScreenStartButton(t *testing.T) {
	snap := showcase.Snapshot{
		Phase:   showcase.PhaseReady,
		Loading: assets.LoadState{Total: 4, Completed: 4, Done: true, Percent: 100},
	}

	r := newRecorder()
	assert.Equal(t, ActionNone, NewScreen(Localizer{}).Draw(r, snap))
	assert.Contains(t, r.calls, "button Start")

	r = newRecorder("loading/start")
	assert.Equal(t, ActionStart, NewScreen(Localizer{}).Draw(r, snap))
}

func TestScreenOverlayPanels(t *testing.T) {
	snap := showcase.Snapshot{
		Phase:   showcase.PhaseExploring,
		Section: navigation.SectionToken,
		Overlays: []navigation.OverlayState{
			{Overlay: navigation.OverlayATM, Visible: true, Source: navigation.SourcePole},
		},
	}

	// Before content mounts: title only
	r := newRecorder("overlay_atm/back")
	assert.Equal(t, ActionNone, NewScreen(Localizer{}).Draw(r, snap))
	assert.Equal(t, []string{`window overlay_atm "Token"`}, r.calls)

	snap.Overlays[0].ContentMounted = true
	snap.Overlays[0].ButtonsVisible = true
	r = newRecorder("overlay_atm/back")
	assert.Equal(t, ActionBack, NewScreen(Localizer{}).Draw(r, snap))
	assert.Equal(t, []string{
		`window overlay_atm "Token"`,
		"text Tokenomics, supply and where to get it.",
		"button Back To Pole",
	}, r.calls)
}

func TestScreenLocalized(t *testing.T) {
	snap := showcase.Snapshot{
		Phase: showcase.PhaseExploring,
		Overlays: []navigation.OverlayState{
			{Overlay: navigation.OverlayAbout, Visible: true, ContentMounted: true, ButtonsVisible: true, Source: navigation.SourceDirect},
		},
	}
	r := newRecorder()
	NewScreen(NewLocalizer("de")).Draw(r, snap)
	assert.Contains(t, r.calls, `window overlay_about "Über uns"`)
	assert.Contains(t, r.calls, "button Zurück")
}

func TestScreenQuietWhenFaulted(t *testing.T) {
	r := newRecorder()
	assert.Equal(t, ActionNone, NewScreen(Localizer{}).Draw(r, showcase.Snapshot{Phase: showcase.PhaseFaulted}))
	assert.Empty(t, r.calls)
}
