package showcase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/castle-showcase/internal/assets"
	"github.com/Faultbox/castle-showcase/internal/config"
	"github.com/Faultbox/castle-showcase/internal/engine/audio"
	"github.com/Faultbox/castle-showcase/internal/engine/camera"
	"github.com/Faultbox/castle-showcase/internal/events"
	"github.com/Faultbox/castle-showcase/internal/navigation"
	"github.com/Faultbox/castle-showcase/internal/storage"
	"github.com/Faultbox/castle-showcase/pkg/math"
)

type mapFetcher map[string]assets.Asset

func (f mapFetcher) Size(assets.Descriptor) int64 { return 1 }

func (f mapFetcher) Fetch(_ context.Context, d assets.Descriptor, progress func(int64)) (assets.Asset, error) {
	a, ok := f[d.Name]
	if !ok {
		return nil, fmt.Errorf("no such asset %q", d.Name)
	}
	if progress != nil {
		progress(1)
	}
	return a, nil
}

type harness struct {
	app     *App
	backend *audio.Null
	store   *storage.Store
	cfg     *config.Config
}

func newHarness(t *testing.T, cfg *config.Config, fetcher assets.Fetcher) *harness {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	backend := audio.NewNull()
	for _, name := range cfg.Audio.Tracks {
		require.NoError(t, backend.Load(name, nil))
	}
	for _, name := range []string{cfg.Audio.Click, cfg.Audio.Hover, cfg.Audio.Woosh} {
		require.NoError(t, backend.Load(name, nil))
	}
	store, err := storage.Open(":memory:")
	require.NoError(t, err)

	app, err := New(cfg, Deps{Fetcher: fetcher, Audio: backend, Flags: store})
	require.NoError(t, err)
	t.Cleanup(func() { app.Close() })
	return &harness{app: app, backend: backend, store: store, cfg: cfg}
}

// advance runs frames covering d of virtual time.
func (h *harness) advance(t *testing.T, d time.Duration) {
	t.Helper()
	const frame = 16 * time.Millisecond
	for elapsed := time.Duration(0); elapsed < d; elapsed += frame {
		require.NoError(t, h.app.Frame(frame))
	}
}

// enter loads an empty registry and presses start.
func (h *harness) enter(t *testing.T) {
	t.Helper()
	h.app.Start(context.Background())
	h.advance(t, h.cfg.Loading.EmptyDelay+50*time.Millisecond)
	require.Equal(t, PhaseReady, h.app.Snapshot().Phase)
	require.NoError(t, h.app.Enter())
}

func (h *harness) poseFor(s navigation.Section) camera.Pose {
	pair := h.cfg.Camera.Poses[s.String()]
	ps := pair.Large
	if w, _ := h.app.choreo.Viewport(); w < h.cfg.Camera.Breakpoint {
		ps = pair.Small
	}
	return camera.Pose{Position: ps.Position, Target: ps.Target, FOV: ps.FOV}
}

func TestLifecycle(t *testing.T) {
	h := newHarness(t, nil, nil)
	assert.Equal(t, PhaseIdle, h.app.Snapshot().Phase)
	assert.ErrorIs(t, h.app.Enter(), ErrNotReady)

	h.app.Start(context.Background())
	snap := h.app.Snapshot()
	assert.Equal(t, PhaseLoading, snap.Phase)
	assert.True(t, snap.FirstVisit)
	assert.True(t, snap.Muted, "audio is muted until start is pressed")

	// Navigation is closed while loading.
	out, err := h.app.Navigate(navigation.SectionToken, navigation.OriginUI)
	require.NoError(t, err)
	assert.Equal(t, navigation.Ignored, out)

	h.advance(t, 600*time.Millisecond)
	snap = h.app.Snapshot()
	assert.Equal(t, PhaseReady, snap.Phase)
	assert.Equal(t, 100.0, snap.Loading.Percent)

	require.NoError(t, h.app.Enter())
	assert.ErrorIs(t, h.app.Enter(), ErrNotReady)
	assert.False(t, h.app.Snapshot().Muted)

	visited, err := h.store.GetBool(context.Background(), storage.KeyVisited)
	require.NoError(t, err)
	assert.True(t, visited)

	h.advance(t, h.cfg.Audio.SwitchDelay)
	assert.Equal(t, "ambient_courtyard", h.app.Snapshot().Track)
}

func TestReturningVisitor(t *testing.T) {
	h := newHarness(t, nil, nil)
	require.NoError(t, h.store.SetBool(context.Background(), storage.KeyVisited, true))
	h.app.Start(context.Background())
	assert.False(t, h.app.Snapshot().FirstVisit)
}

func TestNavigateFliesAndRevealsOverlay(t *testing.T) {
	h := newHarness(t, nil, nil)
	h.enter(t)

	out, err := h.app.Navigate(navigation.SectionToken, navigation.OriginDirect)
	require.NoError(t, err)
	assert.Equal(t, navigation.Committed, out)

	snap := h.app.Snapshot()
	assert.Equal(t, navigation.SectionToken, snap.Section)
	assert.True(t, snap.InFlight)
	require.Len(t, snap.Overlays, 1)
	assert.Equal(t, navigation.OverlayATM, snap.Overlays[0].Overlay)
	assert.False(t, snap.Overlays[0].ContentMounted)

	h.advance(t, h.cfg.Camera.TweenDuration+100*time.Millisecond)
	snap = h.app.Snapshot()
	assert.False(t, snap.InFlight)
	assert.True(t, snap.Pose.ApproxEqual(h.poseFor(navigation.SectionToken), 1e-3))
	assert.True(t, snap.Overlays[0].ContentMounted)
	assert.True(t, snap.Overlays[0].ButtonsVisible)
	assert.Equal(t, "Back", snap.Overlays[0].BackLabel())
	assert.Equal(t, "ambient_atm", snap.Track)
	assert.Equal(t, []string{"ambient_atm"}, h.backend.Looping())
}

func TestRequestsDuringFlightAreParked(t *testing.T) {
	h := newHarness(t, nil, nil)
	h.enter(t)

	var changes []string
	h.app.Bus().Subscribe(events.SectionChanged, func(ev events.Event) {
		changes = append(changes, ev.Section)
	})

	_, err := h.app.Navigate(navigation.SectionToken, navigation.OriginDirect)
	require.NoError(t, err)
	out, err := h.app.Navigate(navigation.SectionAbout, navigation.OriginDirect)
	require.NoError(t, err)
	assert.Equal(t, navigation.Parked, out)
	out, err = h.app.Navigate(navigation.SectionRoadmap, navigation.OriginDirect)
	require.NoError(t, err)
	assert.Equal(t, navigation.Parked, out)

	h.advance(t, 2*h.cfg.Camera.TweenDuration+200*time.Millisecond)

	assert.Equal(t, []string{"token", "roadmap"}, changes, "latest parked request wins")
	snap := h.app.Snapshot()
	assert.Equal(t, navigation.SectionRoadmap, snap.Section)
	assert.Len(t, snap.Overlays, 1)
	assert.Equal(t, []string{"ambient_tower"}, h.backend.Looping())
}

func TestBackFromPole(t *testing.T) {
	h := newHarness(t, nil, nil)
	h.enter(t)

	_, err := h.app.Navigate(navigation.SectionToken, navigation.OriginPole)
	require.NoError(t, err)
	h.advance(t, h.cfg.Camera.TweenDuration+100*time.Millisecond)

	overlays := h.app.Snapshot().Overlays
	require.Len(t, overlays, 1)
	assert.Equal(t, "Back To Pole", overlays[0].BackLabel())
	assert.Equal(t, 1, h.backend.Starts(h.cfg.Audio.Woosh))

	out, err := h.app.Back()
	require.NoError(t, err)
	assert.Equal(t, navigation.Committed, out)
	assert.Equal(t, 2, h.backend.Starts(h.cfg.Audio.Woosh))

	h.advance(t, h.cfg.Camera.TweenDuration+100*time.Millisecond)
	snap := h.app.Snapshot()
	assert.Equal(t, navigation.SectionNav, snap.Section)
	assert.Empty(t, snap.Overlays)
	assert.True(t, h.app.Camera().UserControl(), "nav hands control back to the visitor")
}

func TestClickHotspot(t *testing.T) {
	cfg := config.Default()
	cfg.Navigation.Hotspots = []config.HotspotConfig{
		{Name: "atm", Section: "token", Origin: "direct", Center: math.V3(0, 3, 0), Radius: 1},
	}
	h := newHarness(t, cfg, nil)

	_, ok := h.app.Click(640, 360)
	assert.False(t, ok, "clicks before start are ignored")

	h.enter(t)
	_, ok = h.app.Click(5, 5)
	assert.False(t, ok)

	hit, ok := h.app.Click(640, 360)
	require.True(t, ok)
	assert.Equal(t, "atm", hit.Hotspot.Name)
	assert.Equal(t, navigation.SectionToken, h.app.Snapshot().Section)

	_, ok = h.app.Click(640, 360)
	assert.False(t, ok, "hotspots are inactive away from nav")
}

func TestHoverPlaysOncePerHotspot(t *testing.T) {
	cfg := config.Default()
	cfg.Navigation.Hotspots = []config.HotspotConfig{
		{Name: "atm", Section: "token", Origin: "direct", Center: math.V3(0, 3, 0), Radius: 1},
	}
	h := newHarness(t, cfg, nil)
	h.enter(t)

	assert.True(t, h.app.Hover(640, 360))
	assert.True(t, h.app.Hover(641, 361))
	assert.Equal(t, 1, h.backend.Starts(cfg.Audio.Hover))

	assert.False(t, h.app.Hover(5, 5))
	assert.True(t, h.app.Hover(640, 360))
	assert.Equal(t, 2, h.backend.Starts(cfg.Audio.Hover))
}

func TestHotspotNodesResolveFromModel(t *testing.T) {
	cfg := config.Default()
	cfg.Assets.Entries = []config.AssetEntry{
		{Kind: "model", Path: "castle.glb", Name: "castle"},
		{Kind: "audio", Path: "click.wav", Name: "sfx_extra"},
		{Kind: "texture", Path: "gone.png", Name: "gone"},
	}
	cfg.Navigation.Hotspots = []config.HotspotConfig{
		{Name: "atm", Section: "token", Model: "castle", Node: "atm_node", Radius: 1},
		{Name: "lost", Section: "about", Model: "castle", Node: "missing", Radius: 1},
		{Name: "static", Section: "roadmap", Center: math.V3(0, 1, 0), Radius: 1},
	}
	fetcher := mapFetcher{
		"castle": &assets.Model{Doc: &gltf.Document{Nodes: []*gltf.Node{
			{Name: "atm_node", Translation: [3]float64{1, 2, 3}},
		}}},
		"sfx_extra": &assets.Audio{Data: []byte("RIFF")},
	}
	h := newHarness(t, cfg, fetcher)

	before := h.app.Hotspots()
	assert.False(t, before[0].Enabled)
	assert.True(t, before[2].Enabled)

	h.app.Start(context.Background())
	require.Eventually(t, func() bool {
		if err := h.app.Frame(10 * time.Millisecond); err != nil {
			return false
		}
		return h.app.Snapshot().Phase == PhaseReady
	}, 2*time.Second, time.Millisecond)

	hs := h.app.Hotspots()
	assert.True(t, hs[0].Enabled)
	assert.True(t, hs[0].Bounds.Center.ApproxEqual(math.V3(1, 2, 3), 1e-6))
	assert.False(t, hs[1].Enabled)
	assert.True(t, hs[2].Enabled)

	assert.True(t, h.backend.Loaded("sfx_extra"))
	assert.Equal(t, []string{"gone"}, h.app.Snapshot().Failed)
}

func TestResizeReframesCamera(t *testing.T) {
	h := newHarness(t, nil, nil)

	var resized []int
	h.app.Bus().Subscribe(events.Resized, func(ev events.Event) {
		resized = append(resized, ev.Width)
	})

	h.app.Resize(600, 900)
	h.app.Resize(0, 0)
	snap := h.app.Snapshot()
	assert.Equal(t, []int{600}, resized)
	assert.Equal(t, 600, snap.Width)
	assert.True(t, snap.Pose.ApproxEqual(h.poseFor(navigation.SectionNav), 1e-3))
	assert.Equal(t, navigation.SectionNav, snap.Section)
}

func TestFramePanicIsContained(t *testing.T) {
	h := newHarness(t, nil, nil)

	var faults int
	h.app.Bus().Subscribe(events.Fault, func(events.Event) { faults++ })
	h.app.Bus().Subscribe(events.LoadComplete, func(events.Event) {
		panic("scene exploded")
	})

	h.app.Start(context.Background())
	err := h.app.Frame(time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scene exploded")
	assert.Equal(t, 1, faults)

	snap := h.app.Snapshot()
	assert.Equal(t, PhaseFaulted, snap.Phase)
	assert.Equal(t, err, snap.Fault)
	assert.Equal(t, err, h.app.Frame(time.Second), "a faulted app stays faulted")
	assert.ErrorIs(t, h.app.Enter(), ErrNotReady)
}

func TestNavigatePanicIsContained(t *testing.T) {
	h := newHarness(t, nil, nil)
	h.enter(t)

	var faults int
	h.app.Bus().Subscribe(events.Fault, func(events.Event) { faults++ })
	h.app.Bus().Subscribe(events.SectionChanged, func(events.Event) {
		panic("subscriber exploded")
	})

	var (
		out navigation.Outcome
		err error
	)
	require.NotPanics(t, func() {
		out, err = h.app.Navigate(navigation.SectionAbout, navigation.OriginDirect)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "navigate panic")
	assert.Contains(t, err.Error(), "subscriber exploded")
	assert.Equal(t, navigation.Ignored, out)
	assert.Equal(t, 1, faults)

	snap := h.app.Snapshot()
	assert.Equal(t, PhaseFaulted, snap.Phase)
	assert.Equal(t, err, snap.Fault)
	assert.Equal(t, err, h.app.Frame(time.Millisecond), "the next frame reports the fault")

	// A faulted app ignores further input.
	out, err = h.app.Back()
	require.NoError(t, err)
	assert.Equal(t, navigation.Ignored, out)
}

func TestResizePanicIsContained(t *testing.T) {
	h := newHarness(t, nil, nil)
	h.app.Bus().Subscribe(events.Resized, func(events.Event) {
		panic("layout exploded")
	})

	require.NotPanics(t, func() { h.app.Resize(800, 600) })
	require.Error(t, h.app.Fault())
	assert.Contains(t, h.app.Fault().Error(), "resize panic")
	assert.Equal(t, PhaseFaulted, h.app.Snapshot().Phase)
}

func TestNewRejectsUnknownSections(t *testing.T) {
	cfg := config.Default()
	cfg.Audio.Tracks["attic"] = "ambient_attic"
	_, err := New(cfg, Deps{Audio: audio.NewNull()})
	assert.ErrorIs(t, err, navigation.ErrUnknownSection)

	cfg = config.Default()
	cfg.Navigation.Hotspots = append(cfg.Navigation.Hotspots, config.HotspotConfig{Name: "x", Section: "cellar"})
	_, err = New(cfg, Deps{Audio: audio.NewNull()})
	assert.ErrorIs(t, err, navigation.ErrUnknownSection)
}

func TestCloseReleasesResources(t *testing.T) {
	backend := audio.NewNull()
	store, err := storage.Open(":memory:")
	require.NoError(t, err)
	app, err := New(config.Default(), Deps{Audio: backend, Flags: store})
	require.NoError(t, err)

	require.NoError(t, app.Close())
	_, err = store.GetBool(context.Background(), storage.KeyVisited)
	assert.ErrorIs(t, err, storage.ErrClosed)
}
