package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/castle-showcase/internal/assets"
	"github.com/Faultbox/castle-showcase/internal/config"
	"github.com/Faultbox/castle-showcase/internal/engine/audio"
	"github.com/Faultbox/castle-showcase/internal/events"
	"github.com/Faultbox/castle-showcase/internal/navigation"
	"github.com/Faultbox/castle-showcase/internal/showcase"
	"github.com/Faultbox/castle-showcase/internal/storage"
)

func TestLoadingView(t *testing.T) {
	tests := []struct {
		name    string
		snap    showcase.Snapshot
		percent int
		status  string
		start   bool
	}{
		{
			name:    "in progress",
			snap:    showcase.Snapshot{Phase: showcase.PhaseLoading, Loading: assets.LoadState{Total: 4, Completed: 1, Percent: 42.7}},
			percent: 42,
			status:  "Loading the castle (1/4)",
		},
		{
			name:    "done",
			snap:    showcase.Snapshot{Phase: showcase.PhaseReady, Loading: assets.LoadState{Total: 4, Completed: 4, Done: true, Percent: 100}},
			percent: 100,
			status:  "Ready",
			start:   true,
		},
		{
			name:    "missing assets",
			snap:    showcase.Snapshot{Phase: showcase.PhaseReady, Loading: assets.LoadState{Done: true, Percent: 100}, Failed: []string{"a", "b"}},
			percent: 100,
			status:  "Ready, 2 assets missing",
			start:   true,
		},
		{
			name:    "watchdog",
			snap:    showcase.Snapshot{Phase: showcase.PhaseReady, Loading: assets.LoadState{Done: true, TimedOut: true, Percent: 100}},
			percent: 100,
			status:  "Some rooms are still dusty, entering anyway",
			start:   true,
		},
		{
			name:    "out of range",
			snap:    showcase.Snapshot{Phase: showcase.PhaseLoading, Loading: assets.LoadState{Percent: -5}},
			percent: 0,
			status:  "Loading the castle (0/0)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewLoadingView(tt.snap, Localizer{})
			assert.Equal(t, tt.percent, v.Percent)
			assert.Equal(t, tt.status, v.Status)
			assert.Equal(t, tt.start, v.StartEnabled)
		})
	}
}

func TestLoadingViewText(t *testing.T) {
	v := NewLoadingView(showcase.Snapshot{Loading: assets.LoadState{Percent: 42}}, Localizer{})
	assert.Equal(t, "42%", v.Text())
	assert.Equal(t, 0.42, v.Fraction)
	assert.Empty(t, v.Bar(0))
	assert.Equal(t, 10, strings.Count(v.Bar(10), "█")+strings.Count(v.Bar(10), "░"))
}

func TestLoadingHint(t *testing.T) {
	first := NewLoadingView(showcase.Snapshot{FirstVisit: true}, Localizer{})
	again := NewLoadingView(showcase.Snapshot{}, Localizer{})
	assert.Contains(t, first.Hint, "Click an object")
	assert.Equal(t, "Welcome back.", again.Hint)
}

func TestOverlayView(t *testing.T) {
	st := navigation.OverlayState{Overlay: navigation.OverlayMirror, Visible: true, Source: navigation.SourcePole}
	v := NewOverlayView(st, Localizer{})
	assert.Equal(t, "AI Dating Coach", v.Title)
	assert.Empty(t, v.Body, "content is not mounted yet")
	assert.False(t, v.Buttons)
	assert.Equal(t, "Back To Pole", v.BackLabel)
	assert.Equal(t, "woosh", v.BackSound)

	st.ContentMounted = true
	st.ButtonsVisible = true
	st.Source = navigation.SourceUnset
	v = NewOverlayView(st, Localizer{})
	assert.NotEmpty(t, v.Body)
	assert.True(t, v.Buttons)
	assert.Equal(t, "Home", v.BackLabel)
	assert.Equal(t, "click", v.BackSound)
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	factory := func() (*showcase.App, error) {
		store, err := storage.Open(":memory:")
		if err != nil {
			return nil, err
		}
		return showcase.New(config.Default(), showcase.Deps{Audio: audio.NewNull(), Flags: store})
	}
	m, err := NewModel(context.Background(), factory, Localizer{})
	require.NoError(t, err)
	t.Cleanup(func() { m.App().Close() })
	return m
}

func frames(m Model, n int) Model {
	at := m.last
	if at.IsZero() {
		at = time.Unix(0, 0)
	}
	for i := 0; i < n; i++ {
		at = at.Add(FrameInterval)
		next, _ := m.Update(frameMsg(at))
		m = next.(Model)
	}
	return m
}

func press(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelFlow(t *testing.T) {
	m := newTestModel(t)
	assert.Contains(t, m.View(), "The Castle")

	m = frames(m, 30)
	require.Equal(t, showcase.PhaseReady, m.App().Snapshot().Phase)
	assert.Contains(t, m.View(), "start")

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, showcase.PhaseExploring, m.App().Snapshot().Phase)

	m, _ = press(m, runes("4"))
	assert.Equal(t, navigation.SectionToken, m.App().Snapshot().Section)
	assert.Contains(t, m.View(), "TOKEN")

	m = frames(m, 60)
	assert.Contains(t, m.View(), "[Home]", "ui-origin overlays go home")

	m, _ = press(m, runes("b"))
	assert.Equal(t, navigation.SectionNav, m.App().Snapshot().Section)

	m, _ = press(m, runes("m"))
	assert.True(t, m.App().Snapshot().Muted)

	_, cmd := press(m, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModelResize(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(m, tea.WindowSizeMsg{Width: 80, Height: 24})
	snap := m.App().Snapshot()
	assert.Equal(t, 80*cellWidth, snap.Width)
	assert.Equal(t, 24*cellHeight, snap.Height)
}

func TestModelReloadsAfterFault(t *testing.T) {
	m := newTestModel(t)
	first := m.App()
	first.Bus().Subscribe(events.KindNone, func(ev events.Event) {
		if ev.Kind == events.LoadComplete {
			panic("boom")
		}
	})

	m = frames(m, 30)
	require.Equal(t, showcase.PhaseFaulted, first.Snapshot().Phase)
	assert.Contains(t, m.View(), "r reload")

	m, _ = press(m, runes("r"))
	t.Cleanup(func() { m.App().Close() })
	assert.NotSame(t, first, m.App())
	assert.Equal(t, showcase.PhaseLoading, m.App().Snapshot().Phase)
}
