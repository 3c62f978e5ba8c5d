package ui

import (
	"github.com/Faultbox/castle-showcase/internal/showcase"
)

// Painter is an immediate-mode widget sink. The window front end passes a
// ui2d.Context.
type Painter interface {
	GetScreenSize() (float32, float32)
	BeginWindow(id string, x, y, w, h float32, title string) bool
	EndWindow()
	Row(height float32)
	Label(text string)
	TextWrapped(text string)
	ProgressBar(fraction float32, width, height float32, label string)
	Button(id string, width float32, label string) bool
	ButtonDisabled(id string, width float32, label string)
}

// Action is what the user asked for through the panels this frame.
type Action int

const (
	ActionNone Action = iota
	ActionStart
	ActionBack
)

const (
	margin        = float32(20)
	loadingWidth  = float32(420)
	loadingHeight = float32(170)
	overlayWidth  = float32(360)
	overlayHeight = float32(150)
)

// Screen lays out the loading panel and overlay panels of the window front end.
type Screen struct {
	loc Localizer
}

// NewScreen creates a Screen that prints through loc.
func NewScreen(loc Localizer) Screen {
	return Screen{loc: loc}
}

// Draw paints the panels for snap and returns the action the user picked.
func (s Screen) Draw(p Painter, snap showcase.Snapshot) Action {
	switch snap.Phase {
	case showcase.PhaseIdle, showcase.PhaseLoading, showcase.PhaseReady:
		return s.drawLoading(p, NewLoadingView(snap, s.loc))
	case showcase.PhaseExploring:
		action := ActionNone
		for i, st := range snap.Overlays {
			if s.drawOverlay(p, i, NewOverlayView(st, s.loc)) {
				action = ActionBack
			}
		}
		return action
	}
	return ActionNone
}

func (s Screen) drawLoading(p Painter, v LoadingView) Action {
	sw, sh := p.GetScreenSize()
	w := min(loadingWidth, sw-2*margin)
	x, y := (sw-w)/2, (sh-loadingHeight)/2

	action := ActionNone
	p.BeginWindow("loading", x, y, w, loadingHeight, s.loc.Sprintf(msgTitle))
	p.ProgressBar(float32(v.Fraction), 0, 20, v.Text())
	p.Row(16)
	p.Label(v.Status)
	p.Row(28)
	if v.StartEnabled {
		if p.Button("start", 0, s.loc.Sprintf(msgStart)) {
			action = ActionStart
		}
	} else {
		p.ButtonDisabled("start", 0, s.loc.Sprintf(msgStart))
	}
	p.Row(16)
	p.TextWrapped(v.Hint)
	p.EndWindow()
	return action
}

// drawOverlay stacks panels down the right edge. It reports whether the
// back button was clicked.
func (s Screen) drawOverlay(p Painter, slot int, v OverlayView) bool {
	sw, _ := p.GetScreenSize()
	w := min(overlayWidth, sw-2*margin)
	x := sw - w - margin
	y := margin + float32(slot)*(overlayHeight+margin/2)

	clicked := false
	p.BeginWindow("overlay_"+string(v.Overlay), x, y, w, overlayHeight, v.Title)
	p.Row(64)
	if v.Body != "" {
		p.TextWrapped(v.Body)
	}
	if v.Buttons {
		p.Row(28)
		clicked = p.Button("back", 0, v.BackLabel)
	}
	p.EndWindow()
	return clicked
}
