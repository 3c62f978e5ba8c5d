package showcase

import (
	"go.uber.org/zap"

	"github.com/Faultbox/castle-showcase/internal/engine/picking"
	"github.com/Faultbox/castle-showcase/internal/events"
	"github.com/Faultbox/castle-showcase/internal/navigation"
)

// Navigate requests a section. It is a no-op unless the App is exploring.
// A panic raised by a subscriber faults the App like a panic in Frame.
func (a *App) Navigate(target navigation.Section, origin navigation.Origin) (out navigation.Outcome, err error) {
	defer a.recoverOp("navigate", &err)
	if a.phase != PhaseExploring {
		return navigation.Ignored, nil
	}
	out, err = a.machine.Navigate(target, origin)
	if err != nil {
		return out, err
	}
	if out != navigation.Ignored {
		a.music.PlayOneShot(a.soundFor(origin))
	}
	return out, nil
}

// Back leaves the visible overlay for nav, playing the overlay's back sound.
func (a *App) Back() (out navigation.Outcome, err error) {
	defer a.recoverOp("back", &err)
	if a.phase != PhaseExploring {
		return navigation.Ignored, nil
	}
	sound := a.cfg.Audio.Click
	if visible := a.machine.VisibleOverlays(); len(visible) > 0 {
		sound = a.oneShot(visible[0].BackSound())
	}
	out, err = a.machine.Back()
	if err == nil && out != navigation.Ignored {
		a.music.PlayOneShot(sound)
	}
	return out, err
}

// Click picks the hotspot under pixel (x, y) and navigates to its section.
// Hotspots are only live on the nav view once the camera has settled.
func (a *App) Click(x, y float32) (hit picking.Hit, ok bool) {
	defer a.recoverOp("click", nil)
	if a.phase != PhaseExploring || a.machine.Current() != navigation.SectionNav || a.choreo.Tweening() {
		return picking.Hit{}, false
	}
	w, h := a.choreo.Viewport()
	ray := picking.RayFromCamera(a.rig.Pose(), x, y, w, h)
	hit, ok = picking.Pick(ray, a.hotspots)
	if !ok {
		return picking.Hit{}, false
	}

	a.log.Debug("hotspot clicked",
		zap.String("hotspot", hit.Hotspot.Name),
		zap.String("section", hit.Hotspot.Section.String()))
	if _, err := a.Navigate(hit.Hotspot.Section, hit.Hotspot.Origin); err != nil {
		a.log.Warn("hotspot navigation failed", zap.Error(err))
	}
	return hit, true
}

// Hover tracks the hotspot under pixel (x, y) and plays the hover sound
// when the pointer enters one. It reports whether a hotspot is under the pointer.
func (a *App) Hover(x, y float32) bool {
	defer a.recoverOp("hover", nil)
	name := ""
	if a.phase == PhaseExploring && a.machine.Current() == navigation.SectionNav && !a.choreo.Tweening() {
		w, h := a.choreo.Viewport()
		if hit, ok := picking.Pick(picking.RayFromCamera(a.rig.Pose(), x, y, w, h), a.hotspots); ok {
			name = hit.Hotspot.Name
		}
	}
	if name != "" && name != a.hovered {
		a.music.PlayOneShot(a.cfg.Audio.Hover)
	}
	a.hovered = name
	return name != ""
}

// Resize re-frames the camera for a new viewport.
func (a *App) Resize(width, height int) {
	defer a.recoverOp("resize", nil)
	if width <= 0 || height <= 0 {
		return
	}
	a.choreo.Resize(width, height)
	a.bus.Publish(events.Event{Kind: events.Resized, Width: width, Height: height})
}

// SetMuted toggles audio output.
func (a *App) SetMuted(muted bool) {
	defer a.recoverOp("mute", nil)
	a.music.SetMuted(muted)
}

func (a *App) soundFor(origin navigation.Origin) string {
	if origin == navigation.OriginPole {
		return a.cfg.Audio.Woosh
	}
	return a.cfg.Audio.Click
}

// oneShot maps a logical sound name to its configured clip.
func (a *App) oneShot(name string) string {
	switch name {
	case "woosh":
		return a.cfg.Audio.Woosh
	case "hover":
		return a.cfg.Audio.Hover
	}
	return a.cfg.Audio.Click
}
