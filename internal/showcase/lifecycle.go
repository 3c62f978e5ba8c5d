package showcase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/castle-showcase/internal/assets"
	"github.com/Faultbox/castle-showcase/internal/events"
	"github.com/Faultbox/castle-showcase/internal/navigation"
	"github.com/Faultbox/castle-showcase/internal/storage"
)

// Start mutes audio, reads the visit flag and begins loading. It returns
// immediately; progress arrives through Frame.
func (a *App) Start(ctx context.Context) {
	if a.phase != PhaseIdle {
		return
	}
	a.ctx = ctx
	a.music.SetMuted(true)

	visited, err := a.flags.GetBool(ctx, storage.KeyVisited)
	if err != nil {
		a.log.Warn("visit flag unavailable", zap.Error(err))
	}
	a.firstVisit = !visited

	a.phase = PhaseLoading
	a.run = a.loader.StartLoading(ctx, a.onLoaded)
}

func (a *App) onLoaded(sum assets.Summary) {
	a.summary = sum

	for _, r := range sum.Loaded {
		au, ok := r.Asset.(*assets.Audio)
		if !ok {
			continue
		}
		if err := a.backend.Load(r.Descriptor.Name, au.Data); err != nil {
			a.log.Warn("audio clip rejected", zap.String("name", r.Descriptor.Name), zap.Error(err))
		}
	}
	a.resolveHotspots()

	if a.phase == PhaseLoading {
		a.phase = PhaseReady
	}
	a.log.Info("castle ready",
		zap.Int("loaded", len(sum.Loaded)),
		zap.Int("failed", len(sum.Failed)),
		zap.Bool("timed_out", sum.TimedOut))
}

// resolveHotspots moves node-backed hotspots onto their scene nodes. A
// hotspot whose model or node is missing stays disabled.
func (a *App) resolveHotspots() {
	models := make(map[string]string, len(a.cfg.Navigation.Hotspots))
	for _, h := range a.cfg.Navigation.Hotspots {
		models[h.Name] = h.Model
	}

	for i := range a.hotspots {
		h := &a.hotspots[i]
		if h.Node == "" {
			continue
		}
		model, ok := a.loader.Model(models[h.Name])
		if !ok {
			a.log.Warn("hotspot model not loaded",
				zap.String("hotspot", h.Name),
				zap.String("model", models[h.Name]))
			continue
		}
		center, ok := model.NodeTranslation(h.Node)
		if !ok {
			a.log.Warn("hotspot node missing",
				zap.String("hotspot", h.Name),
				zap.String("node", h.Node))
			continue
		}
		h.Bounds.Center = center
		h.Enabled = true
	}
}

// Enter is the visitor pressing start: the visit is recorded, audio is
// unmuted unless configured muted, and navigation opens at nav.
func (a *App) Enter() (err error) {
	defer a.recoverOp("enter", &err)
	if a.phase != PhaseReady {
		return fmt.Errorf("enter: %w (phase %s)", ErrNotReady, a.phase)
	}
	if err := a.flags.SetBool(a.ctx, storage.KeyVisited, true); err != nil {
		a.log.Warn("visit flag not saved", zap.Error(err))
	}

	a.phase = PhaseExploring
	a.music.SetMuted(a.cfg.Audio.Muted)
	a.machine.Start()
	a.music.PlaySection(a.machine.Current())
	a.music.PlayOneShot(a.cfg.Audio.Click)
	return nil
}

func (a *App) onTransition(tr navigation.Transition) {
	if !a.choreo.FlyTo(tr.To, tr.Generation) {
		a.log.Debug("flight not started, waiting for landing timeout",
			zap.String("section", tr.To.String()))
	}
	a.music.PlaySection(tr.To)

	a.bus.Publish(events.Event{
		Kind:       events.SectionChanged,
		Section:    tr.To.String(),
		From:       tr.From.String(),
		Origin:     string(tr.Origin),
		Generation: tr.Generation,
	})
}

// Frame advances the App by dt: due timers fire, finished fetches are
// applied and the camera moves. A panic inside the frame is recovered and
// puts the App into PhaseFaulted; later frames return the same fault.
func (a *App) Frame(dt time.Duration) (err error) {
	if a.fault != nil {
		return a.fault
	}
	defer a.recoverOp("frame", &err)

	a.timers.Advance(dt)
	a.loader.Poll()
	a.choreo.Update(dt)
	return nil
}

// recoverOp turns a panic in op into a fault and stores it in err when err
// is non-nil. It must be deferred directly so recover sees the panic.
func (a *App) recoverOp(op string, err *error) {
	r := recover()
	if r == nil {
		return
	}
	fault := a.setFault(op, r)
	if err != nil {
		*err = fault
	}
}

func (a *App) setFault(op string, r any) error {
	a.fault = fmt.Errorf("%s panic: %v", op, r)
	a.phase = PhaseFaulted
	a.music.Stop()
	a.log.Error("castle faulted", zap.String("op", op), zap.Any("panic", r), zap.Stack("stack"))

	// Subscribers must not take the fallback down with them.
	func() {
		defer func() { _ = recover() }()
		a.bus.Publish(events.Event{Kind: events.Fault, Err: a.fault})
	}()
	return a.fault
}

// Fault returns the recovered fault, if any.
func (a *App) Fault() error {
	return a.fault
}

// Close stops audio, cancels loading and closes owned resources.
func (a *App) Close() error {
	for _, u := range a.unsubs {
		u()
	}
	a.unsubs = nil
	a.music.Stop()

	return multierr.Combine(
		a.loader.Close(),
		a.backend.Close(),
		a.flags.Close(),
	)
}
