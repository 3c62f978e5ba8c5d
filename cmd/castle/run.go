package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/sqweek/dialog"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/castle-showcase/internal/config"
	"github.com/Faultbox/castle-showcase/internal/engine/audio"
	"github.com/Faultbox/castle-showcase/internal/engine/camera"
	"github.com/Faultbox/castle-showcase/internal/engine/input"
	"github.com/Faultbox/castle-showcase/internal/engine/renderer"
	"github.com/Faultbox/castle-showcase/internal/engine/ui2d"
	"github.com/Faultbox/castle-showcase/internal/engine/window"
	"github.com/Faultbox/castle-showcase/internal/logger"
	"github.com/Faultbox/castle-showcase/internal/navigation"
	"github.com/Faultbox/castle-showcase/internal/showcase"
	"github.com/Faultbox/castle-showcase/internal/ui"
)

func newRunCmd(ov *config.Overrides) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Open the castle in a window",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup(ov, true)
			if err != nil {
				return err
			}
			defer logger.Sync()

			logger.Info("=== Castle Showcase ===")
			return runWindow(cmd.Context(), cfg)
		},
	}
}

// newApp builds an App with the speaker backend, falling back to silence
// when no output device can be opened.
func newApp(cfg *config.Config) (*showcase.App, error) {
	mixer := audio.NewMixer(float64(cfg.Audio.MasterVolume), float64(cfg.Audio.MusicVolume), float64(cfg.Audio.SFXVolume))
	var backend audio.Backend = mixer
	if err := mixer.Init(); err != nil {
		logger.Warn("audio unavailable, continuing silently", zap.Error(err))
		backend = audio.NewNull()
	}
	return showcase.New(cfg, showcase.Deps{Audio: backend})
}

var sectionKeys = map[sdl.Keycode]navigation.Section{
	sdl.K_0: navigation.SectionNav,
	sdl.K_1: navigation.SectionAbout,
	sdl.K_2: navigation.SectionCoach,
	sdl.K_3: navigation.SectionDownload,
	sdl.K_4: navigation.SectionToken,
	sdl.K_5: navigation.SectionRoadmap,
}

// panRate scales held pan keys to HandlePan steps per second.
const panRate = 30

func runWindow(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	win, err := window.New(cfg.Window)
	if err != nil {
		return err
	}
	defer win.Close()

	dw, dh := win.DrawableSize()
	rend, err := renderer.New(dw, dh)
	if err != nil {
		return err
	}
	defer rend.Close()

	uictx, err := ui2d.NewContext(win.Size())
	if err != nil {
		return err
	}
	defer uictx.Close()

	sess, err := newSession(func() (*showcase.App, error) {
		app, err := newApp(cfg)
		if err != nil {
			return nil, err
		}
		app.Start(ctx)
		app.Resize(win.Size())
		return app, nil
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := sess.close(); err != nil {
			logger.Warn("close", zap.Error(err))
		}
	}()

	loc := ui.NewLocalizer(cfg.UI.Language)
	screen := ui.NewScreen(loc)
	fader := renderer.NewFader(renderer.Tint(navigation.SectionNav))
	in := input.New()
	last := time.Now()
	title := ""

	for {
		if in.Update() {
			return nil
		}
		for _, ev := range in.Events() {
			handleEvent(sess.app, uictx, ev)
			if ev.Type == input.EventWindowResize {
				rend.Resize(win.DrawableSize())
				uictx.Resize(win.Size())
			}
		}

		now := time.Now()
		dt := now.Sub(last)
		last = now

		if rig, ok := sess.app.Camera().(*camera.OrbitRig); ok {
			if f, r := in.PanAxes(); f != 0 || r != 0 {
				step := float32(dt.Seconds()) * panRate
				rig.HandlePan(f*step, r*step)
			}
		}

		if err := sess.app.Frame(dt); err != nil {
			if !promptReload(err) {
				return err
			}
			win.Raise()
			if err := sess.reload(); err != nil {
				return err
			}
			last = time.Now()
			continue
		}

		snap := sess.app.Snapshot()
		if t := windowTitle(cfg.Window.Title, snap, loc); t != title {
			win.SetTitle(t)
			title = t
		}

		rend.SetClearColor(fader.Step(renderer.Tint(snap.Section), dt, snap.InFlight))
		rend.Begin()
		uictx.Begin()
		action := screen.Draw(uictx, snap)
		uictx.End()
		rend.End()
		win.SwapBuffers()

		applyAction(sess.app, action)
	}
}

func applyAction(app *showcase.App, action ui.Action) {
	switch action {
	case ui.ActionStart:
		if err := app.Enter(); err != nil {
			logger.Warn("enter failed", zap.Error(err))
		}
	case ui.ActionBack:
		if _, err := app.Back(); err != nil {
			logger.Warn("back failed", zap.Error(err))
		}
	}
}

// handleEvent feeds the UI first. Pointer input over a panel never reaches
// the scene.
func handleEvent(app *showcase.App, uictx *ui2d.Context, ev input.Event) {
	snap := app.Snapshot()
	rig, _ := app.Camera().(*camera.OrbitRig)
	mouse := uictx.Input()

	switch ev.Type {
	case input.EventWindowResize:
		app.Resize(ev.Width, ev.Height)

	case input.EventMouseDown:
		mouse.MouseX, mouse.MouseY = float32(ev.MouseX), float32(ev.MouseY)
		mouse.MouseLeftDown = true
		mouse.MouseLeftClicked = true

	case input.EventMouseUp:
		mouse.MouseLeftDown = false

	case input.EventClick:
		if uictx.WantsMouse() {
			return
		}
		app.Click(float32(ev.MouseX), float32(ev.MouseY))

	case input.EventMouseMove:
		mouse.MouseX, mouse.MouseY = float32(ev.MouseX), float32(ev.MouseY)
		if !uictx.WantsMouse() {
			app.Hover(float32(ev.MouseX), float32(ev.MouseY))
		}

	case input.EventDrag:
		if rig != nil && !uictx.WantsMouse() {
			rig.HandleDrag(ev.DX, ev.DY)
		}

	case input.EventWheel:
		if rig != nil {
			rig.HandleZoom(ev.DY)
		}

	case input.EventKeyDown:
		switch ev.Key {
		case sdl.K_RETURN:
			if snap.Phase == showcase.PhaseReady {
				applyAction(app, ui.ActionStart)
			}
		case sdl.K_ESCAPE, sdl.K_BACKSPACE:
			applyAction(app, ui.ActionBack)
		case sdl.K_m:
			app.SetMuted(!snap.Muted)
		default:
			if s, ok := sectionKeys[ev.Key]; ok {
				if _, err := app.Navigate(s, navigation.OriginUI); err != nil {
					logger.Warn("navigate failed", zap.Error(err))
				}
			}
		}
	}
}

func windowTitle(base string, snap showcase.Snapshot, loc ui.Localizer) string {
	switch snap.Phase {
	case showcase.PhaseIdle, showcase.PhaseLoading:
		return fmt.Sprintf("%s · %s", base, ui.NewLoadingView(snap, loc).Text())
	case showcase.PhaseReady:
		return fmt.Sprintf("%s · %s", base, ui.NewLoadingView(snap, loc).Status)
	case showcase.PhaseFaulted:
		return fmt.Sprintf("%s · error", base)
	}
	return fmt.Sprintf("%s · %s", base, snap.Section)
}

// promptReload asks whether to rebuild the castle after a fault.
func promptReload(fault error) bool {
	logger.Error("castle faulted", zap.Error(fault))
	return dialog.Message("Something went wrong in the castle:\n\n%v\n\nReload?", fault).
		Title("Castle").
		YesNo()
}
