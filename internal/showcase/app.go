// Package showcase assembles the castle: it owns every subsystem, wires
// their callbacks together and exposes the operations front ends drive.
//
// An App is built once per session and driven from a single goroutine (the
// main loop). Rebuilding it is how a front end reloads after a fault.
package showcase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/castle-showcase/internal/assets"
	"github.com/Faultbox/castle-showcase/internal/config"
	"github.com/Faultbox/castle-showcase/internal/engine/audio"
	"github.com/Faultbox/castle-showcase/internal/engine/camera"
	"github.com/Faultbox/castle-showcase/internal/engine/picking"
	"github.com/Faultbox/castle-showcase/internal/engine/timer"
	"github.com/Faultbox/castle-showcase/internal/events"
	"github.com/Faultbox/castle-showcase/internal/logger"
	"github.com/Faultbox/castle-showcase/internal/navigation"
	"github.com/Faultbox/castle-showcase/internal/storage"
)

// ErrNotReady is returned by Enter before loading has completed.
var ErrNotReady = errors.New("showcase not ready")

// Flags persists visitor state between runs.
type Flags interface {
	GetBool(ctx context.Context, key string) (bool, error)
	SetBool(ctx context.Context, key string, v bool) error
	Close() error
}

// Deps are the replaceable collaborators of an App. Zero fields get the
// defaults: files under the configured asset root, a silent audio backend,
// the configured sqlite store and an orbit rig.
type Deps struct {
	Fetcher assets.Fetcher
	Audio   audio.Backend
	Flags   Flags
	Camera  camera.Controller
}

// Phase is the coarse lifecycle stage of an App.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady     // loaded, waiting for the visitor to press start
	PhaseExploring // navigation open
	PhaseFaulted
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseExploring:
		return "exploring"
	case PhaseFaulted:
		return "faulted"
	}
	return "idle"
}

// App is the application context.
type App struct {
	cfg *config.Config
	log *zap.Logger

	timers   *timer.Queue
	bus      *events.Bus
	registry *assets.Registry
	loader   *assets.Loader
	machine  *navigation.Machine
	choreo   *camera.Choreographer
	rig      camera.Controller
	backend  audio.Backend
	music    *audio.Orchestrator
	flags    Flags
	hotspots []picking.Hotspot
	hovered  string

	ctx        context.Context
	phase      Phase
	run        *assets.Run
	summary    assets.Summary
	firstVisit bool
	fault      error
	unsubs     []func()
}

// New builds an App from cfg. The App owns deps and closes them in Close.
func New(cfg *config.Config, deps Deps) (*App, error) {
	table, err := poseTable(cfg.Camera)
	if err != nil {
		return nil, err
	}
	tracks, err := trackMap(cfg.Audio.Tracks)
	if err != nil {
		return nil, err
	}
	hotspots, err := hotspotList(cfg.Navigation.Hotspots)
	if err != nil {
		return nil, err
	}

	registry := assets.NewRegistry()
	if err := assets.RegisterEntries(registry, cfg.Assets.Entries); err != nil {
		return nil, err
	}
	if cfg.Assets.Manifest != "" {
		if err := assets.LoadManifest(registry, cfg.Assets.Manifest); err != nil {
			return nil, err
		}
	}

	if deps.Fetcher == nil {
		deps.Fetcher = assets.NewFileFetcher(cfg.Assets.Root)
	}
	if deps.Audio == nil {
		deps.Audio = audio.NewNull()
	}
	if deps.Camera == nil {
		deps.Camera = camera.NewOrbitRig()
	}
	if deps.Flags == nil {
		store, err := storage.Open(cfg.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("open storage: %w", err)
		}
		deps.Flags = store
	}

	a := &App{
		cfg:      cfg,
		log:      logger.Named("app"),
		timers:   timer.New(),
		bus:      events.NewBus(),
		registry: registry,
		rig:      deps.Camera,
		backend:  deps.Audio,
		flags:    deps.Flags,
		hotspots: hotspots,
		ctx:      context.Background(),
	}

	a.loader = assets.NewLoader(registry, deps.Fetcher, a.timers, a.bus, assets.Options{
		Watchdog:   cfg.Loading.Watchdog,
		EmptyDelay: cfg.Loading.EmptyDelay,
		ByteWeight: cfg.Loading.ByteWeight,
		Parallel:   cfg.Loading.Parallel,
	})
	a.machine = navigation.NewMachine(a.timers, navigation.Options{
		ContentDelay:  cfg.Navigation.ContentDelay,
		ButtonDelay:   cfg.Navigation.ButtonDelay,
		FlightTimeout: cfg.Navigation.FlightTimeout,
	})
	a.choreo = camera.NewChoreographer(table, cfg.Camera.TweenDuration)
	a.choreo.Mount(deps.Camera)
	a.music = audio.NewOrchestrator(deps.Audio, a.timers, tracks, cfg.Audio.SwitchDelay)

	a.choreo.OnArrive(func(_ navigation.Section, gen uint64) {
		a.machine.Arrived(gen)
	})
	a.unsubs = append(a.unsubs, a.machine.Subscribe(a.onTransition))

	a.choreo.Resize(cfg.Window.Width, cfg.Window.Height)

	a.log.Debug("app assembled",
		zap.Int("assets", registry.Len()),
		zap.Int("hotspots", len(hotspots)))
	return a, nil
}

func poseTable(cfg config.CameraConfig) (*camera.PoseTable, error) {
	table := camera.NewPoseTable(cfg.Breakpoint)
	for key, pair := range cfg.Poses {
		s, err := navigation.ParseSection(key)
		if err != nil {
			return nil, fmt.Errorf("camera.poses: %w", err)
		}
		table.Set(s, poseFrom(pair.Small), poseFrom(pair.Large))
	}
	return table, nil
}

func poseFrom(p config.PoseSpec) camera.Pose {
	return camera.Pose{Position: p.Position, Target: p.Target, FOV: p.FOV}
}

func trackMap(tracks map[string]string) (map[navigation.Section]string, error) {
	out := make(map[navigation.Section]string, len(tracks))
	for key, name := range tracks {
		s, err := navigation.ParseSection(key)
		if err != nil {
			return nil, fmt.Errorf("audio.tracks: %w", err)
		}
		out[s] = name
	}
	return out, nil
}

func hotspotList(cfgs []config.HotspotConfig) ([]picking.Hotspot, error) {
	out := make([]picking.Hotspot, 0, len(cfgs))
	for _, h := range cfgs {
		s, err := navigation.ParseSection(h.Section)
		if err != nil {
			return nil, fmt.Errorf("hotspot %s: %w", h.Name, err)
		}
		out = append(out, picking.Hotspot{
			Name:    h.Name,
			Section: s,
			Origin:  navigation.ParseOrigin(h.Origin),
			Node:    h.Node,
			Bounds:  picking.Sphere{Center: h.Center, Radius: h.Radius},
			// Node-backed hotspots wait for their model.
			Enabled: h.Node == "",
		})
	}
	return out, nil
}

// Bus returns the event bus. Handlers run on the main loop.
func (a *App) Bus() *events.Bus {
	return a.bus
}

// Config returns the configuration the App was built from.
func (a *App) Config() *config.Config {
	return a.cfg
}

// Registry returns the asset registry.
func (a *App) Registry() *assets.Registry {
	return a.registry
}

// Loader returns the asset loader.
func (a *App) Loader() *assets.Loader {
	return a.loader
}

// Machine returns the navigation machine.
func (a *App) Machine() *navigation.Machine {
	return a.machine
}

// Camera returns the mounted camera controller.
func (a *App) Camera() camera.Controller {
	return a.rig
}

// Hotspots returns a copy of the hotspot list.
func (a *App) Hotspots() []picking.Hotspot {
	return append([]picking.Hotspot(nil), a.hotspots...)
}
