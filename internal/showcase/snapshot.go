package showcase

import (
	"github.com/Faultbox/castle-showcase/internal/assets"
	"github.com/Faultbox/castle-showcase/internal/engine/camera"
	"github.com/Faultbox/castle-showcase/internal/navigation"
)

// Snapshot is a read-only view of the App for front ends.
type Snapshot struct {
	Phase      Phase
	Loading    assets.LoadState
	FirstVisit bool
	Failed     []string // assets that failed to load

	Section  navigation.Section
	InFlight bool
	Overlays []navigation.OverlayState

	Track string
	Muted bool

	Pose          camera.Pose
	Width, Height int

	Fault error
}

// Snapshot captures the current state.
func (a *App) Snapshot() Snapshot {
	s := Snapshot{
		Phase:      a.phase,
		FirstVisit: a.firstVisit,
		Section:    a.machine.Current(),
		InFlight:   a.machine.InFlight(),
		Overlays:   a.machine.VisibleOverlays(),
		Track:      a.music.Current(),
		Muted:      a.music.Muted(),
		Pose:       a.rig.Pose(),
		Fault:      a.fault,
	}
	if a.run != nil {
		s.Loading = a.run.State()
	}
	for _, r := range a.summary.Failed {
		s.Failed = append(s.Failed, r.Descriptor.Name)
	}
	s.Width, s.Height = a.choreo.Viewport()
	return s
}
