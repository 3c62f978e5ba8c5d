package camera

import (
	"github.com/Faultbox/castle-showcase/internal/navigation"
	"github.com/Faultbox/castle-showcase/pkg/math"
)

// Pose is a camera position, look-at target and vertical field of view (degrees).
type Pose struct {
	Position math.Vec3
	Target   math.Vec3
	FOV      float32
}

// Lerp interpolates every component of the pose.
func (p Pose) Lerp(to Pose, t float32) Pose {
	return Pose{
		Position: p.Position.Lerp(to.Position, t),
		Target:   p.Target.Lerp(to.Target, t),
		FOV:      math.Lerp(p.FOV, to.FOV, t),
	}
}

// ApproxEqual compares poses with a tolerance.
func (p Pose) ApproxEqual(o Pose, eps float32) bool {
	d := p.FOV - o.FOV
	if d < 0 {
		d = -d
	}
	return p.Position.ApproxEqual(o.Position, eps) && p.Target.ApproxEqual(o.Target, eps) && d <= eps
}

// Variant selects the small-screen or large-screen pose.
type Variant int

const (
	VariantLarge Variant = iota
	VariantSmall
)

func (v Variant) String() string {
	if v == VariantSmall {
		return "small"
	}
	return "large"
}

// PoseTable is the static pose configuration. Lookups are pure functions of
// (section, variant).
type PoseTable struct {
	breakpoint int
	poses      map[navigation.Section][2]Pose
}

// NewPoseTable creates an empty table. Widths below breakpoint use the small variant.
func NewPoseTable(breakpoint int) *PoseTable {
	return &PoseTable{
		breakpoint: breakpoint,
		poses:      make(map[navigation.Section][2]Pose),
	}
}

// Set stores both variants for a section.
func (t *PoseTable) Set(section navigation.Section, small, large Pose) {
	var pair [2]Pose
	pair[VariantSmall] = small
	pair[VariantLarge] = large
	t.poses[section] = pair
}

// Breakpoint returns the small/large threshold width in pixels.
func (t *PoseTable) Breakpoint() int {
	return t.breakpoint
}

// VariantFor returns the variant for a viewport width.
func (t *PoseTable) VariantFor(width int) Variant {
	if width < t.breakpoint {
		return VariantSmall
	}
	return VariantLarge
}

// Lookup returns the pose of section for a given variant.
func (t *PoseTable) Lookup(section navigation.Section, v Variant) (Pose, bool) {
	pair, ok := t.poses[section]
	if !ok {
		return Pose{}, false
	}
	return pair[v], true
}

// PoseFor returns the pose of section for a viewport width.
func (t *PoseTable) PoseFor(section navigation.Section, width int) (Pose, bool) {
	return t.Lookup(section, t.VariantFor(width))
}
