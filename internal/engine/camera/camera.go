// Package camera frames the castle: an orbit rig the user can steer in the
// nav section, and a choreographer that flies it between section poses.
package camera

import (
	gomath "math"

	"github.com/Faultbox/castle-showcase/pkg/math"
)

// Controller is the mounted camera the choreographer drives.
type Controller interface {
	Pose() Pose
	SetPose(Pose)
	SetUserControl(enabled bool)
	UserControl() bool
}

// OrbitRig orbits around a center point.
type OrbitRig struct {
	// Center point to orbit around (the look-at target)
	Center math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	FOV float32 // Vertical field of view, degrees

	// Constraints on user input; choreographed poses ignore them
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	userControl bool
}

// NewOrbitRig creates a rig with default limits and user control enabled.
func NewOrbitRig() *OrbitRig {
	return &OrbitRig{
		Distance:        20,
		RotationX:       0.3,
		FOV:             45,
		MinDistance:     6,
		MaxDistance:     45,
		MinPitch:        0.05,
		MaxPitch:        1.3,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		userControl:     true,
	}
}

// Position returns the camera position in world space.
func (c *OrbitRig) Position() math.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Sin(float64(c.RotationY)))
	y := c.Distance * float32(gomath.Sin(float64(c.RotationX)))
	z := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Cos(float64(c.RotationY)))
	return c.Center.Add(math.V3(x, y, z))
}

// Pose implements Controller.
func (c *OrbitRig) Pose() Pose {
	return Pose{Position: c.Position(), Target: c.Center, FOV: c.FOV}
}

// SetPose implements Controller by converting position/target into orbit
// coordinates around the target.
func (c *OrbitRig) SetPose(p Pose) {
	c.Center = p.Target
	c.FOV = p.FOV

	offset := p.Position.Sub(p.Target)
	dist := offset.Length()
	if dist == 0 {
		return
	}
	c.Distance = dist
	c.RotationX = float32(gomath.Asin(float64(offset.Y / dist)))
	c.RotationY = float32(gomath.Atan2(float64(offset.X), float64(offset.Z)))
}

// SetUserControl implements Controller.
func (c *OrbitRig) SetUserControl(enabled bool) {
	c.userControl = enabled
}

// UserControl implements Controller.
func (c *OrbitRig) UserControl() bool {
	return c.userControl
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitRig) HandleDrag(deltaX, deltaY float32) {
	if !c.userControl {
		return
	}
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity

	if c.RotationX < c.MinPitch {
		c.RotationX = c.MinPitch
	}
	if c.RotationX > c.MaxPitch {
		c.RotationX = c.MaxPitch
	}
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitRig) HandleZoom(delta float32) {
	if !c.userControl {
		return
	}
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// HandlePan moves the center point on the ground plane relative to the view.
func (c *OrbitRig) HandlePan(forward, right float32) {
	if !c.userControl {
		return
	}
	speed := c.Distance * 0.01

	dirX := float32(gomath.Sin(float64(c.RotationY)))
	dirZ := float32(gomath.Cos(float64(c.RotationY)))
	rightX := float32(gomath.Cos(float64(c.RotationY)))
	rightZ := float32(-gomath.Sin(float64(c.RotationY)))

	c.Center.X += (-dirX*forward + rightX*right) * speed
	c.Center.Z += (-dirZ*forward + rightZ*right) * speed
}
