// Package picking turns clicks on the castle view into hotspot hits.
package picking

import (
	gomath "math"

	"github.com/Faultbox/castle-showcase/internal/engine/camera"
	"github.com/Faultbox/castle-showcase/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// RayFromCamera builds the world-space ray through pixel (x, y) of a
// width x height viewport looking through pose.
func RayFromCamera(pose camera.Pose, x, y float32, width, height int) Ray {
	if width <= 0 || height <= 0 {
		return Ray{Origin: pose.Position, Direction: pose.Target.Sub(pose.Position).Normalize()}
	}

	// Convert screen coords to normalized device coords (-1 to 1)
	ndcX := 2.0*x/float32(width) - 1.0
	ndcY := 1.0 - 2.0*y/float32(height) // Flip Y

	forward := pose.Target.Sub(pose.Position).Normalize()
	worldUp := math.V3(0, 1, 0)
	if gomath.Abs(float64(forward.Dot(worldUp))) > 0.999 {
		worldUp = math.V3(0, 0, -1)
	}
	right := forward.Cross(worldUp).Normalize()
	up := right.Cross(forward)

	tanHalf := float32(gomath.Tan(float64(pose.FOV) * gomath.Pi / 360))
	aspect := float32(width) / float32(height)

	dir := forward.
		Add(right.Scale(ndcX * tanHalf * aspect)).
		Add(up.Scale(ndcY * tanHalf))

	return Ray{Origin: pose.Position, Direction: dir.Normalize()}
}

// Sphere is a bounding sphere.
type Sphere struct {
	Center math.Vec3
	Radius float32
}

// Intersect returns the distance along r to the first hit. When the ray
// starts inside the sphere the exit distance is returned.
func (s Sphere) Intersect(r Ray) (t float32, hit bool) {
	if s.Radius <= 0 {
		return 0, false
	}
	oc := r.Origin.Sub(s.Center)
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := float32(gomath.Sqrt(float64(disc)))
	t0, t1 := -b-sq, -b+sq
	if t1 < 0 {
		return 0, false // Behind ray origin
	}
	if t0 < 0 {
		return t1, true
	}
	return t0, true
}
