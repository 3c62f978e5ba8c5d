package picking

import (
	"github.com/Faultbox/castle-showcase/internal/navigation"
)

// Hotspot is a clickable region of the scene that requests a section.
type Hotspot struct {
	Name    string
	Section navigation.Section
	Origin  navigation.Origin
	// Node names the scene node whose position overrides Bounds.Center.
	Node    string
	Bounds  Sphere
	Enabled bool
}

// Hit is the result of a successful Pick.
type Hit struct {
	Hotspot  *Hotspot
	Distance float32
}

// Pick returns the nearest enabled hotspot along r.
func Pick(r Ray, hotspots []Hotspot) (Hit, bool) {
	var best Hit
	found := false
	for i := range hotspots {
		h := &hotspots[i]
		if !h.Enabled {
			continue
		}
		t, ok := h.Bounds.Intersect(r)
		if !ok {
			continue
		}
		if !found || t < best.Distance {
			best = Hit{Hotspot: h, Distance: t}
			found = true
		}
	}
	return best, found
}
