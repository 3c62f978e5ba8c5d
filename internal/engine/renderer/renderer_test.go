package renderer

import (
	"testing"
	"time"

	"github.com/Faultbox/castle-showcase/internal/navigation"
)

func TestTintCoversEverySection(t *testing.T) {
	seen := make(map[Color]navigation.Section)
	for _, s := range navigation.Sections {
		c := Tint(s)
		if c[3] != 1 {
			t.Errorf("Tint(%s) alpha = %v, want 1", s, c[3])
		}
		if prev, dup := seen[c]; dup {
			t.Errorf("Tint(%s) duplicates %s", s, prev)
		}
		seen[c] = s
	}
	if Tint("attic") != Tint(navigation.SectionNav) {
		t.Error("unknown sections should fall back to the nav tint")
	}
}

func TestBlend(t *testing.T) {
	a := Color{0, 0, 0, 1}
	b := Color{1, 0.5, 0, 1}
	if got := Blend(a, b, 0); got != a {
		t.Errorf("Blend t=0 = %v, want %v", got, a)
	}
	if got := Blend(a, b, 1); got != b {
		t.Errorf("Blend t=1 = %v, want %v", got, b)
	}
	if got := Blend(a, b, 0.5); got != (Color{0.5, 0.25, 0, 1}) {
		t.Errorf("Blend t=0.5 = %v", got)
	}
}

func TestFaderEasesDuringFlight(t *testing.T) {
	from := Tint(navigation.SectionNav)
	to := Tint(navigation.SectionToken)
	f := NewFader(from)

	mid := f.Step(to, 100*time.Millisecond, true)
	if mid == from || mid == to {
		t.Fatalf("first step = %v, want a color between %v and %v", mid, from, to)
	}
	if want := Blend(from, to, 0.25); mid != want {
		t.Errorf("first step = %v, want %v", mid, want)
	}

	// A long frame never overshoots
	if got := f.Step(to, time.Second, true); got != to {
		t.Errorf("long step = %v, want %v", got, to)
	}
}

func TestFaderSnapsOutsideFlight(t *testing.T) {
	f := NewFader(Tint(navigation.SectionNav))
	to := Tint(navigation.SectionAbout)
	if got := f.Step(to, time.Millisecond, false); got != to {
		t.Errorf("Step without flight = %v, want %v", got, to)
	}
}
