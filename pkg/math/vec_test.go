package math

import (
	"testing"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 0, 4}
	l := v.Normalize().Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if (Vec3{}).Normalize() != (Vec3{}) {
		t.Error("normalizing the zero vector should stay zero")
	}
}

func TestVec3Lerp(t *testing.T) {
	a := Vec3{0, 10, -4}
	b := Vec3{10, 20, 4}

	tests := []struct {
		t    float32
		want Vec3
	}{
		{0, a},
		{1, b},
		{0.5, Vec3{5, 15, 0}},
	}
	for _, tt := range tests {
		got := a.Lerp(b, tt.t)
		if !got.ApproxEqual(tt.want, 1e-5) {
			t.Errorf("Lerp(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestEaseInOutCubic(t *testing.T) {
	if got := EaseInOutCubic(0); got != 0 {
		t.Errorf("EaseInOutCubic(0) = %v, want 0", got)
	}
	if got := EaseInOutCubic(1); got != 1 {
		t.Errorf("EaseInOutCubic(1) = %v, want 1", got)
	}
	if got := EaseInOutCubic(0.5); got < 0.499 || got > 0.501 {
		t.Errorf("EaseInOutCubic(0.5) = %v, want 0.5", got)
	}
	// Out-of-range progress is clamped.
	if got := EaseInOutCubic(2); got != 1 {
		t.Errorf("EaseInOutCubic(2) = %v, want 1", got)
	}

	prev := 0.0
	for i := 1; i <= 100; i++ {
		v := EaseInOutCubic(float64(i) / 100)
		if v < prev {
			t.Fatalf("curve not monotonic at step %d: %v < %v", i, v, prev)
		}
		prev = v
	}
}
