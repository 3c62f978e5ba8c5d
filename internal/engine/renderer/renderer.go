// Package renderer clears the castle view. Scene drawing is owned by the
// asset pipeline; this package sets the GL state and the per-section tint.
package renderer

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/castle-showcase/internal/logger"
	"github.com/Faultbox/castle-showcase/internal/navigation"
	"github.com/Faultbox/castle-showcase/pkg/math"
)

// Color is a linear RGBA color.
type Color [4]float32

var tints = map[navigation.Section]Color{
	navigation.SectionNav:      {0.10, 0.10, 0.15, 1},
	navigation.SectionAbout:    {0.16, 0.12, 0.09, 1},
	navigation.SectionCoach:    {0.14, 0.09, 0.16, 1},
	navigation.SectionDownload: {0.08, 0.12, 0.10, 1},
	navigation.SectionToken:    {0.15, 0.13, 0.06, 1},
	navigation.SectionRoadmap:  {0.07, 0.10, 0.16, 1},
}

// Tint returns the clear color of a section.
func Tint(s navigation.Section) Color {
	if c, ok := tints[s]; ok {
		return c
	}
	return tints[navigation.SectionNav]
}

// Blend interpolates between two colors.
func Blend(a, b Color, t float32) Color {
	var out Color
	for i := range out {
		out[i] = math.Lerp(a[i], b[i], t)
	}
	return out
}

// FadeRate is the share of the remaining tint difference closed per second
// of flight.
const FadeRate = 2.5

// Fader eases the clear color toward the current section's tint while the
// camera is in flight.
type Fader struct {
	current Color
}

// NewFader starts a fader at c.
func NewFader(c Color) *Fader {
	return &Fader{current: c}
}

// Step moves toward target by dt. Outside a flight it lands on target.
func (f *Fader) Step(target Color, dt time.Duration, inFlight bool) Color {
	if !inFlight {
		f.current = target
		return target
	}
	t := float32(dt.Seconds()) * FadeRate
	if t >= 1 {
		f.current = target
	} else {
		f.current = Blend(f.current, target, t)
	}
	return f.current
}

// Renderer handles the OpenGL frame.
type Renderer struct {
	width, height int
	clear         Color
	log           *zap.Logger
}

// New initializes OpenGL. It must be called after the context is created.
func New(width, height int) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	r := &Renderer{log: logger.Named("renderer"), clear: Tint(navigation.SectionNav)}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	r.Resize(width, height)
	return r, nil
}

// Close releases renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
}

// Resize sets the GL viewport to the drawable size.
func (r *Renderer) Resize(width, height int) {
	r.width, r.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// SetClearColor sets the color used by Begin.
func (r *Renderer) SetClearColor(c Color) {
	r.clear = c
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.ClearColor(r.clear[0], r.clear[1], r.clear[2], r.clear[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the current frame.
func (r *Renderer) End() {}
