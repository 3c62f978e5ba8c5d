package camera

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/castle-showcase/internal/logger"
	"github.com/Faultbox/castle-showcase/internal/navigation"
	"github.com/Faultbox/castle-showcase/pkg/math"
)

type tween struct {
	from, to Pose
	elapsed  time.Duration
	duration time.Duration
}

// Choreographer flies the mounted controller between section poses.
// It runs on the main loop.
type Choreographer struct {
	table    *PoseTable
	ctrl     Controller
	duration time.Duration
	log      *zap.Logger

	width, height int
	section       navigation.Section
	gen           uint64
	tween         *tween

	onArrive func(section navigation.Section, gen uint64)
}

// NewChoreographer creates a choreographer with no controller mounted.
func NewChoreographer(table *PoseTable, duration time.Duration) *Choreographer {
	return &Choreographer{
		table:    table,
		duration: duration,
		log:      logger.Named("camera"),
		section:  navigation.SectionNav,
		width:    table.Breakpoint(),
	}
}

// Mount attaches the controller. Passing nil unmounts it.
func (c *Choreographer) Mount(ctrl Controller) {
	c.ctrl = ctrl
}

// OnArrive registers the callback run when a flight lands.
func (c *Choreographer) OnArrive(fn func(section navigation.Section, gen uint64)) {
	c.onArrive = fn
}

// Section returns the section the camera is framing or flying to.
func (c *Choreographer) Section() navigation.Section {
	return c.section
}

// Tweening reports whether a flight is in progress.
func (c *Choreographer) Tweening() bool {
	return c.tween != nil
}

// Viewport returns the last known viewport size.
func (c *Choreographer) Viewport() (width, height int) {
	return c.width, c.height
}

// FlyTo starts a flight to the pose of section. User control is disabled for
// the flight. The request is dropped, and false returned, when no controller
// is mounted or the section has no pose.
func (c *Choreographer) FlyTo(section navigation.Section, gen uint64) bool {
	if c.ctrl == nil {
		c.log.Debug("camera not mounted, flight dropped", zap.String("section", section.String()))
		return false
	}
	to, ok := c.table.PoseFor(section, c.width)
	if !ok {
		c.log.Warn("no pose for section", zap.String("section", section.String()))
		return false
	}

	c.section = section
	c.gen = gen
	c.ctrl.SetUserControl(false)
	c.tween = &tween{from: c.ctrl.Pose(), to: to, duration: c.duration}

	c.log.Debug("camera flight started",
		zap.String("section", section.String()),
		zap.Uint64("generation", gen),
		zap.Duration("duration", c.duration))

	if c.duration <= 0 {
		c.land()
	}
	return true
}

// Update advances the flight by dt.
func (c *Choreographer) Update(dt time.Duration) {
	tw := c.tween
	if tw == nil || c.ctrl == nil {
		return
	}
	tw.elapsed += dt
	if tw.elapsed >= tw.duration {
		c.land()
		return
	}
	t := math.EaseInOutCubic(float64(tw.elapsed) / float64(tw.duration))
	c.ctrl.SetPose(tw.from.Lerp(tw.to, float32(t)))
}

func (c *Choreographer) land() {
	tw := c.tween
	c.tween = nil
	c.ctrl.SetPose(tw.to)
	// Only the nav view may be steered; overlays keep the camera framed.
	c.ctrl.SetUserControl(c.section == navigation.SectionNav)

	c.log.Debug("camera landed", zap.String("section", c.section.String()), zap.Uint64("generation", c.gen))
	if c.onArrive != nil {
		c.onArrive(c.section, c.gen)
	}
}

// Resize records the viewport and re-applies the current section's pose for
// the new breakpoint without animating. An in-flight tween is retargeted.
func (c *Choreographer) Resize(width, height int) {
	prev := c.table.VariantFor(c.width)
	c.width, c.height = width, height

	pose, ok := c.table.PoseFor(c.section, width)
	if !ok || c.ctrl == nil {
		return
	}
	if c.tween != nil {
		c.tween.to = pose
		return
	}
	c.ctrl.SetPose(pose)

	if next := c.table.VariantFor(width); next != prev {
		c.log.Debug("camera breakpoint crossed",
			zap.String("variant", next.String()),
			zap.Int("width", width))
	}
}
