package engine

import (
	"math"
	"math/rand"

	"github.com/san-kum/trails/internal/physics"
	"github.com/san-kum/trails/internal/surface"
)

// Controller owns the lines, the hue oscillator and the anchor, and renders
// one frame per Render call. It does not schedule anything itself.
type Controller struct {
	opts   Options
	rng    *rand.Rand
	osc    *physics.Oscillator
	lines  []*physics.Line
	anchor physics.Vec2
	frame  int
	stroke surface.HSLA
}

func NewController(opts Options, rng *rand.Rand) *Controller {
	c := &Controller{opts: opts, rng: rng}
	c.Reset()
	return c
}

// Reset prepares a fresh context: a new oscillator with a random phase, no
// lines and the frame counter at 1.
func (c *Controller) Reset() {
	o := c.opts.Oscillator
	o.Phase = c.rng.Float64() * 2 * math.Pi
	c.osc = physics.NewOscillator(o)
	c.lines = nil
	c.frame = 1
}

func (c *Controller) Options() Options                { return c.opts }
func (c *Controller) Oscillator() *physics.Oscillator { return c.osc }
func (c *Controller) Lines() []*physics.Line          { return c.lines }
func (c *Controller) Anchor() physics.Vec2            { return c.anchor }
func (c *Controller) Frame() int                      { return c.frame }

// StrokeStyle is the colour used by the most recent frame.
func (c *Controller) StrokeStyle() surface.HSLA { return c.stroke }

func (c *Controller) SetAnchor(p physics.Vec2) { c.anchor = p }

// Spawn replaces the line set with a new batch seeded at the anchor. Base
// springs ramp linearly across the batch.
func (c *Controller) Spawn() {
	n := c.opts.Trails
	lines := make([]*physics.Line, n)
	for i := 0; i < n; i++ {
		lines[i] = physics.NewLine(c.opts.BaseSpring(i, n), c.anchor, c.opts.Chain, c.rng)
	}
	c.lines = lines
}

// Render draws one frame: clear, switch to additive blending, pick the hue,
// then update and draw every line in creation order.
func (c *Controller) Render(s surface.Surface) {
	s.SetCompositeMode(surface.Normal)
	s.Clear()
	s.SetCompositeMode(surface.Additive)

	c.stroke = surface.HSLA{
		H: math.Round(c.osc.Update()),
		S: c.opts.Saturation,
		L: c.opts.Lightness,
		A: c.opts.Alpha,
	}
	s.SetStrokeStyle(c.stroke)
	s.SetLineWidth(c.opts.LineWidth)

	for _, l := range c.lines {
		l.Update(c.anchor)
		l.Draw(s)
	}

	c.frame++
}
