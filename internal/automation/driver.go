package automation

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/san-kum/trails/internal/engine"
	"github.com/san-kum/trails/internal/physics"
)

const (
	DefaultSpringFrequency = 6.0
	DefaultSpringDamping   = 0.7

	settleEpsilon = 0.01
)

// Dispatcher receives host events. engine.Manager satisfies it.
type Dispatcher interface {
	Dispatch(ev engine.Event)
}

// Driver is a virtual pointer. MoveTo glides it toward a waypoint on a
// damped spring, one Step per frame, dispatching a
// PointerMove for every position it passes through.
type Driver struct {
	out    Dispatcher
	spring harmonica.Spring

	pos, vel, target physics.Vec2
	placed, moving   bool
}

func NewDriver(out Dispatcher, fps int, frequency, damping float64) *Driver {
	if fps <= 0 {
		fps = 60
	}
	return &Driver{
		out:    out,
		spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping),
	}
}

func (d *Driver) Pos() physics.Vec2 { return d.pos }
func (d *Driver) Moving() bool      { return d.moving }

// Jump puts the pointer at p immediately.
func (d *Driver) Jump(p physics.Vec2) {
	d.pos, d.target = p, p
	d.vel = physics.Vec2{}
	d.placed = true
	d.moving = false
	d.out.Dispatch(engine.PointerMove{Pos: p})
}

// MoveTo sets the next waypoint. The first waypoint is a jump since the
// pointer has nowhere to glide from.
func (d *Driver) MoveTo(p physics.Vec2) {
	if !d.placed {
		d.Jump(p)
		return
	}
	d.target = p
	d.moving = true
}

// Step advances the pointer by one frame.
func (d *Driver) Step() {
	if !d.moving {
		return
	}
	d.pos.X, d.vel.X = d.spring.Update(d.pos.X, d.vel.X, d.target.X)
	d.pos.Y, d.vel.Y = d.spring.Update(d.pos.Y, d.vel.Y, d.target.Y)

	if d.pos.Sub(d.target).Len() < settleEpsilon && math.Hypot(d.vel.X, d.vel.Y) < settleEpsilon {
		d.pos = d.target
		d.vel = physics.Vec2{}
		d.moving = false
	}
	d.out.Dispatch(engine.PointerMove{Pos: d.pos})
}
