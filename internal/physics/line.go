package physics

import (
	"math"
	"math/rand"
)

const (
	DefaultFriction  = 0.5
	DefaultSize      = 50
	DefaultDampening = 0.025
	DefaultTension   = 0.99

	// SpringJitter and FrictionJitter bound the per-line random offset.
	SpringJitter   = 0.05
	FrictionJitter = 0.005
)

// ChainParams are the settings shared by every Line of a batch.
type ChainParams struct {
	Friction  float64 // base friction, jittered per line
	Size      int     // nodes per line
	Dampening float64 // share of the predecessor's velocity passed down
	Tension   float64 // per-node decay of the spring coefficient
}

func DefaultChainParams() ChainParams {
	return ChainParams{
		Friction:  DefaultFriction,
		Size:      DefaultSize,
		Dampening: DefaultDampening,
		Tension:   DefaultTension,
	}
}

// Path is the subset of a drawing surface a Line needs to render itself.
type Path interface {
	BeginPath()
	MoveTo(x, y float64)
	QuadraticCurveTo(cx, cy, x, y float64)
	Stroke()
	ClosePath()
}

// Line is a chain of nodes joined by damped springs. Node 0 follows the
// anchor, every other node follows its predecessor.
type Line struct {
	Spring    float64
	Friction  float64
	Nodes     []Node
	dampening float64
	tension   float64
}

// NewLine builds a line whose nodes all start at anchor. Spring and
// friction get a random offset once, here, and never change afterwards.
func NewLine(base float64, anchor Vec2, p ChainParams, rng *rand.Rand) *Line {
	l := &Line{
		Spring:    base + 2*SpringJitter*rng.Float64() - SpringJitter,
		Friction:  p.Friction + 2*FrictionJitter*rng.Float64() - FrictionJitter,
		Nodes:     make([]Node, p.Size),
		dampening: p.Dampening,
		tension:   p.Tension,
	}
	for i := range l.Nodes {
		l.Nodes[i].X = anchor.X
		l.Nodes[i].Y = anchor.Y
	}
	return l
}

// Update runs one integration pass. Nodes are processed in order and each
// node reads its predecessor after that predecessor was already moved in
// this same pass.
func (l *Line) Update(anchor Vec2) {
	if len(l.Nodes) == 0 {
		return
	}

	e := l.Spring
	head := &l.Nodes[0]
	head.VX += (anchor.X - head.X) * e
	head.VY += (anchor.Y - head.Y) * e

	for i := range l.Nodes {
		n := &l.Nodes[i]

		if i > 0 {
			prev := &l.Nodes[i-1]
			n.VX += (prev.X - n.X) * e
			n.VY += (prev.Y - n.Y) * e
			n.VX += prev.VX * l.dampening
			n.VY += prev.VY * l.dampening
		}

		n.VX *= l.Friction
		n.VY *= l.Friction
		n.X += n.VX
		n.Y += n.VY

		e *= l.tension
	}
}

// Coefficient is the spring pull applied to node i during Update.
func (l *Line) Coefficient(i int) float64 {
	return l.Spring * math.Pow(l.tension, float64(i))
}

// Draw traces the chain as one smooth path through the midpoints of
// consecutive nodes. The final segment ends exactly on the last node.
func (l *Line) Draw(p Path) {
	n := len(l.Nodes)
	if n < 2 {
		return
	}

	p.BeginPath()
	p.MoveTo(l.Nodes[0].X, l.Nodes[0].Y)

	for a := 1; a < n-2; a++ {
		cur, next := l.Nodes[a], l.Nodes[a+1]
		p.QuadraticCurveTo(cur.X, cur.Y, 0.5*(cur.X+next.X), 0.5*(cur.Y+next.Y))
	}

	ctrl, tail := l.Nodes[n-2], l.Nodes[n-1]
	p.QuadraticCurveTo(ctrl.X, ctrl.Y, tail.X, tail.Y)
	p.Stroke()
	p.ClosePath()
}

// Energy is the kinetic energy of the chain with unit node mass.
func (l *Line) Energy() float64 {
	sum := 0.0
	for _, n := range l.Nodes {
		sum += 0.5 * n.Speed2()
	}
	return sum
}

// Clone returns a deep copy, used to compare states across frames.
func (l *Line) Clone() *Line {
	c := *l
	c.Nodes = make([]Node, len(l.Nodes))
	copy(c.Nodes, l.Nodes)
	return &c
}
