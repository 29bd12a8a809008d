package physics

import "math"

// Vec2 is a point in surface coordinates.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Node is one mass of a Line.
type Node struct {
	X, Y   float64
	VX, VY float64
}

func (n Node) Pos() Vec2 { return Vec2{n.X, n.Y} }

// Speed2 is the squared velocity magnitude.
func (n Node) Speed2() float64 { return n.VX*n.VX + n.VY*n.VY }
