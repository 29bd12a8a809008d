package surface

import "github.com/san-kum/trails/internal/physics"

// QuadSteps is the number of line segments a quadratic curve is split into
// by raster surfaces.
const QuadSteps = 8

// FlattenQuad appends the points of the quadratic curve p0-c-p1 to dst,
// excluding p0.
func FlattenQuad(dst []physics.Vec2, p0, c, p1 physics.Vec2, steps int) []physics.Vec2 {
	if steps < 1 {
		steps = 1
	}
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		mt := 1 - t
		dst = append(dst, physics.Vec2{
			X: mt*mt*p0.X + 2*mt*t*c.X + t*t*p1.X,
			Y: mt*mt*p0.Y + 2*mt*t*c.Y + t*t*p1.Y,
		})
	}
	return dst
}

// Polyline accumulates the current path of a raster surface as a list of
// flattened sub-paths.
type Polyline struct {
	Steps   int
	subs    [][]physics.Vec2
	current []physics.Vec2
}

func (p *Polyline) Reset() {
	p.subs = p.subs[:0]
	p.current = nil
}

func (p *Polyline) MoveTo(x, y float64) {
	p.flush()
	p.current = []physics.Vec2{{X: x, Y: y}}
}

func (p *Polyline) QuadTo(cx, cy, x, y float64) {
	if len(p.current) == 0 {
		// canvas semantics: a curve with no current point starts at its control point
		p.current = []physics.Vec2{{X: cx, Y: cy}}
	}
	steps := p.Steps
	if steps == 0 {
		steps = QuadSteps
	}
	last := p.current[len(p.current)-1]
	p.current = FlattenQuad(p.current, last, physics.Vec2{X: cx, Y: cy}, physics.Vec2{X: x, Y: y}, steps)
}

// Close joins the current sub-path back to its first point.
func (p *Polyline) Close() {
	if len(p.current) > 1 {
		p.current = append(p.current, p.current[0])
	}
}

// SubPaths returns every sub-path with at least two points.
func (p *Polyline) SubPaths() [][]physics.Vec2 {
	p.flush()
	return p.subs
}

func (p *Polyline) flush() {
	if len(p.current) > 1 {
		p.subs = append(p.subs, p.current)
	}
	p.current = nil
}
