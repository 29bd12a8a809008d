package viz

import (
	"math"
	"strings"

	"github.com/san-kum/trails/internal/surface"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const (
	blank = 0x2800

	// DefaultScale is the number of surface units per Braille dot.
	DefaultScale = 4.0
	// DefaultThreshold is the light a dot needs to show up. With the
	// default alpha it takes two overlapping strokes.
	DefaultThreshold = 0.05
)

// Canvas is a Braille canvas that implements surface.Surface. Each dot
// keeps a light value so low-alpha strokes accumulate the way they do on
// a real canvas; a dot is drawn once its light passes Threshold.
type Canvas struct {
	Width, Height int // in cells
	Grid          [][]rune
	Scale         float64
	Threshold     float64

	light  []float64 // one entry per dot, row-major
	mark   []uint32  // last stroke that touched each dot
	stroke uint32

	mode  surface.CompositeMode
	style surface.HSLA
	width float64
	path  surface.Polyline
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Scale:     DefaultScale,
		Threshold: DefaultThreshold,
		width:     1,
	}
	c.alloc(w, h)
	return c
}

func (c *Canvas) alloc(w, h int) {
	c.Width, c.Height = w, h
	c.Grid = make([][]rune, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
	c.light = make([]float64, w*2*h*4)
	c.mark = make([]uint32, len(c.light))
	c.stroke = 0
}

func (c *Canvas) dotsW() int { return c.Width * 2 }
func (c *Canvas) dotsH() int { return c.Height * 4 }

func (c *Canvas) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= c.dotsW() || y >= c.dotsH() {
		return 0, false
	}
	return y*c.dotsW() + x, true
}

// Set lights a dot at (x, y) in dot coordinates.
func (c *Canvas) Set(x, y int) {
	if i, ok := c.index(x, y); ok {
		c.light[i] = 1
	}
}

// Unset clears a dot
func (c *Canvas) Unset(x, y int) {
	if i, ok := c.index(x, y); ok {
		c.light[i] = 0
	}
}

// Light returns the accumulated light of a dot.
func (c *Canvas) Light(x, y int) float64 {
	if i, ok := c.index(x, y); ok {
		return c.light[i]
	}
	return 0
}

// Lit reports whether a dot passes the threshold.
func (c *Canvas) Lit(x, y int) bool {
	return c.Light(x, y) >= c.Threshold
}

// LitCount returns how many dots pass the threshold.
func (c *Canvas) LitCount() int {
	n := 0
	for _, v := range c.light {
		if v >= c.Threshold {
			n++
		}
	}
	return n
}

// Clear resets the canvas regardless of the composite mode.
func (c *Canvas) Clear() {
	for i := range c.light {
		c.light[i] = 0
	}
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	bresenham(x0, y0, x1, y1, c.Set)
}

func (c *Canvas) SetCompositeMode(m surface.CompositeMode) { c.mode = m }
func (c *Canvas) SetStrokeStyle(s surface.HSLA)            { c.style = s }
func (c *Canvas) SetLineWidth(w float64)                   { c.width = w }

// StrokeStyle is the colour of the last stroke; the whole frame uses it.
func (c *Canvas) StrokeStyle() surface.HSLA { return c.style }

func (c *Canvas) BeginPath()          { c.path.Reset() }
func (c *Canvas) MoveTo(x, y float64) { c.path.MoveTo(x, y) }
func (c *Canvas) ClosePath()          { c.path.Close() }

func (c *Canvas) QuadraticCurveTo(cx, cy, x, y float64) {
	c.path.QuadTo(cx, cy, x, y)
}

// Stroke rasterises the current path. Every dot covered by the path gets
// the stroke alpha exactly once, however many segments cross it.
func (c *Canvas) Stroke() {
	c.stroke++
	if c.stroke == 0 {
		for i := range c.mark {
			c.mark[i] = 0
		}
		c.stroke = 1
	}

	r := int(c.width / (2 * c.Scale))
	plot := func(x, y int) {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if dx*dx+dy*dy > r*r {
					continue
				}
				c.blend(x+dx, y+dy)
			}
		}
	}

	for _, sub := range c.path.SubPaths() {
		for i := 1; i < len(sub); i++ {
			x0, y0 := c.toDot(sub[i-1].X, sub[i-1].Y)
			x1, y1 := c.toDot(sub[i].X, sub[i].Y)
			bresenham(x0, y0, x1, y1, plot)
		}
	}
}

func (c *Canvas) blend(x, y int) {
	i, ok := c.index(x, y)
	if !ok || c.mark[i] == c.stroke {
		return
	}
	c.mark[i] = c.stroke
	a := c.style.A
	switch c.mode {
	case surface.Additive:
		c.light[i] += a
	default:
		c.light[i] = c.light[i]*(1-a) + a
	}
}

func (c *Canvas) toDot(x, y float64) (int, int) {
	return int(math.Floor(x / c.Scale)), int(math.Floor(y / c.Scale))
}

// Size is the canvas size in surface units.
func (c *Canvas) Size() surface.Size {
	return surface.Size{
		W: int(float64(c.dotsW()) * c.Scale),
		H: int(float64(c.dotsH()) * c.Scale),
	}
}

// SetSize reallocates the canvas to cover s. The canvas comes back blank.
func (c *Canvas) SetSize(s surface.Size) {
	w := int(math.Ceil(float64(s.W) / (2 * c.Scale)))
	h := int(math.Ceil(float64(s.H) / (4 * c.Scale)))
	c.alloc(max(w, 0), max(h, 0))
}

// CellToSurface maps the centre of a terminal cell to surface units.
func (c *Canvas) CellToSurface(col, row int) (float64, float64) {
	return (float64(col*2) + 1) * c.Scale, (float64(row*4) + 2) * c.Scale
}

func (c *Canvas) rasterize() {
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			r := rune(blank)
			for sy := 0; sy < 4; sy++ {
				for sx := 0; sx < 2; sx++ {
					if c.Lit(col*2+sx, row*4+sy) {
						r |= rune(pixelMap[sy][sx])
					}
				}
			}
			c.Grid[row][col] = r
		}
	}
}

func (c *Canvas) String() string {
	c.rasterize()
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func bresenham(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
