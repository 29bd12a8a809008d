// Package surface defines the 2D immediate-mode drawing surface the
// renderer draws on, plus the helpers shared by its implementations.
//
// Implementations live next to their host:
//
//   - [Recorder]: in-memory call log, used by tests and headless runs
//   - viz.Canvas: Braille terminal canvas
//   - export.SVG: vector capture of one frame
//   - gui: raylib or ebiten window
package surface

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// CompositeMode selects how a stroke combines with what is already drawn.
type CompositeMode int

const (
	// Normal paints over the destination (source-over).
	Normal CompositeMode = iota
	// Additive sums source and destination (lighter).
	Additive
)

func (m CompositeMode) String() string {
	switch m {
	case Normal:
		return "source-over"
	case Additive:
		return "lighter"
	default:
		return fmt.Sprintf("CompositeMode(%d)", int(m))
	}
}

// HSLA is a stroke colour. H is in degrees, S, L and A in [0, 1].
type HSLA struct {
	H, S, L, A float64
}

// Hue returns H wrapped into [0, 360).
func (c HSLA) Hue() float64 {
	h := math.Mod(c.H, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// String formats the colour as a CSS hsla() value.
func (c HSLA) String() string {
	return fmt.Sprintf("hsla(%g,%g%%,%g%%,%g)", c.H, c.S*100, c.L*100, c.A)
}

// Colorful converts the opaque part of the colour.
func (c HSLA) Colorful() colorful.Color {
	return colorful.Hsl(c.Hue(), c.S, c.L)
}

// RGBA returns a straight-alpha 8-bit colour.
func (c HSLA) RGBA() color.RGBA {
	r, g, b := c.Colorful().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: uint8(math.Round(clamp01(c.A) * 255))}
}

// Hex returns the opaque colour as #rrggbb.
func (c HSLA) Hex() string {
	return c.Colorful().Hex()
}

// Size is a width/height pair in surface units.
type Size struct {
	W, H int
}

// Surface is a 2D drawing context. Path state is built between BeginPath
// and Stroke and drawn with the current stroke style, width and
// composite mode. SetSize clears the surface.
type Surface interface {
	Clear()
	SetCompositeMode(m CompositeMode)
	SetStrokeStyle(c HSLA)
	SetLineWidth(w float64)
	BeginPath()
	MoveTo(x, y float64)
	QuadraticCurveTo(cx, cy, x, y float64)
	Stroke()
	ClosePath()
	Size() Size
	SetSize(s Size)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
