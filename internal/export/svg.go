package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/san-kum/trails/internal/surface"
	"github.com/san-kum/trails/internal/viz"
)

const background = "#0a0a0a"

// Stroke is one stroked path of a captured frame.
type Stroke struct {
	D     string
	Style surface.HSLA
	Width float64
	Mode  surface.CompositeMode
}

// SVG is a Surface that keeps the strokes drawn since the last Clear and
// writes them out as an SVG document.
type SVG struct {
	Strokes []Stroke

	size  surface.Size
	mode  surface.CompositeMode
	style surface.HSLA
	width float64
	path  strings.Builder
}

func NewSVG(size surface.Size) *SVG {
	return &SVG{size: size, width: 1}
}

func (s *SVG) Clear()                                  { s.Strokes = s.Strokes[:0] }
func (s *SVG) SetCompositeMode(m surface.CompositeMode) { s.mode = m }
func (s *SVG) SetStrokeStyle(c surface.HSLA)            { s.style = c }
func (s *SVG) SetLineWidth(w float64)                   { s.width = w }
func (s *SVG) BeginPath()                               { s.path.Reset() }
func (s *SVG) Size() surface.Size                       { return s.size }

func (s *SVG) SetSize(size surface.Size) {
	s.size = size
	s.Clear()
}

func (s *SVG) MoveTo(x, y float64) {
	fmt.Fprintf(&s.path, "M%s,%s", num(x), num(y))
}

func (s *SVG) QuadraticCurveTo(cx, cy, x, y float64) {
	fmt.Fprintf(&s.path, "Q%s,%s %s,%s", num(cx), num(cy), num(x), num(y))
}

func (s *SVG) ClosePath() { s.path.WriteString("Z") }

func (s *SVG) Stroke() {
	if s.path.Len() == 0 {
		return
	}
	s.Strokes = append(s.Strokes, Stroke{
		D:     s.path.String(),
		Style: s.style,
		Width: s.width,
		Mode:  s.mode,
	})
}

// WriteTo writes the captured frame as a standalone SVG document.
func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	sb.WriteString(header(s.size.W, s.size.H))
	for _, st := range s.Strokes {
		blend := ""
		if st.Mode == surface.Additive {
			blend = ` style="mix-blend-mode:plus-lighter"`
		}
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-opacity="%s" stroke-width="%s" stroke-linecap="round" stroke-linejoin="round"%s d="%s"/>
`, st.Style.Hex(), num(st.Style.A), num(st.Width), blend, st.D)
	}
	sb.WriteString("</svg>\n")
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

func (s *SVG) String() string {
	var sb strings.Builder
	_, _ = s.WriteTo(&sb)
	return sb.String()
}

// CanvasToSVG converts the lit dots of a Braille canvas to circles in the
// canvas stroke colour. Coordinates are in surface units.
func CanvasToSVG(canvas *viz.Canvas) string {
	if canvas == nil {
		return ""
	}

	size := canvas.Size()
	scale := canvas.Scale
	style := canvas.StrokeStyle()

	var sb strings.Builder
	sb.WriteString(header(size.W, size.H))
	fmt.Fprintf(&sb, "<g fill=\"%s\">\n", style.Hex())

	dotRadius := scale * 0.4
	for y := 0; y < canvas.Height*4; y++ {
		for x := 0; x < canvas.Width*2; x++ {
			if !canvas.Lit(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius)
		}
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

func header(w, h int) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, w, h, w, h, background)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
