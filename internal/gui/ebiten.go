//go:build ebiten

package gui

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/san-kum/trails/internal/gui/input"
	"github.com/san-kum/trails/internal/physics"
	"github.com/san-kum/trails/internal/surface"
)

var whiteSubImage = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}()

// ebSurface draws into an offscreen image with the vector package.
type ebSurface struct {
	img   *ebiten.Image
	size  surface.Size
	mode  surface.CompositeMode
	style surface.HSLA
	width float32
	path  vector.Path
}

func (s *ebSurface) Clear() {
	if s.img != nil {
		s.img.Clear()
	}
}

func (s *ebSurface) SetCompositeMode(m surface.CompositeMode) { s.mode = m }
func (s *ebSurface) SetStrokeStyle(c surface.HSLA)            { s.style = c }
func (s *ebSurface) SetLineWidth(w float64)                   { s.width = float32(w) }
func (s *ebSurface) BeginPath()                               { s.path = vector.Path{} }
func (s *ebSurface) MoveTo(x, y float64)                      { s.path.MoveTo(float32(x), float32(y)) }
func (s *ebSurface) ClosePath()                               { s.path.Close() }
func (s *ebSurface) Size() surface.Size                       { return s.size }

func (s *ebSurface) QuadraticCurveTo(cx, cy, x, y float64) {
	s.path.QuadTo(float32(cx), float32(cy), float32(x), float32(y))
}

func (s *ebSurface) Stroke() {
	if s.img == nil {
		return
	}
	vs, is := s.path.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{
		Width:    s.width,
		LineJoin: vector.LineJoinRound,
		LineCap:  vector.LineCapRound,
	})

	c := s.style.Colorful()
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR = float32(c.R)
		vs[i].ColorG = float32(c.G)
		vs[i].ColorB = float32(c.B)
		vs[i].ColorA = float32(s.style.A)
	}

	op := &ebiten.DrawTrianglesOptions{
		ColorScaleMode: ebiten.ColorScaleModeStraightAlpha,
		AntiAlias:      true,
	}
	if s.mode == surface.Additive {
		op.Blend = ebiten.BlendLighter
	}
	s.img.DrawTriangles(vs, is, whiteSubImage, op)
}

func (s *ebSurface) SetSize(size surface.Size) {
	s.size = size
	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
	if size.W > 0 && size.H > 0 {
		s.img = ebiten.NewImage(size.W, size.H)
	}
}

// Game is the Ebitengine host.
type Game struct {
	*session
	surf     *ebSurface
	outside  surface.Size
	touchBuf []ebiten.TouchID
}

func justPressed(k ebiten.Key) bool { return inpututil.IsKeyJustPressed(k) }

func (g *Game) poll() input.State {
	x, y := ebiten.CursorPosition()
	in := input.State{
		Pointer:  physics.Vec2{X: float64(x), Y: float64(y)},
		Focused:  ebiten.IsFocused(),
		Viewport: g.outside,
	}
	g.touchBuf = ebiten.AppendTouchIDs(g.touchBuf[:0])
	for _, id := range g.touchBuf {
		tx, ty := ebiten.TouchPosition(id)
		in.Touches = append(in.Touches, input.Touch{ID: int(id), Pos: physics.Vec2{X: float64(tx), Y: float64(ty)}})
	}
	return in
}

func (g *Game) Update() error {
	if justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	switch {
	case justPressed(ebiten.KeySpace):
		g.togglePause()
	case justPressed(ebiten.KeyR):
		g.bind(g.outside)
	}

	g.feed(g.poll())
	g.frame()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	if g.surf.img != nil {
		screen.DrawImage(g.surf.img, nil)
	}

	ctl := g.mgr.Controller()
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  frame %d  lines %d  %.0f FPS\n[SPACE] PAUSE  [R] RESET  [Q] QUIT",
		g.status(), ctl.Frame(), len(ctl.Lines()), ebiten.ActualFPS()))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.outside = surface.Size{W: outsideWidth, H: outsideHeight}
	return outsideWidth, outsideHeight
}

// Run opens a window and blocks until it is closed.
func Run(opts Options) error {
	opts.defaults()
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle("trails :: " + opts.Name)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetTPS(opts.Config.FPS)

	surf := &ebSurface{}
	g := &Game{session: newSession(opts, surf), surf: surf}
	g.outside = g.viewport()
	g.bind(g.outside)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
