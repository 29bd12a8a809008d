//go:build !ebiten

package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/trails/internal/gui/input"
	"github.com/san-kum/trails/internal/physics"
	"github.com/san-kum/trails/internal/surface"
)

var (
	ColBg      = rl.NewColor(0, 0, 0, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

// rlSurface draws into a render texture. Drawing calls are only valid
// between begin and end; SetSize must happen outside them.
type rlSurface struct {
	target   rl.RenderTexture2D
	loaded   bool
	size     surface.Size
	blending bool
	color    rl.Color
	width    float32
	path     surface.Polyline
}

func (s *rlSurface) begin() {
	if s.loaded {
		rl.BeginTextureMode(s.target)
	}
}

func (s *rlSurface) end() {
	if s.blending {
		rl.EndBlendMode()
		s.blending = false
	}
	if s.loaded {
		rl.EndTextureMode()
	}
}

func (s *rlSurface) Clear() {
	if s.loaded {
		rl.ClearBackground(ColBg)
	}
}

func (s *rlSurface) SetCompositeMode(m surface.CompositeMode) {
	switch {
	case m == surface.Additive && !s.blending:
		rl.BeginBlendMode(rl.BlendAdditive)
		s.blending = true
	case m == surface.Normal && s.blending:
		rl.EndBlendMode()
		s.blending = false
	}
}

func (s *rlSurface) SetStrokeStyle(c surface.HSLA) {
	rgba := c.RGBA()
	s.color = rl.NewColor(rgba.R, rgba.G, rgba.B, rgba.A)
}

func (s *rlSurface) SetLineWidth(w float64)                { s.width = float32(w) }
func (s *rlSurface) BeginPath()                            { s.path.Reset() }
func (s *rlSurface) MoveTo(x, y float64)                   { s.path.MoveTo(x, y) }
func (s *rlSurface) QuadraticCurveTo(cx, cy, x, y float64) { s.path.QuadTo(cx, cy, x, y) }
func (s *rlSurface) ClosePath()                            { s.path.Close() }
func (s *rlSurface) Size() surface.Size                    { return s.size }

func (s *rlSurface) Stroke() {
	if !s.loaded {
		return
	}
	for _, sub := range s.path.SubPaths() {
		for i := 1; i < len(sub); i++ {
			rl.DrawLineEx(vec(sub[i-1]), vec(sub[i]), s.width, s.color)
		}
	}
}

func (s *rlSurface) SetSize(size surface.Size) {
	s.size = size
	if s.loaded {
		rl.UnloadRenderTexture(s.target)
		s.loaded = false
	}
	if size.W <= 0 || size.H <= 0 {
		return
	}
	s.target = rl.LoadRenderTexture(int32(size.W), int32(size.H))
	s.loaded = true
	rl.BeginTextureMode(s.target)
	rl.ClearBackground(ColBg)
	rl.EndTextureMode()
}

func vec(p physics.Vec2) rl.Vector2 {
	return rl.NewVector2(float32(p.X), float32(p.Y))
}

type App struct {
	*session
	surf *rlSurface
}

func initWindow(opts Options) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), "trails :: "+opts.Name)
	rl.SetTargetFPS(int32(opts.Config.FPS))
	rl.SetExitKey(0)
}

// Run opens a window and blocks until it is closed.
func Run(opts Options) error {
	opts.defaults()
	initWindow(opts)
	defer rl.CloseWindow()

	surf := &rlSurface{}
	app := &App{session: newSession(opts, surf), surf: surf}
	app.bind(app.viewport())
	defer func() {
		if surf.loaded {
			rl.UnloadRenderTexture(surf.target)
		}
	}()

	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			return
		}
		a.Update()
		a.Draw()
	}
}

func (a *App) poll() input.State {
	in := input.State{
		Pointer:  physics.Vec2{X: float64(rl.GetMousePosition().X), Y: float64(rl.GetMousePosition().Y)},
		Focused:  rl.IsWindowFocused(),
		Viewport: surface.Size{W: int(rl.GetScreenWidth()), H: int(rl.GetScreenHeight())},
	}
	n := rl.GetTouchPointCount()
	for i := int32(0); i < n; i++ {
		p := rl.GetTouchPosition(i)
		in.Touches = append(in.Touches, input.Touch{
			ID:  int(rl.GetTouchPointId(i)),
			Pos: physics.Vec2{X: float64(p.X), Y: float64(p.Y)},
		})
	}
	return in
}

func (a *App) Update() {
	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		a.togglePause()
	case rl.IsKeyPressed(rl.KeyR):
		a.bind(surface.Size{W: int(rl.GetScreenWidth()), H: int(rl.GetScreenHeight())})
	}
	a.feed(a.poll())

	a.surf.begin()
	a.frame()
	a.surf.end()
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	if a.surf.loaded {
		w, h := float32(a.surf.size.W), float32(a.surf.size.H)
		// render textures are stored upside down
		rl.DrawTextureRec(a.surf.target.Texture, rl.NewRectangle(0, 0, w, -h), rl.NewVector2(0, 0), rl.White)
	}
	a.DrawHUD()

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	ctl := a.mgr.Controller()
	h := int32(rl.GetScreenHeight())
	rl.DrawText(fmt.Sprintf("%s  frame %d  lines %d", a.status(), ctl.Frame(), len(ctl.Lines())), 20, 20, 16, ColText)
	rl.DrawText("[SPACE] PAUSE  [R] RESET  [Q] QUIT", 20, h-30, 14, ColTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 20, h-50, 14, ColTextDim)
}
