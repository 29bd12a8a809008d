package surface

import (
	"math"
	"testing"

	"github.com/san-kum/trails/internal/physics"
)

func TestHSLAString(t *testing.T) {
	c := HSLA{H: 285, S: 1, L: 0.5, A: 0.025}
	if got := c.String(); got != "hsla(285,100%,50%,0.025)" {
		t.Errorf("got %s", got)
	}
}

func TestHSLAHueWraps(t *testing.T) {
	tests := []struct {
		h, want float64
	}{
		{0, 0},
		{285, 285},
		{370, 10},
		{-30, 330},
	}
	for _, tt := range tests {
		if got := (HSLA{H: tt.h}).Hue(); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("hue %f: got %f, want %f", tt.h, got, tt.want)
		}
	}
}

func TestHSLARGBA(t *testing.T) {
	tests := []struct {
		c    HSLA
		want [3]uint8
	}{
		{HSLA{H: 0, S: 1, L: 0.5, A: 1}, [3]uint8{255, 0, 0}},
		{HSLA{H: 120, S: 1, L: 0.5, A: 1}, [3]uint8{0, 255, 0}},
		{HSLA{H: 240, S: 1, L: 0.5, A: 1}, [3]uint8{0, 0, 255}},
	}
	for _, tt := range tests {
		got := tt.c.RGBA()
		if got.R != tt.want[0] || got.G != tt.want[1] || got.B != tt.want[2] {
			t.Errorf("%s: got %v, want %v", tt.c, got, tt.want)
		}
		if got.A != 255 {
			t.Errorf("%s: alpha %d, want 255", tt.c, got.A)
		}
	}

	low := HSLA{H: 285, S: 1, L: 0.5, A: 0.025}.RGBA()
	if low.A != 6 {
		t.Errorf("expected alpha 6 for 0.025, got %d", low.A)
	}
}

func TestCompositeModeString(t *testing.T) {
	if Normal.String() != "source-over" || Additive.String() != "lighter" {
		t.Errorf("unexpected names %s %s", Normal, Additive)
	}
}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Lookup("canvas"); ok {
		t.Fatal("empty registry returned a surface")
	}

	rec := NewRecorder(Size{W: 10, H: 10}, 0)
	r.Register("canvas", rec)
	s, ok := r.Lookup("canvas")
	if !ok || s != rec {
		t.Fatal("registered surface not found")
	}

	r.Remove("canvas")
	if _, ok := r.Lookup("canvas"); ok {
		t.Error("removed surface still found")
	}
}

func TestRecorderCounters(t *testing.T) {
	r := NewRecorder(Size{W: 100, H: 50}, 0)
	r.Clear()
	r.BeginPath()
	r.MoveTo(0, 0)
	r.QuadraticCurveTo(1, 1, 2, 2)
	r.Stroke()

	if r.Frames != 1 || r.Strokes != 1 || r.Curves != 1 {
		t.Errorf("counters: frames=%d strokes=%d curves=%d", r.Frames, r.Strokes, r.Curves)
	}

	r.SetSize(Size{W: 20, H: 10})
	if r.Strokes != 0 || r.Size() != (Size{W: 20, H: 10}) {
		t.Errorf("resize did not reset: strokes=%d size=%v", r.Strokes, r.Size())
	}
}

func TestRecorderLimit(t *testing.T) {
	r := NewRecorder(Size{}, 2)
	for i := 0; i < 5; i++ {
		r.Stroke()
	}
	if len(r.Ops) != 2 {
		t.Errorf("expected 2 ops, got %d", len(r.Ops))
	}
	if r.Strokes != 5 {
		t.Errorf("expected 5 strokes counted, got %d", r.Strokes)
	}
}

func TestFlattenQuadEndpoints(t *testing.T) {
	p0 := physics.Vec2{X: 0, Y: 0}
	c := physics.Vec2{X: 5, Y: 10}
	p1 := physics.Vec2{X: 10, Y: 0}

	pts := FlattenQuad(nil, p0, c, p1, 4)
	if len(pts) != 4 {
		t.Fatalf("expected 4 points, got %d", len(pts))
	}
	if pts[3] != p1 {
		t.Errorf("last point %v, want %v", pts[3], p1)
	}
	// t=0.5 is 0.25*p0 + 0.5*c + 0.25*p1
	if mid := pts[1]; mid.X != 5 || mid.Y != 5 {
		t.Errorf("midpoint %v, want (5,5)", mid)
	}
}

func TestPolylineSubPaths(t *testing.T) {
	var p Polyline
	p.MoveTo(0, 0)
	p.QuadTo(1, 1, 2, 0)
	p.MoveTo(5, 5)
	p.MoveTo(6, 6)
	p.QuadTo(7, 7, 8, 6)

	subs := p.SubPaths()
	if len(subs) != 2 {
		t.Fatalf("expected 2 sub-paths, got %d", len(subs))
	}
	if len(subs[0]) != QuadSteps+1 {
		t.Errorf("expected %d points, got %d", QuadSteps+1, len(subs[0]))
	}

	p.Reset()
	if len(p.SubPaths()) != 0 {
		t.Error("reset left sub-paths behind")
	}
}
