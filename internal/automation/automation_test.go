package automation

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/trails/internal/engine"
	"github.com/san-kum/trails/internal/metrics"
	"github.com/san-kum/trails/internal/physics"
	"github.com/san-kum/trails/internal/surface"
)

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	path := writeScenario(t, `
name: swipe
frames: 120
viewport: {width: 640, height: 480}
steps:
  - {at: 0, event: jump, x: 10, y: 20}
  - {at: 10, event: move, x: 300, y: 200}
  - {at: 60, event: touch_start, touches: [{x: 1, y: 2}, {x: 3, y: 4}]}
  - {at: 90, event: resize, width: 320, height: 240}
`)
	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sc.Name != "swipe" || sc.Frames != 120 || len(sc.Steps) != 4 {
		t.Errorf("scenario = %+v", sc)
	}
	if sc.Viewport.Size() != (surface.Size{W: 640, H: 480}) {
		t.Errorf("viewport = %+v", sc.Viewport)
	}

	ev, ok := sc.Steps[2].engineEvent().(engine.TouchStart)
	if !ok || len(ev.Touches) != 2 || ev.Touches[1] != (physics.Vec2{X: 3, Y: 4}) {
		t.Errorf("touch step = %#v", sc.Steps[2].engineEvent())
	}
	rs, ok := sc.Steps[3].engineEvent().(engine.Resize)
	if !ok || rs.Viewport != (surface.Size{W: 320, H: 240}) {
		t.Errorf("resize step = %#v", sc.Steps[3].engineEvent())
	}
}

func TestLoadScenarioErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
		want error
	}{
		{"no frames", "name: x\n", ErrEmptyScenario},
		{"unknown event", "frames: 5\nsteps:\n  - {at: 0, event: wiggle}\n", ErrUnknownEvent},
		{"out of order", "frames: 5\nsteps:\n  - {at: 3, event: blur}\n  - {at: 1, event: focus}\n", ErrStepOrder},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tc.body))
			if !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}

	if _, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

type eventLog []engine.Event

func (l *eventLog) Dispatch(ev engine.Event) { *l = append(*l, ev) }

func TestDriverGlides(t *testing.T) {
	var log eventLog
	d := NewDriver(&log, 60, DefaultSpringFrequency, DefaultSpringDamping)

	d.MoveTo(physics.Vec2{X: 10, Y: 10})
	if len(log) != 1 || d.Moving() {
		t.Fatalf("first waypoint should jump, events = %d", len(log))
	}

	target := physics.Vec2{X: 110, Y: 60}
	d.MoveTo(target)
	steps := 0
	for d.Moving() && steps < 600 {
		d.Step()
		steps++
	}
	if d.Moving() {
		t.Fatal("driver never settled")
	}
	if d.Pos() != target {
		t.Errorf("pos = %v, want %v", d.Pos(), target)
	}
	if len(log) != steps+1 {
		t.Errorf("events = %d, want one per step plus the jump", len(log))
	}

	first := log[1].(engine.PointerMove).Pos
	if first.X <= 10 || first.X >= 110 {
		t.Errorf("first glide step = %v, expected between endpoints", first)
	}

	d.Step()
	if len(log) != steps+1 {
		t.Error("an idle driver should not dispatch")
	}
}

func newBoundManager(t *testing.T) (*engine.Manager, *engine.FrameQueue) {
	t.Helper()
	reg := surface.NewRegistry()
	reg.Register("canvas", surface.NewRecorder(surface.Size{}, 1))
	q := &engine.FrameQueue{}
	ctl := engine.NewController(engine.DefaultOptions(), rand.New(rand.NewSource(5)))
	mgr := engine.NewManager(ctl, reg, q, nil)
	if !mgr.Bind("canvas", surface.Size{W: 800, H: 600}) {
		t.Fatal("bind failed")
	}
	return mgr, q
}

func TestHeadlessBlurPause(t *testing.T) {
	mgr, q := newBoundManager(t)
	sc := &Scenario{
		Frames: 10,
		Steps: []Step{
			{At: 0, Event: EventJump, X: 100, Y: 100},
			{At: 5, Event: EventBlur},
			{At: 8, Event: EventFocus},
		},
	}

	h := NewHeadless(mgr, q, 60, []*metrics.Series{metrics.NewSeries(metrics.NewHue(), 0)})
	var drawn []int
	h.OnFrame = func(frame int) { drawn = append(drawn, frame) }

	res, err := h.Run(context.Background(), sc)
	if err != nil {
		t.Fatal(err)
	}
	// refreshes 0-5 draw (5 is the frame in flight at blur), 6-7 idle, 8-9 draw
	if res.Frames != 10 || res.Rendered != 8 {
		t.Errorf("frames = %d rendered = %d, want 10 and 8", res.Frames, res.Rendered)
	}
	if got := mgr.Controller().Frame(); got != 9 {
		t.Errorf("controller frame = %d, want 9", got)
	}
	if len(drawn) != 8 || drawn[len(drawn)-1] != 9 {
		t.Errorf("drawn = %v", drawn)
	}
	if n := len(res.Lookup("hue").Values); n != 8 {
		t.Errorf("hue samples = %d, want 8", n)
	}
	if res.Lookup("nope") != nil {
		t.Error("unknown series should be nil")
	}
}

func TestHeadlessErrors(t *testing.T) {
	reg := surface.NewRegistry()
	q := &engine.FrameQueue{}
	ctl := engine.NewController(engine.DefaultOptions(), rand.New(rand.NewSource(1)))
	unbound := engine.NewManager(ctl, reg, q, nil)

	if _, err := RunHeadless(context.Background(), unbound, q, &Scenario{Frames: 1}, 60, nil); !errors.Is(err, ErrNotBound) {
		t.Errorf("err = %v, want ErrNotBound", err)
	}
	if _, err := RunHeadless(context.Background(), unbound, q, &Scenario{}, 60, nil); !errors.Is(err, ErrEmptyScenario) {
		t.Errorf("err = %v, want ErrEmptyScenario", err)
	}

	mgr, q2 := newBoundManager(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := RunHeadless(ctx, mgr, q2, &Scenario{Frames: 3}, 60, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestDefaultScenario(t *testing.T) {
	vp := Viewport{Width: 800, Height: 600}
	sc := DefaultScenario(vp, 600)
	if err := sc.Validate(); err != nil {
		t.Fatalf("default scenario invalid: %v", err)
	}
	if sc.Steps[0].Event != EventJump {
		t.Errorf("first step = %s, want jump", sc.Steps[0].Event)
	}

	mgr, q := newBoundManager(t)
	res, err := RunHeadless(context.Background(), mgr, q, sc, 60, metrics.Standard(1))
	if err != nil {
		t.Fatal(err)
	}
	if res.Rendered == 0 || res.Rendered >= res.Frames {
		t.Errorf("rendered = %d of %d, expected a pause", res.Rendered, res.Frames)
	}
	if n := len(res.Lookup("mean_distance").Values); n != res.Rendered {
		t.Errorf("samples = %d, want %d", n, res.Rendered)
	}
}
