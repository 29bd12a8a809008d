package automation

import (
	"fmt"
	"math"
	"os"

	"github.com/san-kum/trails/internal/engine"
	"github.com/san-kum/trails/internal/physics"
	"github.com/san-kum/trails/internal/surface"
	"gopkg.in/yaml.v3"
)

// Event kinds understood in scenario steps.
const (
	EventMove        = "move"  // glide the pointer to (x, y)
	EventJump        = "jump"  // put the pointer at (x, y) at once
	EventTouchStart  = "touch_start"
	EventTouchMove   = "touch_move"
	EventFocus       = "focus"
	EventBlur        = "blur"
	EventResize      = "resize"
	EventOrientation = "orientation"
)

// Point is a position in client coordinates.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (p Point) Vec() physics.Vec2 { return physics.Vec2{X: p.X, Y: p.Y} }

// Viewport is a host window size.
type Viewport struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

func (v Viewport) Size() surface.Size { return surface.Size{W: v.Width, H: v.Height} }

// Scenario scripts pointer and window events against frame numbers.
type Scenario struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Frames      int      `yaml:"frames"`
	Viewport    Viewport `yaml:"viewport"`
	Steps       []Step   `yaml:"steps"`
}

// Step is one scripted event, fired before frame At is drawn.
type Step struct {
	At      int     `yaml:"at"`
	Event   string  `yaml:"event"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Touches []Point `yaml:"touches"`
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &sc, nil
}

func (sc *Scenario) Validate() error {
	if sc.Frames <= 0 {
		return ErrEmptyScenario
	}
	last := 0
	for i, st := range sc.Steps {
		switch st.Event {
		case EventMove, EventJump, EventTouchStart, EventTouchMove,
			EventFocus, EventBlur, EventResize, EventOrientation:
		default:
			return fmt.Errorf("step %d: %w: %q", i+1, ErrUnknownEvent, st.Event)
		}
		if st.At < last {
			return fmt.Errorf("step %d at frame %d: %w", i+1, st.At, ErrStepOrder)
		}
		last = st.At
	}
	return nil
}

// engineEvent converts a non-pointer step into an engine event. Pointer
// steps go through a Driver instead.
func (st Step) engineEvent() engine.Event {
	touches := make([]physics.Vec2, len(st.Touches))
	for i, t := range st.Touches {
		touches[i] = t.Vec()
	}
	vp := surface.Size{W: st.Width, H: st.Height}

	switch st.Event {
	case EventTouchStart:
		return engine.TouchStart{Touches: touches}
	case EventTouchMove:
		return engine.TouchMove{Touches: touches}
	case EventFocus:
		return engine.Focus{}
	case EventBlur:
		return engine.Blur{}
	case EventResize:
		return engine.Resize{Viewport: vp}
	case EventOrientation:
		return engine.OrientationChange{Viewport: vp}
	}
	return nil
}

// DefaultScenario sweeps the pointer along a figure eight across the
// viewport, pauses on a blur for half a second and comes back.
func DefaultScenario(vp Viewport, frames int) *Scenario {
	if frames <= 0 {
		frames = 600
	}
	sc := &Scenario{
		Name:        "figure-eight",
		Description: "pointer sweep with a blur/focus pause",
		Frames:      frames,
		Viewport:    vp,
	}

	cx, cy := float64(vp.Width)/2, float64(vp.Height)/2
	rx, ry := float64(vp.Width)*0.35, float64(vp.Height)*0.3
	at := func(t float64) (float64, float64) {
		return cx + rx*math.Sin(t), cy + ry*math.Sin(2*t)
	}

	x, y := at(0)
	sc.Steps = append(sc.Steps, Step{At: 0, Event: EventJump, X: x, Y: y})

	const every = 20
	pause := frames / 2
	pause -= pause % every
	for f := every; f < frames; f += every {
		if f == pause {
			sc.Steps = append(sc.Steps,
				Step{At: f, Event: EventBlur},
				Step{At: f + 30, Event: EventFocus},
			)
			f += every
			continue
		}
		x, y := at(2 * math.Pi * float64(f) / float64(frames))
		sc.Steps = append(sc.Steps, Step{At: f, Event: EventMove, X: x, Y: y})
	}
	return sc
}
