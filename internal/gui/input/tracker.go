// Package input turns input state polled once per refresh into the
// events a browser would have fired.
package input

import (
	"github.com/san-kum/trails/internal/engine"
	"github.com/san-kum/trails/internal/physics"
	"github.com/san-kum/trails/internal/surface"
)

// Touch is one active touch point.
type Touch struct {
	ID  int
	Pos physics.Vec2
}

// State is the input state a host polls once per refresh.
type State struct {
	Pointer  physics.Vec2
	Touches  []Touch
	Focused  bool
	Viewport surface.Size
}

// Dispatcher receives host events. engine.Manager satisfies it.
type Dispatcher interface {
	Dispatch(ev engine.Event)
}

// Tracker compares successive State snapshots and dispatches the events a
// browser would have fired between them.
type Tracker struct {
	out         Dispatcher
	prev        State
	pointerSeen bool
}

func NewTracker(out Dispatcher) *Tracker {
	return &Tracker{out: out}
}

// Prime sets the baseline viewport and focus without dispatching, usually
// to what the manager was bound with.
func (t *Tracker) Prime(viewport surface.Size, focused bool) {
	t.prev.Viewport = viewport
	t.prev.Focused = focused
}

func (t *Tracker) Feed(in State) {
	if in.Viewport != t.prev.Viewport {
		t.out.Dispatch(engine.Resize{Viewport: in.Viewport})
	}

	if in.Focused != t.prev.Focused {
		if in.Focused {
			t.out.Dispatch(engine.Focus{})
		} else {
			t.out.Dispatch(engine.Blur{})
		}
	}

	switch {
	case len(in.Touches) > 0:
		t.touches(in.Touches)
	case !t.pointerSeen:
		// the first sample is a baseline, not a movement
		t.pointerSeen = true
	case in.Pointer != t.prev.Pointer:
		t.out.Dispatch(engine.PointerMove{Pos: in.Pointer})
	}

	// keep the slice independent of the host's buffer
	in.Touches = append([]Touch(nil), in.Touches...)
	t.prev = in
}

func (t *Tracker) touches(cur []Touch) {
	prev := make(map[int]physics.Vec2, len(t.prev.Touches))
	for _, tc := range t.prev.Touches {
		prev[tc.ID] = tc.Pos
	}

	started, moved := false, false
	pts := make([]physics.Vec2, len(cur))
	for i, tc := range cur {
		pts[i] = tc.Pos
		p, ok := prev[tc.ID]
		switch {
		case !ok:
			started = true
		case p != tc.Pos:
			moved = true
		}
	}

	switch {
	case started:
		t.out.Dispatch(engine.TouchStart{Touches: pts})
	case moved:
		t.out.Dispatch(engine.TouchMove{Touches: pts})
	}
}

// Focused reports the focus state of the last snapshot.
func (t *Tracker) Focused() bool { return t.prev.Focused }
