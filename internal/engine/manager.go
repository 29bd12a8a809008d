package engine

import (
	"io"
	"log"

	"github.com/san-kum/trails/internal/physics"
	"github.com/san-kum/trails/internal/surface"
)

// SurfaceLookup finds a drawing surface by id.
type SurfaceLookup interface {
	Lookup(id string) (surface.Surface, bool)
}

// Manager binds a Controller to a surface, reacts to host events and runs
// the frame loop. The loop keeps rescheduling itself while running is set;
// at most one frame callback is outstanding at any time.
type Manager struct {
	ctl     *Controller
	lookup  SurfaceLookup
	sched   Scheduler
	log     *log.Logger
	surface surface.Surface
	id      string
	state   StrokeState
	running bool
	pending bool
}

func NewManager(ctl *Controller, lookup SurfaceLookup, sched Scheduler, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Manager{
		ctl:    ctl,
		lookup: lookup,
		sched:  sched,
		log:    logger,
	}
}

func (m *Manager) Controller() *Controller { return m.ctl }
func (m *Manager) State() StrokeState      { return m.state }
func (m *Manager) Running() bool           { return m.running }
func (m *Manager) Bound() bool             { return m.surface != nil }

// Surface returns the bound surface, or nil.
func (m *Manager) Surface() surface.Surface { return m.surface }

// Bind attaches the surface registered under id. A missing surface is not
// an error: Bind returns false and the manager stays unbound.
func (m *Manager) Bind(id string, viewport surface.Size) bool {
	s, ok := m.lookup.Lookup(id)
	if !ok {
		m.log.Printf("surface %q not found, renderer disabled", id)
		return false
	}

	m.surface = s
	m.id = id
	m.ctl.Reset()
	m.running = true
	m.state = Idle
	m.Resize(viewport)
	m.log.Printf("bound to %q", id)
	return true
}

// Unbind stops the loop and drops the surface and the lines. A frame that
// is still queued runs as a no-op.
func (m *Manager) Unbind() {
	if m.surface == nil {
		return
	}
	m.running = false
	m.surface = nil
	m.state = Idle
	m.ctl.lines = nil
	m.log.Printf("unbound from %q", m.id)
}

// Dispatch routes a host event. Events are dropped while unbound.
func (m *Manager) Dispatch(ev Event) {
	if m.surface == nil {
		return
	}
	switch e := ev.(type) {
	case PointerMove:
		m.pointerMove(e.Pos)
	case TouchStart:
		m.touchStart(e.Touches)
	case TouchMove:
		if m.state == Stroking && len(e.Touches) > 0 {
			m.ctl.SetAnchor(e.Touches[0])
		}
	case Resize:
		m.Resize(e.Viewport)
	case OrientationChange:
		m.Resize(e.Viewport)
	case Focus:
		m.Focus()
	case Blur:
		m.Blur()
	}
}

func (m *Manager) pointerMove(p physics.Vec2) {
	m.ctl.SetAnchor(p)
	if m.state == Idle {
		m.beginStroke()
	}
}

func (m *Manager) touchStart(touches []physics.Vec2) {
	switch m.state {
	case Idle:
		if len(touches) > 0 {
			m.ctl.SetAnchor(touches[0])
		}
		m.beginStroke()
	case Stroking:
		if len(touches) == 1 {
			m.ctl.SetAnchor(touches[0])
		}
	}
}

func (m *Manager) beginStroke() {
	m.state = Stroking
	m.ctl.Spawn()
	m.log.Printf("stroke at (%.0f, %.0f): %d lines", m.ctl.anchor.X, m.ctl.anchor.Y, len(m.ctl.lines))
	m.startLoop()
}

// Resize fits the surface to the viewport minus the side margin. The
// surface comes back blank.
func (m *Manager) Resize(viewport surface.Size) {
	if m.surface == nil {
		return
	}
	w := viewport.W - m.ctl.opts.Margin
	if w < 0 {
		w = 0
	}
	h := viewport.H
	if h < 0 {
		h = 0
	}
	m.surface.SetSize(surface.Size{W: w, H: h})
}

// Blur stops the loop after the frame in flight.
func (m *Manager) Blur() {
	if m.running {
		m.log.Printf("blur: pausing at frame %d", m.ctl.frame)
	}
	m.running = false
}

// Focus resumes a stopped loop from the current state.
func (m *Manager) Focus() {
	if m.surface == nil || m.running {
		return
	}
	m.log.Printf("focus: resuming at frame %d", m.ctl.frame)
	m.startLoop()
}

func (m *Manager) startLoop() {
	m.running = true
	if m.pending {
		return
	}
	m.pending = true
	m.sched.RequestFrame(m.tick)
}

func (m *Manager) tick() {
	m.pending = false
	if m.surface == nil {
		return
	}
	m.ctl.Render(m.surface)
	if m.running {
		m.pending = true
		m.sched.RequestFrame(m.tick)
	}
}
