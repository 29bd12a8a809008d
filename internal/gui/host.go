// Package gui is the window host. The default build draws with raylib;
// building with -tags ebiten swaps in an Ebitengine window. Both feed the
// same input.Tracker, which turns polled input state into engine events.
package gui

import (
	"io"
	"log"
	"math/rand"

	"github.com/san-kum/trails/internal/config"
	"github.com/san-kum/trails/internal/engine"
	"github.com/san-kum/trails/internal/gui/input"
	"github.com/san-kum/trails/internal/surface"
)

const (
	DefaultWidth  = 1280
	DefaultHeight = 720
)

// Options configures a window host.
type Options struct {
	Config *config.Config
	Name   string
	Seed   int64
	Logger *log.Logger
	Width  int
	Height int
}

func (o *Options) defaults() {
	if o.Config == nil {
		o.Config = config.DefaultConfig()
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard, "", 0)
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Name == "" {
		o.Name = "custom"
	}
}

// session is the backend-independent part of a window host.
type session struct {
	opts    Options
	queue   *engine.FrameQueue
	reg     *surface.Registry
	mgr     *engine.Manager
	tracker *input.Tracker
	paused  bool
}

func newSession(opts Options, s surface.Surface) *session {
	opts.defaults()
	cfg := opts.Config

	ss := &session{
		opts:  opts,
		queue: &engine.FrameQueue{},
		reg:   surface.NewRegistry(),
	}
	ss.reg.Register(cfg.SurfaceID, s)
	ctl := engine.NewController(cfg.Options(), rand.New(rand.NewSource(opts.Seed)))
	ss.mgr = engine.NewManager(ctl, ss.reg, ss.queue, opts.Logger)
	ss.tracker = input.NewTracker(ss.mgr)
	return ss
}

func (ss *session) viewport() surface.Size {
	return surface.Size{W: ss.opts.Width, H: ss.opts.Height}
}

func (ss *session) bind(viewport surface.Size) {
	ss.paused = false
	ss.mgr.Bind(ss.opts.Config.SurfaceID, viewport)
	ss.tracker.Prime(viewport, true)
}

// feed passes polled input on. While paused, focus changes are swallowed
// so that regaining focus does not resume the loop.
func (ss *session) feed(in input.State) {
	if ss.paused {
		in.Focused = ss.tracker.Focused()
	}
	ss.tracker.Feed(in)
}

func (ss *session) togglePause() {
	ss.paused = !ss.paused
	if ss.paused {
		ss.mgr.Dispatch(engine.Blur{})
	} else {
		ss.mgr.Dispatch(engine.Focus{})
	}
}

// frame drains the scheduler once; it reports whether a frame was drawn.
func (ss *session) frame() bool {
	return ss.queue.RunFrame() > 0
}

func (ss *session) status() string {
	switch {
	case !ss.mgr.Running():
		return "PAUSED"
	case ss.mgr.State() == engine.Idle:
		return "MOVE TO DRAW"
	default:
		return "RUNNING"
	}
}
