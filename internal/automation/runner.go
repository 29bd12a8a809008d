package automation

import (
	"context"
	"fmt"

	"github.com/san-kum/trails/internal/engine"
	"github.com/san-kum/trails/internal/metrics"
)

// Result summarises a headless run.
type Result struct {
	Scenario string
	Frames   int // display refreshes simulated
	Rendered int // refreshes that drew a frame
	Series   []*metrics.Series
}

// Lookup returns the series of the named metric, or nil.
func (r *Result) Lookup(name string) *metrics.Series {
	for _, s := range r.Series {
		if s.Metric.Name() == name {
			return s
		}
	}
	return nil
}

// Headless plays a scenario against a bound Manager without a display.
// Every simulated refresh fires the steps due, advances the driver and
// drains the frame queue once.
type Headless struct {
	Manager *engine.Manager
	Queue   *engine.FrameQueue
	Driver  *Driver
	Series  []*metrics.Series

	// OnFrame, when set, runs after every refresh that drew a frame.
	OnFrame func(frame int)
}

func NewHeadless(mgr *engine.Manager, queue *engine.FrameQueue, fps int, series []*metrics.Series) *Headless {
	return &Headless{
		Manager: mgr,
		Queue:   queue,
		Driver:  NewDriver(mgr, fps, DefaultSpringFrequency, DefaultSpringDamping),
		Series:  series,
	}
}

// Run plays sc and returns the collected series. It stops early when ctx
// is cancelled.
func (h *Headless) Run(ctx context.Context, sc *Scenario) (*Result, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	if !h.Manager.Bound() {
		return nil, ErrNotBound
	}

	res := &Result{Scenario: sc.Name, Series: h.Series}
	next := 0
	for f := 0; f < sc.Frames; f++ {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("frame %d: %w", f, err)
		}

		for next < len(sc.Steps) && sc.Steps[next].At <= f {
			h.apply(sc.Steps[next])
			next++
		}
		h.Driver.Step()

		res.Frames++
		if h.Queue.RunFrame() == 0 {
			continue
		}
		res.Rendered++

		ctl := h.Manager.Controller()
		for _, s := range h.Series {
			s.Metric.Observe(ctl)
			s.Sample()
		}
		if h.OnFrame != nil {
			h.OnFrame(ctl.Frame())
		}
	}
	return res, nil
}

func (h *Headless) apply(st Step) {
	switch st.Event {
	case EventMove:
		h.Driver.MoveTo(Point{X: st.X, Y: st.Y}.Vec())
	case EventJump:
		h.Driver.Jump(Point{X: st.X, Y: st.Y}.Vec())
	default:
		h.Manager.Dispatch(st.engineEvent())
	}
}

// RunHeadless plays sc with a fresh Headless runner, sampling every metric
// once per drawn frame.
func RunHeadless(ctx context.Context, mgr *engine.Manager, queue *engine.FrameQueue, sc *Scenario, fps int, ms []metrics.Metric) (*Result, error) {
	series := make([]*metrics.Series, len(ms))
	for i, m := range ms {
		series[i] = metrics.NewSeries(m, 0)
	}
	return NewHeadless(mgr, queue, fps, series).Run(ctx, sc)
}
