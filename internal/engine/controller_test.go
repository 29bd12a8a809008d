package engine_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/trails/internal/engine"
	"github.com/san-kum/trails/internal/physics"
	"github.com/san-kum/trails/internal/surface"
)

var _ = Describe("Controller", func() {
	var ctl *engine.Controller

	BeforeEach(func() {
		ctl = engine.NewController(engine.DefaultOptions(), rand.New(rand.NewSource(3)))
	})

	It("starts with no lines and a randomised hue phase", func() {
		Expect(ctl.Lines()).To(BeEmpty())
		Expect(ctl.Frame()).To(Equal(1))

		osc := ctl.Oscillator()
		Expect(osc.Phase).To(BeNumerically(">=", 0))
		Expect(osc.Phase).To(BeNumerically("<", 2*math.Pi))
		Expect(osc.Amplitude).To(Equal(engine.DefaultHueAmplitude))
		Expect(osc.Offset).To(Equal(engine.DefaultHueOffset))
		Expect(osc.Frequency).To(Equal(engine.DefaultHueFrequency))
	})

	It("spawns lines at the anchor", func() {
		ctl.SetAnchor(physics.Vec2{X: 3, Y: 4})
		ctl.Spawn()
		Expect(ctl.Lines()).To(HaveLen(engine.DefaultTrails))
		for _, l := range ctl.Lines() {
			for _, n := range l.Nodes {
				Expect(n.Pos()).To(Equal(physics.Vec2{X: 3, Y: 4}))
			}
		}
	})

	It("derives the stroke hue from the oscillator", func() {
		rec := surface.NewRecorder(surface.Size{W: 100, H: 100}, 0)
		phase := ctl.Oscillator().Phase

		ctl.Render(rec)

		want := math.Round(engine.DefaultHueOffset + engine.DefaultHueAmplitude*math.Sin(phase+engine.DefaultHueFrequency))
		Expect(ctl.StrokeStyle().H).To(Equal(want))
		Expect(ctl.StrokeStyle().A).To(Equal(engine.DefaultAlpha))
		Expect(ctl.Frame()).To(Equal(2))
	})

	It("updates then draws each line once per frame", func() {
		ctl.SetAnchor(physics.Vec2{X: 0, Y: 0})
		ctl.Spawn()
		ctl.SetAnchor(physics.Vec2{X: 50, Y: 0})

		rec := surface.NewRecorder(surface.Size{W: 100, H: 100}, 0)
		ctl.Render(rec)

		Expect(rec.Strokes).To(Equal(engine.DefaultTrails))
		Expect(rec.Curves).To(Equal(engine.DefaultTrails * (physics.DefaultSize - 2)))

		// the first move op is the head of line 0 after its update
		mv, ok := rec.Last("move")
		Expect(ok).To(BeTrue())
		last := ctl.Lines()[len(ctl.Lines())-1]
		Expect(mv.Args).To(Equal([]float64{last.Nodes[0].X, last.Nodes[0].Y}))
		Expect(last.Nodes[0].X).To(BeNumerically(">", 0))
	})

	It("computes base springs across the batch", func() {
		opts := engine.DefaultOptions()
		Expect(opts.BaseSpring(0, 80)).To(Equal(0.45))
		Expect(opts.BaseSpring(40, 80)).To(BeNumerically("~", 0.4625, 1e-12))
		Expect(opts.BaseSpring(79, 80)).To(BeNumerically("<", 0.475))
	})
})

var _ = Describe("FrameQueue", func() {
	It("defers callbacks requested during a frame", func() {
		q := &engine.FrameQueue{}
		runs := 0
		var loop func()
		loop = func() {
			runs++
			q.RequestFrame(loop)
		}
		q.RequestFrame(loop)

		Expect(q.RunFrame()).To(Equal(1))
		Expect(runs).To(Equal(1))
		Expect(q.Pending()).To(Equal(1))

		Expect(q.RunFrame()).To(Equal(1))
		Expect(runs).To(Equal(2))
	})
})
