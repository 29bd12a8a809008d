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

type rig struct {
	rec   *surface.Recorder
	queue *engine.FrameQueue
	mgr   *engine.Manager
}

func newRig(seed int64) *rig {
	rec := surface.NewRecorder(surface.Size{}, 0)
	reg := surface.NewRegistry()
	reg.Register("canvas", rec)
	q := &engine.FrameQueue{}
	ctl := engine.NewController(engine.DefaultOptions(), rand.New(rand.NewSource(seed)))
	return &rig{rec: rec, queue: q, mgr: engine.NewManager(ctl, reg, q, nil)}
}

func (r *rig) frames(n int) {
	for i := 0; i < n; i++ {
		r.queue.RunFrame()
	}
}

func snapshot(lines []*physics.Line) [][]physics.Node {
	out := make([][]physics.Node, len(lines))
	for i, l := range lines {
		out[i] = append([]physics.Node(nil), l.Nodes...)
	}
	return out
}

func move(x, y float64) engine.PointerMove {
	return engine.PointerMove{Pos: physics.Vec2{X: x, Y: y}}
}

var _ = Describe("Manager", func() {
	var r *rig

	BeforeEach(func() {
		r = newRig(1)
	})

	Describe("binding", func() {
		It("declines silently when the surface is missing", func() {
			Expect(r.mgr.Bind("nope", surface.Size{W: 800, H: 600})).To(BeFalse())
			Expect(r.mgr.Bound()).To(BeFalse())

			r.mgr.Dispatch(move(10, 10))
			Expect(r.mgr.Controller().Lines()).To(BeEmpty())
			Expect(r.queue.Pending()).To(Equal(0))
		})

		It("sizes the surface and starts at frame 1", func() {
			Expect(r.mgr.Bind("canvas", surface.Size{W: 800, H: 600})).To(BeTrue())
			Expect(r.rec.Size()).To(Equal(surface.Size{W: 780, H: 600}))
			Expect(r.mgr.Controller().Frame()).To(Equal(1))
			Expect(r.mgr.Running()).To(BeTrue())
			Expect(r.mgr.State()).To(Equal(engine.Idle))
		})

		It("does not render before the first movement", func() {
			r.mgr.Bind("canvas", surface.Size{W: 800, H: 600})
			Expect(r.queue.Pending()).To(Equal(0))
			Expect(r.mgr.Controller().Lines()).To(BeEmpty())
		})
	})

	Describe("strokes", func() {
		BeforeEach(func() {
			r.mgr.Bind("canvas", surface.Size{W: 800, H: 600})
		})

		It("spawns a full batch on the first move only", func() {
			r.mgr.Dispatch(move(50, 60))
			lines := r.mgr.Controller().Lines()
			Expect(lines).To(HaveLen(engine.DefaultTrails))
			Expect(r.mgr.State()).To(Equal(engine.Stroking))

			for _, l := range lines {
				Expect(l.Nodes).To(HaveLen(physics.DefaultSize))
				Expect(l.Nodes[0].Pos()).To(Equal(physics.Vec2{X: 50, Y: 60}))
			}

			r.mgr.Dispatch(move(70, 80))
			Expect(r.mgr.Controller().Lines()[0]).To(BeIdenticalTo(lines[0]))
			Expect(r.mgr.Controller().Anchor()).To(Equal(physics.Vec2{X: 70, Y: 80}))
		})

		It("ramps the base spring across the batch", func() {
			r.mgr.Dispatch(move(0, 0))
			lines := r.mgr.Controller().Lines()
			for i, l := range lines {
				base := 0.45 + float64(i)/float64(len(lines))*0.025
				Expect(math.Abs(l.Spring-base)).To(BeNumerically("<=", physics.SpringJitter))
				Expect(math.Abs(l.Friction-physics.DefaultFriction)).To(BeNumerically("<=", physics.FrictionJitter))
			}
		})

		It("starts a stroke on touch start while idle", func() {
			r.mgr.Dispatch(engine.TouchStart{Touches: []physics.Vec2{{X: 5, Y: 6}, {X: 9, Y: 9}}})
			Expect(r.mgr.State()).To(Equal(engine.Stroking))
			Expect(r.mgr.Controller().Lines()).To(HaveLen(engine.DefaultTrails))
			Expect(r.mgr.Controller().Anchor()).To(Equal(physics.Vec2{X: 5, Y: 6}))
		})

		It("ignores touch moves while idle", func() {
			r.mgr.Dispatch(engine.TouchMove{Touches: []physics.Vec2{{X: 5, Y: 6}}})
			Expect(r.mgr.State()).To(Equal(engine.Idle))
			Expect(r.mgr.Controller().Lines()).To(BeEmpty())
		})

		It("snapshots the anchor on a single touch start without spawning", func() {
			r.mgr.Dispatch(move(1, 1))
			lines := r.mgr.Controller().Lines()

			r.mgr.Dispatch(engine.TouchStart{Touches: []physics.Vec2{{X: 3, Y: 4}, {X: 8, Y: 8}}})
			Expect(r.mgr.Controller().Anchor()).To(Equal(physics.Vec2{X: 1, Y: 1}))

			r.mgr.Dispatch(engine.TouchStart{Touches: []physics.Vec2{{X: 3, Y: 4}}})
			Expect(r.mgr.Controller().Anchor()).To(Equal(physics.Vec2{X: 3, Y: 4}))
			Expect(r.mgr.Controller().Lines()[0]).To(BeIdenticalTo(lines[0]))

			r.mgr.Dispatch(engine.TouchMove{Touches: []physics.Vec2{{X: 7, Y: 2}}})
			Expect(r.mgr.Controller().Anchor()).To(Equal(physics.Vec2{X: 7, Y: 2}))
		})

		It("returns to idle on rebind so the next move spawns again", func() {
			r.mgr.Dispatch(move(1, 1))
			first := r.mgr.Controller().Lines()

			r.mgr.Bind("canvas", surface.Size{W: 800, H: 600})
			Expect(r.mgr.State()).To(Equal(engine.Idle))

			r.mgr.Dispatch(move(2, 2))
			Expect(r.mgr.Controller().Lines()[0]).NotTo(BeIdenticalTo(first[0]))
		})
	})

	Describe("frame loop", func() {
		BeforeEach(func() {
			r.mgr.Bind("canvas", surface.Size{W: 800, H: 600})
			r.mgr.Dispatch(move(100, 100))
		})

		It("keeps exactly one frame queued while running", func() {
			Expect(r.queue.Pending()).To(Equal(1))
			r.mgr.Dispatch(move(110, 100))
			Expect(r.queue.Pending()).To(Equal(1))
			r.frames(3)
			Expect(r.queue.Pending()).To(Equal(1))
			Expect(r.mgr.Controller().Frame()).To(Equal(4))
		})

		It("resets the composite mode and style every frame", func() {
			r.frames(2)
			r.rec.Reset()
			r.frames(1)

			names := r.rec.Names()
			Expect(names[:5]).To(Equal([]string{"composite", "clear", "composite", "style", "width"}))
			Expect(r.rec.Ops[0].Args).To(Equal([]float64{float64(surface.Normal)}))
			Expect(r.rec.Ops[2].Args).To(Equal([]float64{float64(surface.Additive)}))

			style, _ := r.rec.Last("style")
			Expect(style.Args[3]).To(Equal(engine.DefaultAlpha))
			Expect(style.Args[0]).To(Equal(math.Round(style.Args[0])))
			Expect(r.rec.Width).To(Equal(engine.DefaultLineWidth))
			Expect(r.rec.Strokes).To(Equal(engine.DefaultTrails))
		})

		It("settles lines spawned on a stationary pointer", func() {
			anchor := physics.Vec2{X: 100, Y: 100}
			prev := make([]float64, engine.DefaultTrails*physics.DefaultSize)

			for tick := 1; tick <= 200; tick++ {
				r.frames(1)
				i := 0
				for _, l := range r.mgr.Controller().Lines() {
					for _, n := range l.Nodes {
						d := n.Pos().Sub(anchor).Len()
						if tick > 50 {
							Expect(d).To(BeNumerically("<=", prev[i]+1e-12))
						}
						prev[i] = d
						i++
					}
				}
			}
		})

		It("pauses on blur and resumes on focus without resetting", func() {
			r.frames(10)
			r.mgr.Dispatch(engine.Blur{})
			Expect(r.mgr.Running()).To(BeFalse())

			// the frame already in flight still runs, then the loop stops
			r.frames(1)
			Expect(r.queue.Pending()).To(Equal(0))

			frame := r.mgr.Controller().Frame()
			before := snapshot(r.mgr.Controller().Lines())
			r.frames(5)
			Expect(r.mgr.Controller().Frame()).To(Equal(frame))

			r.mgr.Dispatch(engine.Focus{})
			Expect(r.mgr.Running()).To(BeTrue())
			Expect(snapshot(r.mgr.Controller().Lines())).To(Equal(before))
			Expect(r.mgr.Controller().Frame()).To(Equal(frame))

			r.frames(1)
			Expect(r.mgr.Controller().Frame()).To(Equal(frame + 1))
		})

		It("does not double the loop when focus arrives before the stale frame", func() {
			r.mgr.Dispatch(engine.Blur{})
			r.mgr.Dispatch(engine.Focus{})
			Expect(r.queue.Pending()).To(Equal(1))
			r.frames(1)
			Expect(r.queue.Pending()).To(Equal(1))
		})

		It("ignores focus while already running", func() {
			r.mgr.Dispatch(engine.Focus{})
			Expect(r.queue.Pending()).To(Equal(1))
		})

		It("resizes to the viewport minus the margin and draws a cleared frame", func() {
			r.frames(5)
			r.mgr.Dispatch(engine.Resize{Viewport: surface.Size{W: 1024, H: 700}})
			Expect(r.rec.Size()).To(Equal(surface.Size{W: 1004, H: 700}))
			Expect(r.rec.Strokes).To(Equal(0))

			r.rec.Reset()
			r.frames(1)
			Expect(r.rec.Names()[:2]).To(Equal([]string{"composite", "clear"}))
			Expect(r.rec.Strokes).To(Equal(engine.DefaultTrails))
		})

		It("treats orientation changes like resizes", func() {
			r.mgr.Dispatch(engine.OrientationChange{Viewport: surface.Size{W: 400, H: 900}})
			Expect(r.rec.Size()).To(Equal(surface.Size{W: 380, H: 900}))
		})

		It("clamps tiny viewports", func() {
			r.mgr.Dispatch(engine.Resize{Viewport: surface.Size{W: 10, H: 10}})
			Expect(r.rec.Size()).To(Equal(surface.Size{W: 0, H: 10}))
		})

		It("stops cleanly on unbind", func() {
			r.mgr.Unbind()
			Expect(r.mgr.Bound()).To(BeFalse())
			Expect(r.mgr.Controller().Lines()).To(BeEmpty())

			frames := r.rec.Frames
			r.frames(3)
			Expect(r.rec.Frames).To(Equal(frames))
			Expect(r.queue.Pending()).To(Equal(0))
		})
	})

	It("keeps separate managers independent", func() {
		a, b := newRig(1), newRig(2)
		a.mgr.Bind("canvas", surface.Size{W: 800, H: 600})
		b.mgr.Bind("canvas", surface.Size{W: 800, H: 600})

		a.mgr.Dispatch(move(10, 10))
		Expect(a.mgr.Controller().Lines()).To(HaveLen(engine.DefaultTrails))
		Expect(b.mgr.Controller().Lines()).To(BeEmpty())

		a.frames(3)
		Expect(b.mgr.Controller().Frame()).To(Equal(1))
	})
})
