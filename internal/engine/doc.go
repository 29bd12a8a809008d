// Package engine drives the trail simulation.
//
// A [Controller] owns the simulation context: the lines, the hue
// oscillator, the pointer anchor and the frame counter. A [Manager] binds
// one Controller to one drawing surface and turns host input into
// simulation changes:
//
//	reg := surface.NewRegistry()
//	reg.Register("canvas", canvas)
//	q := &engine.FrameQueue{}
//	m := engine.NewManager(engine.NewController(opts, rng), reg, q, logger)
//	m.Bind("canvas", surface.Size{W: 1280, H: 720})
//	m.Dispatch(engine.PointerMove{Pos: physics.Vec2{X: 10, Y: 20}})
//	for {
//	    q.RunFrame() // once per display refresh
//	}
//
// Everything here is single-threaded: hosts call the Manager from their
// own event loop and never from more than one goroutine.
package engine
