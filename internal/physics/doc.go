// Package physics provides the spring chains behind the trails.
//
//   - [Oscillator]: phase-advancing sine wave, used to cycle the stroke hue
//   - [Node]: a point with a velocity
//   - [Line]: a chain of nodes joined by damped springs
//
// A Line integrates in place, front to back: node 0 is pulled toward the
// anchor, each later node toward the already updated position of its
// predecessor, and a small share of the predecessor's velocity is carried
// down the chain. Spring strength decays by the tension factor per node,
// so the tail lags and whips.
//
//	l := physics.NewLine(0.45, anchor, physics.DefaultChainParams(), rng)
//	for range frames {
//	    l.Update(pointer)
//	}
//	l.Draw(surface)
package physics
