// Package metrics observes a running trail controller once per frame.
package metrics

import (
	"github.com/san-kum/trails/internal/physics"
	"github.com/san-kum/trails/internal/surface"
)

// Source is the state a metric reads. engine.Controller satisfies it.
type Source interface {
	Lines() []*physics.Line
	Anchor() physics.Vec2
	Frame() int
	StrokeStyle() surface.HSLA
}

type Metric interface {
	Name() string
	Observe(src Source)
	Value() float64
	Reset()
}

// Standard returns the metrics the stats command reports.
func Standard(tolerance float64) []Metric {
	return []Metric{
		NewKineticEnergy(),
		NewMeanDistance(),
		NewMaxDistance(),
		NewHue(),
		NewSettling(tolerance),
	}
}
