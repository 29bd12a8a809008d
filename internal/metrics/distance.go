package metrics

import "math"

// AnchorDistance measures how far nodes are from the anchor, either the
// mean over every node or the largest one.
type AnchorDistance struct {
	name    string
	useMax  bool
	current float64
}

func NewMeanDistance() *AnchorDistance {
	return &AnchorDistance{name: "mean_distance"}
}

func NewMaxDistance() *AnchorDistance {
	return &AnchorDistance{name: "max_distance", useMax: true}
}

func (d *AnchorDistance) Name() string { return d.name }

func (d *AnchorDistance) Observe(src Source) {
	d.current = measure(src, d.useMax)
}

func (d *AnchorDistance) Value() float64 { return d.current }

func (d *AnchorDistance) Reset() { d.current = 0 }

func measure(src Source, useMax bool) float64 {
	anchor := src.Anchor()
	sum, peak, n := 0.0, 0.0, 0
	for _, l := range src.Lines() {
		for _, node := range l.Nodes {
			dist := node.Pos().Sub(anchor).Len()
			sum += dist
			peak = math.Max(peak, dist)
			n++
		}
	}
	if useMax {
		return peak
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
