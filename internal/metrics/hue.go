package metrics

// Hue tracks the stroke hue of the last frame, wrapped into [0, 360).
type Hue struct {
	name    string
	current float64
}

func NewHue() *Hue { return &Hue{name: "hue"} }

func (h *Hue) Name() string       { return h.name }
func (h *Hue) Observe(src Source) { h.current = src.StrokeStyle().Hue() }
func (h *Hue) Value() float64     { return h.current }
func (h *Hue) Reset()             { h.current = 0 }
