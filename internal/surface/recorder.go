package surface

// Op is one recorded call on a Recorder.
type Op struct {
	Name  string
	Args  []float64
	Mode  CompositeMode
	Style HSLA
}

// Recorder is a Surface that records every call. It keeps a running log
// and per-frame counters; Clear starts a new frame.
type Recorder struct {
	Ops     []Op
	Mode    CompositeMode
	Style   HSLA
	Width   float64
	Frames  int
	Strokes int // strokes since the last Clear
	Curves  int // curves since the last Clear
	size    Size
	limit   int
}

// NewRecorder returns a recorder of the given size. A positive limit caps
// the op log; counters keep working past it.
func NewRecorder(size Size, limit int) *Recorder {
	return &Recorder{size: size, limit: limit}
}

func (r *Recorder) record(op Op) {
	if r.limit > 0 && len(r.Ops) >= r.limit {
		return
	}
	op.Mode = r.Mode
	op.Style = r.Style
	r.Ops = append(r.Ops, op)
}

func (r *Recorder) Clear() {
	r.Frames++
	r.Strokes = 0
	r.Curves = 0
	r.record(Op{Name: "clear"})
}

func (r *Recorder) SetCompositeMode(m CompositeMode) {
	r.Mode = m
	r.record(Op{Name: "composite", Args: []float64{float64(m)}})
}

func (r *Recorder) SetStrokeStyle(c HSLA) {
	r.Style = c
	r.record(Op{Name: "style", Args: []float64{c.H, c.S, c.L, c.A}})
}

func (r *Recorder) SetLineWidth(w float64) {
	r.Width = w
	r.record(Op{Name: "width", Args: []float64{w}})
}

func (r *Recorder) BeginPath() { r.record(Op{Name: "begin"}) }

func (r *Recorder) MoveTo(x, y float64) {
	r.record(Op{Name: "move", Args: []float64{x, y}})
}

func (r *Recorder) QuadraticCurveTo(cx, cy, x, y float64) {
	r.Curves++
	r.record(Op{Name: "quad", Args: []float64{cx, cy, x, y}})
}

func (r *Recorder) Stroke() {
	r.Strokes++
	r.record(Op{Name: "stroke"})
}

func (r *Recorder) ClosePath() { r.record(Op{Name: "close"}) }

func (r *Recorder) Size() Size { return r.size }

func (r *Recorder) SetSize(s Size) {
	r.size = s
	r.Strokes = 0
	r.Curves = 0
	r.record(Op{Name: "resize", Args: []float64{float64(s.W), float64(s.H)}})
}

// Reset drops the op log.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}

// Names returns the op names in order.
func (r *Recorder) Names() []string {
	names := make([]string, len(r.Ops))
	for i, op := range r.Ops {
		names[i] = op.Name
	}
	return names
}

// Last returns the most recent op with the given name.
func (r *Recorder) Last(name string) (Op, bool) {
	for i := len(r.Ops) - 1; i >= 0; i-- {
		if r.Ops[i].Name == name {
			return r.Ops[i], true
		}
	}
	return Op{}, false
}
