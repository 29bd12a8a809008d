package metrics

// Settling reports the frame at which the mean anchor distance dropped
// below the tolerance and stayed there. Value is -1 while the lines are
// still moving or no lines exist.
type Settling struct {
	name      string
	tolerance float64
	since     int
	settled   bool
}

func NewSettling(tolerance float64) *Settling {
	return &Settling{
		name:      "settled_at",
		tolerance: tolerance,
	}
}

func (s *Settling) Name() string { return s.name }

func (s *Settling) Observe(src Source) {
	if len(src.Lines()) == 0 || measure(src, false) >= s.tolerance {
		s.settled = false
		return
	}
	if !s.settled {
		s.settled = true
		s.since = src.Frame()
	}
}

func (s *Settling) Value() float64 {
	if !s.settled {
		return -1
	}
	return float64(s.since)
}

func (s *Settling) Reset() {
	s.since = 0
	s.settled = false
}
