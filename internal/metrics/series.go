package metrics

// Series keeps a bounded history of a metric's values, one per Sample.
type Series struct {
	Metric Metric
	Values []float64
	cap    int
}

func NewSeries(m Metric, capacity int) *Series {
	return &Series{Metric: m, cap: capacity}
}

// Sample appends the metric's current value, dropping the oldest value
// once the capacity is reached. A capacity of zero keeps everything.
func (s *Series) Sample() {
	s.Values = append(s.Values, s.Metric.Value())
	if s.cap > 0 && len(s.Values) > s.cap {
		s.Values = s.Values[len(s.Values)-s.cap:]
	}
}

func (s *Series) Reset() {
	s.Values = s.Values[:0]
	s.Metric.Reset()
}
