package metrics

// KineticEnergy is the total kinetic energy of every line, with unit node
// mass, at the last observed frame.
type KineticEnergy struct {
	name    string
	current float64
	peak    float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(src Source) {
	sum := 0.0
	for _, l := range src.Lines() {
		sum += l.Energy()
	}
	e.current = sum
	e.peak = max(e.peak, sum)
	e.samples++
}

func (e *KineticEnergy) Value() float64 { return e.current }

// Peak is the largest energy seen since the last Reset.
func (e *KineticEnergy) Peak() float64 { return e.peak }

func (e *KineticEnergy) Reset() {
	e.current = 0
	e.peak = 0
	e.samples = 0
}
