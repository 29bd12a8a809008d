package physics

import "math"

const DefaultFrequency = 0.001

// OscillatorOptions configures a new Oscillator. A zero Frequency or
// Amplitude falls back to the defaults (0.001 and 1).
type OscillatorOptions struct {
	Phase     float64
	Offset    float64
	Frequency float64
	Amplitude float64
}

// Oscillator is a sine generator advanced once per rendered frame.
type Oscillator struct {
	Phase     float64
	Offset    float64
	Frequency float64
	Amplitude float64
}

func NewOscillator(opts OscillatorOptions) *Oscillator {
	o := &Oscillator{
		Phase:     opts.Phase,
		Offset:    opts.Offset,
		Frequency: opts.Frequency,
		Amplitude: opts.Amplitude,
	}
	if o.Frequency == 0 {
		o.Frequency = DefaultFrequency
	}
	if o.Amplitude == 0 {
		o.Amplitude = 1
	}
	return o
}

// Update advances the phase by one step and returns the new value.
func (o *Oscillator) Update() float64 {
	o.Phase += o.Frequency
	return o.Value()
}

// Value returns the current value without advancing.
func (o *Oscillator) Value() float64 {
	return o.Offset + math.Sin(o.Phase)*o.Amplitude
}

// Period is the number of Update calls needed for one full cycle.
func (o *Oscillator) Period() float64 {
	return 2 * math.Pi / o.Frequency
}
