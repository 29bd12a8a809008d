package engine

import "github.com/san-kum/trails/internal/physics"

const (
	DefaultTrails     = 80
	DefaultSpringMin  = 0.45
	DefaultSpringMax  = 0.475
	DefaultLineWidth  = 10.0
	DefaultAlpha      = 0.025
	DefaultSaturation = 1.0
	DefaultLightness  = 0.5
	DefaultMargin     = 20

	DefaultHueAmplitude = 85.0
	DefaultHueFrequency = 0.0015
	DefaultHueOffset    = 285.0
)

// Options holds every tunable of a Controller.
type Options struct {
	Chain      physics.ChainParams
	Trails     int     // lines spawned per stroke
	SpringMin  float64 // base spring of the first line
	SpringMax  float64 // base spring the batch ramps toward
	LineWidth  float64
	Alpha      float64
	Saturation float64
	Lightness  float64
	Margin     int // subtracted from the viewport width on resize

	// Oscillator drives the hue. Its phase is randomised on every bind.
	Oscillator physics.OscillatorOptions
}

func DefaultOptions() Options {
	return Options{
		Chain:      physics.DefaultChainParams(),
		Trails:     DefaultTrails,
		SpringMin:  DefaultSpringMin,
		SpringMax:  DefaultSpringMax,
		LineWidth:  DefaultLineWidth,
		Alpha:      DefaultAlpha,
		Saturation: DefaultSaturation,
		Lightness:  DefaultLightness,
		Margin:     DefaultMargin,
		Oscillator: physics.OscillatorOptions{
			Amplitude: DefaultHueAmplitude,
			Frequency: DefaultHueFrequency,
			Offset:    DefaultHueOffset,
		},
	}
}

// BaseSpring is the base spring constant of line i in a batch of n.
func (o Options) BaseSpring(i, n int) float64 {
	return o.SpringMin + float64(i)/float64(n)*(o.SpringMax-o.SpringMin)
}
