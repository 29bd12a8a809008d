// Package analysis inspects sampled metric series from headless runs.
package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitudes of the first half of the DFT of
// data with its mean removed. Any length works.
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	centred := make([]float64, len(data))
	for i, v := range data {
		centred[i] = v - mean
	}

	spectrum := fft.FFTReal(centred)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantPeriod returns the period, in samples, of the strongest
// oscillation in data, or 0 when the series is flat or too short.
func DominantPeriod(data []float64) float64 {
	ps := PowerSpectrum(data)
	best, bin := 0.0, 0
	for k := 1; k < len(ps); k++ {
		if ps[k] > best {
			best, bin = ps[k], k
		}
	}
	if bin == 0 || best < 1e-9 {
		return 0
	}
	return float64(len(data)) / float64(bin)
}

// Tail returns the last fraction of data, so spectra skip the start-up
// transient.
func Tail(data []float64, fraction float64) []float64 {
	fraction = math.Max(0, math.Min(1, fraction))
	n := int(float64(len(data)) * fraction)
	return data[len(data)-n:]
}
