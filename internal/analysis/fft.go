package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Deltas turns cumulative counter samples into per-frame increments. The
// first sample is taken as its own increment.
func Deltas(cum []uint64) []float64 {
	out := make([]float64, len(cum))
	var prev uint64
	for i, v := range cum {
		if v >= prev {
			out[i] = float64(v - prev)
		}
		prev = v
	}
	return out
}

// PowerSpectrum returns |X_k|^2 / n for k in [0, n/2] after removing the
// mean, so bin 0 is always zero. Any length is accepted.
func PowerSpectrum(data []float64) []float64 {
	n := len(data)
	if n < 2 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	centred := make([]float64, n)
	for i, v := range data {
		centred[i] = v - mean
	}

	spectrum := fft.FFTReal(centred)
	ps := make([]float64, n/2+1)
	for i := range ps {
		mag := cmplx.Abs(spectrum[i])
		ps[i] = mag * mag / float64(n)
	}
	return ps
}

// DominantPeriod returns the period in frames of the strongest non-DC bin and
// its power. A flat series has no period and returns zeros.
func DominantPeriod(data []float64) (period, power float64) {
	ps := PowerSpectrum(data)
	best := 0
	for k := 1; k < len(ps); k++ {
		if ps[k] > ps[best] {
			best = k
		}
	}
	if best == 0 || ps[best] < 1e-12 {
		return 0, 0
	}
	return float64(len(data)) / float64(best), ps[best]
}
