package analysis

import (
	"math"
	"math/cmplx"
)

// FFT is a radix-2 transform. Input is zero-padded to the next power of two.
func FFT(data []float64) []complex128 {
	return fft(padded(data))
}

func fft(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := fft(even)
	fodd := fft(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}
	return result
}

func padded(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n <<= 1
	}
	if n == len(data) {
		return data
	}
	out := make([]float64, n)
	copy(out, data)
	return out
}

// PowerSpectrum returns magnitudes for the non-negative frequency bins of the
// mean-removed signal.
func PowerSpectrum(data []float64) []float64 {
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	if len(data) > 0 {
		mean /= float64(len(data))
	}

	centered := make([]float64, len(data))
	for i, v := range data {
		centered[i] = v - mean
	}

	spectrum := FFT(centered)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantPeriod returns the period of the strongest non-zero frequency in
// samples taken every dt. It reports false when the signal is flat or too
// short to hold a full cycle.
func DominantPeriod(samples []float64, dt float64) (float64, bool) {
	if len(samples) < 4 || dt <= 0 {
		return 0, false
	}
	ps := PowerSpectrum(samples)

	peak, best := 0, 0.0
	for k := 1; k < len(ps); k++ {
		if ps[k] > best {
			peak, best = k, ps[k]
		}
	}
	if peak == 0 || best < 1e-12 {
		return 0, false
	}

	n := len(ps) * 2
	return float64(n) * dt / float64(peak), true
}
