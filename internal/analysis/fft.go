package analysis

import (
	"errors"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/san-kum/lspline/internal/stoch"
)

var ErrShortSeries = errors.New("analysis: series needs at least two samples")

// Spectrum holds one-sided power at frequencies k/(n·step), k = 0..n/2.
type Spectrum struct {
	Freqs []float64
	Power []float64
}

// PowerSpectrum returns |X_k|²/n of the mean-removed series. The sample
// spacing is read from the first two times.
func PowerSpectrum(s stoch.Series) (Spectrum, error) {
	n := s.Len()
	if n < 2 || len(s.Times) < 2 {
		return Spectrum{}, ErrShortSeries
	}
	step := s.Times[1] - s.Times[0]
	if step <= 0 {
		return Spectrum{}, errors.New("analysis: times must increase")
	}

	mean := Summarize(s).Mean
	centred := make([]float64, n)
	for i, v := range s.Values {
		centred[i] = v - mean
	}

	coeffs := fft.FFTReal(centred)
	half := n/2 + 1
	out := Spectrum{Freqs: make([]float64, half), Power: make([]float64, half)}
	for k := 0; k < half; k++ {
		a := cmplx.Abs(coeffs[k])
		out.Freqs[k] = float64(k) / (float64(n) * step)
		out.Power[k] = a * a / float64(n)
	}
	return out, nil
}

// DominantFrequency returns the frequency of the largest non-DC bin.
func DominantFrequency(s stoch.Series) (float64, error) {
	spec, err := PowerSpectrum(s)
	if err != nil {
		return 0, err
	}
	best := 1
	for k := 2; k < len(spec.Power); k++ {
		if spec.Power[k] > spec.Power[best] {
			best = k
		}
	}
	return spec.Freqs[best], nil
}
