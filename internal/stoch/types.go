package stoch

import (
	"math"
	"math/rand/v2"
)

// Impulse is a single Dirac of the white noise: a jump of size Jump at Knot.
type Impulse struct {
	Knot float64 `json:"knot"`
	Jump float64 `json:"jump"`
}

// Realization is one draw of the impulse train. Order carries no meaning.
type Realization []Impulse

func (r Realization) Clone() Realization {
	c := make(Realization, len(r))
	copy(c, r)
	return c
}

func (r Realization) Knots() []float64 {
	out := make([]float64, len(r))
	for i, imp := range r {
		out[i] = imp.Knot
	}
	return out
}

func (r Realization) Jumps() []float64 {
	out := make([]float64, len(r))
	for i, imp := range r {
		out[i] = imp.Jump
	}
	return out
}

// Stems returns the impulse train as a series of vertical lines, one
// (knot, jump) pair per impulse, ordered by knot for display.
func (r Realization) Stems() Series {
	sorted := r.Clone()
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Knot < sorted[j-1].Knot; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	return Series{Times: sorted.Knots(), Values: sorted.Jumps()}
}

// Series is a sampled signal handed to plotting and export sinks.
type Series struct {
	Times  []float64 `json:"times"`
	Values []float64 `json:"values"`
}

func (s Series) Len() int { return len(s.Values) }

func (s Series) IsValid() bool {
	for _, v := range s.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// gridEps guards arange against step/horizon ratios that land a hair
// above an integer because of rounding.
const gridEps = 1e-9

// Arange returns start, start+step, ... strictly below stop, with the
// same point count as numpy's arange.
func Arange(start, stop, step float64) []float64 {
	if step <= 0 || stop <= start {
		return []float64{}
	}
	n := int(math.Ceil((stop-start)/step - gridEps))
	if n < 0 {
		n = 0
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// Source adapts an optional generator for gonum distributions. A nil rng
// selects the process-wide source.
func Source(rng *rand.Rand) rand.Source {
	if rng == nil {
		return nil
	}
	return rng
}
