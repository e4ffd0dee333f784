// Package impulse draws realizations of the impulsive white noise on a
// finite horizon: a Poisson number of Diracs at uniform knots with jumps
// from a rescaled law.
package impulse

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/san-kum/lspline/internal/law"
	"github.com/san-kum/lspline/internal/stoch"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat/distuv"
)

// Generate draws N ~ Poisson(rate·horizon) impulses with knots uniform on
// [0, horizon). Knots are returned in draw order, not sorted.
//
// The law is cloned before Rescale(rate), so l keeps its parameters and can
// be reused across calls.
func Generate(rng *rand.Rand, l law.Law, rate, horizon float64) (stoch.Realization, error) {
	const op = "impulse.Generate"
	if l == nil {
		return nil, stoch.Domain(op, "law", 0, "law is required")
	}
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
		return nil, stoch.Domain(op, "rate", rate, "must be a positive finite intensity")
	}
	if math.IsNaN(horizon) || math.IsInf(horizon, 0) || horizon < 0 {
		return nil, stoch.Domain(op, "horizon", horizon, "must be finite and non-negative")
	}

	src := stoch.Source(rng)
	n := 0
	if mean := rate * horizon; mean > 0 {
		n = int(distuv.Poisson{Lambda: mean, Src: src}.Rand())
	}

	knots := make([]float64, n)
	if n > 0 {
		u := distuv.Uniform{Min: 0, Max: horizon, Src: src}
		for i := range knots {
			knots[i] = u.Rand()
		}
	}

	scaled := l.Clone()
	if err := scaled.Rescale(rate); err != nil {
		return nil, err
	}
	jumps, err := scaled.Sample(rng, n)
	if err != nil {
		return nil, err
	}
	if len(jumps) != n {
		return nil, fmt.Errorf("%s: law %s returned %d jumps, want %d", op, scaled, len(jumps), n)
	}

	out := make(stoch.Realization, n)
	for i := range out {
		out[i] = stoch.Impulse{Knot: knots[i], Jump: jumps[i]}
	}
	logrus.Debugf("impulse: drew %d impulses (rate=%g, horizon=%g, law=%s)", n, rate, horizon, scaled)
	return out, nil
}
