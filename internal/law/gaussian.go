package law

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/san-kum/lspline/internal/stoch"
	"gonum.org/v1/gonum/stat/distuv"
)

// Gaussian jumps with the given mean and variance.
type Gaussian struct {
	Mean     float64
	Variance float64
}

func NewGaussian(mean, variance float64) (*Gaussian, error) {
	if err := checkFinite("law.NewGaussian", "mean", mean); err != nil {
		return nil, err
	}
	if err := checkFinite("law.NewGaussian", "variance", variance); err != nil {
		return nil, err
	}
	if variance < 0 {
		return nil, stoch.Domain("law.NewGaussian", "variance", variance, "must be non-negative")
	}
	return &Gaussian{Mean: mean, Variance: variance}, nil
}

func (g *Gaussian) Kind() Kind { return KindGaussian }
func (g *Gaussian) sealed()    {}

func (g *Gaussian) Clone() Law {
	c := *g
	return &c
}

func (g *Gaussian) String() string {
	return fmt.Sprintf("gaussian(mean=%g, variance=%g)", g.Mean, g.Variance)
}

// Rescale divides mean and variance by lambda, so that a sum of Poisson(λ)
// jumps per unit time keeps the target first two moments.
func (g *Gaussian) Rescale(lambda float64) error {
	if err := checkRate("law.Gaussian.Rescale", lambda); err != nil {
		return err
	}
	g.Mean /= lambda
	g.Variance /= lambda
	return nil
}

func (g *Gaussian) Sample(rng *rand.Rand, n int) ([]float64, error) {
	if err := checkCount("law.Gaussian.Sample", n); err != nil {
		return nil, err
	}
	dist := distuv.Normal{Mu: g.Mean, Sigma: math.Sqrt(g.Variance), Src: stoch.Source(rng)}
	out := make([]float64, n)
	for i := range out {
		out[i] = dist.Rand()
	}
	return out, nil
}
