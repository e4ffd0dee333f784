package law

import (
	"fmt"
	"math/rand/v2"

	"github.com/san-kum/lspline/internal/stoch"
	"gonum.org/v1/gonum/stat/distuv"
)

// Gamma jumps with shape Shape and rate Rate.
type Gamma struct {
	Shape float64
	Rate  float64
}

func NewGamma(shape, rate float64) (*Gamma, error) {
	if err := checkPositive("law.NewGamma", "shape", shape); err != nil {
		return nil, err
	}
	if err := checkPositive("law.NewGamma", "rate", rate); err != nil {
		return nil, err
	}
	return &Gamma{Shape: shape, Rate: rate}, nil
}

func (g *Gamma) Kind() Kind { return KindGamma }
func (g *Gamma) sealed()    {}

func (g *Gamma) Clone() Law {
	c := *g
	return &c
}

func (g *Gamma) String() string {
	return fmt.Sprintf("gamma(shape=%g, rate=%g)", g.Shape, g.Rate)
}

// Rescale divides the shape by lambda; gamma laws are closed under
// convolution in the shape parameter.
func (g *Gamma) Rescale(lambda float64) error {
	if err := checkRate("law.Gamma.Rescale", lambda); err != nil {
		return err
	}
	g.Shape /= lambda
	return nil
}

func (g *Gamma) Sample(rng *rand.Rand, n int) ([]float64, error) {
	if err := checkCount("law.Gamma.Sample", n); err != nil {
		return nil, err
	}
	dist := distuv.Gamma{Alpha: g.Shape, Beta: g.Rate, Src: stoch.Source(rng)}
	out := make([]float64, n)
	for i := range out {
		out[i] = dist.Rand()
	}
	return out, nil
}
