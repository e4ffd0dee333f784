package law

import (
	"fmt"
	"math/rand/v2"

	"github.com/san-kum/lspline/internal/stoch"
	"gonum.org/v1/gonum/stat/distuv"
)

// CompoundPoisson jumps are sums of a Poisson(Rate) number of Base jumps.
type CompoundPoisson struct {
	Base Law
	Rate float64
}

func NewCompoundPoisson(base Law, rate float64) (*CompoundPoisson, error) {
	if base == nil {
		return nil, stoch.Domain("law.NewCompoundPoisson", "base", 0, "base law is required")
	}
	if err := checkPositive("law.NewCompoundPoisson", "rate", rate); err != nil {
		return nil, err
	}
	return &CompoundPoisson{Base: base, Rate: rate}, nil
}

func (c *CompoundPoisson) Kind() Kind { return KindCompoundPoisson }
func (c *CompoundPoisson) sealed()    {}

func (c *CompoundPoisson) Clone() Law {
	return &CompoundPoisson{Base: c.Base.Clone(), Rate: c.Rate}
}

func (c *CompoundPoisson) String() string {
	return fmt.Sprintf("compound_poisson(base=%s, rate=%g)", c.Base, c.Rate)
}

// Rescale divides the inner rate by lambda. The base law is left alone.
func (c *CompoundPoisson) Rescale(lambda float64) error {
	if err := checkRate("law.CompoundPoisson.Rescale", lambda); err != nil {
		return err
	}
	c.Rate /= lambda
	return nil
}

func (c *CompoundPoisson) Sample(rng *rand.Rand, n int) ([]float64, error) {
	if err := checkCount("law.CompoundPoisson.Sample", n); err != nil {
		return nil, err
	}
	count := distuv.Poisson{Lambda: c.Rate, Src: stoch.Source(rng)}
	out := make([]float64, n)
	for i := range out {
		inner, err := c.Base.Sample(rng, int(count.Rand()))
		if err != nil {
			return nil, fmt.Errorf("compound poisson base: %w", err)
		}
		sum := 0.0
		for _, j := range inner {
			sum += j
		}
		out[i] = sum
	}
	return out, nil
}
