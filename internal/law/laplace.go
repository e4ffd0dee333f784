package law

import (
	"fmt"
	"math/rand/v2"

	"github.com/san-kum/lspline/internal/stoch"
	"gonum.org/v1/gonum/stat/distuv"
)

// Laplace jumps with location Location and scale Scale.
//
// After Rescale(λ) a jump is Location/λ + Scale·(G1 - G2) with G1, G2
// independent Gamma(1/λ, 1) variates: a variance-gamma law whose λ-fold
// convolution is the target Laplace law.
type Laplace struct {
	Location float64
	Scale    float64

	lambda float64
}

func NewLaplace(location, scale float64) (*Laplace, error) {
	if err := checkFinite("law.NewLaplace", "location", location); err != nil {
		return nil, err
	}
	if err := checkPositive("law.NewLaplace", "scale", scale); err != nil {
		return nil, err
	}
	return &Laplace{Location: location, Scale: scale, lambda: 1}, nil
}

func (l *Laplace) Kind() Kind { return KindLaplace }
func (l *Laplace) sealed()    {}

func (l *Laplace) Clone() Law {
	c := *l
	return &c
}

// Lambda returns the intensity recorded by the last Rescale.
func (l *Laplace) Lambda() float64 {
	if l.lambda == 0 {
		return 1
	}
	return l.lambda
}

func (l *Laplace) String() string {
	return fmt.Sprintf("laplace(location=%g, scale=%g, lambda=%g)", l.Location, l.Scale, l.Lambda())
}

// Rescale records lambda; the parameters themselves are untouched.
func (l *Laplace) Rescale(lambda float64) error {
	if err := checkRate("law.Laplace.Rescale", lambda); err != nil {
		return err
	}
	l.lambda = lambda
	return nil
}

func (l *Laplace) Sample(rng *rand.Rand, n int) ([]float64, error) {
	if err := checkCount("law.Laplace.Sample", n); err != nil {
		return nil, err
	}
	lambda := l.Lambda()
	g := distuv.Gamma{Alpha: 1 / lambda, Beta: 1, Src: stoch.Source(rng)}
	out := make([]float64, n)
	for i := range out {
		out[i] = l.Location/lambda + l.Scale*(g.Rand()-g.Rand())
	}
	return out, nil
}
