package law

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/san-kum/lspline/internal/stoch"
	"gonum.org/v1/gonum/stat/distuv"
)

// Stable is the α-stable law S(α, β, c, μ) in the S1 parameterization:
// stability Alpha in (0, 2], skewness Beta in [-1, 1], Scale c > 0 and
// Drift μ.
type Stable struct {
	Alpha float64
	Beta  float64
	Drift float64
	Scale float64
}

func NewStable(alpha, beta, drift, scale float64) (*Stable, error) {
	const op = "law.NewStable"
	if err := checkPositive(op, "alpha", alpha); err != nil {
		return nil, err
	}
	if alpha > 2 {
		return nil, stoch.Domain(op, "alpha", alpha, "must lie in (0, 2]")
	}
	if err := checkFinite(op, "beta", beta); err != nil {
		return nil, err
	}
	if beta < -1 || beta > 1 {
		return nil, stoch.Domain(op, "beta", beta, "must lie in [-1, 1]")
	}
	if err := checkFinite(op, "drift", drift); err != nil {
		return nil, err
	}
	if err := checkPositive(op, "scale", scale); err != nil {
		return nil, err
	}
	return &Stable{Alpha: alpha, Beta: beta, Drift: drift, Scale: scale}, nil
}

func (s *Stable) Kind() Kind { return KindStable }
func (s *Stable) sealed()    {}

func (s *Stable) Clone() Law {
	c := *s
	return &c
}

func (s *Stable) String() string {
	return fmt.Sprintf("alpha_stable(alpha=%g, beta=%g, drift=%g, scale=%g)", s.Alpha, s.Beta, s.Drift, s.Scale)
}

// Rescale applies the self-similarity of stable laws: the sum of λ jumps
// matches the target when the scale shrinks by λ^(1/α). At α = 1 the drift
// picks up a logarithmic correction.
func (s *Stable) Rescale(lambda float64) error {
	if err := checkRate("law.Stable.Rescale", lambda); err != nil {
		return err
	}
	if s.Alpha == 1 {
		s.Drift = s.Drift/lambda + 2/math.Pi*s.Scale*s.Beta*math.Log(lambda)/lambda
		s.Scale /= lambda
		return nil
	}
	s.Drift /= lambda
	s.Scale /= math.Pow(lambda, 1/s.Alpha)
	return nil
}

// Sample draws with the Chambers-Mallows-Stuck method.
func (s *Stable) Sample(rng *rand.Rand, n int) ([]float64, error) {
	if err := checkCount("law.Stable.Sample", n); err != nil {
		return nil, err
	}
	src := stoch.Source(rng)
	angle := distuv.Uniform{Min: -math.Pi / 2, Max: math.Pi / 2, Src: src}
	expo := distuv.Exponential{Rate: 1, Src: src}

	out := make([]float64, n)
	for i := range out {
		out[i] = s.draw(angle.Rand(), expo.Rand())
	}
	return out, nil
}

// draw maps a uniform angle v on (-π/2, π/2) and a unit exponential w to a
// stable variate.
func (s *Stable) draw(v, w float64) float64 {
	a, b := s.Alpha, s.Beta
	if a == 1 {
		half := math.Pi / 2
		x := ((half+b*v)*math.Tan(v) - b*math.Log(half*w*math.Cos(v)/(half+b*v))) / half
		return s.Scale*x + 2/math.Pi*b*s.Scale*math.Log(s.Scale) + s.Drift
	}
	zeta := -b * math.Tan(math.Pi*a/2)
	xi := math.Atan(-zeta) / a
	x := math.Pow(1+zeta*zeta, 1/(2*a)) *
		math.Sin(a*(v+xi)) / math.Pow(math.Cos(v), 1/a) *
		math.Pow(math.Cos(v-a*(v+xi))/w, (1-a)/a)
	return s.Scale*x + s.Drift
}
