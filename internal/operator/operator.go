// Package operator represents rational differential operators Q(D)/P(D),
// their Green's functions and their discretizations on a uniform grid.
package operator

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/san-kum/lspline/internal/poly"
	"github.com/san-kum/lspline/internal/stoch"
	"github.com/sirupsen/logrus"
)

// Component is one partial fraction of the Green's function:
//
//	Coef · x^(Multiplicity-1)/(Multiplicity-1)! · exp(Pole·x) · H(x, Pole)
type Component struct {
	Coef         complex128
	Multiplicity int
	Pole         complex128
}

// Causal reports whether the component lives on x ≥ 0. Poles with a
// positive real part are anticausal and live on x < 0 with a sign flip.
func (c Component) Causal() bool {
	return real(c.Pole) <= 0
}

// Eval returns the complex contribution of the component at x.
func (c Component) Eval(x float64) complex128 {
	h := heaviside(x, c.Pole)
	if h == 0 {
		return 0
	}
	m := c.Multiplicity
	scale := math.Pow(x, float64(m-1)) / math.Gamma(float64(m))
	return c.Coef * complex(scale*h, 0) * cmplx.Exp(c.Pole*complex(x, 0))
}

func heaviside(x float64, pole complex128) float64 {
	if real(pole) <= 0 {
		if x >= 0 {
			return 1
		}
		return 0
	}
	if x < 0 {
		return -1
	}
	return 0
}

// Option configures an Operator.
type Option func(*Operator)

// WithAlgebra selects the polynomial backend used by Discretize.
func WithAlgebra(a poly.Algebra) Option {
	return func(o *Operator) {
		if a != nil {
			o.algebra = a
		}
	}
}

// WithPoleTolerance sets the distance under which roots merge into one
// repeated pole.
func WithPoleTolerance(tol float64) Option {
	return func(o *Operator) {
		if tol > 0 {
			o.poleTol = tol
		}
	}
}

// imagTol bounds the imaginary residue of the summed impulse response
// before a warning is raised.
const imagTol = 1e-8

var probePoints = []float64{-1, -0.5, -0.1, 0.1, 0.5, 1}

// Operator is an immutable rational operator with characteristic polynomial
// P and numerator Q. Its Green's function is the inverse Laplace transform
// of Q(s)/P(s).
type Operator struct {
	p, q       []float64
	degree     int
	groups     []poly.PoleGroup
	roots      []complex128
	components []Component
	direct     []float64
	algebra    poly.Algebra
	poleTol    float64
	warnings   []stoch.Warning
}

// New builds the operator from characteristic polynomial p and numerator q,
// both highest degree first. A nil or empty q means q = 1.
func New(p, q []float64, opts ...Option) (*Operator, error) {
	const op = "operator.New"
	if len(p) == 0 {
		return nil, stoch.Domain(op, "P", 0, "polynomial is empty")
	}
	if p[0] == 0 {
		return nil, stoch.Domain(op, "P[0]", p[0], "leading coefficient must be non-zero")
	}
	if len(q) == 0 {
		q = []float64{1}
	}
	if !poly.IsFinite(p) || !poly.IsFinite(q) {
		return nil, stoch.Domain(op, "coefficients", math.NaN(), "must be finite")
	}

	o := &Operator{
		p:       append([]float64(nil), p...),
		q:       append([]float64(nil), q...),
		degree:  len(p) - 1,
		algebra: poly.Precise,
		poleTol: poly.DefaultPoleTol,
	}
	for _, opt := range opts {
		opt(o)
	}

	dec, groups, err := poly.Residue(o.q, o.p, o.poleTol)
	if err != nil {
		return nil, fmt.Errorf("%s: decomposition: %w", op, err)
	}
	o.groups = groups
	o.roots = poly.Poles(groups)
	o.direct = dec.Direct
	o.components = make([]Component, len(dec.Terms))
	for i, t := range dec.Terms {
		o.components[i] = Component{Coef: t.Coef, Multiplicity: t.Order, Pole: t.Pole}
	}

	o.diagnose()
	logrus.Debugf("operator: P=%v Q=%v roots=%v components=%d", o.p, o.q, o.roots, len(o.components))
	return o, nil
}

func (o *Operator) diagnose() {
	for _, d := range o.direct {
		if d != 0 {
			o.warn("decompose", fmt.Sprintf("deg Q >= deg P: polynomial part %v of Q/P is dropped from the Green's function", o.direct))
			break
		}
	}
	for _, x := range probePoints {
		v := o.response(x)
		if math.Abs(imag(v)) > imagTol*math.Max(1, math.Abs(real(v))) {
			o.warn("green", fmt.Sprintf("impulse response has imaginary part %.3g at x=%g; poles may lack conjugate partners", imag(v), x))
			break
		}
	}
}

func (o *Operator) warn(op, msg string) {
	w := stoch.Warning{Op: "operator." + op, Message: msg}
	o.warnings = append(o.warnings, w)
	logrus.Warn(w.String())
}

func (o *Operator) Degree() int { return o.degree }

func (o *Operator) P() []float64 { return append([]float64(nil), o.p...) }
func (o *Operator) Q() []float64 { return append([]float64(nil), o.q...) }

// Roots returns the root multiset of P, repeated roots merged to their mean.
func (o *Operator) Roots() []complex128 { return append([]complex128(nil), o.roots...) }

// PoleGroups returns the distinct poles with their multiplicities.
func (o *Operator) PoleGroups() []poly.PoleGroup { return append([]poly.PoleGroup(nil), o.groups...) }

// Components returns the partial-fraction decomposition of Q/P.
func (o *Operator) Components() []Component { return append([]Component(nil), o.components...) }

// Direct returns the polynomial part of Q/P, nil when Q/P is proper.
func (o *Operator) Direct() []float64 { return append([]float64(nil), o.direct...) }

// Warnings returns the numerical diagnostics raised at construction.
func (o *Operator) Warnings() []stoch.Warning { return append([]stoch.Warning(nil), o.warnings...) }

func (o *Operator) Algebra() poly.Algebra { return o.algebra }

func (o *Operator) response(x float64) complex128 {
	var acc complex128
	for _, c := range o.components {
		acc += c.Eval(x)
	}
	return acc
}

// Green evaluates the Green's function (impulse response) at x.
func (o *Operator) Green(x float64) float64 {
	return real(o.response(x))
}

func (o *Operator) String() string {
	return fmt.Sprintf("L: P=%v Q=%v degree=%d", o.p, o.q, o.degree)
}
