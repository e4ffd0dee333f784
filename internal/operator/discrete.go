package operator

import (
	"math"
	"math/cmplx"

	"github.com/san-kum/lspline/internal/stoch"
)

// Discrete is the operator discretized with step h: the digital filter
//
//	Π_α (1 - exp(α·h)·X)
//
// over the roots α of P. The zero value is not discretized and its methods
// fail with stoch.ErrNotDiscretized.
type Discrete struct {
	op      *Operator
	step    float64
	taps    []complex128
	support float64
	norm    float64
}

// Discretize returns the discrete operator for step h. The receiver is not
// modified, so one operator can serve several steps at once.
func (o *Operator) Discretize(h float64) (*Discrete, error) {
	if math.IsNaN(h) || math.IsInf(h, 0) || h <= 0 {
		return nil, stoch.Domain("operator.Discretize", "h", h, "step must be positive and finite")
	}
	z := make([]complex128, len(o.roots))
	for i, alpha := range o.roots {
		z[i] = cmplx.Exp(alpha * complex(h, 0))
	}
	taps, err := o.algebra.ExpandLinear(z)
	if err != nil {
		return nil, stoch.Domain("operator.Discretize", "h", h, "filter expansion failed: "+err.Error())
	}
	return &Discrete{
		op:      o,
		step:    h,
		taps:    taps,
		support: float64(o.degree) * h,
		norm:    1,
	}, nil
}

func (d *Discrete) ready() error {
	if d == nil || d.op == nil || len(d.taps) == 0 {
		return stoch.ErrNotDiscretized
	}
	return nil
}

func (d *Discrete) Operator() *Operator { return d.op }
func (d *Discrete) Step() float64       { return d.step }

// Support is the width degree·h of the discrete B-spline.
func (d *Discrete) Support() float64 { return d.support }

func (d *Discrete) Degree() int { return len(d.taps) - 1 }

// Taps returns the filter coefficients, lowest degree first.
func (d *Discrete) Taps() []complex128 { return append([]complex128(nil), d.taps...) }

// Poles returns the poles exp(α·h) of the inverse filter.
func (d *Discrete) Poles() []complex128 {
	if d.op == nil {
		return nil
	}
	out := make([]complex128, len(d.op.roots))
	for i, alpha := range d.op.roots {
		out[i] = cmplx.Exp(alpha * complex(d.step, 0))
	}
	return out
}

// Stable reports whether every pole of the inverse filter lies strictly
// inside the unit circle. Inverse does not check this.
func (d *Discrete) Stable() bool {
	for _, z := range d.Poles() {
		if cmplx.Abs(z) >= 1 {
			return false
		}
	}
	return true
}

// BSpline evaluates the discrete operator applied to the Green's function,
// Σ_i tap_i·G(x - i·h), a function supported on [0, degree·h].
func (d *Discrete) BSpline(x float64) (float64, error) {
	if err := d.ready(); err != nil {
		return 0, err
	}
	var acc complex128
	for i, tap := range d.taps {
		acc += tap * d.op.response(x-float64(i)*d.step)
	}
	return real(acc) / d.norm, nil
}

// Inverse runs the causal recursion
//
//	y[k] = u[k] - Σ_{i=1..degree} Re(tap_i)·y[k-i]
//
// from a zero history and returns len(u) outputs.
func (d *Discrete) Inverse(u []float64) ([]float64, error) {
	if err := d.ready(); err != nil {
		return nil, err
	}
	deg := len(d.taps) - 1
	y := make([]float64, deg+len(u))
	for k := deg; k < len(y); k++ {
		acc := u[k-deg]
		for i := 1; i <= deg; i++ {
			acc -= real(d.taps[i]) * y[k-i]
		}
		y[k] = acc
	}
	return y[deg:], nil
}
