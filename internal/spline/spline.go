// Package spline simulates generalized Lévy processes (L-splines): the
// response of an operator to an impulsive white noise, evaluated either in
// continuous time through the Green's function or on a grid through the
// discrete B-spline and the inverse filter.
package spline

import (
	"math"
	"math/rand/v2"

	"github.com/san-kum/lspline/internal/impulse"
	"github.com/san-kum/lspline/internal/law"
	"github.com/san-kum/lspline/internal/operator"
	"github.com/san-kum/lspline/internal/stoch"
	"github.com/sirupsen/logrus"
)

// Process holds one operator, one jump law and the latest realization of
// the noise. It is not safe for concurrent use.
type Process struct {
	op       *operator.Operator
	law      law.Law
	rng      *rand.Rand
	rate     float64
	impulses stoch.Realization
}

// New returns a process with no rate and an empty realization. A nil rng
// draws from the process-wide source.
func New(op *operator.Operator, l law.Law, rng *rand.Rand) *Process {
	return &Process{op: op, law: l, rng: rng}
}

func (p *Process) Operator() *operator.Operator { return p.op }
func (p *Process) Law() law.Law                 { return p.law }
func (p *Process) Rate() float64                { return p.rate }

// SetRate records the Poisson intensity used by Sample.
func (p *Process) SetRate(lambda float64) error {
	if math.IsNaN(lambda) || math.IsInf(lambda, 0) || lambda <= 0 {
		return stoch.Domain("spline.SetRate", "lambda", lambda, "must be a positive finite intensity")
	}
	p.rate = lambda
	return nil
}

// Sample draws a new realization on [0, horizon) and discards the previous
// one. On error the previous realization is kept.
func (p *Process) Sample(horizon float64) error {
	r, err := impulse.Generate(p.rng, p.law, p.rate, horizon)
	if err != nil {
		return err
	}
	p.impulses = r
	return nil
}

// Impulses returns a copy of the current realization.
func (p *Process) Impulses() stoch.Realization {
	return p.impulses.Clone()
}

// SetImpulses replaces the realization with a caller-supplied one.
func (p *Process) SetImpulses(r stoch.Realization) {
	p.impulses = r.Clone()
}

// Eval returns Σ jump·G(t - knot) over the current realization.
func (p *Process) Eval(t float64) float64 {
	val := 0.0
	for _, imp := range p.impulses {
		val += imp.Jump * p.op.Green(t-imp.Knot)
	}
	return val
}

func checkGrid(op string, horizon, step float64) error {
	if math.IsNaN(step) || math.IsInf(step, 0) || step <= 0 {
		return stoch.Domain(op, "step", step, "must be positive and finite")
	}
	if math.IsNaN(horizon) || math.IsInf(horizon, 0) || horizon < 0 {
		return stoch.Domain(op, "horizon", horizon, "must be finite and non-negative")
	}
	return nil
}

// EvalOnGrid evaluates Eval at 0, step, 2·step, ... below horizon.
func (p *Process) EvalOnGrid(horizon, step float64) (stoch.Series, error) {
	const op = "spline.EvalOnGrid"
	if err := checkGrid(op, horizon, step); err != nil {
		return stoch.Series{}, err
	}
	grid := stoch.Arange(0, horizon, step)
	if len(grid) == 0 {
		return stoch.Series{}, &stoch.StateError{Op: op, Reason: "horizon and step produce no grid points"}
	}
	values := make([]float64, len(grid))
	for i, t := range grid {
		values[i] = p.Eval(t)
	}
	return stoch.Series{Times: grid, Values: values}, nil
}

// Increments discretizes the operator with step and returns the increment
// process on the grid 0, step, ..., horizon: each impulse adds its weighted
// B-spline on the degree+1 grid points starting at floor(knot/step).
func (p *Process) Increments(horizon, step float64) (stoch.Series, error) {
	if err := checkGrid("spline.Increments", horizon, step); err != nil {
		return stoch.Series{}, err
	}
	d, err := p.op.Discretize(step)
	if err != nil {
		return stoch.Series{}, err
	}
	return p.increments(d, horizon)
}

func (p *Process) increments(d *operator.Discrete, horizon float64) (stoch.Series, error) {
	const op = "spline.Increments"
	step := d.Step()
	grid := stoch.Arange(0, horizon+step, step)
	if len(grid) == 0 {
		return stoch.Series{}, &stoch.StateError{Op: op, Reason: "horizon and step produce no grid points"}
	}

	u := make([]float64, len(grid))
	width := d.Degree() + 1
	for _, imp := range p.impulses {
		first := int(math.Floor(imp.Knot / step))
		lo := max(0, first)
		hi := min(len(grid), first+width)
		for j := lo; j < hi; j++ {
			b, err := d.BSpline(grid[j] - imp.Knot)
			if err != nil {
				return stoch.Series{}, err
			}
			u[j] += imp.Jump * b
		}
	}
	return stoch.Series{Times: grid, Values: u}, nil
}

// GridPath samples the process on the grid 0, step, ..., horizon by
// filtering the increment process with the discrete inverse operator.
// The operator itself is left untouched.
func (p *Process) GridPath(horizon, step float64) (stoch.Series, error) {
	if err := checkGrid("spline.GridPath", horizon, step); err != nil {
		return stoch.Series{}, err
	}
	d, err := p.op.Discretize(step)
	if err != nil {
		return stoch.Series{}, err
	}
	return p.GridPathWith(d, horizon)
}

// GridPathWith is GridPath with a discretization computed by the caller,
// which must come from this process's operator.
func (p *Process) GridPathWith(d *operator.Discrete, horizon float64) (stoch.Series, error) {
	const op = "spline.GridPath"
	if d == nil || d.Operator() == nil {
		return stoch.Series{}, stoch.ErrNotDiscretized
	}
	if d.Operator() != p.op {
		return stoch.Series{}, &stoch.StateError{Op: op, Reason: "discrete operator belongs to another operator"}
	}
	if err := checkGrid(op, horizon, d.Step()); err != nil {
		return stoch.Series{}, err
	}
	if !d.Stable() {
		logrus.Debugf("spline: inverse filter for step %g has poles on or outside the unit circle", d.Step())
	}

	inc, err := p.increments(d, horizon)
	if err != nil {
		return stoch.Series{}, err
	}
	path, err := d.Inverse(inc.Values)
	if err != nil {
		return stoch.Series{}, err
	}
	return stoch.Series{Times: inc.Times, Values: path}, nil
}
