// Package experiment runs one configured simulation: it builds the operator
// and the jump law, draws the impulses and samples the resulting path.
package experiment

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/san-kum/lspline/internal/analysis"
	"github.com/san-kum/lspline/internal/config"
	"github.com/san-kum/lspline/internal/operator"
	"github.com/san-kum/lspline/internal/spline"
	"github.com/san-kum/lspline/internal/stoch"
	"github.com/sirupsen/logrus"
)

// Result is the outcome of one run.
type Result struct {
	Impulses stoch.Realization `json:"impulses"`
	// Path is the filtered grid path on 0, step, ..., horizon.
	Path stoch.Series `json:"path"`
	// Continuous is the Green's function sum on 0, step, ... below horizon.
	Continuous stoch.Series     `json:"continuous"`
	Summary    analysis.Summary `json:"summary"`
	Warnings   []stoch.Warning  `json:"warnings,omitempty"`
}

type Experiment struct {
	cfg  config.Config
	op   *operator.Operator
	disc *operator.Discrete
	proc *spline.Process
	rng  *rand.Rand
}

// New validates cfg and builds the process. Runs are reproducible for a
// given seed.
func New(cfg *config.Config) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	op, err := cfg.BuildOperator()
	if err != nil {
		return nil, fmt.Errorf("build operator: %w", err)
	}
	l, err := cfg.BuildLaw()
	if err != nil {
		return nil, fmt.Errorf("build law: %w", err)
	}
	disc, err := op.Discretize(cfg.Step)
	if err != nil {
		return nil, fmt.Errorf("discretize: %w", err)
	}

	seed := uint64(cfg.Seed)
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	proc := spline.New(op, l, rng)
	if err := proc.SetRate(cfg.Rate); err != nil {
		return nil, err
	}
	return &Experiment{cfg: *cfg, op: op, disc: disc, proc: proc, rng: rng}, nil
}

func (e *Experiment) Config() config.Config        { return e.cfg }
func (e *Experiment) Operator() *operator.Operator { return e.op }
func (e *Experiment) Discrete() *operator.Discrete { return e.disc }
func (e *Experiment) Process() *spline.Process     { return e.proc }

// SetRate changes the intensity used by the next Run.
func (e *Experiment) SetRate(lambda float64) error {
	if err := e.proc.SetRate(lambda); err != nil {
		return err
	}
	e.cfg.Rate = lambda
	return nil
}

// Run draws a fresh realization and samples it. Each call advances the
// generator, so consecutive runs differ.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := e.proc.Sample(e.cfg.Horizon); err != nil {
		return nil, fmt.Errorf("sample: %w", err)
	}

	path, err := e.proc.GridPathWith(e.disc, e.cfg.Horizon)
	if err != nil {
		return nil, fmt.Errorf("grid path: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{
		Impulses: e.proc.Impulses(),
		Path:     path,
		Summary:  analysis.Summarize(path),
		Warnings: e.op.Warnings(),
	}
	if e.cfg.Horizon > 0 {
		cont, err := e.proc.EvalOnGrid(e.cfg.Horizon, e.cfg.Step)
		if err != nil {
			return nil, fmt.Errorf("continuous path: %w", err)
		}
		res.Continuous = cont
	}
	if !path.IsValid() {
		logrus.Warnf("experiment: grid path contains non-finite values (inverse filter stable=%v)", e.disc.Stable())
	}
	logrus.Infof("experiment: %d impulses, %s", len(res.Impulses), res.Summary)
	return res, nil
}
