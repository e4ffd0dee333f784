package config

import (
	"fmt"
	"math"
	"os"

	"github.com/san-kum/lspline/internal/law"
	"github.com/san-kum/lspline/internal/operator"
	"github.com/san-kum/lspline/internal/poly"
	"gopkg.in/yaml.v3"
)

const (
	DefaultRate    = 2.0
	DefaultHorizon = 10.0
	DefaultStep    = 0.01
	DefaultAlgebra = "big"
)

type Config struct {
	Operator  OperatorConfig `yaml:"operator"`
	Law       LawConfig      `yaml:"law"`
	Rate      float64        `yaml:"rate"`
	Horizon   float64        `yaml:"horizon"`
	Step      float64        `yaml:"step"`
	Seed      int64          `yaml:"seed"`
	Algebra   string         `yaml:"algebra"`
	Precision uint           `yaml:"precision,omitempty"`
}

// OperatorConfig holds P and Q highest degree first.
type OperatorConfig struct {
	P       []float64 `yaml:"p"`
	Q       []float64 `yaml:"q,omitempty"`
	PoleTol float64   `yaml:"pole_tol,omitempty"`
}

// LawConfig names a jump law and carries the parameters of every variant;
// only those of Name are read.
type LawConfig struct {
	Name     string     `yaml:"name"`
	Mean     float64    `yaml:"mean,omitempty"`
	Variance float64    `yaml:"variance,omitempty"`
	Alpha    float64    `yaml:"alpha,omitempty"`
	Beta     float64    `yaml:"beta,omitempty"`
	Drift    float64    `yaml:"drift,omitempty"`
	Scale    float64    `yaml:"scale,omitempty"`
	Location float64    `yaml:"location,omitempty"`
	Shape    float64    `yaml:"shape,omitempty"`
	Rate     float64    `yaml:"rate,omitempty"`
	Base     *LawConfig `yaml:"base,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Operator: OperatorConfig{P: []float64{1, 1}},
		Law:      LawConfig{Name: "gaussian", Variance: 1},
		Rate:     DefaultRate,
		Horizon:  DefaultHorizon,
		Step:     DefaultStep,
		Algebra:  DefaultAlgebra,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills the settings a file left out. Zero rate, horizon and
// step count as missing.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if len(c.Operator.P) == 0 {
		c.Operator.P = def.Operator.P
	}
	if c.Law.Name == "" {
		c.Law = def.Law
	}
	if c.Rate == 0 {
		c.Rate = def.Rate
	}
	if c.Horizon == 0 {
		c.Horizon = def.Horizon
	}
	if c.Step == 0 {
		c.Step = def.Step
	}
	if c.Algebra == "" {
		c.Algebra = def.Algebra
	}
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the scalar settings. Operator and law parameters are
// checked by their constructors in BuildOperator and BuildLaw.
func (c *Config) Validate() error {
	if len(c.Operator.P) == 0 {
		return fmt.Errorf("operator.p is empty")
	}
	if !(c.Rate > 0) || math.IsInf(c.Rate, 0) {
		return fmt.Errorf("rate must be positive, got %g", c.Rate)
	}
	if !(c.Horizon >= 0) || math.IsInf(c.Horizon, 0) {
		return fmt.Errorf("horizon must be non-negative, got %g", c.Horizon)
	}
	if !(c.Step > 0) || math.IsInf(c.Step, 0) {
		return fmt.Errorf("step must be positive, got %g", c.Step)
	}
	if _, err := c.algebra(); err != nil {
		return err
	}
	if _, err := law.ParseKind(c.Law.Name); err != nil {
		return err
	}
	return nil
}

func (c *Config) algebra() (poly.Algebra, error) {
	switch c.Algebra {
	case "", "big":
		prec := c.Precision
		if prec == 0 {
			prec = poly.DefaultPrecision
		}
		return poly.BigFloat{Prec: prec}, nil
	case "float":
		return poly.Float{}, nil
	default:
		return nil, fmt.Errorf("unknown algebra %q (want float or big)", c.Algebra)
	}
}

// BuildOperator constructs the operator with the configured algebra.
func (c *Config) BuildOperator() (*operator.Operator, error) {
	alg, err := c.algebra()
	if err != nil {
		return nil, err
	}
	opts := []operator.Option{operator.WithAlgebra(alg)}
	if c.Operator.PoleTol > 0 {
		opts = append(opts, operator.WithPoleTolerance(c.Operator.PoleTol))
	}
	return operator.New(c.Operator.P, c.Operator.Q, opts...)
}

func (c *Config) BuildLaw() (law.Law, error) {
	return c.Law.Build()
}

// Build constructs the configured law. A compound Poisson law needs a Base.
func (lc *LawConfig) Build() (law.Law, error) {
	kind, err := law.ParseKind(lc.Name)
	if err != nil {
		return nil, err
	}
	switch kind {
	case law.KindGaussian:
		return law.NewGaussian(lc.Mean, lc.Variance)
	case law.KindStable:
		return law.NewStable(lc.Alpha, lc.Beta, lc.Drift, lc.Scale)
	case law.KindLaplace:
		return law.NewLaplace(lc.Location, lc.Scale)
	case law.KindGamma:
		return law.NewGamma(lc.Shape, lc.Rate)
	case law.KindCompoundPoisson:
		if lc.Base == nil {
			return nil, fmt.Errorf("compound_poisson law needs a base law")
		}
		base, err := lc.Base.Build()
		if err != nil {
			return nil, fmt.Errorf("base law: %w", err)
		}
		return law.NewCompoundPoisson(base, lc.Rate)
	}
	return nil, fmt.Errorf("unsupported law %s", kind)
}
