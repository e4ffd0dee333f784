// Package law provides the jump laws of the impulsive white noise.
//
// A law is one of a closed set of variants: [Gaussian], [Stable], [Laplace],
// [Gamma] and [CompoundPoisson]. Each supports two operations:
//
//   - Rescale(λ): adapt the parameters to a Poisson intensity λ so that the
//     compound process matches the target infinitely divisible law
//   - Sample(rng, n): draw n independent jumps
//
// Rescale mutates the receiver. Use Clone to keep an unscaled copy.
package law

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/san-kum/lspline/internal/stoch"
)

// Kind tags a law variant.
type Kind int

const (
	KindGaussian Kind = iota
	KindStable
	KindLaplace
	KindGamma
	KindCompoundPoisson
)

var kindNames = [...]string{
	KindGaussian:        "gaussian",
	KindStable:          "alpha_stable",
	KindLaplace:         "laplace",
	KindGamma:           "gamma",
	KindCompoundPoisson: "compound_poisson",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Kinds lists every variant.
func Kinds() []Kind {
	return []Kind{KindGaussian, KindStable, KindLaplace, KindGamma, KindCompoundPoisson}
}

// ParseKind maps a configuration name onto a Kind. "stable" is accepted as
// an alias of "alpha_stable".
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "stable" {
		return KindStable, nil
	}
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown law: %q", name)
}

// Law is a jump distribution of the impulsive noise.
type Law interface {
	Kind() Kind
	// Rescale adapts the parameters to the Poisson intensity lambda.
	Rescale(lambda float64) error
	// Sample draws n independent jumps. A nil rng uses the process-wide source.
	Sample(rng *rand.Rand, n int) ([]float64, error)
	Clone() Law
	String() string

	sealed()
}

var (
	_ Law = (*Gaussian)(nil)
	_ Law = (*Stable)(nil)
	_ Law = (*Laplace)(nil)
	_ Law = (*Gamma)(nil)
	_ Law = (*CompoundPoisson)(nil)
)

func checkRate(op string, lambda float64) error {
	if math.IsNaN(lambda) || math.IsInf(lambda, 0) || lambda <= 0 {
		return stoch.Domain(op, "lambda", lambda, "must be a positive finite rate")
	}
	return nil
}

func checkCount(op string, n int) error {
	if n < 0 {
		return stoch.Domain(op, "n", float64(n), "must be non-negative")
	}
	return nil
}

func checkFinite(op, param string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return stoch.Domain(op, param, v, "must be finite")
	}
	return nil
}

func checkPositive(op, param string, v float64) error {
	if err := checkFinite(op, param, v); err != nil {
		return err
	}
	if v <= 0 {
		return stoch.Domain(op, param, v, "must be positive")
	}
	return nil
}
