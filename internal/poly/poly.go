// Package poly implements the polynomial algebra behind the operator:
// roots, Taylor shifts, truncated power-series division, partial-fraction
// decomposition and the expansion of products of linear factors.
//
// Coefficient slices passed in by callers are ordered highest degree first,
// like numpy. Functions that return Taylor or power-series coefficients say
// so and order them lowest degree first.
package poly

import (
	"errors"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrDegenerate indicates an empty polynomial or a zero leading coefficient.
	ErrDegenerate = errors.New("poly: zero leading coefficient")

	// ErrNoConvergence indicates the companion eigenvalue solver failed.
	ErrNoConvergence = errors.New("poly: eigenvalue decomposition did not converge")
)

const cleanTol = 1e-13

// Complex converts real coefficients to complex ones.
func Complex(p []float64) []complex128 {
	out := make([]complex128, len(p))
	for i, v := range p {
		out[i] = complex(v, 0)
	}
	return out
}

// Eval evaluates p at x with Horner's rule.
func Eval(p []complex128, x complex128) complex128 {
	var acc complex128
	for _, c := range p {
		acc = acc*x + c
	}
	return acc
}

// Mul returns the product of a and b. Both orderings work as long as a and
// b use the same one.
func Mul(a, b []complex128) []complex128 {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	out := make([]complex128, len(a)+len(b)-1)
	for i, x := range a {
		for j, y := range b {
			out[i+j] += x * y
		}
	}
	return out
}

// Shift returns the Taylor coefficients of p around x0, lowest degree
// first: p(x0+u) = Σ out[k]·u^k.
func Shift(p []complex128, x0 complex128) []complex128 {
	b := make([]complex128, len(p))
	copy(b, p)
	n := len(b) - 1
	for i := 0; i < n; i++ {
		for j := 1; j <= n-i; j++ {
			b[j] += x0 * b[j-1]
		}
	}
	out := make([]complex128, len(b))
	for k := range b {
		out[k] = b[n-k]
	}
	return out
}

// SeriesDiv returns the first n coefficients of the power series num/den.
// Both inputs are lowest degree first and den[0] must be non-zero.
func SeriesDiv(num, den []complex128, n int) []complex128 {
	out := make([]complex128, n)
	for k := 0; k < n; k++ {
		var acc complex128
		if k < len(num) {
			acc = num[k]
		}
		for j := 1; j <= k && j < len(den); j++ {
			acc -= den[j] * out[k-j]
		}
		out[k] = acc / den[0]
	}
	return out
}

// Div divides num by den and returns quotient and remainder.
func Div(num, den []float64) (quot, rem []float64, err error) {
	if len(den) == 0 || den[0] == 0 {
		return nil, nil, ErrDegenerate
	}
	if len(num) < len(den) {
		rem = make([]float64, len(num))
		copy(rem, num)
		return []float64{0}, rem, nil
	}
	work := make([]float64, len(num))
	copy(work, num)
	quot = make([]float64, len(num)-len(den)+1)
	for i := range quot {
		coef := work[i] / den[0]
		quot[i] = coef
		for j := range den {
			work[i+j] -= coef * den[j]
		}
	}
	rem = work[len(quot):]
	return quot, rem, nil
}

// Roots returns the roots of p as the eigenvalues of its companion matrix.
func Roots(p []float64) ([]complex128, error) {
	if len(p) == 0 || p[0] == 0 {
		return nil, ErrDegenerate
	}
	n := len(p) - 1
	switch n {
	case 0:
		return []complex128{}, nil
	case 1:
		return []complex128{complex(-p[1]/p[0], 0)}, nil
	}

	companion := mat.NewDense(n, n, nil)
	for j := 0; j < n; j++ {
		companion.Set(0, j, -p[j+1]/p[0])
	}
	for i := 1; i < n; i++ {
		companion.Set(i, i-1, 1)
	}

	var eig mat.Eigen
	if ok := eig.Factorize(companion, mat.EigenNone); !ok {
		return nil, ErrNoConvergence
	}
	roots := eig.Values(nil)
	for i, r := range roots {
		if cmplx.IsNaN(r) || cmplx.IsInf(r) {
			return nil, ErrNoConvergence
		}
		// Rounding noise must not push an imaginary root across the
		// stability boundary.
		re, im := real(r), imag(r)
		if math.Abs(re) <= cleanTol*cmplx.Abs(r) {
			re = 0
		}
		if math.Abs(im) <= cleanTol*cmplx.Abs(r) {
			im = 0
		}
		roots[i] = complex(re, im)
	}
	return roots, nil
}

// IsFinite reports whether every coefficient is a finite number.
func IsFinite(p []float64) bool {
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
