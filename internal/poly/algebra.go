package poly

import (
	"errors"
	"math/big"
	"math/cmplx"
)

// ErrNonFinite indicates a factor that cannot be expanded.
var ErrNonFinite = errors.New("poly: non-finite factor")

// Algebra expands products of linear factors. Backends trade speed for
// precision; clustered factors lose digits to cancellation in float64.
type Algebra interface {
	// ExpandLinear returns the coefficients of Π_i (1 - z_i·X), lowest
	// degree first. The result always has len(z)+1 entries.
	ExpandLinear(z []complex128) ([]complex128, error)
	Name() string
}

var (
	_ Algebra = Float{}
	_ Algebra = BigFloat{}
)

// DefaultPrecision is the mantissa size in bits of the default backend.
const DefaultPrecision = 256

// Precise is the default backend.
var Precise Algebra = BigFloat{Prec: DefaultPrecision}

// Float expands in complex128.
type Float struct{}

func (Float) Name() string { return "float" }

func (Float) ExpandLinear(z []complex128) ([]complex128, error) {
	out := make([]complex128, 1, len(z)+1)
	out[0] = 1
	for _, zi := range z {
		if cmplx.IsNaN(zi) || cmplx.IsInf(zi) {
			return nil, ErrNonFinite
		}
		out = append(out, 0)
		for k := len(out) - 1; k >= 1; k-- {
			out[k] -= zi * out[k-1]
		}
	}
	return out, nil
}

// BigFloat expands with math/big floats of Prec bits and rounds the
// result to complex128 once at the end.
type BigFloat struct {
	Prec uint
}

func (b BigFloat) Name() string { return "big" }

type bigComplex struct {
	re, im *big.Float
}

func (b BigFloat) newFloat(v float64) *big.Float {
	return new(big.Float).SetPrec(b.prec()).SetFloat64(v)
}

func (b BigFloat) prec() uint {
	if b.Prec == 0 {
		return DefaultPrecision
	}
	return b.Prec
}

func (b BigFloat) ExpandLinear(z []complex128) ([]complex128, error) {
	coeffs := []bigComplex{{re: b.newFloat(1), im: b.newFloat(0)}}
	for _, zi := range z {
		if cmplx.IsNaN(zi) || cmplx.IsInf(zi) {
			return nil, ErrNonFinite
		}
		zr, zim := b.newFloat(real(zi)), b.newFloat(imag(zi))
		coeffs = append(coeffs, bigComplex{re: b.newFloat(0), im: b.newFloat(0)})
		for k := len(coeffs) - 1; k >= 1; k-- {
			prev := coeffs[k-1]
			// (zr + i·zim)(pr + i·pim)
			re := new(big.Float).SetPrec(b.prec()).Mul(zr, prev.re)
			re.Sub(re, new(big.Float).SetPrec(b.prec()).Mul(zim, prev.im))
			im := new(big.Float).SetPrec(b.prec()).Mul(zr, prev.im)
			im.Add(im, new(big.Float).SetPrec(b.prec()).Mul(zim, prev.re))
			coeffs[k].re.Sub(coeffs[k].re, re)
			coeffs[k].im.Sub(coeffs[k].im, im)
		}
	}

	out := make([]complex128, len(coeffs))
	for k, c := range coeffs {
		re, _ := c.re.Float64()
		im, _ := c.im.Float64()
		out[k] = complex(re, im)
	}
	return out, nil
}
