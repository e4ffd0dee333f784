package poly

import (
	"math"
	"math/cmplx"
	"sort"
)

// DefaultPoleTol is the tolerance under which two roots are treated as one
// repeated pole. It is relative to max(1, |pole|).
const DefaultPoleTol = 1e-3

// Term is one partial fraction Coef / (s - Pole)^Order.
type Term struct {
	Coef  complex128
	Order int
	Pole  complex128
}

// Decomposition is the partial-fraction expansion of b/a:
//
//	b(s)/a(s) = Σ Coef/(s-Pole)^Order + Direct(s)
type Decomposition struct {
	Terms  []Term
	Direct []float64
}

// PoleGroup is a cluster of numerically coincident roots.
type PoleGroup struct {
	Pole         complex128
	Multiplicity int
}

// Poles expands the groups back into a root multiset.
func Poles(groups []PoleGroup) []complex128 {
	out := make([]complex128, 0, len(groups))
	for _, g := range groups {
		for k := 0; k < g.Multiplicity; k++ {
			out = append(out, g.Pole)
		}
	}
	return out
}

// GroupPoles clusters roots lying within tol·max(1,|r|) of a group's running
// centre. Each group's pole is the mean of its members. Groups are ordered by
// modulus, then real part, then imaginary part.
func GroupPoles(roots []complex128, tol float64) []PoleGroup {
	type cluster struct {
		sum complex128
		n   int
	}
	clusters := make([]cluster, 0, len(roots))
	for _, r := range roots {
		merged := false
		for i := range clusters {
			centre := clusters[i].sum / complex(float64(clusters[i].n), 0)
			scale := cmplx.Abs(centre)
			if scale < 1 {
				scale = 1
			}
			if cmplx.Abs(r-centre) <= tol*scale {
				clusters[i].sum += r
				clusters[i].n++
				merged = true
				break
			}
		}
		if !merged {
			clusters = append(clusters, cluster{sum: r, n: 1})
		}
	}

	groups := make([]PoleGroup, len(clusters))
	for i, c := range clusters {
		p := c.sum / complex(float64(c.n), 0)
		// A repeated real root comes back from the eigen solver as a
		// conjugate spray; its mean belongs on the real axis.
		if c.n > 1 && math.Abs(imag(p)) <= tol*maxf(1, cmplx.Abs(p)) {
			p = complex(real(p), 0)
		}
		groups[i] = PoleGroup{Pole: p, Multiplicity: c.n}
	}
	sort.SliceStable(groups, func(i, j int) bool {
		pi, pj := groups[i].Pole, groups[j].Pole
		ai, aj := cmplx.Abs(pi), cmplx.Abs(pj)
		if ai != aj {
			return ai < aj
		}
		if real(pi) != real(pj) {
			return real(pi) < real(pj)
		}
		return imag(pi) < imag(pj)
	})
	return groups
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Residue computes the partial-fraction expansion of b/a. Roots of a closer
// than tol are merged into one pole of higher order. For a pole p of order m
// the coefficients follow from the Taylor expansion of (s-p)^m b(s)/a(s)
// around p, computed by shifting numerator and reduced denominator to p and
// dividing the resulting power series.
//
// Terms are ordered group by group (see GroupPoles) with orders 1..m inside
// each group.
func Residue(b, a []float64, tol float64) (Decomposition, []PoleGroup, error) {
	if len(a) == 0 || a[0] == 0 {
		return Decomposition{}, nil, ErrDegenerate
	}
	roots, err := Roots(a)
	if err != nil {
		return Decomposition{}, nil, err
	}
	groups := GroupPoles(roots, tol)

	var direct []float64
	if len(b) >= len(a) {
		quot, _, err := Div(b, a)
		if err != nil {
			return Decomposition{}, nil, err
		}
		direct = quot
	}

	num := Complex(b)
	terms := make([]Term, 0, len(roots))
	for gi, g := range groups {
		den := []complex128{complex(a[0], 0)}
		for hi, h := range groups {
			if hi == gi {
				continue
			}
			for k := 0; k < h.Multiplicity; k++ {
				den = Mul(den, []complex128{1, -h.Pole})
			}
		}
		series := SeriesDiv(Shift(num, g.Pole), Shift(den, g.Pole), g.Multiplicity)
		for order := 1; order <= g.Multiplicity; order++ {
			terms = append(terms, Term{
				Coef:  series[g.Multiplicity-order],
				Order: order,
				Pole:  g.Pole,
			})
		}
	}

	return Decomposition{Terms: terms, Direct: direct}, groups, nil
}
