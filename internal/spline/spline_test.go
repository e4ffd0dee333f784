package spline_test

import (
	"math"
	"math/rand/v2"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/lspline/internal/law"
	"github.com/san-kum/lspline/internal/operator"
	"github.com/san-kum/lspline/internal/spline"
	"github.com/san-kum/lspline/internal/stoch"
)

func mustOperator(p []float64) *operator.Operator {
	op, err := operator.New(p, nil)
	Expect(err).NotTo(HaveOccurred())
	return op
}

func gaussian() law.Law {
	g, err := law.NewGaussian(0, 1)
	Expect(err).NotTo(HaveOccurred())
	return g
}

var _ = Describe("Process", func() {
	var (
		op   *operator.Operator
		proc *spline.Process
	)

	BeforeEach(func() {
		op = mustOperator([]float64{1, 1})
		proc = spline.New(op, gaussian(), rand.New(rand.NewPCG(3, 5)))
	})

	Describe("SetRate", func() {
		It("rejects non-positive intensities", func() {
			for _, lambda := range []float64{0, -2, math.NaN(), math.Inf(1)} {
				Expect(proc.SetRate(lambda)).To(MatchError(stoch.ErrDomain))
			}
			Expect(proc.Rate()).To(BeZero())
		})

		It("records a valid intensity", func() {
			Expect(proc.SetRate(2)).To(Succeed())
			Expect(proc.Rate()).To(Equal(2.0))
		})
	})

	Describe("Sample", func() {
		It("fails without a rate and keeps the previous realization", func() {
			previous := stoch.Realization{{Knot: 0.5, Jump: 1}}
			proc.SetImpulses(previous)
			Expect(proc.Sample(1)).To(MatchError(stoch.ErrDomain))
			Expect(proc.Impulses()).To(Equal(previous))
		})

		It("draws knots inside the horizon", func() {
			Expect(proc.SetRate(20)).To(Succeed())
			Expect(proc.Sample(3)).To(Succeed())
			r := proc.Impulses()
			Expect(r).NotTo(BeEmpty())
			for _, imp := range r {
				Expect(imp.Knot).To(BeNumerically(">=", 0))
				Expect(imp.Knot).To(BeNumerically("<", 3))
			}
		})

		It("replaces the previous realization", func() {
			Expect(proc.SetRate(5)).To(Succeed())
			Expect(proc.Sample(2)).To(Succeed())
			first := proc.Impulses()
			Expect(proc.Sample(2)).To(Succeed())
			Expect(proc.Impulses()).NotTo(Equal(first))
		})

		It("leaves the caller's law unscaled", func() {
			g := gaussian().(*law.Gaussian)
			p := spline.New(op, g, rand.New(rand.NewPCG(1, 2)))
			Expect(p.SetRate(4)).To(Succeed())
			Expect(p.Sample(1)).To(Succeed())
			Expect(g.Variance).To(Equal(1.0))
		})
	})

	Describe("Eval", func() {
		It("is zero without impulses", func() {
			Expect(proc.Eval(0.3)).To(BeZero())
			proc.SetImpulses(nil)
			Expect(proc.Eval(10)).To(BeZero())
		})

		It("shifts and weights the Green's function", func() {
			proc.SetImpulses(stoch.Realization{{Knot: 0.25, Jump: 2}})
			Expect(proc.Eval(0.2)).To(BeZero())
			Expect(proc.Eval(0.25)).To(BeNumerically("~", 2, 1e-12))
			Expect(proc.Eval(1.25)).To(BeNumerically("~", 2*math.Exp(-1), 1e-12))
		})

		It("is idempotent", func() {
			proc.SetImpulses(stoch.Realization{{Knot: 0.1, Jump: -1}, {Knot: 0.4, Jump: 3}})
			a := proc.Eval(0.7)
			Expect(proc.Eval(0.7)).To(Equal(a))
		})

		It("superposes impulses", func() {
			proc.SetImpulses(stoch.Realization{{Knot: 0, Jump: 1}, {Knot: 0.5, Jump: 1}})
			want := math.Exp(-1) + math.Exp(-0.5)
			Expect(proc.Eval(1)).To(BeNumerically("~", want, 1e-12))
		})
	})

	Describe("EvalOnGrid", func() {
		It("samples strictly below the horizon", func() {
			proc.SetImpulses(stoch.Realization{{Knot: 0, Jump: 1}})
			s, err := proc.EvalOnGrid(1, 0.1)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Len()).To(Equal(10))
			Expect(s.Times[9]).To(BeNumerically("~", 0.9, 1e-12))
			for k, v := range s.Values {
				Expect(v).To(BeNumerically("~", math.Exp(-0.1*float64(k)), 1e-12))
			}
		})

		It("rejects an empty grid", func() {
			_, err := proc.EvalOnGrid(0, 0.1)
			Expect(err).To(MatchError(stoch.ErrState))
		})

		It("rejects a bad step", func() {
			_, err := proc.EvalOnGrid(1, 0)
			Expect(err).To(MatchError(stoch.ErrDomain))
			_, err = proc.EvalOnGrid(1, -0.5)
			Expect(err).To(MatchError(stoch.ErrDomain))
		})
	})

	Describe("GridPath", func() {
		It("is all zeros without impulses", func() {
			s, err := proc.GridPath(1, 0.1)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Len()).To(Equal(11))
			for _, v := range s.Values {
				Expect(v).To(BeZero())
			}
		})

		It("reproduces the exponential decay of a single impulse at zero", func() {
			proc.SetImpulses(stoch.Realization{{Knot: 0, Jump: 1}})
			s, err := proc.GridPath(2, 0.1)
			Expect(err).NotTo(HaveOccurred())
			for k, v := range s.Values {
				Expect(v).To(BeNumerically("~", math.Exp(-0.1*float64(k)), 1e-10))
			}
		})

		DescribeTable("matches the continuous path on the grid",
			func(p []float64) {
				o := mustOperator(p)
				proc := spline.New(o, gaussian(), rand.New(rand.NewPCG(11, 13)))
				Expect(proc.SetRate(5)).To(Succeed())
				Expect(proc.Sample(2)).To(Succeed())

				path, err := proc.GridPath(2, 0.05)
				Expect(err).NotTo(HaveOccurred())
				Expect(path.IsValid()).To(BeTrue())
				for k, t := range path.Times {
					Expect(path.Values[k]).To(BeNumerically("~", proc.Eval(t), 1e-8), "t=%v", t)
				}
			},
			Entry("first order", []float64{1, 1}),
			Entry("distinct poles", []float64{1, 3, 2}),
			Entry("double pole", []float64{1, 2, 1}),
			Entry("damped oscillator", []float64{1, 0.4, 4}),
		)

		It("rejects a discretization of another operator", func() {
			other := mustOperator([]float64{1, 2})
			d, err := other.Discretize(0.1)
			Expect(err).NotTo(HaveOccurred())
			_, err = proc.GridPathWith(d, 1)
			Expect(err).To(MatchError(stoch.ErrState))
		})

		It("rejects a zero-value discretization", func() {
			_, err := proc.GridPathWith(&operator.Discrete{}, 1)
			Expect(err).To(MatchError(stoch.ErrNotDiscretized))
		})

		It("does not change the operator", func() {
			before := op.Green(0.3)
			_, err := proc.GridPath(1, 0.5)
			Expect(err).NotTo(HaveOccurred())
			_, err = proc.GridPath(1, 0.01)
			Expect(err).NotTo(HaveOccurred())
			Expect(op.Green(0.3)).To(Equal(before))
		})
	})

	Describe("Increments", func() {
		It("places a weighted B-spline on degree+1 grid points", func() {
			proc.SetImpulses(stoch.Realization{{Knot: 0.25, Jump: 2}})
			s, err := proc.Increments(1, 0.1)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Len()).To(Equal(11))
			for j, v := range s.Values {
				switch j {
				case 3:
					Expect(v).To(BeNumerically("~", 2*math.Exp(-0.05), 1e-12))
				default:
					Expect(v).To(BeNumerically("~", 0, 1e-12))
				}
			}
		})
	})

	It("answers the first-order scenario with rate two", func() {
		Expect(op.Components()).To(HaveLen(1))
		Expect(proc.SetRate(2)).To(Succeed())
		Expect(proc.Sample(1)).To(Succeed())
		for _, imp := range proc.Impulses() {
			Expect(proc.Eval(imp.Knot)).To(BeNumerically("~", sumAt(proc.Impulses(), imp.Knot), 1e-12))
		}
	})
})

func sumAt(r stoch.Realization, t float64) float64 {
	v := 0.0
	for _, imp := range r {
		if t >= imp.Knot {
			v += imp.Jump * math.Exp(-(t - imp.Knot))
		}
	}
	return v
}
