package impulse

import (
	"math"
	"math/rand/v2"
	"os"
	"testing"

	"github.com/san-kum/lspline/internal/law"
	"github.com/san-kum/lspline/internal/stoch"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestMain(m *testing.M) {
	if os.Getenv("DEBUG_TESTS") == "" {
		logrus.SetLevel(logrus.WarnLevel)
	}
	os.Exit(m.Run())
}

func gaussian(t *testing.T) law.Law {
	t.Helper()
	g, err := law.NewGaussian(0, 1)
	require.NoError(t, err)
	return g
}

func TestGenerate_CountAndKnots(t *testing.T) {
	// GIVEN rate 3 on a horizon of 5, many realizations
	rng := rand.New(rand.NewPCG(3, 5))
	l := gaussian(t)
	const runs = 2000
	counts := make([]float64, runs)

	for i := range counts {
		// WHEN drawing a realization
		r, err := Generate(rng, l, 3, 5)
		require.NoError(t, err)

		// THEN every knot lies in [0, T)
		for _, imp := range r {
			require.GreaterOrEqual(t, imp.Knot, 0.0)
			require.Less(t, imp.Knot, 5.0)
		}
		counts[i] = float64(len(r))
	}

	// AND the count mean and variance match Poisson(λT)
	mean, variance := stat.MeanVariance(counts, nil)
	assert.InDelta(t, 15, mean, 0.5)
	assert.InDelta(t, 15, variance, 2.0)
}

func TestGenerate_ZeroHorizon(t *testing.T) {
	r, err := Generate(rand.New(rand.NewPCG(1, 1)), gaussian(t), 2, 0)
	require.NoError(t, err)
	assert.Empty(t, r)
}

func TestGenerate_DoesNotMutateLaw(t *testing.T) {
	g, err := law.NewGaussian(4, 4)
	require.NoError(t, err)

	_, err = Generate(rand.New(rand.NewPCG(1, 1)), g, 4, 1)
	require.NoError(t, err)
	assert.Equal(t, 4.0, g.Mean)
	assert.Equal(t, 4.0, g.Variance)
}

func TestGenerate_UsesRescaledLaw(t *testing.T) {
	// Unit Gaussian jumps with variance 8, rescaled by λ=8, have unit variance.
	g, err := law.NewGaussian(0, 8)
	require.NoError(t, err)
	r, err := Generate(rand.New(rand.NewPCG(9, 9)), g, 8, 2000)
	require.NoError(t, err)
	require.NotEmpty(t, r)

	assert.InDelta(t, 1, stat.Variance(r.Jumps(), nil), 0.05)
}

func TestGenerate_NotSorted(t *testing.T) {
	r, err := Generate(rand.New(rand.NewPCG(2, 2)), gaussian(t), 50, 1)
	require.NoError(t, err)
	require.Greater(t, len(r), 10)

	sorted := true
	for i := 1; i < len(r); i++ {
		if r[i].Knot < r[i-1].Knot {
			sorted = false
			break
		}
	}
	assert.False(t, sorted, "knots should come back in draw order")
}

func TestGenerate_InvalidInputs(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	tests := []struct {
		name          string
		l             law.Law
		rate, horizon float64
	}{
		{"zero rate", gaussian(t), 0, 1},
		{"negative rate", gaussian(t), -1, 1},
		{"NaN rate", gaussian(t), math.NaN(), 1},
		{"negative horizon", gaussian(t), 1, -1},
		{"nil law", nil, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(rng, tt.l, tt.rate, tt.horizon)
			assert.ErrorIs(t, err, stoch.ErrDomain)
		})
	}
}

func TestGenerate_Reproducible(t *testing.T) {
	a, err := Generate(rand.New(rand.NewPCG(11, 12)), gaussian(t), 4, 3)
	require.NoError(t, err)
	b, err := Generate(rand.New(rand.NewPCG(11, 12)), gaussian(t), 4, 3)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
