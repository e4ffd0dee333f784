package experiment

import (
	"context"
	"math"
	"os"
	"testing"

	"github.com/san-kum/lspline/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logrus.SetLevel(logrus.WarnLevel)
	os.Exit(m.Run())
}

func smallConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Horizon = 2
	cfg.Step = 0.05
	cfg.Rate = 4
	cfg.Seed = 17
	return cfg
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.Step = 0
	_, err := New(cfg)
	assert.Error(t, err)

	cfg = smallConfig()
	cfg.Operator.P = []float64{0, 1}
	_, err = New(cfg)
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	exp, err := New(smallConfig())
	require.NoError(t, err)

	res, err := exp.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 41, res.Path.Len())
	assert.Equal(t, 40, res.Continuous.Len())
	assert.Equal(t, res.Path.Len(), res.Summary.Count)
	for _, imp := range res.Impulses {
		assert.GreaterOrEqual(t, imp.Knot, 0.0)
		assert.Less(t, imp.Knot, 2.0)
	}
	for k := 0; k < res.Continuous.Len(); k++ {
		assert.InDelta(t, res.Continuous.Values[k], res.Path.Values[k], 1e-8)
	}
}

func TestRun_Reproducible(t *testing.T) {
	a, err := New(smallConfig())
	require.NoError(t, err)
	b, err := New(smallConfig())
	require.NoError(t, err)

	ra, err := a.Run(context.Background())
	require.NoError(t, err)
	rb, err := b.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ra.Impulses, rb.Impulses)
	assert.Equal(t, ra.Path, rb.Path)
}

func TestRun_ZeroHorizon(t *testing.T) {
	cfg := smallConfig()
	cfg.Horizon = 0
	exp, err := New(cfg)
	require.NoError(t, err)

	res, err := exp.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res.Impulses)
	assert.Equal(t, []float64{0}, res.Path.Values)
	assert.Zero(t, res.Continuous.Len())
}

func TestRun_Cancelled(t *testing.T) {
	exp, err := New(smallConfig())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = exp.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSetRate(t *testing.T) {
	exp, err := New(smallConfig())
	require.NoError(t, err)
	assert.Error(t, exp.SetRate(-1))
	require.NoError(t, exp.SetRate(10))
	assert.Equal(t, 10.0, exp.Config().Rate)
	assert.Equal(t, 10.0, exp.Process().Rate())
}

func TestRun_WithDirectTermWarning(t *testing.T) {
	cfg := smallConfig()
	cfg.Operator.Q = []float64{1, 0}
	exp, err := New(cfg)
	require.NoError(t, err)
	res, err := exp.Run(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, res.Warnings)
}

func TestRunEnsemble(t *testing.T) {
	cfg := smallConfig()
	cfg.Horizon = 1
	cfg.Rate = 50

	ens, err := RunEnsemble(context.Background(), cfg, 1000, 4)
	require.NoError(t, err)
	assert.Equal(t, 1000, ens.Runs)
	assert.Equal(t, 21, ens.Mean.Len())
	assert.InDelta(t, 50, ens.MeanImpulses, 2)

	// Gaussian jumps of variance 1/λ make the OU path at time t have
	// variance (1 - exp(-2t))/2, independent of λ.
	last := ens.Variance.Len() - 1
	want := (1 - math.Exp(-2*ens.Variance.Times[last])) / 2
	assert.InDelta(t, want, ens.Variance.Values[last], 0.06)
	assert.InDelta(t, 0, ens.Mean.Values[last], 0.1)
	assert.Zero(t, ens.Variance.Values[0])
}

func TestRunEnsemble_Reproducible(t *testing.T) {
	a, err := RunEnsemble(context.Background(), smallConfig(), 8, 3)
	require.NoError(t, err)
	b, err := RunEnsemble(context.Background(), smallConfig(), 8, 1)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRunEnsemble_Invalid(t *testing.T) {
	_, err := RunEnsemble(context.Background(), smallConfig(), 1, 1)
	assert.Error(t, err)

	cfg := smallConfig()
	cfg.Rate = -1
	_, err = RunEnsemble(context.Background(), cfg, 4, 2)
	assert.Error(t, err)
}
