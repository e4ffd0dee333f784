package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/lspline/internal/law"
	"github.com/san-kum/lspline/internal/poly"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, []float64{1, 1}, cfg.Operator.P)
	assert.Equal(t, "gaussian", cfg.Law.Name)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty P", func(c *Config) { c.Operator.P = nil }},
		{"zero rate", func(c *Config) { c.Rate = 0 }},
		{"negative horizon", func(c *Config) { c.Horizon = -1 }},
		{"zero step", func(c *Config) { c.Step = 0 }},
		{"unknown algebra", func(c *Config) { c.Algebra = "quad" }},
		{"unknown law", func(c *Config) { c.Law.Name = "weibull" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	cfg := GetPreset("lead", "poisson_sums")
	require.NotNil(t, cfg)
	cfg.Seed = 99
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestBuildOperator_Algebra(t *testing.T) {
	cfg := DefaultConfig()
	op, err := cfg.BuildOperator()
	require.NoError(t, err)
	assert.Equal(t, poly.BigFloat{Prec: poly.DefaultPrecision}, op.Algebra())

	cfg.Algebra = "float"
	op, err = cfg.BuildOperator()
	require.NoError(t, err)
	assert.Equal(t, "float", op.Algebra().Name())

	cfg.Algebra = "big"
	cfg.Precision = 128
	op, err = cfg.BuildOperator()
	require.NoError(t, err)
	assert.Equal(t, poly.BigFloat{Prec: 128}, op.Algebra())
}

func TestBuildLaw_EveryPreset(t *testing.T) {
	for _, name := range ListPresets("ou") {
		t.Run(name, func(t *testing.T) {
			cfg := GetPreset("ou", name)
			require.NotNil(t, cfg)
			l, err := cfg.BuildLaw()
			require.NoError(t, err)
			want, err := law.ParseKind(cfg.Law.Name)
			require.NoError(t, err)
			assert.Equal(t, want, l.Kind())
		})
	}
}

func TestBuildLaw_CompoundNeedsBase(t *testing.T) {
	lc := LawConfig{Name: "compound_poisson", Rate: 1}
	_, err := lc.Build()
	assert.Error(t, err)
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("oscillator", "cauchy")
	require.NotNil(t, cfg)
	assert.Equal(t, []float64{1, 0.4, 4}, cfg.Operator.P)
	assert.Equal(t, 1.0, cfg.Law.Alpha)

	assert.Nil(t, GetPreset("oscillator", "nope"))
	assert.Nil(t, GetPreset("nope", "gaussian"))
}

func TestGetPreset_Independent(t *testing.T) {
	a := GetPreset("lead", "poisson_sums")
	a.Operator.P[0] = 7
	a.Law.Base.Variance = 9

	b := GetPreset("lead", "poisson_sums")
	assert.Equal(t, 1.0, b.Operator.P[0])
	assert.Equal(t, 1.0, b.Law.Base.Variance)
}

func TestListPresets(t *testing.T) {
	families := ListPresets("")
	assert.Contains(t, families, "ou")
	assert.Len(t, families, len(Operators))

	laws := ListPresets("ou")
	assert.Contains(t, laws, "laplace")
	assert.Len(t, laws, len(Laws))
}

func TestLoad_FillsMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("operator:\n  p: [1, 3, 2]\nseed: 5\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3, 2}, cfg.Operator.P)
	assert.Equal(t, int64(5), cfg.Seed)
	assert.Equal(t, DefaultRate, cfg.Rate)
	assert.Equal(t, DefaultStep, cfg.Step)
	assert.Equal(t, "gaussian", cfg.Law.Name)
	assert.NoError(t, cfg.Validate())
}
