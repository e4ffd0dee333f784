package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/lspline/internal/config"
	"github.com/san-kum/lspline/internal/experiment"
	"github.com/san-kum/lspline/internal/stoch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	cfg := config.GetPreset("distinct", "laplace")
	cfg.Horizon = 1
	cfg.Step = 0.1
	cfg.Seed = 42
	exp, err := experiment.New(cfg)
	require.NoError(t, err)
	res, err := exp.Run(context.Background())
	require.NoError(t, err)

	runID, err := st.Save(*cfg, res)
	require.NoError(t, err)
	assert.NotEmpty(t, runID)

	meta, err := st.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, int64(42), meta.Config.Seed)
	assert.Equal(t, "laplace", meta.Config.Law.Name)
	assert.Equal(t, len(res.Impulses), meta.Impulses)
	assert.InDelta(t, res.Summary.Mean, meta.Summary.Mean, 1e-12)

	path, cont, err := st.LoadPaths(runID)
	require.NoError(t, err)
	assert.Equal(t, res.Path, path)
	assert.Equal(t, res.Continuous, cont)

	imps, err := st.LoadImpulses(runID)
	require.NoError(t, err)
	if len(res.Impulses) == 0 {
		assert.Empty(t, imps)
	} else {
		assert.Equal(t, res.Impulses, imps)
	}
}

func TestStoreSave_UniqueIDs(t *testing.T) {
	st := New(t.TempDir())
	res := &experiment.Result{
		Impulses: stoch.Realization{{Knot: 0.1, Jump: 1}},
		Path:     stoch.Series{Times: []float64{0, 0.1}, Values: []float64{0, 1}},
	}
	cfg := *config.DefaultConfig()

	a, err := st.Save(cfg, res)
	require.NoError(t, err)
	b, err := st.Save(cfg, res)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	runs, err := st.List()
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestStoreList_SkipsJunk(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "not-a-run"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stray.txt"), []byte("x"), 0644))

	runs, err := New(dir).List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestStoreList_Missing(t *testing.T) {
	runs, err := New(filepath.Join(t.TempDir(), "absent")).List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}
