package experiment

import (
	"context"
	"fmt"
	"runtime"

	"github.com/san-kum/lspline/internal/config"
	"github.com/san-kum/lspline/internal/stoch"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// EnsembleResult aggregates independent runs pointwise on the grid.
type EnsembleResult struct {
	Runs         int          `json:"runs"`
	Mean         stoch.Series `json:"mean"`
	Variance     stoch.Series `json:"variance"`
	MeanImpulses float64      `json:"mean_impulses"`
}

// RunEnsemble runs n experiments seeded cfg.Seed, cfg.Seed+1, ... on at
// most workers goroutines. workers <= 0 means GOMAXPROCS.
func RunEnsemble(ctx context.Context, cfg *config.Config, n, workers int) (*EnsembleResult, error) {
	if n < 2 {
		return nil, fmt.Errorf("ensemble needs at least two runs, got %d", n)
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]*Result, n)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			c := *cfg
			c.Seed = cfg.Seed + int64(i)
			exp, err := New(&c)
			if err != nil {
				return err
			}
			results[i], err = exp.Run(ctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	times := results[0].Path.Times
	out := &EnsembleResult{
		Runs:     n,
		Mean:     stoch.Series{Times: times, Values: make([]float64, len(times))},
		Variance: stoch.Series{Times: times, Values: make([]float64, len(times))},
	}
	column := make([]float64, n)
	for k := range times {
		for i, r := range results {
			column[i] = r.Path.Values[k]
		}
		out.Mean.Values[k], out.Variance.Values[k] = stat.MeanVariance(column, nil)
	}
	for _, r := range results {
		out.MeanImpulses += float64(len(r.Impulses))
	}
	out.MeanImpulses /= float64(n)
	return out, nil
}
