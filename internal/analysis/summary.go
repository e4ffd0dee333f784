package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/lspline/internal/stoch"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the values of a series.
type Summary struct {
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
	StdDev   float64 `json:"std_dev"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
}

func (s Summary) String() string {
	return fmt.Sprintf("n=%d mean=%.4g var=%.4g min=%.4g max=%.4g", s.Count, s.Mean, s.Variance, s.Min, s.Max)
}

// Summarize returns the zero Summary for an empty series and a zero
// variance for a single sample.
func Summarize(s stoch.Series) Summary {
	n := s.Len()
	if n == 0 {
		return Summary{}
	}
	out := Summary{
		Count: n,
		Min:   floats.Min(s.Values),
		Max:   floats.Max(s.Values),
	}
	if n == 1 {
		out.Mean = s.Values[0]
		return out
	}
	out.Mean, out.Variance = stat.MeanVariance(s.Values, nil)
	out.StdDev = math.Sqrt(out.Variance)
	return out
}

// Compare returns the largest absolute difference between two series of
// equal length.
func Compare(a, b stoch.Series) (float64, error) {
	if a.Len() != b.Len() {
		return 0, fmt.Errorf("analysis: length mismatch %d != %d", a.Len(), b.Len())
	}
	if a.Len() == 0 {
		return 0, nil
	}
	return floats.Distance(a.Values, b.Values, math.Inf(1)), nil
}
