// internal/harness/metrics.go
// Package: harness
package harness

import (
	"slices"

	"github.com/aclements/go-moremath/stats"
)

// MeanStd returns the mean and the sample standard deviation (divisor n-1)
// of values. Both are 0 for an empty slice; the deviation is 0 for a single
// value.
func MeanStd(values []float64) (mean, std float64) {
	switch len(values) {
	case 0:
		return 0, 0
	case 1:
		return values[0], 0
	}
	return stats.Mean(values), stats.StdDev(values)
}

// distribution holds order statistics of a sample (copy-safe).
type distribution struct {
	min, p50, p95, max float64
}

func describe(values []float64) distribution {
	if len(values) == 0 {
		return distribution{}
	}
	s := stats.Sample{Xs: slices.Clone(values)}
	s.Sort()
	return distribution{
		min: s.Xs[0],
		p50: s.Quantile(0.50),
		p95: s.Quantile(0.95),
		max: s.Xs[len(s.Xs)-1],
	}
}
