// internal/harness/results.go
// Package: harness
package harness

import (
	"log/slog"
	"time"

	"github.com/mwiater/searchbench/internal/fixture"
)

// summarize builds one SizeSummary per configured size from the trial rows,
// in configuration order. A size without a single successful trial gets no
// summary.
func summarize(sizes []int, trials []TrialResult, log *slog.Logger) []SizeSummary {
	bySize := map[int][]TrialResult{}
	for _, t := range trials {
		bySize[t.Size] = append(bySize[t.Size], t)
	}

	out := make([]SizeSummary, 0, len(sizes))
	seen := map[int]bool{}
	for _, size := range sizes {
		if seen[size] {
			continue
		}
		seen[size] = true

		s, ok := summarizeSize(size, bySize[size])
		if !ok {
			log.Warn("no valid samples, size omitted from report", "n", size, "skipped", s.Skipped)
			continue
		}
		log.Info("size summary",
			"n", size,
			"mean_ms", s.MeanMillis,
			"stddev_ms", s.StdDevMillis,
			"samples", s.Samples,
			"skipped", s.Skipped,
		)
		out = append(out, s)
	}
	return out
}

// summarizeSize reduces the rows of one size. ok is false when no row holds
// a timing sample.
func summarizeSize(size int, rows []TrialResult) (SizeSummary, bool) {
	s := SizeSummary{Size: size}
	var millis []float64
	for _, r := range rows {
		if !r.OK() {
			s.Skipped++
			continue
		}
		millis = append(millis, r.Millis)
	}
	if len(millis) == 0 {
		return s, false
	}

	s.Samples = len(millis)
	s.MeanMillis, s.StdDevMillis = MeanStd(millis)
	d := describe(millis)
	s.MinMillis, s.P50Millis, s.P95Millis, s.MaxMillis = d.min, d.p50, d.p95, d.max
	return s, true
}

// buildSuiteResult packs everything with a timestamp.
func buildSuiteResult(cfg Config, seed uint64, av fixture.Availability, trials []TrialResult, summaries []SizeSummary, started time.Time) SuiteResult {
	return SuiteResult{
		Config:       cfg,
		Seed:         seed,
		Availability: av,
		Trials:       trials,
		Summaries:    summaries,
		StartedAt:    started,
		GeneratedAt:  time.Now(),
	}
}
