// internal/harness/types.go
// Package: harness
package harness

import (
	"fmt"
	"time"

	"github.com/mwiater/searchbench/internal/fixture"
	"github.com/mwiater/searchbench/internal/search"
)

// TargetMode selects the value each trial searches for.
type TargetMode string

const (
	// TargetLast searches for the last element: the worst case for a
	// left-to-right scan.
	TargetLast TargetMode = "last"
	// TargetRandom searches for a random element half of the time and for a
	// value guaranteed to be absent the other half.
	TargetRandom TargetMode = "random"
)

// ParseTargetMode validates a target mode name. The empty string means TargetLast.
func ParseTargetMode(s string) (TargetMode, error) {
	switch TargetMode(s) {
	case "", TargetLast:
		return TargetLast, nil
	case TargetRandom:
		return TargetRandom, nil
	}
	return "", fmt.Errorf("unknown target mode %q (want %q or %q)", s, TargetLast, TargetRandom)
}

// Config configures one experiment. It is fixed for the lifetime of the run.
type Config struct {
	// Directory holding the n<size>/run_<id>.csv fixtures.
	DataRoot string `json:"data_root"`

	// Array sizes to benchmark, in report order.
	Sizes []int `json:"sizes"`

	// Trials per size; trial ids run 1..Trials.
	Trials int `json:"trials"`

	// How the search target is chosen. Ignored when TargetValue is set.
	Target TargetMode `json:"target"`

	// Fixed target for every trial (optional).
	TargetValue *int `json:"target_value,omitempty"`

	// Seed for TargetRandom. Zero picks a seed from the clock; the seed
	// actually used is recorded in SuiteResult.
	Seed uint64 `json:"seed"`

	// Label for the search routine, e.g. "linear".
	Algorithm string `json:"algorithm"`

	// Fixture file extension (default "csv").
	Extension string `json:"extension"`

	// Search routine under test.
	Search search.Func `json:"-"`
}

// TrialResult is the outcome of one attempted trial. Err is set when the
// fixture could not be used; such trials carry no timing.
type TrialResult struct {
	Size    int    `json:"size"`
	TrialID int    `json:"trial_id"`
	Path    string `json:"path"`
	Length  int    `json:"length"` // elements actually loaded

	Target int     `json:"target"`
	Index  int     `json:"index"`  // search result, search.NotFound on a miss
	Millis float64 `json:"millis"` // wall-clock duration of the search call

	Err string `json:"error,omitempty"`
}

// OK reports whether the trial produced a timing sample.
func (t TrialResult) OK() bool { return t.Err == "" }

// SizeSummary aggregates the successful trials of one size bucket.
type SizeSummary struct {
	Size         int     `json:"n"`
	MeanMillis   float64 `json:"tempo_ms"`
	StdDevMillis float64 `json:"desvio"`

	Samples int `json:"samples"`
	Skipped int `json:"skipped"`

	MinMillis float64 `json:"min_ms"`
	P50Millis float64 `json:"p50_ms"`
	P95Millis float64 `json:"p95_ms"`
	MaxMillis float64 `json:"max_ms"`
}

// SuiteResult is the top-level artifact returned by Experiment.Run.
type SuiteResult struct {
	Config       Config               `json:"config"`
	Seed         uint64               `json:"seed"`
	Availability fixture.Availability `json:"availability"`
	Trials       []TrialResult        `json:"trials"`
	Summaries    []SizeSummary        `json:"summaries"`
	StartedAt    time.Time            `json:"started_at"`
	GeneratedAt  time.Time            `json:"generated_at"`
}
