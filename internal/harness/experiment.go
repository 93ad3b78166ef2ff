// internal/harness/experiment.go
// Package: harness
package harness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/mwiater/searchbench/internal/fixture"
	"github.com/mwiater/searchbench/internal/search"
)

var (
	// ErrInvalidConfig reports a Config that cannot drive an experiment.
	ErrInvalidConfig = errors.New("invalid experiment config")
	// ErrConfiguration reports that no fixture exists for any configured size.
	ErrConfiguration = errors.New("no fixture files found")
	// ErrNoResults reports a run in which every size came up empty.
	ErrNoResults = errors.New("no results produced")
)

// State is the phase an Experiment is in.
type State int

const (
	StateIdle State = iota
	StateProbing
	StateRunning
	StateAggregating
	StateReporting
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateProbing:
		return "probing"
	case StateRunning:
		return "running"
	case StateAggregating:
		return "aggregating"
	case StateReporting:
		return "reporting"
	case StateDone:
		return "done"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// TrialObserver is notified after every attempted trial, outside the timed
// window. Observer errors are logged and never stop the run.
type TrialObserver interface {
	ObserveTrial(ctx context.Context, tr TrialResult) error
}

// Reporter persists the result of a run that produced at least one summary.
type Reporter interface {
	Report(ctx context.Context, res SuiteResult) error
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(ctx context.Context, res SuiteResult) error

// Report calls f.
func (f ReporterFunc) Report(ctx context.Context, res SuiteResult) error { return f(ctx, res) }

// Option customizes an Experiment.
type Option func(*Experiment)

// WithLogger sets the logger used for progress and warnings.
func WithLogger(l *slog.Logger) Option {
	return func(e *Experiment) { e.log = l }
}

// WithObserver adds a trial observer.
func WithObserver(o TrialObserver) Option {
	return func(e *Experiment) { e.observers = append(e.observers, o) }
}

// WithReporter adds a reporter. Reporters run in the order they were added.
func WithReporter(r Reporter) Option {
	return func(e *Experiment) { e.reporters = append(e.reporters, r) }
}

// WithStateHook registers a callback for every state transition.
func WithStateHook(fn func(State)) Option {
	return func(e *Experiment) { e.onState = fn }
}

// Experiment runs every configured size and trial sequentially and reduces
// the timings to one SizeSummary per size.
type Experiment struct {
	cfg       Config
	log       *slog.Logger
	observers []TrialObserver
	reporters []Reporter
	onState   func(State)
	state     State
	rng       *rand.Rand
	seed      uint64
}

// NewExperiment validates cfg and returns an idle Experiment.
func NewExperiment(cfg Config, opts ...Option) (*Experiment, error) {
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	e := &Experiment{cfg: cfg, log: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	e.rng, e.seed = newRand(cfg.Seed)
	return e, nil
}

func validate(cfg *Config) error {
	if len(cfg.Sizes) == 0 {
		return fmt.Errorf("%w: at least one size is required", ErrInvalidConfig)
	}
	for _, s := range cfg.Sizes {
		if s <= 0 {
			return fmt.Errorf("%w: size %d must be positive", ErrInvalidConfig, s)
		}
	}
	if cfg.Trials <= 0 {
		return fmt.Errorf("%w: trials must be positive, got %d", ErrInvalidConfig, cfg.Trials)
	}
	if cfg.Search == nil {
		return fmt.Errorf("%w: a search routine is required", ErrInvalidConfig)
	}
	mode, err := ParseTargetMode(string(cfg.Target))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	cfg.Target = mode
	if cfg.Extension == "" {
		cfg.Extension = fixture.DefaultExt
	}
	return nil
}

// Config returns the validated configuration.
func (e *Experiment) Config() Config { return e.cfg }

// State returns the current phase.
func (e *Experiment) State() State { return e.state }

// Seed returns the seed used for random targets.
func (e *Experiment) Seed() uint64 { return e.seed }

func (e *Experiment) setState(s State) {
	e.state = s
	e.log.Debug("experiment state", "state", s.String())
	if e.onState != nil {
		e.onState(s)
	}
}

// Probe counts the fixture files per configured size without reading them.
func (e *Experiment) Probe() (fixture.Availability, error) {
	return fixture.Probe(e.cfg.DataRoot, e.cfg.Sizes, e.cfg.Extension)
}

// Run executes the experiment. It fails with ErrConfiguration, before any
// trial runs, when no configured size has a single fixture file. Missing or
// corrupt fixtures only skip their own trial. If every size comes up empty
// the partial result is returned with ErrNoResults and no reporter runs.
// ctx is checked between trials, never during a timed call.
func (e *Experiment) Run(ctx context.Context) (SuiteResult, error) {
	started := time.Now()

	e.setState(StateProbing)
	av, err := e.Probe()
	if err != nil {
		e.log.Warn("fixture probe incomplete", "error", err)
	}
	for _, s := range av {
		e.log.Info("fixtures available", "n", s.Size, "files", s.Count())
	}
	if av.Total() == 0 {
		e.setState(StateDone)
		res := buildSuiteResult(e.cfg, e.seed, av, nil, nil, started)
		return res, fmt.Errorf("%w for sizes %v under %s", ErrConfiguration, e.cfg.Sizes, e.cfg.DataRoot)
	}

	e.setState(StateRunning)
	trials := make([]TrialResult, 0, len(e.cfg.Sizes)*e.cfg.Trials)
	for _, size := range e.cfg.Sizes {
		e.log.Info("processing size", "n", size, "trials", e.cfg.Trials)
		for id := 1; id <= e.cfg.Trials; id++ {
			if err := ctx.Err(); err != nil {
				e.setState(StateDone)
				return buildSuiteResult(e.cfg, e.seed, av, trials, nil, started), err
			}
			tr := e.runTrial(size, id)
			trials = append(trials, tr)
			e.notify(ctx, tr)
		}
	}

	e.setState(StateAggregating)
	summaries := summarize(e.cfg.Sizes, trials, e.log)
	res := buildSuiteResult(e.cfg, e.seed, av, trials, summaries, started)

	if len(summaries) == 0 {
		e.setState(StateDone)
		return res, ErrNoResults
	}

	e.setState(StateReporting)
	for _, r := range e.reporters {
		if err := r.Report(ctx, res); err != nil {
			e.setState(StateDone)
			return res, fmt.Errorf("report: %w", err)
		}
	}

	e.setState(StateDone)
	return res, nil
}

// runTrial loads one fixture and times one search over it. Any read
// failure is logged and recorded on the row.
func (e *Experiment) runTrial(size, id int) TrialResult {
	path := fixture.PathExt(e.cfg.DataRoot, size, id, e.cfg.Extension)
	tr := TrialResult{Size: size, TrialID: id, Path: path, Index: search.NotFound}

	arr, err := fixture.Read(path)
	if err != nil {
		tr.Err = err.Error()
		switch {
		case errors.Is(err, fixture.ErrNotFound):
			e.log.Warn("fixture not found, skipping trial", "n", size, "trial", id, "path", path)
		case errors.Is(err, fixture.ErrMalformedData):
			e.log.Warn("malformed fixture, skipping trial", "n", size, "trial", id, "error", err)
		default:
			e.log.Warn("cannot read fixture, skipping trial", "n", size, "trial", id, "error", err)
		}
		return tr
	}

	tr.Length = len(arr)
	tr.Target = PickTarget(arr, e.cfg.Target, e.cfg.TargetValue, e.rng)
	t, err := safeMeasure(e.cfg.Search, arr, tr.Target)
	if err != nil {
		tr.Err = err.Error()
		e.log.Warn("search failed, skipping trial", "n", size, "trial", id, "error", err)
		return tr
	}
	tr.Index, tr.Millis = t.Index, t.Millis
	e.log.Debug("trial", "n", size, "trial", id, "ms", tr.Millis, "index", tr.Index)
	return tr
}

func (e *Experiment) notify(ctx context.Context, tr TrialResult) {
	for _, o := range e.observers {
		if err := o.ObserveTrial(ctx, tr); err != nil {
			e.log.Error("trial observer failed", "n", tr.Size, "trial", tr.TrialID, "error", err)
		}
	}
}
