// internal/telemetry/metrics.go
// Package: telemetry
package telemetry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mwiater/searchbench/internal/harness"
)

// Trial outcome label values.
const (
	OutcomeFound   = "found"
	OutcomeMissed  = "missed"
	OutcomeSkipped = "skipped"
)

// Metrics counts trials and records their durations on a private
// registry. It implements harness.TrialObserver.
type Metrics struct {
	Registry *prometheus.Registry

	TrialsTotal   *prometheus.CounterVec
	TrialDuration *prometheus.HistogramVec
}

// NewMetrics registers the trial collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		TrialsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "searchbench_trials_total",
				Help: "Attempted trials by array size and outcome.",
			},
			[]string{"size", "outcome"},
		),
		TrialDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "searchbench_trial_duration_milliseconds",
				Help:    "Wall-clock duration of one search call.",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 12),
			},
			[]string{"size"},
		),
	}
	m.Registry.MustRegister(m.TrialsTotal, m.TrialDuration)
	return m
}

// ObserveTrial implements harness.TrialObserver.
func (m *Metrics) ObserveTrial(_ context.Context, tr harness.TrialResult) error {
	size := strconv.Itoa(tr.Size)
	switch {
	case !tr.OK():
		m.TrialsTotal.WithLabelValues(size, OutcomeSkipped).Inc()
		return nil
	case tr.Index < 0:
		m.TrialsTotal.WithLabelValues(size, OutcomeMissed).Inc()
	default:
		m.TrialsTotal.WithLabelValues(size, OutcomeFound).Inc()
	}
	m.TrialDuration.WithLabelValues(size).Observe(tr.Millis)
	return nil
}

// WriteTextfile writes the metrics in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metrics dir: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	return nil
}
