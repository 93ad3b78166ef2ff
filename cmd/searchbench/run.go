// cmd/searchbench/run.go
package searchbench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mwiater/searchbench/internal/config"
	"github.com/mwiater/searchbench/internal/harness"
	"github.com/mwiater/searchbench/internal/report"
	"github.com/mwiater/searchbench/internal/store"
	"github.com/mwiater/searchbench/internal/telemetry"
)

// runCmd implements 'run', the timing experiment.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Time the search over every fixture and write the report",
	Long: `The 'run' command probes the fixture tree, times one search per fixture
file for every configured size and writes n,tempo_ms,desvio rows to the CSV
report. Missing or corrupt fixtures are skipped with a warning; sizes without
any valid trial are left out of the report.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBenchmark(cmd.Context(), cmd.OutOrStdout(), settings)
	},
}

func init() {
	fs := runCmd.Flags()
	addExperimentFlags(fs)
	fs.String("results-dir", config.DefaultResultsDir, "report directory")
	fs.String("results-file", config.DefaultResultsFile, "report file name")
	fs.String("target", string(harness.TargetLast), "target selection: last or random")
	fs.Uint64("seed", 0, "seed for --target random (0 picks one)")
	fs.String("algorithm", config.DefaultAlgorithm, "search routine to time")
	fs.String("json", "", "also write the full result, every trial included, as JSON")
	fs.String("metrics-file", "", "write Prometheus metrics in textfile format")
	rootCmd.AddCommand(runCmd)
}

// runBenchmark runs one experiment with s and prints the summary table.
func runBenchmark(ctx context.Context, out io.Writer, s config.Settings) error {
	cfg, err := s.Experiment()
	if err != nil {
		return err
	}

	metrics := telemetry.NewMetrics()
	recorder := &store.Recorder{}
	opts := []harness.Option{
		harness.WithLogger(slog.Default()),
		harness.WithObserver(metrics),
		harness.WithReporter(report.CSVReporter{Path: s.ResultsPath()}),
	}
	if s.JSONOutput != "" {
		opts = append(opts, harness.WithReporter(report.JSONReporter{Path: s.JSONOutput}))
	}

	storeCfg := store.Config{Type: s.StoreType, DSN: s.StoreDSN}
	if storeCfg.Enabled() {
		st, err := store.New(storeCfg)
		if err != nil {
			return fmt.Errorf("open trial store: %w", err)
		}
		defer st.Close()
		recorder.Store = st
		opts = append(opts, harness.WithObserver(recorder))
	}

	e, err := harness.NewExperiment(cfg, opts...)
	if err != nil {
		return err
	}

	if recorder.Store != nil {
		run := &store.Run{Algorithm: cfg.Algorithm, Target: string(e.Config().Target), Seed: e.Seed(), Trials: cfg.Trials}
		if err := recorder.Store.SaveRun(ctx, run); err != nil {
			return err
		}
		recorder.RunID = run.ID
		slog.Info("recording trials", "run_id", run.ID)
	}

	res, runErr := e.Run(ctx)
	if errors.Is(runErr, harness.ErrConfiguration) {
		fmt.Fprintf(out, "No fixture files found under %q for sizes %v.\n", s.DataRoot, s.Sizes)
		fmt.Fprintln(out, "Generate them with 'searchbench generate fixtures' or point --data-root at them.")
		return runErr
	}

	if len(res.Summaries) > 0 {
		fmt.Fprintln(out, report.RenderTable(res.Summaries))
	}
	if runErr == nil {
		fmt.Fprintf(out, "Report written to %s\n", s.ResultsPath())
		if s.JSONOutput != "" {
			fmt.Fprintf(out, "Full result written to %s\n", s.JSONOutput)
		}
	}

	var metricsErr error
	if s.MetricsFile != "" {
		if metricsErr = metrics.WriteTextfile(s.MetricsFile); metricsErr != nil {
			slog.Error("metrics not written", "path", s.MetricsFile, "error", metricsErr)
		}
	}
	return errors.Join(runErr, metricsErr)
}
