// cmd/searchbench/generate_fixtures.go
package searchbench

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mwiater/searchbench/internal/config"
	"github.com/mwiater/searchbench/internal/fixture"
	"github.com/mwiater/searchbench/internal/ui"
)

// generateFixturesCmd implements 'generate fixtures', which writes one
// deterministic CSV file per (size, trial).
var generateFixturesCmd = &cobra.Command{
	Use:   "fixtures",
	Short: "Write the fixture CSV files for every size and trial",
	Long: `The 'fixtures' subcommand writes <data-root>/n<size>/run_<trial>.csv for
every configured size and trial id. Each file holds size pseudo-random values
in [0, 2^31-1) seeded by (trial, size), so regenerating gives identical files.
Existing files are kept unless --overwrite is set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		overwrite, _ := cmd.Flags().GetBool("overwrite")
		noTUI, _ := cmd.Flags().GetBool("no-tui")
		interactive := !noTUI && isatty.IsTerminal(os.Stdout.Fd())
		return generateFixtures(cmd.Context(), cmd.OutOrStdout(), settings, overwrite, interactive)
	},
}

func init() {
	fs := generateFixturesCmd.Flags()
	addExperimentFlags(fs)
	fs.Bool("overwrite", false, "rewrite files that already exist")
	fs.Bool("no-tui", false, "log progress instead of showing the progress bar")
	generateCmd.AddCommand(generateFixturesCmd)
}

func generateFixtures(ctx context.Context, out io.Writer, s config.Settings, overwrite, interactive bool) error {
	jobs := fixture.Plan(s.DataRoot, s.Sizes, s.Trials)
	slog.Info("generating fixtures", "root", s.DataRoot, "sizes", len(s.Sizes), "trials", s.Trials, "files", len(jobs))

	var (
		stats fixture.GenerateStats
		err   error
	)
	if interactive {
		stats, err = ui.RunGenerate(ctx, jobs, overwrite)
	} else {
		stats, err = fixture.GenerateSet(ctx, jobs, overwrite, func(done int, j fixture.Job, written bool) {
			if j.Trial == s.Trials {
				slog.Info("size done", "n", j.Size, "files", done, "of", len(jobs))
			}
		})
	}
	if err != nil {
		return fmt.Errorf("generate fixtures: %w", err)
	}
	fmt.Fprintf(out, "%d written, %d skipped under %s\n", stats.Written, stats.Skipped, s.DataRoot)
	return nil
}
