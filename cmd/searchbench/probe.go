// cmd/searchbench/probe.go
package searchbench

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mwiater/searchbench/internal/config"
	"github.com/mwiater/searchbench/internal/fixture"
	"github.com/mwiater/searchbench/internal/harness"
	"github.com/mwiater/searchbench/internal/report"
)

// probeSample is how many file names are listed per size.
const probeSample = 5

// probeCmd implements 'probe', which reports the fixture files available
// per size without reading them.
var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Count the fixture files available per size",
	Long:  `The 'probe' command lists, for every configured size, how many fixture files exist under the data root and the first few file names. Nothing is read or timed.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return probeFixtures(cmd.OutOrStdout(), settings)
	},
}

func init() {
	fs := probeCmd.Flags()
	fs.String("data-root", config.DefaultDataRoot, "fixture root directory")
	fs.IntSlice("sizes", config.DefaultSizes, "array sizes, comma separated")
	rootCmd.AddCommand(probeCmd)
}

func probeFixtures(out io.Writer, s config.Settings) error {
	av, err := fixture.Probe(s.DataRoot, s.Sizes, fixture.DefaultExt)
	if err != nil {
		slog.Warn("fixture probe incomplete", "error", err)
	}
	fmt.Fprintln(out, report.RenderAvailability(av, probeSample))
	fmt.Fprintf(out, "%s fixture files under %s\n", humanize.Comma(int64(av.Total())), s.DataRoot)
	if av.Total() == 0 {
		return fmt.Errorf("%w under %s", harness.ErrConfiguration, s.DataRoot)
	}
	return nil
}
