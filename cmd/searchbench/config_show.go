// cmd/searchbench/config_show.go
package searchbench

import (
	"fmt"
	"io"
	"os"

	"github.com/k0kubun/pp"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mwiater/searchbench/internal/config"
)

// configShowCmd implements 'config show', which prints the settings after
// flags, environment, config file and defaults are merged.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long:  `The 'show' subcommand pretty-prints the merged configuration and names the config file it was read from, if any.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		pp.ColoringEnabled = isatty.IsTerminal(os.Stdout.Fd())
		showConfig(cmd.OutOrStdout(), settings, vp.ConfigFileUsed())
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}

func showConfig(out io.Writer, s config.Settings, file string) {
	if file == "" {
		file = "(none, defaults and environment only)"
	}
	fmt.Fprintf(out, "Config file: %s\n", file)
	pp.Fprintln(out, s)
}
