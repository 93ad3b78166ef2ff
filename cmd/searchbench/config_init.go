// cmd/searchbench/config_init.go
package searchbench

import (
	"fmt"

	"github.com/spf13/cobra"
)

// configInitCmd implements 'config init', which writes the defaults to a
// new config file.
var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a config file with the current settings",
	Long:  `The 'init' subcommand writes the effective settings to path (default ./searchbench.yaml). An existing file is never overwritten.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "searchbench.yaml"
		if len(args) == 1 {
			path = args[0]
		}
		if err := vp.SafeWriteConfigAs(path); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
}
