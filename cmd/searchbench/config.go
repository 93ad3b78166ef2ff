// cmd/searchbench/config.go
package searchbench

import (
	"github.com/spf13/cobra"
)

// configCmd represents the 'config' command group.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Group commands for inspecting configuration",
	Long:  `The 'config' command groups subcommands that show or write the effective configuration. It performs no action on its own.`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
