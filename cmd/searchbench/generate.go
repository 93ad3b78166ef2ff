// cmd/searchbench/generate.go
package searchbench

import (
	"github.com/spf13/cobra"
)

// generateCmd represents the 'generate' command group.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Group commands for generating benchmark inputs",
	Long:  `The 'generate' command groups subcommands that create the inputs a run needs. It performs no action on its own.`,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}
