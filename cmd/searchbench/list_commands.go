// cmd/searchbench/list_commands.go
package searchbench

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mwiater/searchbench/internal/search"
)

// commandsCmd implements 'list commands', which prints the available
// commands and subcommands in a hierarchical, indented, two-column format.
var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List all commands and subcommands in two columns",
	Long:  `The 'commands' subcommand lists all commands and subcommands in a hierarchical, indented format, with the command path in the first column and its short description in the second column.`,
	Run: func(cmd *cobra.Command, args []string) {
		listAllCommands(cmd.OutOrStdout(), rootCmd)
	},
}

// algorithmsCmd implements 'list algorithms'.
var algorithmsCmd = &cobra.Command{
	Use:   "algorithms",
	Short: "List the search routines that can be timed",
	Long:  `The 'algorithms' subcommand prints the names accepted by 'run --algorithm'.`,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range search.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

func init() {
	listCmd.AddCommand(commandsCmd)
	listCmd.AddCommand(algorithmsCmd)
}

// listAllCommands traverses the command tree starting from root and prints
// each command path and short description in a padded, two-column layout.
func listAllCommands(out io.Writer, root *cobra.Command) {
	rows := collectCommandData(root, "", "")

	width := 0
	for _, r := range rows {
		width = max(width, len(r.path))
	}

	fmt.Fprintln(out, "Commands and Subcommands:")
	for _, r := range rows {
		fmt.Fprintf(out, "  %s%s%s\n", r.path, strings.Repeat(" ", width-len(r.path)+2), r.description)
	}
}

type commandInfo struct {
	path        string
	description string
}

// collectCommandData flattens the command tree into path/description
// pairs, skipping cobra's generated help and completion commands.
func collectCommandData(cmd *cobra.Command, parent, indent string) []commandInfo {
	path := cmd.Name()
	if parent != "" {
		path = parent + " " + cmd.Name()
	}

	rows := []commandInfo{{path: indent + path, description: cmd.Short}}
	for _, sub := range cmd.Commands() {
		if !sub.IsAvailableCommand() {
			continue
		}
		rows = append(rows, collectCommandData(sub, path, indent+"  ")...)
	}
	return rows
}
