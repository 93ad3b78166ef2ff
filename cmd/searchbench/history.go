// cmd/searchbench/history.go
package searchbench

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mwiater/searchbench/internal/config"
	"github.com/mwiater/searchbench/internal/report"
	"github.com/mwiater/searchbench/internal/store"
)

var errNoStore = errors.New("no trial store configured (set --store-type or --store-dsn)")

// historyCmd implements 'history', which lists recorded runs from the
// trial store.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded runs from the trial store",
	Long:  `The 'history' command reads the runs recorded by 'run --store-type ...' and prints the newest ones with their successful trial counts and mean search time.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		return showHistory(cmd.Context(), cmd.OutOrStdout(), settings, limit)
	},
}

func init() {
	historyCmd.Flags().Int("limit", store.DefaultHistoryLimit, "number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

func showHistory(ctx context.Context, out io.Writer, s config.Settings, limit int) error {
	cfg := store.Config{Type: s.StoreType, DSN: s.StoreDSN}
	if !cfg.Enabled() {
		return errNoStore
	}
	st, err := store.New(cfg)
	if err != nil {
		return fmt.Errorf("open trial store: %w", err)
	}
	defer st.Close()

	runs, err := st.History(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}
	fmt.Fprintln(out, report.RenderHistory(runs))
	return nil
}
