// internal/report/table.go
// Package: report
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/mwiater/searchbench/internal/fixture"
	"github.com/mwiater/searchbench/internal/harness"
	"github.com/mwiater/searchbench/internal/store"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Padding(0, 1)
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func ms(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }

// RenderTable renders the per-size summaries for the terminal.
func RenderTable(rows []harness.SizeSummary) string {
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{
			humanize.Comma(int64(r.Size)),
			ms(r.MeanMillis),
			ms(r.StdDevMillis),
			ms(r.P50Millis),
			ms(r.P95Millis),
			strconv.Itoa(r.Samples),
			strconv.Itoa(r.Skipped),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("Size (n)", "Mean (ms)", "Std dev (ms)", "p50 (ms)", "p95 (ms)", "Samples", "Skipped").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle.Align(lipgloss.Right)
		})
	return t.Render()
}

// RenderAvailability renders the probe result, listing up to sample file
// names per size.
func RenderAvailability(av fixture.Availability, sample int) string {
	data := make([][]string, 0, len(av))
	for _, s := range av {
		data = append(data, []string{
			humanize.Comma(int64(s.Size)),
			strconv.Itoa(s.Count()),
			strings.Join(s.Sample(sample), " "),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("Size (n)", "Files", "First files").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row < len(av) && av[row].Count() == 0:
				return emptyStyle
			}
			return cellStyle
		})
	return t.Render()
}

// RenderHistory renders recorded runs, newest first.
func RenderHistory(runs []store.RunSummary) string {
	data := make([][]string, 0, len(runs))
	for _, r := range runs {
		data = append(data, []string{
			strconv.FormatInt(r.ID, 10),
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Algorithm,
			r.Target,
			strconv.FormatUint(r.Seed, 10),
			fmt.Sprintf("%d/%d", r.Succeeded, r.Attempted),
			ms(r.MeanMillis),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("Run", "Started", "Algorithm", "Target", "Seed", "OK/Trials", "Mean (ms)").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.Render()
}
