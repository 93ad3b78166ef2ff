// internal/report/csv.go
// Package: report

// Package report persists and renders experiment results: the per-size CSV
// report, the full JSON artifact and the console summary table.
package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/natefinch/atomic"

	"github.com/mwiater/searchbench/internal/harness"
)

// Header is the CSV report header row.
var Header = []string{"n", "tempo_ms", "desvio"}

// EncodeCSV renders the header and one row per summary, size as an integer
// and both durations with exactly six fractional digits.
func EncodeCSV(rows []harness.SizeSummary) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(Header); err != nil {
		return nil, err
	}
	for _, r := range rows {
		rec := []string{
			strconv.Itoa(r.Size),
			strconv.FormatFloat(r.MeanMillis, 'f', 6, 64),
			strconv.FormatFloat(r.StdDevMillis, 'f', 6, 64),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteCSV writes the report to path, creating missing parent directories.
// The file is replaced atomically, so a reader never sees half a report.
func WriteCSV(path string, rows []harness.SizeSummary) error {
	data, err := EncodeCSV(rows)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create results dir: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}

// CSVReporter writes the summaries of a run to Path.
type CSVReporter struct {
	Path string
}

// Report implements harness.Reporter.
func (r CSVReporter) Report(_ context.Context, res harness.SuiteResult) error {
	return WriteCSV(r.Path, res.Summaries)
}
