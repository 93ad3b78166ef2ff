// internal/report/json.go
// Package: report
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/mwiater/searchbench/internal/harness"
)

// WriteJSON persists the complete suite result, every trial included, as
// indented JSON.
func WriteJSON(path string, res harness.SuiteResult) error {
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal suite result: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(append(b, '\n'))); err != nil {
		return fmt.Errorf("write artifact %s: %w", path, err)
	}
	return nil
}

// JSONReporter writes the suite result artifact to Path.
type JSONReporter struct {
	Path string
}

// Report implements harness.Reporter.
func (r JSONReporter) Report(_ context.Context, res harness.SuiteResult) error {
	return WriteJSON(r.Path, res)
}
