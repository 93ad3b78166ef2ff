package report

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwiater/searchbench/internal/fixture"
	"github.com/mwiater/searchbench/internal/harness"
	"github.com/mwiater/searchbench/internal/search"
	"github.com/mwiater/searchbench/internal/store"
)

func TestEncodeCSV(t *testing.T) {
	rows := []harness.SizeSummary{
		{Size: 10000, MeanMillis: 0.0123456789, StdDevMillis: 0.001},
		{Size: 20000, MeanMillis: 2, StdDevMillis: 0},
	}
	b, err := EncodeCSV(rows)
	require.NoError(t, err)

	want := "n,tempo_ms,desvio\n" +
		"10000,0.012346,0.001000\n" +
		"20000,2.000000,0.000000\n"
	assert.Equal(t, want, string(b))
}

func TestEncodeCSV_Empty(t *testing.T) {
	b, err := EncodeCSV(nil)
	require.NoError(t, err)
	assert.Equal(t, "n,tempo_ms,desvio\n", string(b))
}

func TestWriteCSV_CreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resultados", "brutos", "estatisticas", "resultados_Go.csv")
	require.NoError(t, WriteCSV(path, []harness.SizeSummary{{Size: 10, MeanMillis: 1.5}}))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "n,tempo_ms,desvio\n10,1.500000,0.000000\n", string(b))

	// Overwrites in place.
	require.NoError(t, WriteCSV(path, []harness.SizeSummary{{Size: 20, MeanMillis: 2.5}}))
	b, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "n,tempo_ms,desvio\n20,2.500000,0.000000\n", string(b))
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "suite.json")
	res := harness.SuiteResult{
		Config:      harness.Config{DataRoot: "dados", Sizes: []int{10}, Trials: 1, Search: search.Linear},
		Seed:        3,
		Summaries:   []harness.SizeSummary{{Size: 10, MeanMillis: 1}},
		GeneratedAt: time.Now(),
	}
	require.NoError(t, JSONReporter{Path: path}.Report(context.Background(), res))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, float64(3), got["seed"])
	summaries := got["summaries"].([]any)
	require.Len(t, summaries, 1)
	assert.Equal(t, float64(10), summaries[0].(map[string]any)["n"])
}

func TestRenderTable(t *testing.T) {
	out := RenderTable([]harness.SizeSummary{
		{Size: 10000, MeanMillis: 0.5, StdDevMillis: 0.25, Samples: 50},
	})
	assert.Contains(t, out, "Size (n)")
	assert.Contains(t, out, "10,000")
	assert.Contains(t, out, "0.500000")
	assert.Contains(t, out, "0.250000")
	assert.Contains(t, out, "50")
}

func TestRenderAvailability(t *testing.T) {
	av := fixture.Availability{
		{Size: 10, Files: []string{"run_001.csv", "run_002.csv", "run_003.csv"}},
		{Size: 20},
	}
	out := RenderAvailability(av, 2)
	assert.Contains(t, out, "run_001.csv run_002.csv")
	assert.NotContains(t, out, "run_003.csv")
	assert.Contains(t, out, "20")
}

func TestRenderHistory(t *testing.T) {
	out := RenderHistory([]store.RunSummary{{
		Run:        store.Run{ID: 7, StartedAt: time.Now(), Algorithm: "linear", Target: "random", Seed: 99},
		Attempted:  50,
		Succeeded:  48,
		MeanMillis: 0.125,
	}})
	assert.Contains(t, out, "OK/Trials")
	assert.Contains(t, out, "48/50")
	assert.Contains(t, out, "0.125000")
	assert.Contains(t, out, "random")
}

func runExperiment(t *testing.T, root, reportPath string) (harness.SuiteResult, error) {
	t.Helper()
	e, err := harness.NewExperiment(
		harness.Config{DataRoot: root, Sizes: []int{10}, Trials: 1, Search: func(arr []int, target int) int {
			time.Sleep(time.Millisecond)
			return search.Linear(arr, target)
		}},
		harness.WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
		harness.WithReporter(CSVReporter{Path: reportPath}),
	)
	require.NoError(t, err)
	return e.Run(context.Background())
}

func TestEndToEnd_SingleFixture(t *testing.T) {
	root := t.TempDir()
	path := fixture.Path(root, 10, 1)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("1,2,3,4,5,6,7,8,9,10"), 0o644))

	reportPath := filepath.Join(t.TempDir(), "results", "resultados_Go.csv")
	_, err := runExperiment(t, root, reportPath)
	require.NoError(t, err)

	b, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "n,tempo_ms,desvio", lines[0])

	fields := strings.Split(lines[1], ",")
	require.Len(t, fields, 3)
	assert.Equal(t, "10", fields[0])
	assert.NotEqual(t, "0.000000", fields[1])
	assert.Equal(t, "0.000000", fields[2])

	// Re-running against unchanged fixtures keeps the size column.
	_, err = runExperiment(t, root, reportPath)
	require.NoError(t, err)
	b2, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	lines2 := strings.Split(strings.TrimSpace(string(b2)), "\n")
	require.Len(t, lines2, 2)
	assert.True(t, strings.HasPrefix(lines2[1], "10,"))
}

func TestEndToEnd_NoFixtures(t *testing.T) {
	reportPath := filepath.Join(t.TempDir(), "results", "resultados_Go.csv")
	_, err := runExperiment(t, t.TempDir(), reportPath)
	require.ErrorIs(t, err, harness.ErrConfiguration)

	_, statErr := os.Stat(reportPath)
	assert.True(t, os.IsNotExist(statErr), "no report may be written")
}
