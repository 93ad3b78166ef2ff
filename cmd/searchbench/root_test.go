package searchbench

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/mwiater/searchbench/internal/fixture"
	"github.com/mwiater/searchbench/internal/harness"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func writeFixture(t *testing.T, root string, size, trial int, body string) {
	t.Helper()
	path := fixture.Path(root, size, trial)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRoot_SubcommandsPresent(t *testing.T) {
	have := map[string]*cobra.Command{}
	for _, c := range rootCmd.Commands() {
		have[c.Name()] = c
	}
	for _, want := range []string{"run", "probe", "generate", "history", "config", "list"} {
		if have[want] == nil {
			t.Fatalf("missing subcommand %s", want)
		}
	}

	groups := map[string][]string{
		"generate": {"fixtures"},
		"config":   {"show", "init"},
		"list":     {"commands", "algorithms"},
	}
	for group, subs := range groups {
		sub := map[string]bool{}
		for _, sc := range have[group].Commands() {
			sub[sc.Name()] = true
		}
		for _, want := range subs {
			if !sub[want] {
				t.Fatalf("%s must have %s subcommand, got %v", group, want, sub)
			}
		}
	}
}

func TestCommands_HaveDescriptions(t *testing.T) {
	var check func(*cobra.Command)
	check = func(cmd *cobra.Command) {
		if cmd.Short == "" || cmd.Long == "" {
			t.Fatalf("command %s missing Short/Long", cmd.Name())
		}
		for _, sc := range cmd.Commands() {
			if sc.IsAvailableCommand() {
				check(sc)
			}
		}
	}
	check(rootCmd)
}

func TestListCommands_PrintsTree(t *testing.T) {
	var buf bytes.Buffer
	listAllCommands(&buf, rootCmd)
	out := buf.String()
	for _, want := range []string{"searchbench run", "searchbench generate fixtures", "searchbench config show"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got: %s", want, out)
		}
	}
}

func TestListAlgorithms(t *testing.T) {
	out, err := execute(t, "list", "algorithms")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "linear" {
		t.Fatalf("expected linear, got: %q", out)
	}
}

func TestRun_WritesReportMetricsAndHistory(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, 10, 1, "1,2,3,4,5,6,7,8,9,10")
	writeFixture(t, root, 10, 2, "10,9,8,7,6,5,4,3,2,1")

	out := t.TempDir()
	metricsPath := filepath.Join(out, "searchbench.prom")
	dbPath := filepath.Join(out, "bench.db")

	stdout, err := execute(t, "run",
		"--data-root", root,
		"--sizes", "10,20",
		"--trials", "2",
		"--results-dir", out,
		"--results-file", "resultados_Go.csv",
		"--metrics-file", metricsPath,
		"--store-dsn", dbPath,
	)
	if err != nil {
		t.Fatalf("run failed: %v\n%s", err, stdout)
	}
	if !strings.Contains(stdout, "Report written to") {
		t.Fatalf("expected report notice, got: %s", stdout)
	}

	b, err := os.ReadFile(filepath.Join(out, "resultados_Go.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 2 || lines[0] != "n,tempo_ms,desvio" || !strings.HasPrefix(lines[1], "10,") {
		t.Fatalf("unexpected report:\n%s", b)
	}

	prom, err := os.ReadFile(metricsPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(prom), `searchbench_trials_total{outcome="skipped",size="20"} 2`) {
		t.Fatalf("expected skipped trials for size 20:\n%s", prom)
	}

	hist, err := execute(t, "history", "--store-dsn", dbPath, "--limit", "5")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(hist, "2/4") {
		t.Fatalf("expected 2 of 4 trials ok in history, got: %s", hist)
	}
}

func TestRun_NoFixtures(t *testing.T) {
	out := t.TempDir()
	stdout, err := execute(t, "run",
		"--data-root", t.TempDir(),
		"--sizes", "10",
		"--trials", "1",
		"--results-dir", out,
		"--metrics-file", "",
		"--store-dsn", "",
	)
	if !errors.Is(err, harness.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
	if !strings.Contains(stdout, "No fixture files found") {
		t.Fatalf("expected hint, got: %s", stdout)
	}
	if _, err := os.Stat(filepath.Join(out, "resultados_Go.csv")); !os.IsNotExist(err) {
		t.Fatalf("no report may be written, stat err: %v", err)
	}
}

func TestProbe(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, 10, 1, "1,2,3")

	out, err := execute(t, "probe", "--data-root", root, "--sizes", "10,20")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "run_001.csv") || !strings.Contains(out, "1 fixture files") {
		t.Fatalf("unexpected probe output: %s", out)
	}

	_, err = execute(t, "probe", "--data-root", t.TempDir(), "--sizes", "10")
	if !errors.Is(err, harness.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestGenerateFixtures_NoTUI(t *testing.T) {
	root := t.TempDir()
	out, err := execute(t, "generate", "fixtures", "--data-root", root, "--sizes", "10,20", "--trials", "2", "--no-tui")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "4 written, 0 skipped") {
		t.Fatalf("unexpected output: %s", out)
	}
	arr, err := fixture.Read(fixture.Path(root, 20, 2))
	if err != nil || len(arr) != 20 {
		t.Fatalf("expected 20 values, got %d (%v)", len(arr), err)
	}
}

func TestConfigShow(t *testing.T) {
	out, err := execute(t, "config", "show")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Config file:") || !strings.Contains(out, "Trials") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestHistory_RequiresStore(t *testing.T) {
	_, err := execute(t, "history", "--store-type", "", "--store-dsn", "")
	if !errors.Is(err, errNoStore) {
		t.Fatalf("expected errNoStore, got %v", err)
	}
}
