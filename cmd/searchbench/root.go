// cmd/searchbench/root.go
package searchbench

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mwiater/searchbench/internal/config"
	"github.com/mwiater/searchbench/internal/telemetry"
)

var (
	// cfgFile is the --config flag.
	cfgFile string
	// vp holds the layered configuration of the running command.
	vp = viper.New()
	// settings is the validated configuration, loaded before any command runs.
	settings config.Settings
	// closeLog closes the optional log file.
	closeLog = func() error { return nil }
)

// flagKeys maps flag names to the configuration keys they override.
var flagKeys = map[string]string{
	"data-root":    config.KeyDataRoot,
	"results-dir":  config.KeyResultsDir,
	"results-file": config.KeyResultsFile,
	"sizes":        config.KeySizes,
	"trials":       config.KeyTrials,
	"target":       config.KeyTarget,
	"seed":         config.KeySeed,
	"algorithm":    config.KeyAlgorithm,
	"json":         config.KeyJSONOutput,
	"metrics-file": config.KeyMetricsFile,
	"store-type":   config.KeyStoreType,
	"store-dsn":    config.KeyStoreDSN,
	"debug":        config.KeyDebug,
	"log-file":     config.KeyLogFile,
	"log-format":   config.KeyLogFormat,
}

// rootCmd is the base Cobra command for the searchbench application.
// All subcommands are attached to this root to form the complete CLI.
var rootCmd = &cobra.Command{
	Use:   "searchbench",
	Short: "Linear search timing harness",
	Long: `searchbench times a linear search over pre-generated integer arrays of
increasing size and writes the mean and standard deviation per size to a CSV
report. Fixtures live under <data-root>/n<size>/run_<trial>.csv.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLog()
	},
}

// Execute runs the root Cobra command and all registered subcommands.
// SIGINT and SIGTERM cancel the command context. It prints any returned
// error and exits the process with a non-zero status code on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default ./searchbench.yaml)")
	pf.Bool("debug", false, "log every trial")
	pf.String("log-file", "", "also write JSON logs to this file")
	pf.String("log-format", config.DefaultLogFormat, "console log format: text or json")
	pf.String("store-type", "", "trial store backend: sqlite or postgres")
	pf.String("store-dsn", "", "trial store file path (sqlite) or connection string (postgres)")
}

// initConfig layers flags over env, config file and defaults, validates the
// result and installs the logger.
func initConfig(cmd *cobra.Command) error {
	vp = viper.New()
	if err := bindFlags(vp, cmd.Flags()); err != nil {
		return err
	}
	used, err := config.Load(vp, cfgFile)
	if err != nil {
		return err
	}
	settings, err = config.FromViper(vp)
	if err != nil {
		return err
	}
	closeLog, err = telemetry.InitLogger(settings.Debug, settings.LogFile, settings.LogFormat)
	if err != nil {
		return err
	}
	if used != "" {
		slog.Debug("config loaded", "file", used)
	}
	return nil
}

// bindFlags binds every flag of the executing command that overrides a
// configuration key. Binding per command keeps shared names like --sizes
// pointing at the command actually run.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || err != nil {
			return
		}
		err = v.BindPFlag(key, f)
	})
	return err
}

// addExperimentFlags registers the flags shared by run and generate.
func addExperimentFlags(fs *pflag.FlagSet) {
	fs.String("data-root", config.DefaultDataRoot, "fixture root directory")
	fs.IntSlice("sizes", config.DefaultSizes, "array sizes, comma separated")
	fs.Int("trials", config.DefaultTrials, "trials per size")
}
