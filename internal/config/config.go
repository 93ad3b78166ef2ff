// internal/config/config.go
// Package: config

// Package config loads the benchmark settings from defaults, an optional
// YAML config file, SEARCHBENCH_* environment variables (a .env file
// included) and command-line flags, highest last.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/mwiater/searchbench/internal/harness"
	"github.com/mwiater/searchbench/internal/search"
)

// EnvPrefix prefixes every environment variable, e.g. SEARCHBENCH_TRIALS.
const EnvPrefix = "SEARCHBENCH"

// Config keys. Nested keys map to env vars with "." replaced by "_".
const (
	KeyDataRoot    = "data_root"
	KeyResultsDir  = "results_dir"
	KeyResultsFile = "results_file"
	KeySizes       = "sizes"
	KeyTrials      = "trials"
	KeyTarget      = "target"
	KeySeed        = "seed"
	KeyAlgorithm   = "algorithm"
	KeyJSONOutput  = "json_output"
	KeyMetricsFile = "metrics_file"
	KeyStoreType   = "store.type"
	KeyStoreDSN    = "store.dsn"
	KeyDebug       = "debug"
	KeyLogFile     = "log_file"
	KeyLogFormat   = "log_format"
)

// DefaultSizes are the array sizes benchmarked when none are configured.
var DefaultSizes = []int{10000, 20000, 30000, 40000, 50000, 60000, 70000, 80000, 90000, 100000}

// Defaults.
const (
	DefaultTrials      = 50
	DefaultDataRoot    = "dados"
	DefaultResultsDir  = "resultados/brutos/estatisticas"
	DefaultResultsFile = "resultados_Go.csv"
	DefaultAlgorithm   = "linear"
	DefaultLogFormat   = "text"
)

var errInvalidSettings = errors.New("invalid settings")

// Settings is the typed view of the effective configuration.
type Settings struct {
	DataRoot    string `json:"data_root"`
	ResultsDir  string `json:"results_dir"`
	ResultsFile string `json:"results_file"`
	Sizes       []int  `json:"sizes"`
	Trials      int    `json:"trials"`
	Target      string `json:"target"`
	Seed        uint64 `json:"seed"`
	Algorithm   string `json:"algorithm"`

	JSONOutput  string `json:"json_output,omitempty"`
	MetricsFile string `json:"metrics_file,omitempty"`
	StoreType   string `json:"store_type,omitempty"`
	StoreDSN    string `json:"store_dsn,omitempty"`

	Debug     bool   `json:"debug"`
	LogFile   string `json:"log_file,omitempty"`
	LogFormat string `json:"log_format"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDataRoot, DefaultDataRoot)
	v.SetDefault(KeyResultsDir, DefaultResultsDir)
	v.SetDefault(KeyResultsFile, DefaultResultsFile)
	v.SetDefault(KeySizes, DefaultSizes)
	v.SetDefault(KeyTrials, DefaultTrials)
	v.SetDefault(KeyTarget, string(harness.TargetLast))
	v.SetDefault(KeySeed, 0)
	v.SetDefault(KeyAlgorithm, DefaultAlgorithm)
	v.SetDefault(KeyJSONOutput, "")
	v.SetDefault(KeyMetricsFile, "")
	v.SetDefault(KeyStoreType, "")
	v.SetDefault(KeyStoreDSN, "")
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLogFormat, DefaultLogFormat)
}

// Load prepares v: defaults, .env files, environment binding and the
// config file. With an empty cfgFile, searchbench.{yaml,json,toml} is looked
// up in the working directory and its absence is not an error. It returns
// the config file actually used, if any.
func Load(v *viper.Viper, cfgFile string, envFiles ...string) (string, error) {
	// A missing .env file is normal.
	_ = godotenv.Load(envFiles...)

	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("searchbench")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("read config: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// FromViper decodes the effective settings and validates them.
func FromViper(v *viper.Viper) (Settings, error) {
	sizes, err := toSizes(v.Get(KeySizes))
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %s: %v", errInvalidSettings, KeySizes, err)
	}
	seed, err := cast.ToUint64E(v.Get(KeySeed))
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %s: %v", errInvalidSettings, KeySeed, err)
	}

	s := Settings{
		DataRoot:    v.GetString(KeyDataRoot),
		ResultsDir:  v.GetString(KeyResultsDir),
		ResultsFile: v.GetString(KeyResultsFile),
		Sizes:       sizes,
		Trials:      v.GetInt(KeyTrials),
		Target:      v.GetString(KeyTarget),
		Seed:        seed,
		Algorithm:   v.GetString(KeyAlgorithm),
		JSONOutput:  v.GetString(KeyJSONOutput),
		MetricsFile: v.GetString(KeyMetricsFile),
		StoreType:   v.GetString(KeyStoreType),
		StoreDSN:    v.GetString(KeyStoreDSN),
		Debug:       v.GetBool(KeyDebug),
		LogFile:     v.GetString(KeyLogFile),
		LogFormat:   v.GetString(KeyLogFormat),
	}
	return s, s.Validate()
}

// toSizes accepts a slice from a config file or flag, or a comma-separated
// string from the environment.
func toSizes(raw any) ([]int, error) {
	if str, ok := raw.(string); ok {
		var out []int
		for _, f := range strings.FieldsFunc(str, func(r rune) bool { return r == ',' || r == ' ' }) {
			n, err := cast.ToIntE(f)
			if err != nil {
				return nil, err
			}
			out = append(out, n)
		}
		return out, nil
	}
	return cast.ToIntSliceE(raw)
}

// Validate rejects settings no experiment can run with.
func (s Settings) Validate() error {
	if len(s.Sizes) == 0 {
		return fmt.Errorf("%w: at least one size is required", errInvalidSettings)
	}
	for _, n := range s.Sizes {
		if n <= 0 {
			return fmt.Errorf("%w: size %d must be positive", errInvalidSettings, n)
		}
	}
	if s.Trials <= 0 {
		return fmt.Errorf("%w: trials must be positive, got %d", errInvalidSettings, s.Trials)
	}
	if _, err := harness.ParseTargetMode(s.Target); err != nil {
		return fmt.Errorf("%w: %v", errInvalidSettings, err)
	}
	if _, err := search.Lookup(s.Algorithm); err != nil {
		return fmt.Errorf("%w: %v", errInvalidSettings, err)
	}
	switch s.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log format %q (want text or json)", errInvalidSettings, s.LogFormat)
	}
	return nil
}

// ResultsPath is the CSV report location.
func (s Settings) ResultsPath() string {
	return filepath.Join(s.ResultsDir, s.ResultsFile)
}

// Experiment converts the settings into a harness configuration.
func (s Settings) Experiment() (harness.Config, error) {
	fn, err := search.Lookup(s.Algorithm)
	if err != nil {
		return harness.Config{}, err
	}
	mode, err := harness.ParseTargetMode(s.Target)
	if err != nil {
		return harness.Config{}, err
	}
	return harness.Config{
		DataRoot:  s.DataRoot,
		Sizes:     s.Sizes,
		Trials:    s.Trials,
		Target:    mode,
		Seed:      s.Seed,
		Algorithm: s.Algorithm,
		Search:    fn,
	}, nil
}
