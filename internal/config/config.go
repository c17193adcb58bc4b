package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Check    CheckConfig    `mapstructure:"check"`
	Jacobian JacobianConfig `mapstructure:"jacobian"`
	Bench    BenchConfig    `mapstructure:"bench"`
	Report   ReportConfig   `mapstructure:"report"`
	LogLevel string         `mapstructure:"log_level"`
}

type CheckConfig struct {
	Trials    int     `mapstructure:"trials"`
	Tolerance float64 `mapstructure:"tolerance"`
	Seed      uint64  `mapstructure:"seed"`

	// Tolerances overrides Tolerance per case name. It is read from the
	// config file only.
	Tolerances map[string]float64 `mapstructure:"tolerances"`
}

type JacobianConfig struct {
	Rows int     `mapstructure:"rows"`
	Step float64 `mapstructure:"step"`
}

type BenchConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	Window     time.Duration `mapstructure:"window"`
	MinSpeedup float64       `mapstructure:"min_speedup"`
	CPUProfile string        `mapstructure:"cpuprofile"`
}

type ReportConfig struct {
	Format  string `mapstructure:"format"`
	Verbose bool   `mapstructure:"verbose"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		Check: CheckConfig{
			Trials:    1000,
			Tolerance: 1e-5,
			Seed:      0,
		},
		Jacobian: JacobianConfig{
			Rows: 10,
			Step: 2,
		},
		Bench: BenchConfig{
			Enabled:    true,
			Window:     time.Second,
			MinSpeedup: 0,
		},
		Report: ReportConfig{
			Format:  FormatTable,
			Verbose: true,
		},
		LogLevel: "info",
	}
}

// flagKeys maps each flag registered by RegisterFlags to its config key.
var flagKeys = []struct{ flag, key string }{
	{"trials", "check.trials"},
	{"tolerance", "check.tolerance"},
	{"seed", "check.seed"},
	{"jacobian-rows", "jacobian.rows"},
	{"jacobian-step", "jacobian.step"},
	{"bench", "bench.enabled"},
	{"bench-window", "bench.window"},
	{"min-speedup", "bench.min_speedup"},
	{"cpuprofile", "bench.cpuprofile"},
	{"format", "report.format"},
	{"verbose", "report.verbose"},
	{"log-level", "log_level"},
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.Int("trials", defaults.Check.Trials, "Random trials per value check before the reported sample")
	fs.Float64("tolerance", defaults.Check.Tolerance, "Error threshold for value and Jacobian checks")
	fs.Uint64("seed", defaults.Check.Seed, "Random seed (0 seeds from entropy)")
	fs.Int("jacobian-rows", defaults.Jacobian.Rows, "Rows of the Richardson extrapolation table")
	fs.Float64("jacobian-step", defaults.Jacobian.Step, "Initial central-difference half-width")
	fs.Bool("bench", defaults.Bench.Enabled, "Measure throughput of generated and reference kernels")
	fs.Duration("bench-window", defaults.Bench.Window, "Time spent driving each kernel during the throughput measurement")
	fs.Float64("min-speedup", defaults.Bench.MinSpeedup, "Fail bench if any generated kernel is slower than this speedup (0 disables)")
	fs.String("cpuprofile", defaults.Bench.CPUProfile, "Write a CPU profile of the benchmark to this file")
	fs.String("format", defaults.Report.Format, "Benchmark report format: table|json|jcs")
	fs.Bool("verbose", defaults.Report.Verbose, "Dump inputs and outputs of every final sample and Jacobian")
	fs.String("log-level", defaults.LogLevel, "Log level: debug|info|warn|error")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	v.SetEnvPrefix("KERNELCHECK")
	replacer := strings.NewReplacer("-", "_", ".", "_", "__", "_")
	v.SetEnvKeyReplacer(replacer)
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("kernelcheck")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	format, err := NormalizeFormat(cfg.Report.Format)
	if err != nil {
		return Config{}, err
	}
	cfg.Report.Format = format

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate rejects settings no check can run with.
func (c Config) Validate() error {
	switch {
	case c.Check.Trials < 0:
		return fmt.Errorf("check.trials must be >= 0, got %d", c.Check.Trials)
	case !(c.Check.Tolerance > 0):
		return fmt.Errorf("check.tolerance must be > 0, got %g", c.Check.Tolerance)
	case c.Jacobian.Rows < 1:
		return fmt.Errorf("jacobian.rows must be >= 1, got %d", c.Jacobian.Rows)
	case !(c.Jacobian.Step > 0):
		return fmt.Errorf("jacobian.step must be > 0, got %g", c.Jacobian.Step)
	case c.Bench.Window < 0:
		return fmt.Errorf("bench.window must be >= 0, got %s", c.Bench.Window)
	case c.Bench.MinSpeedup < 0:
		return fmt.Errorf("bench.min_speedup must be >= 0, got %g", c.Bench.MinSpeedup)
	}
	for name, tol := range c.Check.Tolerances {
		if !(tol > 0) {
			return fmt.Errorf("check.tolerances.%s must be > 0, got %g", name, tol)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("check.trials", c.Check.Trials)
	v.SetDefault("check.tolerance", c.Check.Tolerance)
	v.SetDefault("check.seed", c.Check.Seed)
	v.SetDefault("jacobian.rows", c.Jacobian.Rows)
	v.SetDefault("jacobian.step", c.Jacobian.Step)
	v.SetDefault("bench.enabled", c.Bench.Enabled)
	v.SetDefault("bench.window", c.Bench.Window)
	v.SetDefault("bench.min_speedup", c.Bench.MinSpeedup)
	v.SetDefault("bench.cpuprofile", c.Bench.CPUProfile)
	v.SetDefault("report.format", c.Report.Format)
	v.SetDefault("report.verbose", c.Report.Verbose)
	v.SetDefault("log_level", c.LogLevel)
}

// bindFlags binds the flags of fs that RegisterFlags knows about to their
// dotted keys. Flags a command does not register are skipped.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, fk := range flagKeys {
		f := fs.Lookup(fk.flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(fk.key, f); err != nil {
			return fmt.Errorf("%s: %w", fk.flag, err)
		}
	}
	return nil
}
