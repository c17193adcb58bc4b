package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/example/kernelcheck/internal/cases"
	"github.com/example/kernelcheck/internal/config"
	"github.com/example/kernelcheck/internal/sample"
	"github.com/example/kernelcheck/internal/verify"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	activeCfg config.Config
	loaded    bool
)

func NewRootCmd() *cobra.Command {
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "kernelcheck",
		Short: "Verify generated numerical kernels and their Jacobians",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(config.LoadOptions{
				Cmd:        cmd,
				ConfigFile: cfgFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}
			activeCfg = cfg
			loaded = true
			setupLogger(cfg.LogLevel)
			return nil
		},
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newBenchCmd())

	return cmd
}

// setupLogger configures the process-wide slog default logger.
func setupLogger(levelStr string) {
	lvl, err := config.ParseLogLevel(levelStr)
	if err != nil {
		lvl = slog.LevelInfo
	}
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(h))
}

func requireConfig() (config.Config, error) {
	if !loaded {
		return config.Config{}, fmt.Errorf("configuration not loaded")
	}
	return activeCfg, nil
}

// newRunner builds a Runner from cfg writing diagnostics to w.
func newRunner(cfg config.Config, w io.Writer) *verify.Runner {
	src := sample.NewSource(cfg.Check.Seed)
	slog.Info("random source", slog.Uint64("seed", src.Seed()))
	for name := range cfg.Check.Tolerances {
		if _, err := cases.Lookup(name); err != nil {
			slog.Warn("tolerance override for unknown case", slog.String("case", name))
		}
	}

	return verify.NewRunner(src, w,
		verify.WithOptions(verifyOptions(cfg)),
		verify.WithLogger(slog.Default()),
	)
}

func verifyOptions(cfg config.Config) verify.Options {
	return verify.Options{
		Trials:      cfg.Check.Trials,
		Tolerance:   cfg.Check.Tolerance,
		Tolerances:  cfg.Check.Tolerances,
		Rows:        cfg.Jacobian.Rows,
		Step:        cfg.Jacobian.Step,
		Bench:       cfg.Bench.Enabled,
		BenchWindow: cfg.Bench.Window,
		Verbose:     cfg.Report.Verbose,
	}
}
