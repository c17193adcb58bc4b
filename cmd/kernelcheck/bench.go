package main

import (
	"fmt"
	"io"
	"os"
	"runtime/pprof"

	"github.com/example/kernelcheck/internal/bench"
	"github.com/example/kernelcheck/internal/cases"
	"github.com/example/kernelcheck/internal/config"
	"github.com/example/kernelcheck/internal/verify"
	"github.com/spf13/cobra"
)

func newBenchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bench [case...]",
		Short: "Measure generated and reference kernel throughput",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			tests, err := cases.Select(args)
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true

			cfg.Bench.Enabled = true
			// Dumps would interleave with the report.
			cfg.Report.Verbose = false

			if cfg.Bench.CPUProfile != "" {
				stop, err := startCPUProfile(cfg.Bench.CPUProfile)
				if err != nil {
					return err
				}
				defer stop()
			}

			results := runBench(cfg, tests)
			stats := bench.ComputeStats(results)

			out := cmd.OutOrStdout()
			switch cfg.Report.Format {
			case config.FormatJSON:
				bench.FormatJSON(results, stats, out)
			case config.FormatJCS:
				if err := bench.FormatCanonicalJSON(results, stats, out); err != nil {
					return err
				}
			default:
				bench.FormatTable(results, stats, out)
			}

			return bench.CheckSpeedupThreshold(stats, cfg.Bench.MinSpeedup)
		},
	}
}

// runBench runs the value check of every case in tests, which measures
// throughput on its final sample. Fixed-value checks are skipped.
func runBench(cfg config.Config, tests []verify.Test) []bench.Result {
	r := newRunner(cfg, io.Discard)

	var results []bench.Result
	for _, t := range tests {
		c, ok := t.(*verify.Case)
		if !ok {
			continue
		}
		if v := r.CheckValues(c); v.Bench != nil {
			results = append(results, *v.Bench)
		}
	}
	return results
}

func startCPUProfile(path string) (func(), error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create cpu profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("start cpu profile: %w", err)
	}
	return func() {
		pprof.StopCPUProfile()
		_ = f.Close()
	}, nil
}
