package main

import (
	"fmt"

	"github.com/example/kernelcheck/internal/cases"
	"github.com/example/kernelcheck/internal/summary"
	"github.com/example/kernelcheck/internal/verify"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [case...]",
		Short: "Run value and Jacobian checks (all cases when none are named)",
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

			out := cmd.OutOrStdout()
			r := newRunner(cfg, out)

			outcomes := make([]verify.Outcome, 0, len(tests))
			for _, t := range tests {
				outcomes = append(outcomes, t.Run(r))
			}

			res := summary.Write(outcomes, out)
			if res.Failed() {
				return fmt.Errorf("%d of %d checks failed", len(res.Failures()), res.Total())
			}
			return nil
		},
	}
}
