package main

import (
	"fmt"

	"github.com/example/kernelcheck/internal/cases"
	"github.com/example/kernelcheck/internal/verify"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered cases with their input layout and Jacobian blocks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()

			for _, t := range cases.All() {
				c, ok := t.(*verify.Case)
				if !ok {
					fmt.Fprintf(w, "%-24s fixed value\n", t.TestName())
					continue
				}

				fmt.Fprintf(w, "%-24s inputs=%-3d outputs=%d", c.Name, c.Input.Len(), c.Outputs)
				for _, j := range c.Jacobians {
					fmt.Fprintf(w, " %s[%d:%d]", j.Suffix, j.Start, j.Start+j.Length)
				}
				fmt.Fprintln(w)
			}
			return nil
		},
	}
}
