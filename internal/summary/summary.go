// Package summary prints the per-test verdicts of a kernelcheck run.
package summary

import (
	"fmt"
	"io"

	"github.com/example/kernelcheck/internal/report"
	"github.com/example/kernelcheck/internal/verify"
)

// PassMark and FailMark are the prefix symbols printed for each check result.
const (
	PassMark = "✓"
	FailMark = "✗"
)

// Result collects the failed checks of a run.
type Result struct {
	total    int
	failures []string
}

// Failed returns true if any check failed.
func (r *Result) Failed() bool { return len(r.failures) > 0 }

// Failures returns the list of failure messages.
func (r *Result) Failures() []string { return append([]string(nil), r.failures...) }

// Total returns how many tests were summarised.
func (r *Result) Total() int { return r.total }

func (r *Result) fail(msg string) { r.failures = append(r.failures, msg) }

// Write prints one line per outcome, and one indented line per failed
// sub-check, each prefixed with PassMark or FailMark.
func Write(outcomes []verify.Outcome, w io.Writer) Result {
	var res Result
	res.total = len(outcomes)
	failed := 0

	for _, o := range outcomes {
		if o.Passed {
			fmt.Fprintf(w, "%s %s\n", PassMark, o.Name)
			continue
		}
		fmt.Fprintf(w, "%s %s\n", FailMark, o.Name)
		before := len(res.failures)

		if v := o.Values; v != nil && !v.Passed {
			res.fail(fmt.Sprintf("%s: value error %s", o.Name, report.FormatValue(v.Err)))
			fmt.Fprintf(w, "    %s values: error %s (%d/%d trials failed)\n",
				FailMark, report.FormatValue(v.Err), v.Failures, v.Trials)
		}
		for _, j := range o.Jacobians {
			if j.Passed {
				continue
			}
			res.fail(fmt.Sprintf("%s: jacobian error %s", j.Name, report.FormatValue(j.Err)))
			fmt.Fprintf(w, "    %s %s: error %s\n", FailMark, j.Name, report.FormatValue(j.Err))
		}
		if f := o.Fixed; f != nil && !f.Passed {
			res.fail(fmt.Sprintf("%s: got %.16f, want %.12f", o.Name, f.Got, f.Want))
			fmt.Fprintf(w, "    %s got %.16f, want %.12f\n", FailMark, f.Got, f.Want)
		}
		if len(res.failures) == before {
			res.fail(o.Name + ": failed")
		}
		failed++
	}

	fmt.Fprintf(w, "%d/%d passed\n", res.total-failed, res.total)
	return res
}
