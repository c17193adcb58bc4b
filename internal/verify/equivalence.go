package verify

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/example/kernelcheck/internal/bench"
	"github.com/example/kernelcheck/internal/report"
)

// ValueResult summarises a value-equivalence check.
type ValueResult struct {
	Case string
	// Err is the error of the final sample, the one the verdict is based on.
	Err    float64
	Passed bool

	// Trials, Failures, WorstErr and MeanErr describe the randomized trials
	// run before the final sample. They are diagnostics only.
	Trials   int
	Failures int
	WorstErr float64
	MeanErr  float64

	// Bench is set when throughput was measured.
	Bench *bench.Result
}

// CheckValues evaluates the generated and reference value kernels of c on
// Trials random inputs, logging every mismatch, then on one more input on
// which both, and the generated Jacobians, are also benchmarked. The verdict compares that last error to
// the tolerance.
func (r *Runner) CheckValues(c *Case) ValueResult {
	tol := r.tolerance(c.Name)
	in := make([]float64, c.Input.Len())
	gen := make([]float64, c.Outputs)
	ref := make([]float64, c.Outputs)

	res := ValueResult{Case: c.Name, Trials: r.opts.Trials}

	var sum float64
	for trial := 0; trial < r.opts.Trials; trial++ {
		c.Input.Fill(r.src, in)
		c.Generated.Eval(gen, in)
		c.Reference.Eval(ref, in)

		e := report.Diff(nil, gen, ref)
		sum += e
		if e > res.WorstErr || math.IsNaN(e) {
			res.WorstErr = e
		}
		// NaN counts as a failure.
		if !(e <= tol) {
			res.Failures++
			r.log.Warn("value mismatch",
				slog.String("case", c.Name),
				slog.Int("trial", trial),
				slog.Float64("err", e),
			)
			fmt.Fprintf(r.out, "%s eval mismatch: \n", c.Name)
			r.dumpValues(in, gen, ref)
		}
	}
	if res.Trials > 0 {
		res.MeanErr = sum / float64(res.Trials)
	}

	c.Input.Fill(r.src, in)
	if r.opts.Bench {
		b := bench.Result{
			Case:      c.Name,
			Generated: bench.Throughput(func() { c.Generated.Eval(gen, in) }, r.opts.BenchWindow, r.clock),
			Reference: bench.Throughput(func() { c.Reference.Eval(ref, in) }, r.opts.BenchWindow, r.clock),
		}
		for _, j := range c.Jacobians {
			jac := make([]float64, c.Outputs*j.Length)
			b.Jacobians = append(b.Jacobians, bench.JacobianRate{
				Name: c.JacobianName(j),
				Rate: bench.Throughput(func() { j.Kernel.Eval(jac, in) }, r.opts.BenchWindow, r.clock),
			})
		}
		res.Bench = &b
		fmt.Fprintln(r.out, bench.FormatLine(b))
		for _, j := range b.Jacobians {
			fmt.Fprintln(r.out, bench.FormatJacobianLine(j))
		}
	}

	c.Generated.Eval(gen, in)
	c.Reference.Eval(ref, in)
	if r.opts.Verbose {
		res.Err = r.dumpValues(in, gen, ref)
	} else {
		res.Err = report.Diff(nil, gen, ref)
	}
	res.Passed = res.Err <= tol

	r.log.Info("value check",
		slog.String("case", c.Name),
		slog.Float64("err", res.Err),
		slog.Int("failures", res.Failures),
		slog.Float64("worst_err", res.WorstErr),
		slog.Bool("passed", res.Passed),
	)
	return res
}

func (r *Runner) dumpValues(in, gen, ref []float64) float64 {
	report.WriteArray(r.out, "inputs", in, 0)
	report.WriteArray(r.out, "gen outputs", gen, 0)
	report.WriteArray(r.out, "outputs", ref, 0)
	e := report.WriteDiff(r.out, "Differences", gen, ref, 0)
	fmt.Fprintf(r.out, "Difference: %f\n", e)
	return e
}
