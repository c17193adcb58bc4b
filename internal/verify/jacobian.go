package verify

import (
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"

	"github.com/example/kernelcheck/internal/report"
)

// JacobianResult summarises the check of one generated Jacobian.
type JacobianResult struct {
	Name string
	// Err compares the generated Jacobian with the extrapolated estimate.
	Err    float64
	Passed bool

	// Mismatches counts perturbed inputs at which the generated and
	// reference value kernels disagreed beyond the tolerance.
	Mismatches int
	// NaiveErr compares the generated Jacobian with a single central
	// difference at a small fixed step. It is not part of the verdict.
	NaiveErr float64
	// Convergence is the largest final diagonal delta of any Richardson
	// table.
	Convergence float64
}

// CheckJacobian draws one input, evaluates j's generated Jacobian on it and
// compares the result with a Richardson estimate built from the reference
// value kernel. Every perturbed input of the estimate is also used to
// cross-check the generated value kernel.
func (r *Runner) CheckJacobian(c *Case, j Jacobian) JacobianResult {
	name := c.JacobianName(j)
	tol := r.tolerance(c.Name)
	res := JacobianResult{Name: name}

	in := make([]float64, c.Input.Len())
	c.Input.Fill(r.src, in)

	size := c.Outputs * j.Length
	genJac := make([]float64, size)
	for i := range genJac {
		genJac[i] = math.NaN()
	}
	j.Kernel.Eval(genJac, in)

	genOut := make([]float64, c.Outputs)
	ex := Extrapolator{
		Rows: r.rows(),
		Step: r.opts.Step,
		Probe: func(p, refOut []float64) {
			c.Generated.Eval(genOut, p)
			e := report.Diff(nil, genOut, refOut)
			if e <= tol {
				return
			}
			res.Mismatches++
			r.log.Warn("gen/nongen mismatch",
				slog.String("case", name),
				slog.Float64("err", e),
			)
			fmt.Fprintln(r.out, "Gen/nongen mismatch")
		},
	}
	est, conv := ex.jacobian(c.Reference, in, c.Outputs, j.Start, j.Length)
	res.Convergence = conv
	res.NaiveErr = report.Diff(nil, naiveJacobian(c.Reference, in, c.Outputs, j.Start, j.Length), genJac)

	if r.opts.Verbose {
		fmt.Fprintf(r.out, "Testing generated jacobian %s\n", name)
		report.WriteArray(r.out, "inputs", in, 0)
		report.WriteArray(r.out, "gen jacobian outputs", genJac, j.Length)
		report.WriteArray(r.out, "jacobian outputs", est, j.Length)
		res.Err = report.WriteDiff(r.out, "Differences", est, genJac, j.Length)
		fmt.Fprintf(r.out, "SSE: %f\n", res.Err)
	} else {
		res.Err = report.Diff(nil, est, genJac)
	}
	res.Passed = res.Err <= tol

	r.log.Debug("richardson convergence",
		slog.String("case", name),
		slog.Float64("delta", res.Convergence),
		slog.Float64("naive_err", res.NaiveErr),
	)
	r.log.Info("jacobian check",
		slog.String("case", name),
		slog.Float64("err", res.Err),
		slog.Int("mismatches", res.Mismatches),
		slog.Bool("passed", res.Passed),
	)
	return res
}

// naiveJacobian estimates the same block with one central difference per
// column at gonum's default step.
func naiveJacobian(f Kernel, x []float64, outputs, start, length int) []float64 {
	block := append([]float64(nil), x...)
	dst := mat.NewDense(outputs, length, nil)
	fd.Jacobian(dst, func(y, sub []float64) {
		copy(block[start:start+length], sub)
		f.Eval(y, block)
	}, x[start:start+length], &fd.JacobianSettings{Formula: fd.Central})

	jac := make([]float64, outputs*length)
	for n := 0; n < outputs; n++ {
		for i := 0; i < length; i++ {
			jac[n*length+i] = dst.At(n, i)
		}
	}
	return jac
}
