package verify

import (
	"fmt"
	"log/slog"
	"math"
)

// Test is one registered check.
type Test interface {
	TestName() string
	Run(r *Runner) Outcome
}

// Outcome is the verdict of one test.
type Outcome struct {
	Name      string
	Passed    bool
	Values    *ValueResult
	Jacobians []JacobianResult
	Fixed     *FixedResult
}

// Status maps the outcome onto a process-style status: 0 pass, 1 fail.
func (o Outcome) Status() int {
	if o.Passed {
		return 0
	}
	return 1
}

// Run implements Test.
func (c *Case) Run(r *Runner) Outcome { return r.RunCase(c) }

// RunCase runs the value check of c and then every Jacobian check in
// declaration order. Every check runs even after one has failed.
func (r *Runner) RunCase(c *Case) Outcome {
	vr := r.CheckValues(c)
	out := Outcome{Name: c.Name, Values: &vr, Passed: vr.Passed}

	for _, j := range c.Jacobians {
		jr := r.CheckJacobian(c, j)
		out.Jacobians = append(out.Jacobians, jr)
		out.Passed = out.Passed && jr.Passed
	}

	r.log.Info("case finished", slog.String("case", c.Name), slog.Bool("passed", out.Passed))
	return out
}

// FixedCheck compares one deterministic scalar with a known value.
type FixedCheck struct {
	Name      string
	Eval      func() float64
	Want      float64
	Tolerance float64
}

// FixedResult is the outcome of a FixedCheck.
type FixedResult struct {
	Got    float64
	Want   float64
	Err    float64
	Passed bool
}

// TestName returns the check name.
func (f *FixedCheck) TestName() string { return f.Name }

// Run implements Test.
func (f *FixedCheck) Run(r *Runner) Outcome { return r.RunFixed(f) }

// RunFixed evaluates f and compares it with f.Want.
func (r *Runner) RunFixed(f *FixedCheck) Outcome {
	tol := f.Tolerance
	if tol <= 0 {
		tol = r.tolerance(f.Name)
	}

	got := f.Eval()
	fr := FixedResult{Got: got, Want: f.Want, Err: math.Abs(got - f.Want)}
	fr.Passed = fr.Err <= tol

	fmt.Fprintf(r.out, "%.16f\n", got)
	r.log.Info("fixed check",
		slog.String("case", f.Name),
		slog.Float64("got", got),
		slog.Float64("want", f.Want),
		slog.Bool("passed", fr.Passed),
	)
	return Outcome{Name: f.Name, Passed: fr.Passed, Fixed: &fr}
}

// Entry returns a zero-argument entry point running t on r and reporting
// its status.
func Entry(r *Runner, t Test) func() int {
	return func() int { return t.Run(r).Status() }
}
