// Package verify checks generated numerical kernels against hand-written
// reference implementations: value equivalence over random inputs, and
// generated Jacobians against Richardson-extrapolated finite differences.
package verify

import (
	"errors"
	"fmt"

	"github.com/example/kernelcheck/internal/sample"
)

// MaxJacobians bounds the Jacobian descriptors one case may declare.
const MaxJacobians = 16

var (
	// ErrUnknownCase is returned when a case name is not registered.
	ErrUnknownCase = errors.New("verify: unknown case")

	// ErrInvalidCase is returned by Case.Validate.
	ErrInvalidCase = errors.New("verify: invalid case")
)

// Kernel maps a flat input block to a flat output vector. Eval must not
// retain in or out.
type Kernel interface {
	Eval(out, in []float64)
}

// KernelFunc adapts an ordinary function to Kernel.
type KernelFunc func(out, in []float64)

// Eval calls f(out, in).
func (f KernelFunc) Eval(out, in []float64) { f(out, in) }

// Jacobian describes one generated Jacobian kernel of a case. Kernel writes
// Outputs×Length partials of the value function with respect to
// in[Start:Start+Length], output-major: out[n*Length+i].
type Jacobian struct {
	Suffix string
	Kernel Kernel
	Start  int
	Length int
}

// Case binds a reference kernel, its generated counterpart, an input
// generator and the generated Jacobians to check.
type Case struct {
	Name      string
	Reference Kernel
	Generated Kernel
	Input     sample.Generator
	Outputs   int
	Jacobians []Jacobian
}

// TestName returns the case name.
func (c *Case) TestName() string { return c.Name }

// JacobianName returns the reported name of j, e.g. "invert_pose_pose".
func (c *Case) JacobianName(j Jacobian) string { return c.Name + "_" + j.Suffix }

// Validate reports whether c can be run.
func (c *Case) Validate() error {
	switch {
	case c.Name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidCase)
	case c.Reference == nil || c.Generated == nil:
		return fmt.Errorf("%w: %s: missing value kernel", ErrInvalidCase, c.Name)
	case c.Input == nil:
		return fmt.Errorf("%w: %s: missing input generator", ErrInvalidCase, c.Name)
	case c.Outputs <= 0:
		return fmt.Errorf("%w: %s: outputs must be positive, got %d", ErrInvalidCase, c.Name, c.Outputs)
	case len(c.Jacobians) > MaxJacobians:
		return fmt.Errorf("%w: %s: %d jacobians exceeds limit %d", ErrInvalidCase, c.Name, len(c.Jacobians), MaxJacobians)
	}

	n := c.Input.Len()
	for _, j := range c.Jacobians {
		if j.Kernel == nil {
			return fmt.Errorf("%w: %s: missing kernel", ErrInvalidCase, c.JacobianName(j))
		}
		if j.Start < 0 || j.Length <= 0 || j.Start+j.Length > n {
			return fmt.Errorf("%w: %s: range [%d,%d) outside input block of %d",
				ErrInvalidCase, c.JacobianName(j), j.Start, j.Start+j.Length, n)
		}
	}
	return nil
}
