// Package gen holds the generated kernels: closed-form value functions and
// their Jacobians, emitted over dual numbers so every partial derivative is
// exact up to rounding.
package gen

import (
	"math"

	"gonum.org/v1/gonum/num/dual"
)

// Func is a kernel body written over dual numbers. It reads len(in) scalars
// and writes exactly the declared number of outputs.
type Func func(out, in []dual.Number)

// Kernel binds a Func to its output count.
type Kernel struct {
	name    string
	outputs int
	fn      Func
}

// NewKernel returns a kernel evaluating fn into outputs scalars.
func NewKernel(name string, outputs int, fn Func) Kernel {
	return Kernel{name: name, outputs: outputs, fn: fn}
}

// Name returns the kernel name.
func (k Kernel) Name() string { return k.name }

// Outputs returns the size of the output vector.
func (k Kernel) Outputs() int { return k.outputs }

// Eval writes the kernel value for in into out.
func (k Kernel) Eval(out, in []float64) {
	din := lift(in)
	dout := make([]dual.Number, k.outputs)
	k.fn(dout, din)

	for i := range dout {
		out[i] = dout[i].Real
	}
}

// Jacobian returns the kernel computing ∂out/∂in[start:start+length].
func (k Kernel) Jacobian(start, length int) JacobianKernel {
	return JacobianKernel{k: k, start: start, length: length}
}

// JacobianKernel evaluates a block of partial derivatives of a Kernel.
type JacobianKernel struct {
	k      Kernel
	start  int
	length int
}

// Eval writes outputs×length partials into out, output-major:
// out[n*length+i] = ∂out_n/∂in_{start+i}.
func (j JacobianKernel) Eval(out, in []float64) {
	din := lift(in)
	dout := make([]dual.Number, j.k.outputs)

	for i := 0; i < j.length; i++ {
		col := j.start + i
		din[col].Emag = 1
		j.k.fn(dout, din)
		din[col].Emag = 0

		for n := range dout {
			out[n*j.length+i] = dout[n].Emag
		}
	}
}

func lift(in []float64) []dual.Number {
	d := make([]dual.Number, len(in))
	for i, v := range in {
		d[i] = dual.Number{Real: v}
	}
	return d
}

func konst(v float64) dual.Number { return dual.Number{Real: v} }

func add(a, b dual.Number) dual.Number { return dual.Add(a, b) }

func sub(a, b dual.Number) dual.Number { return dual.Sub(a, b) }

func mul(a, b dual.Number) dual.Number { return dual.Mul(a, b) }

func div(a, b dual.Number) dual.Number { return dual.Mul(a, dual.Inv(b)) }

func neg(a dual.Number) dual.Number { return dual.Scale(-1, a) }

func sq(a dual.Number) dual.Number { return dual.Mul(a, a) }

// atan2 is not provided by num/dual; d atan2(y, x) = (x·dy − y·dx)/(x²+y²).
func atan2(y, x dual.Number) dual.Number {
	den := x.Real*x.Real + y.Real*y.Real
	return dual.Number{
		Real: math.Atan2(y.Real, x.Real),
		Emag: (x.Real*y.Emag - y.Real*x.Emag) / den,
	}
}

// clamp saturates a to [lo, hi]; the derivative is zero outside the range.
func clamp(a dual.Number, lo, hi float64) dual.Number {
	switch {
	case a.Real < lo:
		return konst(lo)
	case a.Real > hi:
		return konst(hi)
	default:
		return a
	}
}

// asin is dual.Asin for arguments already passed through clamp. A saturated
// argument carries no derivative, and dual.Asin would report +Inf for it.
func asin(a dual.Number) dual.Number {
	if a.Real <= -1 || a.Real >= 1 {
		return dual.Number{Real: math.Asin(math.Max(-1, math.Min(1, a.Real)))}
	}
	return dual.Asin(a)
}
