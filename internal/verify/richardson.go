package verify

import "math"

// Tableau is one Richardson table: row m holds the central difference at
// step Step/2^m in column 0 and its successive extrapolations in columns
// 1..m. Cells above the diagonal are never written and stay NaN.
type Tableau struct {
	Rows  int
	Cells []float64
}

func newTableau(rows int) Tableau {
	t := Tableau{Rows: rows, Cells: make([]float64, rows*rows)}
	for i := range t.Cells {
		t.Cells[i] = math.NaN()
	}
	return t
}

// At returns cell (m, d).
func (t Tableau) At(m, d int) float64 { return t.Cells[m*t.Rows+d] }

func (t Tableau) set(m, d int, v float64) { t.Cells[m*t.Rows+d] = v }

// Best returns the bottom-right cell, the extrapolated derivative.
func (t Tableau) Best() float64 { return t.At(t.Rows-1, t.Rows-1) }

// Convergence returns |D[m][m] - D[m-1][m-1]| for m = 1..Rows-1. A
// well-behaved estimate shrinks towards the end.
func (t Tableau) Convergence() []float64 {
	if t.Rows < 2 {
		return nil
	}
	deltas := make([]float64, t.Rows-1)
	for m := 1; m < t.Rows; m++ {
		deltas[m-1] = math.Abs(t.At(m, m) - t.At(m-1, m-1))
	}
	return deltas
}

// Extrapolator estimates partial derivatives of a kernel by central
// differences refined with Richardson extrapolation.
type Extrapolator struct {
	Rows int
	Step float64
	// Probe, if set, is called with every perturbed input and the kernel
	// output there. It must not modify either slice.
	Probe func(in, out []float64)
}

// Table builds one Tableau per output for the derivative with respect to
// x[dim]. x is not modified.
func (e Extrapolator) Table(f Kernel, x []float64, outputs, dim int) []Tableau {
	rows := max(e.Rows, 1)
	tabs := make([]Tableau, outputs)
	for n := range tabs {
		tabs[n] = newTableau(rows)
	}

	in := append([]float64(nil), x...)
	hi := make([]float64, outputs)
	lo := make([]float64, outputs)

	h := e.Step
	for m := 0; m < rows; m++ {
		in[dim] = x[dim] + h
		f.Eval(hi, in)
		e.probe(in, hi)

		in[dim] = x[dim] - h
		f.Eval(lo, in)
		e.probe(in, lo)

		in[dim] = x[dim]

		for n, t := range tabs {
			t.set(m, 0, (hi[n]-lo[n])/(2*h))
			p := 4.0
			for d := 1; d <= m; d++ {
				t.set(m, d, (p*t.At(m, d-1)-t.At(m-1, d-1))/(p-1))
				p *= 4
			}
		}
		h /= 2
	}
	return tabs
}

func (e Extrapolator) probe(in, out []float64) {
	if e.Probe != nil {
		e.Probe(in, out)
	}
}

// Jacobian estimates the outputs×length block of partials of f with respect
// to x[start:start+length], output-major: jac[n*length+i].
func (e Extrapolator) Jacobian(f Kernel, x []float64, outputs, start, length int) []float64 {
	jac, _ := e.jacobian(f, x, outputs, start, length)
	return jac
}

// jacobian also returns the largest final convergence delta over all
// tables.
func (e Extrapolator) jacobian(f Kernel, x []float64, outputs, start, length int) ([]float64, float64) {
	jac := make([]float64, outputs*length)
	var worst float64
	for i := 0; i < length; i++ {
		for n, t := range e.Table(f, x, outputs, start+i) {
			jac[n*length+i] = t.Best()
			if c := t.Convergence(); len(c) > 0 {
				worst = math.Max(worst, c[len(c)-1])
			}
		}
	}
	return jac, worst
}
