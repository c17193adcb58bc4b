// Package report renders scalar vectors and their differences for
// diagnosing kernel mismatches.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// labelWidth is the width the label column is right-aligned to.
const labelWidth = 32

// FormatValue renders v as fixed-point when it is zero or its magnitude lies
// in (1e-6, 1e4), as scientific notation otherwise, and NaN as "nan".
func FormatValue(v float64) string {
	a := math.Abs(v)
	switch {
	case v == 0 || (a > 1e-6 && a < 1e4):
		return fmt.Sprintf("%+6.6f", v)
	case math.IsNaN(v):
		return fmt.Sprintf("%6snan", "")
	default:
		return fmt.Sprintf("%+2.3e", v)
	}
}

// WriteArray writes label and values on one line, tab separated. With
// columns > 0 the values wrap every columns entries onto indented
// continuation lines, which is how Jacobian blocks are shown.
func WriteArray(w io.Writer, label string, values []float64, columns int) {
	sb := &strings.Builder{}

	if label != "" {
		fmt.Fprintf(sb, "%*s: \t", labelWidth, label)
	}
	for i, v := range values {
		sb.WriteString(FormatValue(v))
		sb.WriteByte('\t')
		if columns != 0 && i%columns == columns-1 {
			fmt.Fprintf(sb, "\n%*s  \t", labelWidth, "")
		}
	}
	sb.WriteByte('\n')

	_, _ = io.WriteString(w, sb.String())
}

// Diff stores |a[i]-b[i]| in dst, if dst is non-nil, and returns the error
// sqrt(Σ(a[i]-b[i])²)/n. Every pass/fail threshold is applied to this value.
// a, b and a non-nil dst must have the same length.
func Diff(dst, a, b []float64) float64 {
	if len(a) == 0 {
		return 0
	}

	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
		if dst != nil {
			dst[i] = math.Abs(d)
		}
	}
	return math.Sqrt(sum) / float64(len(a))
}

// WriteDiff writes the element-wise absolute difference of a and b under
// label and returns its Diff error.
func WriteDiff(w io.Writer, label string, a, b []float64, columns int) float64 {
	d := make([]float64, len(a))
	err := Diff(d, a, b)
	WriteArray(w, label, d, columns)
	return err
}
