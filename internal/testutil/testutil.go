// Package testutil provides shared helpers for kernel tests: skips for the
// long randomized runs and tolerance assertions on flat float vectors.
//
// Typical usage:
//
//	func TestFullRun(t *testing.T) {
//	    testutil.RequireLong(t)
//	    ...
//	    testutil.AssertClose(t, "jacobian", got, want, 1e-9)
//	}
package testutil

import (
	"math"
	"os"
	"testing"
)

// LongEnv forces the long tests to run even under -short.
const LongEnv = "KERNELCHECK_LONG_TESTS"

// RequireLong skips the test under -short unless LongEnv is set. Full
// randomized case runs draw thousands of samples per case.
func RequireLong(tb testing.TB) {
	tb.Helper()

	if os.Getenv(LongEnv) != "" {
		return
	}
	if testing.Short() {
		tb.Skipf("randomized run skipped in -short mode; set %s=1 to force", LongEnv)
	}
}

// AssertClose fails the test if got and want differ in length or any
// element differs by more than tol. NaN never compares close.
func AssertClose(tb testing.TB, what string, got, want []float64, tol float64) {
	tb.Helper()

	if len(got) != len(want) {
		tb.Fatalf("%s: len %d; want %d", what, len(got), len(want))
	}

	for i := range got {
		if !(math.Abs(got[i]-want[i]) <= tol) {
			tb.Fatalf("%s[%d] = %v; want %v ± %g (all: %v vs %v)", what, i, got[i], want[i], tol, got, want)
		}
	}
}

// AssertFinite fails the test if any element of v is NaN or infinite.
func AssertFinite(tb testing.TB, what string, v []float64) {
	tb.Helper()

	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			tb.Fatalf("%s[%d] = %v; want finite (all: %v)", what, i, x, v)
		}
	}
}
