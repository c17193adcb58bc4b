package summary

import (
	"bytes"
	"strings"
	"testing"

	"github.com/example/kernelcheck/internal/verify"
)

func TestWrite_AllPass(t *testing.T) {
	var buf bytes.Buffer
	res := Write([]verify.Outcome{
		{Name: "quatrotateabout", Passed: true},
		{Name: "reproject_gen2_vals", Passed: true},
	}, &buf)

	if res.Failed() {
		t.Fatalf("Failed() = true; failures %v", res.Failures())
	}

	out := buf.String()
	for _, want := range []string{PassMark + " quatrotateabout", PassMark + " reproject_gen2_vals", "2/2 passed"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWrite_ReportsEachFailedSubCheck(t *testing.T) {
	var buf bytes.Buffer
	res := Write([]verify.Outcome{
		{
			Name:   "reproject",
			Passed: false,
			Values: &verify.ValueResult{Passed: true},
			Jacobians: []verify.JacobianResult{
				{Name: "reproject_obj", Err: 2e-3, Passed: false},
			},
		},
		{
			Name:   "invert_pose",
			Passed: false,
			Values: &verify.ValueResult{Err: 0.5, Trials: 10, Failures: 10},
		},
		{
			Name:  "reproject_gen2_vals",
			Fixed: &verify.FixedResult{Got: 1, Want: 2},
		},
		{Name: "quatrotatevector", Passed: true},
	}, &buf)

	if !res.Failed() || len(res.Failures()) != 3 {
		t.Fatalf("Failures() = %v; want 3 entries", res.Failures())
	}
	if res.Total() != 4 {
		t.Errorf("Total() = %d; want 4", res.Total())
	}

	out := buf.String()
	for _, want := range []string{
		FailMark + " reproject\n",
		FailMark + " reproject_obj: error +0.002000",
		"(10/10 trials failed)",
		"got 1.0000000000000000, want 2.000000000000",
		"1/4 passed",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWrite_FailedOutcomeWithoutDetails(t *testing.T) {
	res := Write([]verify.Outcome{{Name: "x"}}, &bytes.Buffer{})

	if !res.Failed() {
		t.Fatal("Failed() = false; want true")
	}

	f := res.Failures()
	f[0] = "mutated"
	if res.Failures()[0] != "x: failed" {
		t.Errorf("Failures() = %v; want an independent copy", res.Failures())
	}
}
